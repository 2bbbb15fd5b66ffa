package domain

import "strings"

// Role is the closed set of roles the platform assigns. A user holds exactly
// one role at any time.
type Role string

const (
	RoleCitizen Role = "CITIZEN"
	RoleNgo     Role = "NGO"
	RoleAdmin   Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleCitizen || r == RoleNgo || r == RoleAdmin
}

// Identity is the resolved profile of the authenticated principal. It is
// either fully populated or absent (nil); consumers never see a
// half-authenticated identity.
type Identity struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      Role   `json:"role"`

	// Token is the opaque bearer credential issued at login. It has no
	// client-visible structure; the backend alone decides its validity.
	Token string `json:"-"`
}

// DisplayName returns the human-facing name, falling back to the username.
func (i *Identity) DisplayName() string {
	name := strings.TrimSpace(i.FirstName + " " + i.LastName)
	if name == "" {
		return i.Username
	}
	return name
}

// IdentityPatch carries a partial profile update to be merged into the
// current identity after a profile edit completes its own save. Nil fields
// are left untouched.
type IdentityPatch struct {
	Email     *string
	FirstName *string
	LastName  *string
	Role      *Role
}

// Apply shallow-merges the patch into id.
func (p IdentityPatch) Apply(id *Identity) {
	if p.Email != nil {
		id.Email = *p.Email
	}
	if p.FirstName != nil {
		id.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		id.LastName = *p.LastName
	}
	if p.Role != nil {
		id.Role = *p.Role
	}
}
