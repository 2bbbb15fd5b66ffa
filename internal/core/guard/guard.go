// Package guard decides whether a restricted view may render for the
// current session state. Decide is a pure function: it holds no state of its
// own and must be re-evaluated on every navigation.
package guard

import "github.com/civicflow/civic-portal/internal/core/domain"

// Well-known redirect targets.
const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// Requirement declares a route's access rule. A route carries at most one
// requirement; broader combinations are composed with nested guards. The
// zero value requires authentication with no role constraint.
type Requirement struct {
	admin bool
	role  domain.Role
}

// Authenticated requires a signed-in identity of any role.
func Authenticated() Requirement { return Requirement{} }

// AdminOnly requires the ADMIN role.
func AdminOnly() Requirement { return Requirement{admin: true} }

// RoleOnly requires one specific role.
func RoleOnly(role domain.Role) Requirement { return Requirement{role: role} }

// State is the slice of session state the guard consults.
type State struct {
	Loading       bool
	Authenticated bool
	Role          domain.Role
}

// Kind tags a guard decision.
type Kind int

const (
	// Wait: bootstrap is still outstanding; show a neutral indicator and
	// make no redirect decision yet.
	Wait Kind = iota
	// Render: the requested view may be shown.
	Render
	// Redirect: send the visitor to Target instead.
	Redirect
)

// Decision is the guard's verdict for one navigation attempt.
type Decision struct {
	Kind   Kind
	Target string
	// From carries the originally requested location on a login redirect so
	// the login flow can return there afterwards. Best effort only.
	From string
}

// Decide evaluates the requirement against the session state for a
// navigation to the requested path.
//
// Precedence is fixed: an outstanding bootstrap defers everything (no
// flash-redirect before identity resolution), a missing identity beats any
// role rule, and only then is the role checked.
func Decide(st State, req Requirement, requested string) Decision {
	if st.Loading {
		return Decision{Kind: Wait}
	}
	if !st.Authenticated {
		return Decision{Kind: Redirect, Target: LoginPath, From: requested}
	}
	if req.admin && st.Role != domain.RoleAdmin {
		return Decision{Kind: Redirect, Target: UnauthorizedPath}
	}
	if req.role != "" && st.Role != req.role {
		return Decision{Kind: Redirect, Target: UnauthorizedPath}
	}
	return Decision{Kind: Render}
}
