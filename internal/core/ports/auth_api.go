package ports

import (
	"context"

	"github.com/civicflow/civic-portal/internal/core/domain"
)

// Credentials is a username/password pair submitted at login.
type Credentials struct {
	Username string
	Password string
}

// Registration carries the sign-up form. The NGO variant fills the
// organization and address fields; citizens leave them empty.
type Registration struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domain.Role

	// NGO-only fields.
	OrganizationName string
	PhoneNumber      string
	Bio              string
	AddressLine1     string
	AddressLine2     string
	City             string
	State            string
	PostalCode       string
	Country          string
	Latitude         *float64
	Longitude        *float64
}

// ProfileInvalidator drops any cached identity held for a bearer token.
// Cache-decorated AuthAPIs implement it; the logout path calls it so a
// replayed cookie cannot resurrect the session from cache.
type ProfileInvalidator interface {
	InvalidateProfile(ctx context.Context, token string)
}

// AuthAPI is the backend authentication boundary the session store talks to.
type AuthAPI interface {
	// Login exchanges credentials for an identity whose Token field carries
	// the issued bearer credential.
	Login(ctx context.Context, creds Credentials) (*domain.Identity, error)
	// Register creates an account. It never returns a token; the caller must
	// log in explicitly afterwards.
	Register(ctx context.Context, reg Registration) error
	// Profile resolves the identity behind a bearer token. A 401 from the
	// backend means the token is invalid or expired.
	Profile(ctx context.Context, token string) (*domain.Identity, error)
}
