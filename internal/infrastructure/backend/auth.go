package backend

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/civicflow/civic-portal/internal/core/domain"
	"github.com/civicflow/civic-portal/internal/core/ports"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// authResponse is the flat login payload: the token plus an identity echo.
type authResponse struct {
	Token     string      `json:"token"`
	ID        json.Number `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Role      string      `json:"role"`
}

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role,omitempty"`

	OrganizationName string   `json:"organizationName,omitempty"`
	PhoneNumber      string   `json:"phoneNumber,omitempty"`
	Bio              string   `json:"bio,omitempty"`
	AddressLine1     string   `json:"addressLine1,omitempty"`
	AddressLine2     string   `json:"addressLine2,omitempty"`
	City             string   `json:"city,omitempty"`
	State            string   `json:"state,omitempty"`
	PostalCode       string   `json:"postalCode,omitempty"`
	Country          string   `json:"country,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
}

// profileResponse is the subset of GET /api/user/profile the portal reads.
type profileResponse struct {
	ID        json.Number `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Role      string      `json:"role"`
}

// Login implements ports.AuthAPI. A 401 carries the backend's message
// verbatim, with a generic fallback when the payload is absent.
func (c *Client) Login(ctx context.Context, creds ports.Credentials) (*domain.Identity, error) {
	var resp authResponse
	err := c.call(ctx, "auth_login", http.MethodPost, "/api/auth/login", nil, "",
		loginRequest{Username: creds.Username, Password: creds.Password}, &resp, false)
	if err != nil {
		if apiErr, ok := err.(*APIError); ok && apiErr.Status == http.StatusUnauthorized && apiErr.Message == http.StatusText(http.StatusUnauthorized) {
			apiErr.Message = domain.ErrInvalidCredentials.Error()
		}
		return nil, err
	}

	return &domain.Identity{
		ID:        resp.ID.String(),
		Username:  resp.Username,
		Email:     resp.Email,
		FirstName: resp.FirstName,
		LastName:  resp.LastName,
		Role:      domain.Role(resp.Role),
		Token:     resp.Token,
	}, nil
}

// Register implements ports.AuthAPI. No token is issued; the caller logs in
// explicitly afterwards.
func (c *Client) Register(ctx context.Context, reg ports.Registration) error {
	req := registerRequest{
		Username:         reg.Username,
		Email:            reg.Email,
		Password:         reg.Password,
		FirstName:        reg.FirstName,
		LastName:         reg.LastName,
		Role:             string(reg.Role),
		OrganizationName: reg.OrganizationName,
		PhoneNumber:      reg.PhoneNumber,
		Bio:              reg.Bio,
		AddressLine1:     reg.AddressLine1,
		AddressLine2:     reg.AddressLine2,
		City:             reg.City,
		State:            reg.State,
		PostalCode:       reg.PostalCode,
		Country:          reg.Country,
		Latitude:         reg.Latitude,
		Longitude:        reg.Longitude,
	}
	return c.call(ctx, "auth_register", http.MethodPost, "/api/auth/register", nil, "", req, nil, false)
}

// Profile implements ports.AuthAPI. A 401 means the token is invalid or
// expired; the caller downgrades to anonymous. The interceptor is not
// notified — bootstrap handles its own fallback.
func (c *Client) Profile(ctx context.Context, token string) (*domain.Identity, error) {
	var resp profileResponse
	err := c.call(ctx, "user_profile", http.MethodGet, "/api/user/profile", nil, token, nil, &resp, false)
	if err != nil {
		return nil, err
	}

	return &domain.Identity{
		ID:        resp.ID.String(),
		Username:  resp.Username,
		Email:     resp.Email,
		FirstName: resp.FirstName,
		LastName:  resp.LastName,
		Role:      domain.Role(resp.Role),
	}, nil
}
