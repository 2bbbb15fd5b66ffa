package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/civicflow/civic-portal/internal/core/domain"
	"github.com/civicflow/civic-portal/internal/core/ports"
)

type routerAuthAPI struct {
	loginFn   func(ctx context.Context, creds ports.Credentials) (*domain.Identity, error)
	profileFn func(ctx context.Context, token string) (*domain.Identity, error)
}

func (s *routerAuthAPI) Login(ctx context.Context, creds ports.Credentials) (*domain.Identity, error) {
	return s.loginFn(ctx, creds)
}

func (s *routerAuthAPI) Register(ctx context.Context, reg ports.Registration) error {
	return nil
}

func (s *routerAuthAPI) Profile(ctx context.Context, token string) (*domain.Identity, error) {
	return s.profileFn(ctx, token)
}

type routerAdminAPI struct{}

func (routerAdminAPI) Stats(ctx context.Context, token string) (*domain.AdminStats, error) {
	return &domain.AdminStats{}, nil
}

func (routerAdminAPI) Users(ctx context.Context, token string, page, size int) ([]domain.AdminUser, error) {
	return nil, nil
}

func (routerAdminAPI) ChangeRole(ctx context.Context, token, userID string, role domain.Role) error {
	return nil
}

func (routerAdminAPI) AssignIssue(ctx context.Context, token, issueID, ngoID string) error {
	return nil
}

// The prometheus middleware registers collectors globally, so the router is
// built exactly once for every case in this file.
func TestRouter(t *testing.T) {
	api := &routerAuthAPI{
		loginFn: func(ctx context.Context, creds ports.Credentials) (*domain.Identity, error) {
			if creds.Username == "helporg" {
				return &domain.Identity{Username: "helporg", Role: domain.RoleNgo, Token: "tok-ngo"}, nil
			}
			return nil, domain.ErrInvalidCredentials
		},
		profileFn: func(ctx context.Context, token string) (*domain.Identity, error) {
			if token == "tok-admin" {
				return &domain.Identity{Username: "root", Role: domain.RoleAdmin}, nil
			}
			return nil, domain.ErrInvalidCredentials
		},
	}

	e := NewRouter(Dependencies{
		Auth:       api,
		Admin:      routerAdminAPI{},
		CookieName: "civicflow_token",
		Logger:     zerolog.Nop(),
	})

	t.Run("admin landing path is routable", func(t *testing.T) {
		// /admin is where redirectAfterLogin sends administrators; it must
		// serve the dashboard, not the router's 404.
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(&http.Cookie{Name: "civicflow_token", Value: "tok-admin"})
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("GET /admin = %d, want 200 (body %s)", rec.Code, rec.Body.String())
		}
	})

	t.Run("admin route still guarded for anonymous visitors", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusFound {
			t.Fatalf("GET /admin without a session = %d, want 302", rec.Code)
		}
		if loc := rec.Header().Get(echo.HeaderLocation); !strings.HasPrefix(loc, "/login") {
			t.Fatalf("expected a redirect to the login page, got %q", loc)
		}
	})

	t.Run("ngo login alias", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/ngo/login",
			strings.NewReader(`{"username":"helporg","password":"secret"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("POST /ngo/login = %d, want 200 (body %s)", rec.Code, rec.Body.String())
		}
		var resp map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if resp["redirectTo"] != "/ngo/dashboard" {
			t.Fatalf("redirectTo = %v, want /ngo/dashboard", resp["redirectTo"])
		}
	})
}
