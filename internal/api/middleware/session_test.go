package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/civicflow/civic-portal/internal/core/domain"
	"github.com/civicflow/civic-portal/internal/core/ports"
)

type stubAuthAPI struct {
	loginFn    func(ctx context.Context, creds ports.Credentials) (*domain.Identity, error)
	registerFn func(ctx context.Context, reg ports.Registration) error
	profileFn  func(ctx context.Context, token string) (*domain.Identity, error)
}

func (s *stubAuthAPI) Login(ctx context.Context, creds ports.Credentials) (*domain.Identity, error) {
	return s.loginFn(ctx, creds)
}

func (s *stubAuthAPI) Register(ctx context.Context, reg ports.Registration) error {
	return s.registerFn(ctx, reg)
}

func (s *stubAuthAPI) Profile(ctx context.Context, token string) (*domain.Identity, error) {
	return s.profileFn(ctx, token)
}

const testCookie = "civicflow_token"

func runSession(t *testing.T, api ports.AuthAPI, cookie string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: cookie})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session(SessionConfig{API: api, CookieName: testCookie})
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := handler(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	return rec, c
}

func TestSession_AnonymousWithoutCookie(t *testing.T) {
	api := &stubAuthAPI{
		profileFn: func(ctx context.Context, token string) (*domain.Identity, error) {
			t.Fatal("no profile fetch expected without a cookie")
			return nil, nil
		},
	}
	_, c := runSession(t, api, "")

	p := SessionFrom(c)
	if p.Loading() {
		t.Fatal("session must be resolved before the handler runs")
	}
	if p.IsAuthenticated() {
		t.Fatal("expected an anonymous session")
	}
}

func TestSession_HydratesFromCookie(t *testing.T) {
	api := &stubAuthAPI{
		profileFn: func(ctx context.Context, token string) (*domain.Identity, error) {
			if token != "tok-1" {
				t.Fatalf("unexpected token: %q", token)
			}
			return &domain.Identity{Username: "alice", Role: domain.RoleAdmin}, nil
		},
	}
	_, c := runSession(t, api, "tok-1")

	p := SessionFrom(c)
	if !p.IsAuthenticated() || !p.IsAdmin() {
		t.Fatalf("expected an authenticated admin, got %+v", p.Identity())
	}
	if p.Token() != "tok-1" {
		t.Fatalf("expected the cookie token, got %q", p.Token())
	}
}

func TestSession_RejectedCookieClearsIt(t *testing.T) {
	api := &stubAuthAPI{
		profileFn: func(ctx context.Context, token string) (*domain.Identity, error) {
			return nil, errors.New("401 unauthorized")
		},
	}
	rec, c := runSession(t, api, "stale")

	if SessionFrom(c).IsAuthenticated() {
		t.Fatal("expected an anonymous session")
	}

	// The stale cookie must be expired on this very response.
	cleared := false
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == testCookie && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected the stale cookie to be expired")
	}
}

func TestSessionFrom_PanicsWithoutMiddleware(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	defer func() {
		if recover() == nil {
			t.Fatal("expected SessionFrom to panic outside the session middleware")
		}
	}()
	SessionFrom(c)
}
