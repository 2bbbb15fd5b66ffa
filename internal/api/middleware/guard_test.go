package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/civicflow/civic-portal/internal/core/domain"
	"github.com/civicflow/civic-portal/internal/core/guard"
	"github.com/civicflow/civic-portal/internal/core/session"
	"github.com/civicflow/civic-portal/internal/infrastructure/token"
)

// guardContext builds a request context carrying a session in the given
// state. A nil identity yields an anonymous session; bootstrapped controls
// whether session resolution has completed.
func guardContext(t *testing.T, target string, id *domain.Identity, bootstrapped bool) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	api := &stubAuthAPI{
		profileFn: func(ctx context.Context, tok string) (*domain.Identity, error) {
			cp := *id
			return &cp, nil
		},
	}
	tokens := token.NewMemoryStore("")
	if id != nil {
		tokens = token.NewMemoryStore("tok-1")
	}
	store := session.NewStore(api, tokens)
	if bootstrapped {
		store.Bootstrap(context.Background())
	}
	c.Set(sessionKey, session.NewProvider(store))
	return c, rec
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestGuard_AnonymousRedirectsToLogin(t *testing.T) {
	c, rec := guardContext(t, "/dashboard?tab=mine", nil, true)

	if err := Guard(guard.Authenticated())(okHandler)(c); err != nil {
		t.Fatalf("guard error: %v", err)
	}

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	loc := rec.Header().Get(echo.HeaderLocation)
	if loc != "/login?from="+url.QueryEscape("/dashboard?tab=mine") {
		t.Fatalf("unexpected redirect target: %q", loc)
	}
}

func TestGuard_AnonymousOnAdminRouteStillGoesToLogin(t *testing.T) {
	c, rec := guardContext(t, "/admin/users", nil, true)

	if err := Guard(guard.AdminOnly())(okHandler)(c); err != nil {
		t.Fatalf("guard error: %v", err)
	}

	loc := rec.Header().Get(echo.HeaderLocation)
	if loc != "/login?from="+url.QueryEscape("/admin/users") {
		t.Fatalf("unexpected redirect target: %q", loc)
	}
}

func TestGuard_WrongRoleGoesToUnauthorized(t *testing.T) {
	citizen := &domain.Identity{Username: "c", Role: domain.RoleCitizen}
	c, rec := guardContext(t, "/admin/users", citizen, true)

	if err := Guard(guard.AdminOnly())(okHandler)(c); err != nil {
		t.Fatalf("guard error: %v", err)
	}

	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/unauthorized" {
		t.Fatalf("unexpected redirect target: %q", loc)
	}
}

func TestGuard_MatchingRoleRenders(t *testing.T) {
	ngo := &domain.Identity{Username: "n", Role: domain.RoleNgo}
	c, rec := guardContext(t, "/ngo/dashboard", ngo, true)

	if err := Guard(guard.RoleOnly(domain.RoleNgo))(okHandler)(c); err != nil {
		t.Fatalf("guard error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected the handler to run, got %d", rec.Code)
	}
}

func TestGuard_UnresolvedSessionWaits(t *testing.T) {
	admin := &domain.Identity{Username: "a", Role: domain.RoleAdmin}
	c, rec := guardContext(t, "/admin/users", admin, false)

	if err := Guard(guard.AdminOnly())(okHandler)(c); err != nil {
		t.Fatalf("guard error: %v", err)
	}

	// Never a redirect while resolution is outstanding.
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected a Retry-After hint")
	}
}
