package token

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func cookieContext(cookie *http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCookieStore_Load(t *testing.T) {
	c, _ := cookieContext(&http.Cookie{Name: "civicflow_token", Value: "tok-1"})
	store := NewCookieStore(c, "civicflow_token", false)

	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != "tok-1" {
		t.Fatalf("loaded %q, want %q", got, "tok-1")
	}
}

func TestCookieStore_LoadMissing(t *testing.T) {
	c, _ := cookieContext(nil)
	store := NewCookieStore(c, "civicflow_token", false)

	got, err := store.Load()
	if err != nil || got != "" {
		t.Fatalf("expected empty token without error, got %q / %v", got, err)
	}
}

func TestCookieStore_SaveAttributes(t *testing.T) {
	c, rec := cookieContext(nil)
	store := NewCookieStore(c, "civicflow_token", true)

	if err := store.Save("tok-1"); err != nil {
		t.Fatalf("save: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	ck := cookies[0]
	if ck.Value != "tok-1" || ck.Path != "/" {
		t.Fatalf("unexpected cookie: %+v", ck)
	}
	if !ck.HttpOnly || !ck.Secure || ck.SameSite != http.SameSiteLaxMode {
		t.Fatalf("token cookie must be HttpOnly, Secure and SameSite=Lax: %+v", ck)
	}
	if ck.MaxAge <= 0 {
		t.Fatalf("expected a positive MaxAge, got %d", ck.MaxAge)
	}
}

func TestCookieStore_ClearExpires(t *testing.T) {
	c, rec := cookieContext(&http.Cookie{Name: "civicflow_token", Value: "tok-1"})
	store := NewCookieStore(c, "civicflow_token", false)

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected an expiring cookie, got %+v", cookies)
	}
}
