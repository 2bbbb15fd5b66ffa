package token

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const cookieMaxAge = 30 * 24 * time.Hour

// CookieStore keeps the visitor's bearer token in an HTTP cookie — the
// browser-side equivalent of the well-known storage key. One store is bound
// to one request/response pair; the session middleware creates it fresh on
// every request.
type CookieStore struct {
	c      echo.Context
	name   string
	secure bool
}

// NewCookieStore binds a store to the given request context. name is the
// cookie's name; secure marks the cookie HTTPS-only.
func NewCookieStore(c echo.Context, name string, secure bool) *CookieStore {
	return &CookieStore{c: c, name: name, secure: secure}
}

// Load returns the token from the request cookie, or "" when absent.
func (s *CookieStore) Load() (string, error) {
	cookie, err := s.c.Cookie(s.name)
	if err != nil {
		// echo only returns http.ErrNoCookie here.
		return "", nil
	}
	return cookie.Value, nil
}

func (s *CookieStore) Save(token string) error {
	s.c.SetCookie(&http.Cookie{
		Name:     s.name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *CookieStore) Clear() error {
	s.c.SetCookie(&http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
