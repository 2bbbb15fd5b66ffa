package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/civicflow/civic-portal/internal/api/metrics"
	"github.com/civicflow/civic-portal/internal/core/ports"
	"github.com/civicflow/civic-portal/internal/core/session"
	"github.com/civicflow/civic-portal/internal/infrastructure/token"
)

const sessionKey = "civicportal.session"

// SessionConfig wires the session middleware.
type SessionConfig struct {
	// API resolves identities against the backend (usually cache-decorated).
	API ports.AuthAPI
	// Audit receives session lifecycle events.
	Audit ports.AuditRecorder
	// CookieName is the well-known key the bearer token lives under.
	CookieName string
	// SecureCookie marks the cookie HTTPS-only.
	SecureCookie bool
	Logger       zerolog.Logger
}

// Session hydrates a session for every request: the visitor's cookie token
// is resolved to an identity (or anonymous) before any handler or guard
// runs. That ordering is the one guarantee the whole portal depends on —
// no authorization decision before identity resolution completes.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	audit := cfg.Audit
	if audit == nil {
		audit = ports.NoopAudit{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokens := token.NewCookieStore(c, cfg.CookieName, cfg.SecureCookie)
			hadToken, _ := tokens.Load()

			store := session.NewStore(cfg.API, tokens,
				session.WithAudit(requestAudit{inner: audit, ip: c.RealIP()}),
				session.WithLogger(cfg.Logger),
			)
			store.Bootstrap(c.Request().Context())

			provider := session.NewProvider(store)
			switch {
			case provider.IsAuthenticated():
				metrics.BootstrapTotal.WithLabelValues("authenticated").Inc()
			case hadToken != "":
				metrics.BootstrapTotal.WithLabelValues("rejected").Inc()
			default:
				metrics.BootstrapTotal.WithLabelValues("anonymous").Inc()
			}

			c.Set(sessionKey, provider)
			return next(c)
		}
	}
}

// SessionFrom returns the request's session façade. Calling it on a route
// outside the session middleware is a wiring mistake and panics loudly
// rather than answering "anonymous" and silently locking the user out.
func SessionFrom(c echo.Context) *session.Provider {
	provider, ok := c.Get(sessionKey).(*session.Provider)
	if !ok {
		panic("middleware: SessionFrom called without the session middleware installed")
	}
	return provider
}

// requestAudit stamps the caller's address onto events recorded during this
// request.
type requestAudit struct {
	inner ports.AuditRecorder
	ip    string
}

func (a requestAudit) Record(ev ports.AuditEvent) {
	if ev.RemoteIP == "" {
		ev.RemoteIP = a.ip
	}
	a.inner.Record(ev)
}
