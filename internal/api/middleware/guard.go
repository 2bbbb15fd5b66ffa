package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/civicflow/civic-portal/internal/api/metrics"
	"github.com/civicflow/civic-portal/internal/core/guard"
)

// Guard gates a route group behind an access requirement. The decision is
// re-evaluated on every request; nothing is cached between navigations.
func Guard(req guard.Requirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := SessionFrom(c)

			st := guard.State{
				Loading:       p.Loading(),
				Authenticated: p.IsAuthenticated(),
			}
			if id := p.Identity(); id != nil {
				st.Role = id.Role
			}

			decision := guard.Decide(st, req, c.Request().URL.RequestURI())
			switch decision.Kind {
			case guard.Wait:
				// Session resolution still outstanding: neutral answer, no
				// redirect. Unreachable behind the session middleware, which
				// always bootstraps first, but the contract holds regardless.
				metrics.GuardDecisionsTotal.WithLabelValues("wait").Inc()
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "initializing"})

			case guard.Redirect:
				target := decision.Target
				if decision.From != "" {
					target += "?from=" + url.QueryEscape(decision.From)
					metrics.GuardDecisionsTotal.WithLabelValues("redirect_login").Inc()
				} else {
					metrics.GuardDecisionsTotal.WithLabelValues("redirect_unauthorized").Inc()
				}
				return c.Redirect(http.StatusFound, target)

			default:
				metrics.GuardDecisionsTotal.WithLabelValues("render").Inc()
				return next(c)
			}
		}
	}
}
