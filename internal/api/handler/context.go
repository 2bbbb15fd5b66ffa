package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/civicflow/civic-portal/internal/api/middleware"
	"github.com/civicflow/civic-portal/internal/core/domain"
)

// ctxIdentity extracts the session identity and performs a fast-fail check
// before any backend call: handlers using it sit behind the guard, so an
// absent identity means the route was wired without its guard — reject with
// 401 rather than calling the backend anonymously.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	id := middleware.SessionFrom(c).Identity()
	if id == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session identity")
	}
	return id, nil
}
