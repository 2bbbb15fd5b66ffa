package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/civicflow/civic-portal/internal/api/metrics"
	"github.com/civicflow/civic-portal/internal/api/middleware"
	"github.com/civicflow/civic-portal/internal/core/domain"
	"github.com/civicflow/civic-portal/internal/core/ports"
)

// AuthHandler serves the login, registration and logout endpoints. All
// session mutation goes through the request's session façade; the handler
// never touches the token store.
type AuthHandler struct {
	invalidate ports.ProfileInvalidator
}

// NewAuthHandler returns the handler. invalidate evicts cached profiles on
// logout; pass nil when no profile cache is in play.
func NewAuthHandler(invalidate ports.ProfileInvalidator) *AuthHandler {
	return &AuthHandler{invalidate: invalidate}
}

// Login authenticates the visitor and starts a session.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess := middleware.SessionFrom(c)
	identity, err := sess.Login(c.Request().Context(), ports.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		User:       identity,
		RedirectTo: redirectAfterLogin(identity, req.From),
	})
}

// redirectAfterLogin prefers the originally requested location, falling
// back to the role's home view. Only portal-relative paths are honoured.
func redirectAfterLogin(id *domain.Identity, from string) string {
	if strings.HasPrefix(from, "/") && !strings.HasPrefix(from, "//") {
		return from
	}
	switch id.Role {
	case domain.RoleAdmin:
		return "/admin"
	case domain.RoleNgo:
		return "/ngo/dashboard"
	default:
		return "/dashboard"
	}
}

// Register creates a citizen account. The visitor stays anonymous: the
// application requires an explicit login afterwards.
//
// @Summary      Register a citizen account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess := middleware.SessionFrom(c)
	err := sess.Register(c.Request().Context(), ports.Registration{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      domain.RoleCitizen,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: "account created, please log in"})
}

// RegisterNgo creates an NGO account with the organization profile.
//
// @Summary      Register an NGO account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      ngoRegisterRequest  true  "NGO registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /ngo/register [post]
func (h *AuthHandler) RegisterNgo(c echo.Context) error {
	var req ngoRegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess := middleware.SessionFrom(c)
	err := sess.Register(c.Request().Context(), ports.Registration{
		Username:         req.Username,
		Email:            req.Email,
		Password:         req.Password,
		Role:             domain.RoleNgo,
		OrganizationName: req.OrganizationName,
		PhoneNumber:      req.PhoneNumber,
		Bio:              req.Bio,
		AddressLine1:     req.AddressLine1,
		AddressLine2:     req.AddressLine2,
		City:             req.City,
		State:            req.State,
		PostalCode:       req.PostalCode,
		Country:          req.Country,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: "organization registered, please log in"})
}

// Logout ends the session. Synchronous: the cookie is cleared on this very
// response, no backend round trip. The cached profile for the old token is
// evicted first, so replaying the cookie cannot re-hydrate the session.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	if h.invalidate != nil {
		if token := sess.Token(); token != "" {
			h.invalidate.InvalidateProfile(c.Request().Context(), token)
		}
	}
	sess.Logout()
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}
