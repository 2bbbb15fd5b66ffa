package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/civicflow/civic-portal/internal/core/domain"
	"github.com/civicflow/civic-portal/internal/core/ports"
)

// AdminHandler serves the admin views. Routes are mounted behind the
// admin-only guard; the handlers themselves only shape data.
type AdminHandler struct {
	admin  ports.AdminAPI
	issues ports.IssueAPI
}

func NewAdminHandler(admin ports.AdminAPI, issues ports.IssueAPI) *AdminHandler {
	return &AdminHandler{admin: admin, issues: issues}
}

// Dashboard handles GET /admin.
//
// @Summary      Platform statistics
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  domain.AdminStats
// @Router       /admin [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	stats, err := h.admin.Stats(c.Request().Context(), id.Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Users handles GET /admin/users.
func (h *AdminHandler) Users(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	if size <= 0 {
		size = 20
	}

	users, err := h.admin.Users(c.Request().Context(), id.Token, page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

type roleChangeRequest struct {
	NewRole string `json:"newRole" validate:"required,oneof=CITIZEN NGO ADMIN"`
}

// ChangeRole handles PUT /admin/users/:id/role.
func (h *AdminHandler) ChangeRole(c echo.Context) error {
	var req roleChangeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.admin.ChangeRole(c.Request().Context(), id.Token, c.Param("id"), domain.Role(req.NewRole)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "role updated"})
}

// Issues handles GET /admin/issues — the full issue listing for triage.
func (h *AdminHandler) Issues(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	filter := domain.IssueFilter{
		Category: c.QueryParam("category"),
		Status:   c.QueryParam("status"),
	}
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.Size, _ = strconv.Atoi(c.QueryParam("size"))

	issues, err := h.issues.Issues(c.Request().Context(), id.Token, filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, issues)
}

type assignRequest struct {
	NgoID string `json:"ngoId" validate:"required"`
}

// AssignIssue handles PATCH /admin/issues/:id/assign.
func (h *AdminHandler) AssignIssue(c echo.Context) error {
	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.admin.AssignIssue(c.Request().Context(), id.Token, c.Param("id"), req.NgoID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "issue assigned"})
}
