package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/civicflow/civic-portal/internal/api/middleware"
	"github.com/civicflow/civic-portal/internal/core/domain"
	"github.com/civicflow/civic-portal/internal/core/ports"
)

// PortalHandler serves the citizen-facing views: home, issue browsing and
// reporting, dashboard, profile and settings. Every handler is a thin
// mapping from the backend's data to a view model — no business logic.
type PortalHandler struct {
	issues ports.IssueAPI
	users  ports.UserAPI
}

func NewPortalHandler(issues ports.IssueAPI, users ports.UserAPI) *PortalHandler {
	return &PortalHandler{issues: issues, users: users}
}

// Home handles GET / — public landing view with the latest open issues.
func (h *PortalHandler) Home(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	recent, err := h.issues.Issues(c.Request().Context(), sess.Token(), domain.IssueFilter{
		Status: domain.IssueOpen,
		Size:   10,
		SortBy: "createdAt",
	})
	if err != nil {
		return err
	}

	view := homeView{RecentIssues: recent}
	if id := sess.Identity(); id != nil {
		view.Greeting = "Welcome back, " + id.DisplayName()
	}
	return c.JSON(http.StatusOK, view)
}

// Issues handles GET /issues — public listing with optional filters.
//
// @Summary      List reported issues
// @Tags         issues
// @Produce      json
// @Param        category  query  string  false  "Category filter"
// @Param        status    query  string  false  "Status filter"
// @Param        page      query  int     false  "Page number"
// @Param        size      query  int     false  "Page size"
// @Success      200  {array}  domain.Issue
// @Router       /issues [get]
func (h *PortalHandler) Issues(c echo.Context) error {
	filter := domain.IssueFilter{
		Category: c.QueryParam("category"),
		Status:   c.QueryParam("status"),
		SortBy:   c.QueryParam("sortBy"),
	}
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.Size, _ = strconv.Atoi(c.QueryParam("size"))
	if v := c.QueryParam("critical"); v != "" {
		critical := v == "true"
		filter.Critical = &critical
	}

	issues, err := h.issues.Issues(c.Request().Context(), middleware.SessionFrom(c).Token(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, issues)
}

// Issue handles GET /issues/:id — public detail view. The vote summary is
// attached best-effort for signed-in visitors.
func (h *PortalHandler) Issue(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	issue, err := h.issues.Issue(c.Request().Context(), sess.Token(), c.Param("id"))
	if err != nil {
		return err
	}

	view := issueDetailView{Issue: issue}
	if sess.IsAuthenticated() {
		if votes, err := h.issues.VoteSummary(c.Request().Context(), sess.Token(), issue.ID); err == nil {
			view.Votes = votes
		}
	}
	return c.JSON(http.StatusOK, view)
}

// CreateIssue handles POST /issues.
//
// @Summary      Report a new issue
// @Tags         issues
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      newIssueRequest  true  "Issue details"
// @Success      201   {object}  domain.Issue
// @Failure      400   {object}  map[string]string
// @Router       /issues [post]
func (h *PortalHandler) CreateIssue(c echo.Context) error {
	var req newIssueRequest
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

	issue, err := h.issues.CreateIssue(c.Request().Context(), id.Token, domain.NewIssue{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Critical:    req.Critical,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, issue)
}

// Vote handles POST /issues/:id/vote.
func (h *PortalHandler) Vote(c echo.Context) error {
	var req voteCastRequest
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

	summary, err := h.issues.Vote(c.Request().Context(), id.Token, c.Param("id"), req.Type)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// Dashboard handles GET /dashboard.
//
// @Summary      Personal dashboard
// @Tags         portal
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  dashboardView
// @Router       /dashboard [get]
func (h *PortalHandler) Dashboard(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	stats, err := h.users.DashboardStats(c.Request().Context(), id.Token)
	if err != nil {
		return err
	}
	recent, err := h.users.RecentIssues(c.Request().Context(), id.Token)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboardView{User: id, Stats: stats, RecentIssues: recent})
}

// Profile handles GET /profile.
func (h *PortalHandler) Profile(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, id)
}

// UpdateProfile handles PUT /profile. The backend performs the save; the
// confirmed fields are then merged into the session so subsequent requests
// see the new profile without a re-login.
func (h *PortalHandler) UpdateProfile(c echo.Context) error {
	var req profileUpdateRequest
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

	patch := domain.IdentityPatch{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	updated, err := h.users.UpdateProfile(c.Request().Context(), id.Token, patch)
	if err != nil {
		return err
	}

	middleware.SessionFrom(c).UpdateIdentity(domain.IdentityPatch{
		Email:     &updated.Email,
		FirstName: &updated.FirstName,
		LastName:  &updated.LastName,
	})
	return c.JSON(http.StatusOK, updated)
}

// Settings handles GET /settings.
func (h *PortalHandler) Settings(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	notifications, err := h.users.NotificationSettings(c.Request().Context(), id.Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settingsView{User: id, Notifications: notifications})
}

// UpdateSettings handles PUT /settings.
func (h *PortalHandler) UpdateSettings(c echo.Context) error {
	var settings map[string]bool
	if err := c.Bind(&settings); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.users.UpdateNotificationSettings(c.Request().Context(), id.Token, settings); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "settings saved"})
}

// Unauthorized handles GET /unauthorized — the target of role-mismatch
// redirects. Always renders, regardless of session state.
func (h *PortalHandler) Unauthorized(c echo.Context) error {
	return c.JSON(http.StatusForbidden, messageResponse{
		Message: "you do not have permission to view this page",
	})
}
