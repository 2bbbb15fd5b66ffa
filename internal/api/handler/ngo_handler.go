package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/civicflow/civic-portal/internal/core/ports"
)

// NgoHandler serves the NGO workspace. Routes sit behind the NGO-only guard.
type NgoHandler struct {
	ngo ports.NgoAPI
}

func NewNgoHandler(ngo ports.NgoAPI) *NgoHandler {
	return &NgoHandler{ngo: ngo}
}

// Dashboard handles GET /ngo/dashboard — issues assigned to this NGO.
//
// @Summary      NGO workspace
// @Tags         ngo
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}  domain.Issue
// @Router       /ngo/dashboard [get]
func (h *NgoHandler) Dashboard(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	issues, err := h.ngo.AssignedIssues(c.Request().Context(), id.Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, issues)
}

type statusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=OPEN IN_PROGRESS RESOLVED REJECTED"`
}

// UpdateStatus handles PATCH /ngo/issues/:id/status.
func (h *NgoHandler) UpdateStatus(c echo.Context) error {
	var req statusUpdateRequest
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

	issue, err := h.ngo.UpdateIssueStatus(c.Request().Context(), id.Token, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, issue)
}
