package backend

import (
	"context"
	"net/http"

	"github.com/civicflow/civic-portal/internal/core/domain"
)

type updateProfileRequest struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

// UpdateProfile implements ports.UserAPI. The backend returns the updated
// profile; the caller merges it into the session via UpdateIdentity.
func (c *Client) UpdateProfile(ctx context.Context, token string, patch domain.IdentityPatch) (*domain.Identity, error) {
	req := updateProfileRequest{
		Email:     patch.Email,
		FirstName: patch.FirstName,
		LastName:  patch.LastName,
	}

	var resp profileResponse
	if err := c.call(ctx, "user_update_profile", http.MethodPut, "/api/user/profile", nil, token, req, &resp, true); err != nil {
		return nil, err
	}

	return &domain.Identity{
		ID:        resp.ID.String(),
		Username:  resp.Username,
		Email:     resp.Email,
		FirstName: resp.FirstName,
		LastName:  resp.LastName,
		Role:      domain.Role(resp.Role),
	}, nil
}

// DashboardStats implements ports.UserAPI.
func (c *Client) DashboardStats(ctx context.Context, token string) (*domain.DashboardStats, error) {
	var resp domain.DashboardStats
	if err := c.call(ctx, "dashboard_stats", http.MethodGet, "/api/issues/dashboard/stats", nil, token, nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RecentIssues implements ports.UserAPI.
func (c *Client) RecentIssues(ctx context.Context, token string) ([]domain.Issue, error) {
	var resp []issueResponse
	if err := c.call(ctx, "dashboard_recent", http.MethodGet, "/api/issues/dashboard/recent", nil, token, nil, &resp, true); err != nil {
		return nil, err
	}
	return issuesToDomain(resp), nil
}

// NotificationSettings implements ports.UserAPI.
func (c *Client) NotificationSettings(ctx context.Context, token string) (map[string]bool, error) {
	var resp map[string]bool
	if err := c.call(ctx, "user_notification_settings", http.MethodGet, "/api/user/notification-settings", nil, token, nil, &resp, true); err != nil {
		return nil, err
	}
	return resp, nil
}

// UpdateNotificationSettings implements ports.UserAPI.
func (c *Client) UpdateNotificationSettings(ctx context.Context, token string, settings map[string]bool) error {
	return c.call(ctx, "user_update_notification_settings", http.MethodPut, "/api/user/notification-settings", nil, token, settings, nil, true)
}
