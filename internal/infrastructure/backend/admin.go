package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/civicflow/civic-portal/internal/core/domain"
)

// Stats implements ports.AdminAPI.
func (c *Client) Stats(ctx context.Context, token string) (*domain.AdminStats, error) {
	var resp domain.AdminStats
	if err := c.call(ctx, "admin_dashboard", http.MethodGet, "/api/admin/dashboard", nil, token, nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

type adminUserResponse struct {
	ID        json.Number `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      string      `json:"role"`
	Active    bool        `json:"isActive"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Users implements ports.AdminAPI.
func (c *Client) Users(ctx context.Context, token string, page, size int) ([]domain.AdminUser, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	var resp []adminUserResponse
	if err := c.call(ctx, "admin_users", http.MethodGet, "/api/admin/users", q, token, nil, &resp, true); err != nil {
		return nil, err
	}

	users := make([]domain.AdminUser, 0, len(resp))
	for _, u := range resp {
		users = append(users, domain.AdminUser{
			ID:        u.ID.String(),
			Username:  u.Username,
			Email:     u.Email,
			Role:      domain.Role(u.Role),
			Active:    u.Active,
			CreatedAt: u.CreatedAt,
		})
	}
	return users, nil
}

type roleChangeRequest struct {
	NewRole string `json:"newRole"`
}

// ChangeRole implements ports.AdminAPI.
func (c *Client) ChangeRole(ctx context.Context, token, userID string, role domain.Role) error {
	path := fmt.Sprintf("/api/admin/users/%s/role", url.PathEscape(userID))
	return c.call(ctx, "admin_change_role", http.MethodPut, path, nil, token, roleChangeRequest{NewRole: string(role)}, nil, true)
}

type assignIssueRequest struct {
	NgoID string `json:"ngoId"`
}

// AssignIssue implements ports.AdminAPI.
func (c *Client) AssignIssue(ctx context.Context, token, issueID, ngoID string) error {
	path := fmt.Sprintf("/api/admin/issues/%s/assign", url.PathEscape(issueID))
	return c.call(ctx, "admin_assign_issue", http.MethodPatch, path, nil, token, assignIssueRequest{NgoID: ngoID}, nil, true)
}
