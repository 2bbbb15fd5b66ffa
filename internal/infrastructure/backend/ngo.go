package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/civicflow/civic-portal/internal/core/domain"
)

// AssignedIssues implements ports.NgoAPI.
func (c *Client) AssignedIssues(ctx context.Context, token string) ([]domain.Issue, error) {
	var resp []issueResponse
	if err := c.call(ctx, "ngo_my_issues", http.MethodGet, "/api/ngo/my-issues", nil, token, nil, &resp, true); err != nil {
		return nil, err
	}
	return issuesToDomain(resp), nil
}

// UpdateIssueStatus implements ports.NgoAPI. The backend takes the new
// status as a query parameter on a PATCH.
func (c *Client) UpdateIssueStatus(ctx context.Context, token, issueID, status string) (*domain.Issue, error) {
	path := fmt.Sprintf("/api/ngo/issues/%s/status", url.PathEscape(issueID))
	q := url.Values{}
	q.Set("status", status)

	var resp issueResponse
	if err := c.call(ctx, "ngo_update_status", http.MethodPatch, path, q, token, nil, &resp, true); err != nil {
		return nil, err
	}
	issue := resp.toDomain()
	return &issue, nil
}
