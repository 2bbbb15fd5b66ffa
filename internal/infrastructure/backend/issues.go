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

// issueResponse mirrors the backend's issue payload.
type issueResponse struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	ImageURL    string      `json:"imageUrl"`
	Latitude    *float64    `json:"latitude"`
	Longitude   *float64    `json:"longitude"`
	VoteCount   int         `json:"voteCount"`
	Critical    bool        `json:"critical"`
	Status      string      `json:"status"`
	CreatedBy   string      `json:"createdBy"`
	AssignedNgo string      `json:"assignedNgo"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   *time.Time  `json:"updatedAt"`
}

func (r issueResponse) toDomain() domain.Issue {
	return domain.Issue{
		ID:          r.ID.String(),
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		VoteCount:   r.VoteCount,
		Critical:    r.Critical,
		Status:      r.Status,
		CreatedBy:   r.CreatedBy,
		AssignedNgo: r.AssignedNgo,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func issuesToDomain(rs []issueResponse) []domain.Issue {
	out := make([]domain.Issue, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.toDomain())
	}
	return out
}

// Issues implements ports.IssueAPI. A zero filter lists everything; any
// constraint routes through the backend's filter endpoint.
func (c *Client) Issues(ctx context.Context, token string, filter domain.IssueFilter) ([]domain.Issue, error) {
	path := "/api/issues"
	query := filterQuery(filter)
	if len(query) > 0 {
		path = "/api/issues/filter"
	}

	var resp []issueResponse
	if err := c.call(ctx, "issues_list", http.MethodGet, path, query, token, nil, &resp, true); err != nil {
		return nil, err
	}
	return issuesToDomain(resp), nil
}

// Issue implements ports.IssueAPI.
func (c *Client) Issue(ctx context.Context, token, id string) (*domain.Issue, error) {
	var resp issueResponse
	err := c.call(ctx, "issues_get", http.MethodGet, "/api/issues/"+url.PathEscape(id), nil, token, nil, &resp, true)
	if err != nil {
		if apiErr, ok := err.(*APIError); ok && apiErr.Status == http.StatusNotFound {
			return nil, domain.ErrIssueNotFound
		}
		return nil, err
	}
	issue := resp.toDomain()
	return &issue, nil
}

type createIssueRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Critical    bool     `json:"critical"`
	Status      string   `json:"status"`
}

// CreateIssue implements ports.IssueAPI. New issues always start OPEN.
func (c *Client) CreateIssue(ctx context.Context, token string, in domain.NewIssue) (*domain.Issue, error) {
	req := createIssueRequest{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Critical:    in.Critical,
		Status:      domain.IssueOpen,
	}

	var resp issueResponse
	if err := c.call(ctx, "issues_create", http.MethodPost, "/api/issues", nil, token, req, &resp, true); err != nil {
		return nil, err
	}
	issue := resp.toDomain()
	return &issue, nil
}

type voteRequest struct {
	Type string `json:"type"`
}

type voteSummaryResponse struct {
	IssueID   json.Number `json:"issueId"`
	Upvotes   int64       `json:"upvotes"`
	Downvotes int64       `json:"downvotes"`
	Score     int64       `json:"totalScore"`
	UserVote  string      `json:"userVote"`
}

func (r voteSummaryResponse) toDomain() *domain.VoteSummary {
	return &domain.VoteSummary{
		IssueID:   r.IssueID.String(),
		Upvotes:   r.Upvotes,
		Downvotes: r.Downvotes,
		Score:     r.Score,
		UserVote:  r.UserVote,
	}
}

// Vote implements ports.IssueAPI.
func (c *Client) Vote(ctx context.Context, token, issueID, voteType string) (*domain.VoteSummary, error) {
	var resp voteSummaryResponse
	path := fmt.Sprintf("/api/issues/%s/vote", url.PathEscape(issueID))
	if err := c.call(ctx, "issues_vote", http.MethodPost, path, nil, token, voteRequest{Type: voteType}, &resp, true); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

// VoteSummary implements ports.IssueAPI.
func (c *Client) VoteSummary(ctx context.Context, token, issueID string) (*domain.VoteSummary, error) {
	var resp voteSummaryResponse
	path := fmt.Sprintf("/api/issues/%s/votes/summary", url.PathEscape(issueID))
	if err := c.call(ctx, "issues_vote_summary", http.MethodGet, path, nil, token, nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

func filterQuery(f domain.IssueFilter) url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Size > 0 {
		q.Set("size", strconv.Itoa(f.Size))
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Critical != nil {
		q.Set("isCritical", strconv.FormatBool(*f.Critical))
	}
	if f.MinVotes > 0 {
		q.Set("minVotes", strconv.Itoa(f.MinVotes))
	}
	if f.SortBy != "" {
		q.Set("sortBy", f.SortBy)
	}
	if f.Latitude != nil {
		q.Set("latitude", strconv.FormatFloat(*f.Latitude, 'f', -1, 64))
	}
	if f.Longitude != nil {
		q.Set("longitude", strconv.FormatFloat(*f.Longitude, 'f', -1, 64))
	}
	if f.RadiusKm != nil {
		q.Set("radiusKm", strconv.FormatFloat(*f.RadiusKm, 'f', -1, 64))
	}
	return q
}
