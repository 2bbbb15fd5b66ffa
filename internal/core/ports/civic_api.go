package ports

import (
	"context"

	"github.com/civicflow/civic-portal/internal/core/domain"
)

// IssueAPI wraps the backend's issue and vote endpoints. All calls are made
// on behalf of the current visitor: token may be empty for public reads.
type IssueAPI interface {
	Issues(ctx context.Context, token string, filter domain.IssueFilter) ([]domain.Issue, error)
	Issue(ctx context.Context, token, id string) (*domain.Issue, error)
	CreateIssue(ctx context.Context, token string, in domain.NewIssue) (*domain.Issue, error)
	Vote(ctx context.Context, token, issueID, voteType string) (*domain.VoteSummary, error)
	VoteSummary(ctx context.Context, token, issueID string) (*domain.VoteSummary, error)
}

// UserAPI wraps the backend's profile endpoints beyond the bootstrap fetch.
type UserAPI interface {
	UpdateProfile(ctx context.Context, token string, patch domain.IdentityPatch) (*domain.Identity, error)
	DashboardStats(ctx context.Context, token string) (*domain.DashboardStats, error)
	RecentIssues(ctx context.Context, token string) ([]domain.Issue, error)
	NotificationSettings(ctx context.Context, token string) (map[string]bool, error)
	UpdateNotificationSettings(ctx context.Context, token string, settings map[string]bool) error
}

// AdminAPI wraps the backend's admin endpoints.
type AdminAPI interface {
	Stats(ctx context.Context, token string) (*domain.AdminStats, error)
	Users(ctx context.Context, token string, page, size int) ([]domain.AdminUser, error)
	ChangeRole(ctx context.Context, token, userID string, role domain.Role) error
	AssignIssue(ctx context.Context, token, issueID, ngoID string) error
}

// NgoAPI wraps the backend's NGO endpoints.
type NgoAPI interface {
	AssignedIssues(ctx context.Context, token string) ([]domain.Issue, error)
	UpdateIssueStatus(ctx context.Context, token, issueID, status string) (*domain.Issue, error)
}
