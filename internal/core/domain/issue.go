package domain

import "time"

// Issue statuses as reported by the backend.
const (
	IssueOpen       = "OPEN"
	IssueInProgress = "IN_PROGRESS"
	IssueResolved   = "RESOLVED"
	IssueRejected   = "REJECTED"
)

// Issue is the portal's view of a reported civic issue.
type Issue struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	VoteCount   int        `json:"voteCount"`
	Critical    bool       `json:"critical"`
	Status      string     `json:"status"`
	CreatedBy   string     `json:"createdBy,omitempty"`
	AssignedNgo string     `json:"assignedNgo,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// NewIssue is the payload for reporting a new issue.
type NewIssue struct {
	Title       string
	Description string
	Category    string
	Latitude    *float64
	Longitude   *float64
	Critical    bool
}

// IssueFilter narrows an issue listing. Zero values mean "no constraint".
type IssueFilter struct {
	Page      int
	Size      int
	Category  string
	Status    string
	Critical  *bool
	MinVotes  int
	SortBy    string
	Latitude  *float64
	Longitude *float64
	RadiusKm  *float64
}

// VoteSummary aggregates votes on a single issue.
type VoteSummary struct {
	IssueID   string `json:"issueId"`
	Upvotes   int64  `json:"upvotes"`
	Downvotes int64  `json:"downvotes"`
	Score     int64  `json:"totalScore"`
	UserVote  string `json:"userVote,omitempty"`
}

// DashboardStats is the per-user dashboard summary.
type DashboardStats struct {
	TotalIssues      int64 `json:"totalIssues"`
	OpenIssues       int64 `json:"openIssues"`
	InProgressIssues int64 `json:"inProgressIssues"`
	ResolvedIssues   int64 `json:"resolvedIssues"`
	MyIssues         int64 `json:"myIssues"`
}

// AdminStats is the platform-wide summary shown on the admin dashboard.
type AdminStats struct {
	TotalUsers       int64 `json:"totalUsers"`
	TotalActiveUsers int64 `json:"totalActiveUsers"`
	TotalNgos        int64 `json:"totalNGOs"`
	TotalAdmins      int64 `json:"totalAdmins"`
	TotalIssues      int64 `json:"totalIssues"`
	OpenIssues       int64 `json:"openIssues"`
	ResolvedIssues   int64 `json:"resolvedIssues"`
}

// AdminUser is a row in the admin user listing.
type AdminUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Active    bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
