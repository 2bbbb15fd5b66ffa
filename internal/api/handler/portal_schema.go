package handler

import "github.com/civicflow/civic-portal/internal/core/domain"

type newIssueRequest struct {
	Title       string   `json:"title"       validate:"required,min=5,max=200"`
	Description string   `json:"description" validate:"required,min=10"`
	Category    string   `json:"category"    validate:"required"`
	Latitude    *float64 `json:"latitude"    validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude"   validate:"omitempty,longitude"`
	Critical    bool     `json:"critical"`
}

type voteCastRequest struct {
	Type string `json:"type" validate:"required,oneof=UPVOTE DOWNVOTE"`
}

type profileUpdateRequest struct {
	Email     *string `json:"email,omitempty"     validate:"omitempty,email"`
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,max=50"`
	LastName  *string `json:"lastName,omitempty"  validate:"omitempty,max=50"`
}

type homeView struct {
	Greeting     string         `json:"greeting,omitempty"`
	RecentIssues []domain.Issue `json:"recentIssues"`
}

type dashboardView struct {
	User         *domain.Identity       `json:"user"`
	Stats        *domain.DashboardStats `json:"stats"`
	RecentIssues []domain.Issue         `json:"recentIssues"`
}

type issueDetailView struct {
	Issue *domain.Issue       `json:"issue"`
	Votes *domain.VoteSummary `json:"votes,omitempty"`
}

type settingsView struct {
	User          *domain.Identity `json:"user"`
	Notifications map[string]bool  `json:"notifications"`
}
