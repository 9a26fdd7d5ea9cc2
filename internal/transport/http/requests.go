package http

import "github.com/civictrack/issue-reporter/internal/domain"

type reportIssueRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Description string   `json:"description" validate:"max=2000"`
	Photos      []string `json:"photos" validate:"omitempty,dive,required"`
	Category    string   `json:"category" validate:"required,issue_category"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Anonymous   bool     `json:"anonymous"`
	UserID      *int64   `json:"userId"`
}

func (r reportIssueRequest) toDomain() domain.Issue {
	return domain.Issue{
		Title:       r.Title,
		Description: r.Description,
		Photos:      r.Photos,
		Category:    domain.IssueCategory(r.Category),
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Anonymous:   r.Anonymous,
		UserID:      r.UserID,
	}
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,username,min=2,max=100"`
	Role     string `json:"role" validate:"omitempty,user_role"`
}
