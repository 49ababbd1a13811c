package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the structured data the assistant answers from. The core only
// reads it; mutation happens through the profile store.
type Profile struct {
	ID                uuid.UUID `json:"id"`
	FullName          string    `json:"full_name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone,omitempty"`
	Location          string    `json:"location,omitempty"`
	LinkedInURL       string    `json:"linkedin_url,omitempty"`
	GitHubURL         string    `json:"github_url,omitempty"`
	PortfolioURL      string    `json:"portfolio_url,omitempty"`
	CurrentTitle      string    `json:"current_title,omitempty"`
	YearsOfExperience int       `json:"years_of_experience"`
	Skills            []string  `json:"skills,omitempty"`
	PreferredRoles    []string  `json:"preferred_roles,omitempty"`
	WorkAuthorization string    `json:"work_authorization,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
