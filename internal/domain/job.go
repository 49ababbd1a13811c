package domain

import "time"

// JobDescription is the raw posting supplied by the caller.
type JobDescription struct {
	Title                   string   `json:"title"`
	Company                 string   `json:"company,omitempty"`
	Location                string   `json:"location,omitempty"`
	Description             string   `json:"description"`
	Requirements            []string `json:"requirements,omitempty"`
	Responsibilities        []string `json:"responsibilities,omitempty"`
	PreferredQualifications []string `json:"preferred_qualifications,omitempty"`
	URL                     string   `json:"url"`
}

// JobAnalysis is the structured read of a posting.
type JobAnalysis struct {
	JobID           string    `json:"job_id"`
	RequiredSkills  []string  `json:"required_skills"`
	PreferredSkills []string  `json:"preferred_skills"`
	Technologies    []string  `json:"technologies"`
	SeniorityLevel  string    `json:"seniority_level"`
	RoleFocus       string    `json:"role_focus"`
	KeyRequirements []string  `json:"key_requirements"`
	AnalyzedAt      time.Time `json:"analyzed_at"`
}
