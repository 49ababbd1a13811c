package domain

import "time"

// ResumeSection is one blank-line-delimited section of a resume.
type ResumeSection struct {
	SectionType     string   `json:"section_type"`
	OriginalContent string   `json:"original_content"`
	TailoredContent string   `json:"tailored_content,omitempty"`
	Changes         []string `json:"changes,omitempty"`
}

// TailoredResume is the diff-preview output of resume tailoring. It always
// requires approval before use.
type TailoredResume struct {
	JobID            string          `json:"job_id"`
	Sections         []ResumeSection `json:"sections"`
	ChangesSummary   string          `json:"changes_summary"`
	Confidence       ConfidenceLevel `json:"confidence"`
	RequiresApproval bool            `json:"requires_approval"`
	TailoredAt       time.Time       `json:"tailored_at"`
}
