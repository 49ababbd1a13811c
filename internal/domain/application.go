package domain

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	StatusPending        ApplicationStatus = "pending"
	StatusInProgress     ApplicationStatus = "in_progress"
	StatusReviewRequired ApplicationStatus = "review_required"
	StatusApproved       ApplicationStatus = "approved"
	StatusSubmitted      ApplicationStatus = "submitted"
	StatusFailed         ApplicationStatus = "failed"
)

// FormField is a single field extracted from an application page.
type FormField struct {
	FieldID     string    `json:"field_id"`
	FieldName   string    `json:"field_name,omitempty"`
	FieldType   FieldType `json:"field_type"`
	Label       string    `json:"label"`
	Placeholder string    `json:"placeholder,omitempty"`
	Required    bool      `json:"required"`
	Options     []string  `json:"options,omitempty"`
}

// FilledField pairs a form field with its composed answer.
type FilledField struct {
	FieldID    string          `json:"field_id"`
	FieldName  string          `json:"field_name,omitempty"`
	Answer     string          `json:"answer"`
	Confidence ConfidenceLevel `json:"confidence"`
	Source     EvidenceOrigin  `json:"source,omitempty"`
}

// ApplicationReview is a complete filled application awaiting human approval.
type ApplicationReview struct {
	ApplicationID      string            `json:"application_id"`
	JobID              string            `json:"job_id"`
	Company            string            `json:"company"`
	Role               string            `json:"role"`
	FilledFields       []FilledField     `json:"filled_fields"`
	Answers            []ComposedAnswer  `json:"answers"`
	OverallConfidence  float64           `json:"overall_confidence"`
	Status             ApplicationStatus `json:"status"`
	ReadyForSubmission bool              `json:"ready_for_submission"`
	Warnings           []string          `json:"warnings,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
}

type GuardrailSeverity string

const (
	SeverityCritical GuardrailSeverity = "critical"
	SeverityWarning  GuardrailSeverity = "warning"
	SeverityInfo     GuardrailSeverity = "info"
)

// GuardrailCheck is the result of one validation rule.
type GuardrailCheck struct {
	Name     string            `json:"check_name"`
	Passed   bool              `json:"passed"`
	Severity GuardrailSeverity `json:"severity"`
	Message  string            `json:"message"`
}

// ValidationResult aggregates guardrail checks. CanProceed is false whenever a
// critical check failed.
type ValidationResult struct {
	Valid          bool             `json:"valid"`
	Checks         []GuardrailCheck `json:"checks"`
	CanProceed     bool             `json:"can_proceed"`
	RequiresReview bool             `json:"requires_review"`
}

// ApplicationLog records one processed application for the analytics surface.
type ApplicationLog struct {
	ID           uuid.UUID         `json:"id"`
	ProfileID    uuid.UUID         `json:"profile_id"`
	JobID        string            `json:"job_id"`
	Company      string            `json:"company,omitempty"`
	Role         string            `json:"role,omitempty"`
	AnswersCount int               `json:"answers_count"`
	Status       ApplicationStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
}
