package domain

import "time"

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeDropdown FieldType = "dropdown"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeEmail    FieldType = "email"
	FieldTypePhone    FieldType = "phone"
	FieldTypeDate     FieldType = "date"
)

// Question is a single application question to answer. FieldType is a hint
// used only to adjust generation instructions, never ranking.
type Question struct {
	Text      string    `json:"text"`
	FieldID   string    `json:"field_id,omitempty"`
	FieldType FieldType `json:"field_type,omitempty"`
}

// ComposedAnswer is the output of one answer composition. ConfidenceScore,
// ConfidenceLevel and RequiresReview always agree under ClassifyConfidence.
type ComposedAnswer struct {
	FieldID         string           `json:"field_id,omitempty"`
	Question        string           `json:"question"`
	Text            string           `json:"text"`
	ConfidenceScore float64          `json:"confidence_score"`
	ConfidenceLevel ConfidenceLevel  `json:"confidence_level"`
	RequiresReview  bool             `json:"requires_review"`
	Sources         []EvidenceSource `json:"sources"`
	Alternatives    []string         `json:"alternatives,omitempty"`
	ComposedAt      time.Time        `json:"composed_at"`
}
