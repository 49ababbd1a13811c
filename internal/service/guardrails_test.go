package service

import (
	"testing"

	"github.com/Harshitk-cp/flash/internal/domain"
)

func TestValidateAnswerPasses(t *testing.T) {
	g := NewGuardrailsService()
	answer := &domain.ComposedAnswer{
		Question:        "Describe your backend experience",
		Text:            "Five years building backend services in Go.",
		ConfidenceScore: 0.75,
		Sources: []domain.EvidenceSource{
			{Origin: domain.OriginDocument, Content: "Five years building backend services in Go at Acme.", Relevance: 0.8},
		},
	}

	result := g.ValidateAnswer(answer)
	if !result.Valid {
		t.Errorf("expected valid, got checks %+v", result.Checks)
	}
	if !result.CanProceed {
		t.Error("expected can_proceed for grounded answer")
	}
}

func TestValidateAnswerLowConfidenceBlocks(t *testing.T) {
	g := NewGuardrailsService()
	answer := &domain.ComposedAnswer{
		Question:        "Describe your experience",
		Text:            "Some answer text here.",
		ConfidenceScore: 0.2,
	}

	result := g.ValidateAnswer(answer)
	if result.CanProceed {
		t.Error("answers at or below the failure cap must not proceed")
	}
	if !result.RequiresReview {
		t.Error("low-confidence answers require review")
	}
}

func TestValidateAnswerSensitiveQuestion(t *testing.T) {
	g := NewGuardrailsService()
	answer := &domain.ComposedAnswer{
		Question:        "Do you require visa sponsorship?",
		Text:            "Yes, sponsorship would be needed.",
		ConfidenceScore: 0.55,
	}

	result := g.ValidateAnswer(answer)
	var found bool
	for _, c := range result.Checks {
		if c.Name == "sensitive_question" && !c.Passed {
			found = true
		}
	}
	if !found {
		t.Error("expected sensitive_question check to fail below 0.7 confidence")
	}
	if !result.RequiresReview {
		t.Error("failed warning check should require review")
	}
}

func TestValidateAnswerQuality(t *testing.T) {
	g := NewGuardrailsService()
	answer := &domain.ComposedAnswer{
		Question:        "Describe your experience",
		Text:            "Yes",
		ConfidenceScore: 0.7,
	}

	result := g.ValidateAnswer(answer)
	var failed bool
	for _, c := range result.Checks {
		if c.Name == "answer_quality" && !c.Passed {
			failed = true
		}
	}
	if !failed {
		t.Error("one-word answers should fail the quality check")
	}
}

func TestValidateResumeSectionDatesChanged(t *testing.T) {
	g := NewGuardrailsService()
	section := domain.ResumeSection{
		SectionType:     "experience",
		OriginalContent: "Acme, 2019 to 2023",
		TailoredContent: "Acme, 2018 to 2023",
	}

	result := g.ValidateResumeSection(section)
	if result.CanProceed {
		t.Error("modified dates must block the section")
	}
}

func TestValidateResumeSectionProhibitedContent(t *testing.T) {
	g := NewGuardrailsService()
	section := domain.ResumeSection{
		SectionType:     "skills",
		OriginalContent: "captcha solving expert",
	}

	result := g.ValidateResumeSection(section)
	if result.CanProceed {
		t.Error("prohibited patterns must block the section")
	}
}

func TestValidateResumeSectionRephrasing(t *testing.T) {
	g := NewGuardrailsService()
	section := domain.ResumeSection{
		SectionType:     "summary",
		OriginalContent: "Built scalable backend platform services during 2020",
		TailoredContent: "During 2020, built scalable platform services and backend work",
	}

	result := g.ValidateResumeSection(section)
	if !result.CanProceed {
		t.Errorf("pure rephrasing should pass, got %+v", result.Checks)
	}
}

func TestValidateApplicationEmpty(t *testing.T) {
	g := NewGuardrailsService()

	result := g.ValidateApplication(nil)
	if result.CanProceed {
		t.Error("an application with no fields must not proceed")
	}
}

func TestValidateApplicationLowConfidenceFields(t *testing.T) {
	g := NewGuardrailsService()
	fields := []domain.FilledField{
		{FieldID: "f1", Answer: "ok", Confidence: domain.ConfidenceHigh},
		{FieldID: "f2", Answer: "shaky", Confidence: domain.ConfidenceLow},
	}

	result := g.ValidateApplication(fields)
	if !result.CanProceed {
		t.Error("low-confidence fields warn, they do not block")
	}
	if !result.RequiresReview {
		t.Error("low-confidence fields should trigger review")
	}
}
