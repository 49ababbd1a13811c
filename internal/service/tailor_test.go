package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Harshitk-cp/flash/internal/domain"
	"github.com/Harshitk-cp/flash/internal/llm"
)

const testResume = `Summary
Backend engineer focused on reliable services.

Experience
Acme Corp, 2019 to 2023
Built payment services handling high traffic.

Skills
Go, PostgreSQL, Docker`

func testAnalysis() *domain.JobAnalysis {
	return &domain.JobAnalysis{
		JobID:          "abc123",
		RequiredSkills: []string{"go", "postgresql"},
		Technologies:   []string{"docker"},
		SeniorityLevel: "senior",
		RoleFocus:      "backend",
	}
}

func TestParseResumeSections(t *testing.T) {
	sections := parseResumeSections(testResume)
	if len(sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(sections))
	}

	wantTypes := []string{"summary", "experience", "skills"}
	for i, want := range wantTypes {
		if sections[i].SectionType != want {
			t.Errorf("section %d type = %s, want %s", i, sections[i].SectionType, want)
		}
	}
}

func TestTailorAlwaysRequiresApproval(t *testing.T) {
	mock := llm.NewMockClient()
	mock.CompleteError = errors.New("provider down")
	s := NewResumeTailorService(mock, NewGuardrailsService(), zap.NewNop())

	result, err := s.Tailor(context.Background(), testResume, testAnalysis(), nil)
	if err != nil {
		t.Fatalf("Tailor: %v", err)
	}
	if !result.RequiresApproval {
		t.Error("tailored resumes must always require approval")
	}
	if result.JobID != "abc123" {
		t.Errorf("job ID = %s, want abc123", result.JobID)
	}
}

func TestTailorKeepsOriginalOnFailure(t *testing.T) {
	mock := llm.NewMockClient()
	mock.CompleteError = errors.New("provider down")
	s := NewResumeTailorService(mock, NewGuardrailsService(), zap.NewNop())

	result, err := s.Tailor(context.Background(), testResume, testAnalysis(), nil)
	if err != nil {
		t.Fatalf("Tailor: %v", err)
	}
	for _, section := range result.Sections {
		if section.TailoredContent != "" {
			t.Errorf("section %s should keep original when generation fails", section.SectionType)
		}
	}
	if result.Confidence != domain.ConfidenceLow {
		t.Errorf("no changes should yield low confidence, got %s", result.Confidence)
	}
}

func TestTailorRejectsGuardrailViolations(t *testing.T) {
	mock := llm.NewMockClient()
	// Rewrite invents a different year, which the date guardrail catches.
	mock.CompleteResponse = "Experience\nAcme Corp, 2015 to 2023\nBuilt payment services handling high traffic."
	s := NewResumeTailorService(mock, NewGuardrailsService(), zap.NewNop())

	result, err := s.Tailor(context.Background(), "Experience\nAcme Corp, 2019 to 2023\nBuilt payment services handling high traffic.", testAnalysis(), nil)
	if err != nil {
		t.Fatalf("Tailor: %v", err)
	}
	if len(result.Sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(result.Sections))
	}
	if result.Sections[0].TailoredContent != "" {
		t.Error("guardrail-violating rewrite should be discarded")
	}
}

func TestTailorEmptyResume(t *testing.T) {
	s := NewResumeTailorService(llm.NewMockClient(), NewGuardrailsService(), zap.NewNop())

	if _, err := s.Tailor(context.Background(), "just some text with no headers", testAnalysis(), nil); err == nil {
		t.Error("expected error for resume without sections")
	}
}

func TestDetectChanges(t *testing.T) {
	changes := detectChanges("line one\nline two", "line one\nline rewritten")
	if len(changes) != 2 {
		t.Errorf("expected added and removed entries, got %v", changes)
	}

	if changes := detectChanges("same\ncontent", "same\ncontent"); len(changes) != 0 {
		t.Errorf("identical content should report no changes, got %v", changes)
	}
}
