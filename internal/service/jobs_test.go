package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Harshitk-cp/flash/internal/domain"
	"github.com/Harshitk-cp/flash/internal/llm"
)

func TestJobIDStable(t *testing.T) {
	job := &domain.JobDescription{
		URL:     "https://jobs.example.com/123",
		Title:   "Backend Engineer",
		Company: "Acme",
	}

	first := JobID(job)
	second := JobID(job)
	if first != second {
		t.Errorf("job ID not stable: %s != %s", first, second)
	}
	if len(first) != 16 {
		t.Errorf("job ID length = %d, want 16", len(first))
	}

	other := &domain.JobDescription{URL: "https://jobs.example.com/456", Title: "Backend Engineer", Company: "Acme"}
	if JobID(other) == first {
		t.Error("different URLs should produce different job IDs")
	}
}

func TestAnalyzeExtractsSkillsViaLLM(t *testing.T) {
	mock := llm.NewMockClient()
	mock.CompleteResponse = "Go\nPostgreSQL\nDistributed systems"
	s := NewJobAnalyzerService(mock, zap.NewNop())

	job := &domain.JobDescription{
		Title:        "Senior Backend Engineer",
		Company:      "Acme",
		URL:          "https://jobs.example.com/1",
		Description:  "Build APIs with go and postgresql on aws.",
		Requirements: []string{"5+ years backend experience"},
	}

	analysis, err := s.Analyze(context.Background(), job)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(analysis.RequiredSkills) != 3 {
		t.Errorf("required skills = %v, want 3 entries", analysis.RequiredSkills)
	}
	if analysis.SeniorityLevel != "senior" {
		t.Errorf("seniority = %s, want senior", analysis.SeniorityLevel)
	}
	if analysis.RoleFocus != "backend" {
		t.Errorf("role focus = %s, want backend", analysis.RoleFocus)
	}
	if analysis.JobID == "" {
		t.Error("job ID should be set")
	}
}

func TestAnalyzeFallsBackToKeywords(t *testing.T) {
	mock := llm.NewMockClient()
	mock.CompleteError = errors.New("provider down")
	s := NewJobAnalyzerService(mock, zap.NewNop())

	job := &domain.JobDescription{
		Title:       "Engineer",
		URL:         "https://jobs.example.com/2",
		Description: "We use docker, kubernetes and aws heavily.",
	}

	analysis, err := s.Analyze(context.Background(), job)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	want := map[string]bool{"docker": true, "kubernetes": true, "aws": true}
	for _, skill := range analysis.RequiredSkills {
		if !want[skill] {
			t.Errorf("unexpected fallback skill %q", skill)
		}
	}
	if len(analysis.RequiredSkills) != 3 {
		t.Errorf("fallback skills = %v, want docker/kubernetes/aws", analysis.RequiredSkills)
	}
}

func TestAnalyzeRejectsEmptyJob(t *testing.T) {
	s := NewJobAnalyzerService(llm.NewMockClient(), zap.NewNop())

	if _, err := s.Analyze(context.Background(), &domain.JobDescription{}); err == nil {
		t.Error("expected error for empty job description")
	}
}

func TestDetermineSeniority(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Senior Software Engineer", "senior"},
		{"Staff Engineer", "senior"},
		{"Junior Developer", "junior"},
		{"Entry Level Analyst", "junior"},
		{"Software Engineer", "mid"},
	}
	for _, tt := range tests {
		if got := determineSeniority(tt.title); got != tt.want {
			t.Errorf("determineSeniority(%q) = %s, want %s", tt.title, got, tt.want)
		}
	}
}

func TestDetermineRoleFocus(t *testing.T) {
	tests := []struct {
		job  domain.JobDescription
		want string
	}{
		{domain.JobDescription{Title: "Full Stack Developer"}, "full-stack"},
		{domain.JobDescription{Title: "Frontend Engineer"}, "frontend"},
		{domain.JobDescription{Title: "DevOps Engineer"}, "devops"},
		{domain.JobDescription{Title: "Engineer", Description: "api server backend work"}, "backend"},
		{domain.JobDescription{Title: "Engineer", Description: "nothing specific"}, "general"},
	}
	for _, tt := range tests {
		if got := determineRoleFocus(&tt.job); got != tt.want {
			t.Errorf("determineRoleFocus(%q) = %s, want %s", tt.job.Title, got, tt.want)
		}
	}
}
