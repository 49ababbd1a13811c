package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Harshitk-cp/flash/internal/domain"
)

// ResumeTailorService rewrites resume sections to emphasize what a target job
// asks for, under guardrails that reject fabrication. Output is a diff
// preview and always requires approval.
type ResumeTailorService struct {
	generation domain.GenerationClient
	guardrails *GuardrailsService
	logger     *zap.Logger
}

func NewResumeTailorService(generation domain.GenerationClient, guardrails *GuardrailsService, logger *zap.Logger) *ResumeTailorService {
	return &ResumeTailorService{
		generation: generation,
		guardrails: guardrails,
		logger:     logger,
	}
}

// Tailor parses the resume into sections, rewrites each one, and keeps the
// original wherever the rewrite fails validation.
func (s *ResumeTailorService) Tailor(ctx context.Context, resumeText string, analysis *domain.JobAnalysis, focusAreas []string) (*domain.TailoredResume, error) {
	sections := parseResumeSections(resumeText)
	if len(sections) == 0 {
		return nil, fmt.Errorf("resume has no recognizable sections")
	}

	var tailored []domain.ResumeSection
	var changes []string

	for _, section := range sections {
		result := s.tailorSection(ctx, section, analysis, focusAreas)
		if result.TailoredContent != "" {
			validation := s.guardrails.ValidateResumeSection(result)
			if !validation.CanProceed || !acceptableLength(section.OriginalContent, result.TailoredContent) {
				s.logger.Warn("tailored section rejected, keeping original",
					zap.String("section", section.SectionType),
				)
				result = section
			}
		}
		tailored = append(tailored, result)
		changes = append(changes, result.Changes...)
	}

	return &domain.TailoredResume{
		JobID:            analysis.JobID,
		Sections:         tailored,
		ChangesSummary:   changesSummary(changes),
		Confidence:       tailoringConfidence(len(changes)),
		RequiresApproval: true,
		TailoredAt:       time.Now().UTC(),
	}, nil
}

func (s *ResumeTailorService) tailorSection(ctx context.Context, section domain.ResumeSection, analysis *domain.JobAnalysis, focusAreas []string) domain.ResumeSection {
	if s.generation == nil {
		return section
	}

	content, err := s.generation.Complete(ctx, []domain.Message{
		{Role: "system", Content: tailorSystemPrompt},
		{Role: "user", Content: buildTailoringPrompt(section, analysis, focusAreas)},
	}, 0.5, 1000)
	if err != nil {
		s.logger.Warn("section tailoring failed, keeping original",
			zap.String("section", section.SectionType),
			zap.Error(err),
		)
		return section
	}

	return domain.ResumeSection{
		SectionType:     section.SectionType,
		OriginalContent: section.OriginalContent,
		TailoredContent: strings.TrimSpace(content),
		Changes:         detectChanges(section.OriginalContent, content),
	}
}

const tailorSystemPrompt = "You are an ethical resume editor. Rephrase existing content only. Never add skills, change dates, or fabricate accomplishments."

func buildTailoringPrompt(section domain.ResumeSection, analysis *domain.JobAnalysis, focusAreas []string) string {
	var b strings.Builder

	b.WriteString("Rewrite the following resume section to better match a job description.\n")
	b.WriteString("\nSTRICT RULES:\n")
	b.WriteString("1. Do not add any skills, technologies, or experiences not already mentioned\n")
	b.WriteString("2. Do not change any dates, company names, or job titles\n")
	b.WriteString("3. Only rephrase existing content to emphasize relevant aspects\n")

	fmt.Fprintf(&b, "\nTARGET JOB:\n- Role: %s\n- Seniority: %s\n", analysis.RoleFocus, analysis.SeniorityLevel)
	if len(analysis.RequiredSkills) > 0 {
		fmt.Fprintf(&b, "- Key Skills: %s\n", strings.Join(capList(analysis.RequiredSkills, 10), ", "))
	}
	if len(analysis.Technologies) > 0 {
		fmt.Fprintf(&b, "- Technologies: %s\n", strings.Join(capList(analysis.Technologies, 10), ", "))
	}

	fmt.Fprintf(&b, "\nRESUME SECTION (%s):\n%s\n", section.SectionType, section.OriginalContent)

	focus := "General optimization"
	if len(focusAreas) > 0 {
		focus = strings.Join(focusAreas, ", ")
	}
	fmt.Fprintf(&b, "\nFOCUS AREAS:\n%s\n", focus)

	b.WriteString("\nTAILORED SECTION:")
	return b.String()
}

var sectionMarkers = []struct {
	sectionType string
	markers     []string
}{
	{"summary", []string{"summary", "objective", "profile"}},
	{"experience", []string{"experience", "work history", "employment"}},
	{"education", []string{"education", "academic"}},
	{"skills", []string{"skills", "technical skills", "technologies"}},
	{"projects", []string{"projects", "portfolio"}},
}

// parseResumeSections splits a plain-text resume on recognizable section
// headers. Lines before the first header are dropped.
func parseResumeSections(content string) []domain.ResumeSection {
	var sections []domain.ResumeSection
	var currentType string
	var currentLines []string

	flush := func() {
		if currentType != "" && len(currentLines) > 0 {
			sections = append(sections, domain.ResumeSection{
				SectionType:     currentType,
				OriginalContent: strings.Join(currentLines, "\n"),
			})
		}
	}

	for _, line := range strings.Split(content, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))

		var headerType string
		for _, m := range sectionMarkers {
			for _, marker := range m.markers {
				if strings.Contains(lower, marker) {
					headerType = m.sectionType
					break
				}
			}
			if headerType != "" {
				break
			}
		}

		if headerType != "" {
			flush()
			currentType = headerType
			currentLines = []string{line}
			continue
		}
		if currentType != "" {
			currentLines = append(currentLines, line)
		}
	}
	flush()

	return sections
}

func detectChanges(original, tailored string) []string {
	originalLines := lineSet(original)
	tailoredLines := lineSet(tailored)

	added, removed := 0, 0
	for l := range tailoredLines {
		if !originalLines[l] {
			added++
		}
	}
	for l := range originalLines {
		if !tailoredLines[l] {
			removed++
		}
	}

	var changes []string
	if added > 0 {
		changes = append(changes, fmt.Sprintf("added %d new lines", added))
	}
	if removed > 0 {
		changes = append(changes, fmt.Sprintf("removed %d lines", removed))
	}
	return changes
}

func lineSet(text string) map[string]bool {
	set := map[string]bool{}
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			set[l] = true
		}
	}
	return set
}

// acceptableLength rejects rewrites that drastically shrink or inflate a
// section, a sign of dropped or invented content.
func acceptableLength(original, tailored string) bool {
	if len(original) == 0 {
		return false
	}
	ratio := float64(len(tailored)) / float64(len(original))
	return ratio >= 0.5 && ratio <= 1.5
}

func tailoringConfidence(changeCount int) domain.ConfidenceLevel {
	switch {
	case changeCount == 0:
		return domain.ConfidenceLow
	case changeCount < 5:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceHigh
	}
}

func changesSummary(changes []string) string {
	if len(changes) == 0 {
		return "No significant changes made to resume."
	}
	return fmt.Sprintf("Made %d improvements to better match job requirements: %s",
		len(changes), strings.Join(capList(changes, 5), "; "))
}

func capList(items []string, limit int) []string {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
