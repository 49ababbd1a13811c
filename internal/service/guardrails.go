package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Harshitk-cp/flash/internal/domain"
)

// GuardrailsService enforces the safety rules that keep generated content
// truthful: no fabricated skills, no altered dates, no prohibited content,
// extra caution on sensitive questions.
type GuardrailsService struct {
	prohibited        []*regexp.Regexp
	sensitiveKeywords []string
}

func NewGuardrailsService() *GuardrailsService {
	prohibited := []*regexp.Regexp{
		regexp.MustCompile(`captcha`),
		regexp.MustCompile(`bypass.*security`),
		regexp.MustCompile(`fake.*certification`),
		regexp.MustCompile(`forge.*document`),
	}
	return &GuardrailsService{
		prohibited: prohibited,
		sensitiveKeywords: []string{
			"authorization", "visa", "citizen", "eligible",
			"security clearance", "criminal", "disability",
		},
	}
}

// ValidateAnswer checks a composed answer before it is surfaced. Critical
// failures block; warnings route to review.
func (g *GuardrailsService) ValidateAnswer(answer *domain.ComposedAnswer) domain.ValidationResult {
	checks := []domain.GuardrailCheck{
		g.checkContentSafety(answer.Text),
		g.checkFactConsistency(answer),
		g.checkSensitiveQuestion(answer),
		g.checkAnswerQuality(answer.Text),
	}

	result := summarize(checks)
	result.CanProceed = result.CanProceed && answer.ConfidenceScore > generationFailureCap
	result.RequiresReview = result.RequiresReview || answer.ConfidenceScore < 0.6
	return result
}

// ValidateResumeSection compares a tailored section against its original.
func (g *GuardrailsService) ValidateResumeSection(section domain.ResumeSection) domain.ValidationResult {
	checks := []domain.GuardrailCheck{
		g.checkNoNewSkills(section),
		g.checkDatesUnchanged(section),
		g.checkSuspiciousContent(section),
	}
	return summarize(checks)
}

// ValidateApplication is the final gate before an application is handed back
// for approval.
func (g *GuardrailsService) ValidateApplication(fields []domain.FilledField) domain.ValidationResult {
	checks := []domain.GuardrailCheck{
		{
			Name:     "completeness",
			Passed:   len(fields) > 0,
			Severity: domain.SeverityCritical,
			Message:  "application has fields filled",
		},
	}

	lowConfidence := 0
	for _, f := range fields {
		if f.Confidence == domain.ConfidenceLow {
			lowConfidence++
		}
	}
	checks = append(checks, domain.GuardrailCheck{
		Name:     "confidence",
		Passed:   lowConfidence == 0,
		Severity: domain.SeverityWarning,
		Message:  fmt.Sprintf("%d fields have low confidence", lowConfidence),
	})

	return summarize(checks)
}

func summarize(checks []domain.GuardrailCheck) domain.ValidationResult {
	criticalFailures := 0
	warnings := 0
	for _, c := range checks {
		if c.Passed {
			continue
		}
		switch c.Severity {
		case domain.SeverityCritical:
			criticalFailures++
		case domain.SeverityWarning:
			warnings++
		}
	}
	return domain.ValidationResult{
		Valid:          criticalFailures == 0,
		Checks:         checks,
		CanProceed:     criticalFailures == 0,
		RequiresReview: warnings > 0,
	}
}

func (g *GuardrailsService) checkContentSafety(text string) domain.GuardrailCheck {
	lower := strings.ToLower(text)
	for _, word := range []string{"hate", "discriminate", "illegal", "fake", "lie"} {
		if strings.Contains(lower, word) {
			return domain.GuardrailCheck{
				Name:     "content_safety",
				Passed:   false,
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("potentially unprofessional language: %s", word),
			}
		}
	}
	return domain.GuardrailCheck{
		Name:     "content_safety",
		Passed:   true,
		Severity: domain.SeverityCritical,
		Message:  "content is safe and professional",
	}
}

// checkFactConsistency requires that enough of the answer's words appear in
// its sources. With no sources there is nothing to verify.
func (g *GuardrailsService) checkFactConsistency(answer *domain.ComposedAnswer) domain.GuardrailCheck {
	if len(answer.Sources) == 0 {
		return domain.GuardrailCheck{
			Name:     "fact_consistency",
			Passed:   true,
			Severity: domain.SeverityInfo,
			Message:  "no sources available to verify",
		}
	}

	sourceWords := map[string]bool{}
	for _, s := range answer.Sources {
		for _, w := range strings.Fields(strings.ToLower(s.Content)) {
			sourceWords[w] = true
		}
	}

	answerWords := strings.Fields(strings.ToLower(answer.Text))
	if len(answerWords) == 0 {
		return domain.GuardrailCheck{
			Name:     "fact_consistency",
			Passed:   false,
			Severity: domain.SeverityWarning,
			Message:  "answer is empty",
		}
	}

	overlap := 0
	for _, w := range answerWords {
		if sourceWords[w] {
			overlap++
		}
	}
	ratio := float64(overlap) / float64(len(answerWords))

	return domain.GuardrailCheck{
		Name:     "fact_consistency",
		Passed:   ratio > 0.3,
		Severity: domain.SeverityWarning,
		Message:  fmt.Sprintf("answer word overlap with sources: %.0f%%", ratio*100),
	}
}

func (g *GuardrailsService) checkSensitiveQuestion(answer *domain.ComposedAnswer) domain.GuardrailCheck {
	lower := strings.ToLower(answer.Question)
	for _, kw := range g.sensitiveKeywords {
		if strings.Contains(lower, kw) && answer.ConfidenceScore < 0.7 {
			return domain.GuardrailCheck{
				Name:     "sensitive_question",
				Passed:   false,
				Severity: domain.SeverityWarning,
				Message:  "sensitive question requires higher confidence or manual review",
			}
		}
	}
	return domain.GuardrailCheck{
		Name:     "sensitive_question",
		Passed:   true,
		Severity: domain.SeverityInfo,
		Message:  "question handled appropriately",
	}
}

func (g *GuardrailsService) checkAnswerQuality(text string) domain.GuardrailCheck {
	words := len(strings.Fields(text))
	switch {
	case words < 2:
		return domain.GuardrailCheck{
			Name:     "answer_quality",
			Passed:   false,
			Severity: domain.SeverityWarning,
			Message:  "answer is too short",
		}
	case words > 200:
		return domain.GuardrailCheck{
			Name:     "answer_quality",
			Passed:   false,
			Severity: domain.SeverityWarning,
			Message:  "answer is too long",
		}
	}
	return domain.GuardrailCheck{
		Name:     "answer_quality",
		Passed:   true,
		Severity: domain.SeverityInfo,
		Message:  "answer quality is acceptable",
	}
}

// checkNoNewSkills flags skill-like words present in the tailored content but
// absent from the original.
func (g *GuardrailsService) checkNoNewSkills(section domain.ResumeSection) domain.GuardrailCheck {
	if section.TailoredContent == "" {
		return domain.GuardrailCheck{
			Name:     "no_new_skills",
			Passed:   true,
			Severity: domain.SeverityCritical,
			Message:  "no content to validate",
		}
	}

	original := skillKeywords(section.OriginalContent)
	var added []string
	for kw := range skillKeywords(section.TailoredContent) {
		if !original[kw] {
			added = append(added, kw)
		}
	}

	if len(added) > 0 {
		return domain.GuardrailCheck{
			Name:     "no_new_skills",
			Passed:   false,
			Severity: domain.SeverityCritical,
			Message:  fmt.Sprintf("found new skills: %s", strings.Join(added, ", ")),
		}
	}
	return domain.GuardrailCheck{
		Name:     "no_new_skills",
		Passed:   true,
		Severity: domain.SeverityCritical,
		Message:  "no new skills added",
	}
}

var datePattern = regexp.MustCompile(`(?i)\b(?:(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* )?\d{4}\b`)

func (g *GuardrailsService) checkDatesUnchanged(section domain.ResumeSection) domain.GuardrailCheck {
	if section.TailoredContent == "" {
		return domain.GuardrailCheck{
			Name:     "dates_unchanged",
			Passed:   true,
			Severity: domain.SeverityCritical,
			Message:  "no content to validate",
		}
	}

	originalDates := dateSet(section.OriginalContent)
	tailoredDates := dateSet(section.TailoredContent)

	if !equalSets(originalDates, tailoredDates) {
		return domain.GuardrailCheck{
			Name:     "dates_unchanged",
			Passed:   false,
			Severity: domain.SeverityCritical,
			Message:  "dates were modified",
		}
	}
	return domain.GuardrailCheck{
		Name:     "dates_unchanged",
		Passed:   true,
		Severity: domain.SeverityCritical,
		Message:  "dates unchanged",
	}
}

func (g *GuardrailsService) checkSuspiciousContent(section domain.ResumeSection) domain.GuardrailCheck {
	content := section.TailoredContent
	if content == "" {
		content = section.OriginalContent
	}
	lower := strings.ToLower(content)

	for _, pattern := range g.prohibited {
		if pattern.MatchString(lower) {
			return domain.GuardrailCheck{
				Name:     "suspicious_content",
				Passed:   false,
				Severity: domain.SeverityCritical,
				Message:  fmt.Sprintf("prohibited pattern detected: %s", pattern.String()),
			}
		}
	}
	return domain.GuardrailCheck{
		Name:     "suspicious_content",
		Passed:   true,
		Severity: domain.SeverityCritical,
		Message:  "no suspicious content detected",
	}
}

func skillKeywords(text string) map[string]bool {
	keywords := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if len(w) > 4 && isAlpha(w) {
			keywords[w] = true
		}
	}
	return keywords
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func dateSet(text string) map[string]bool {
	dates := map[string]bool{}
	for _, m := range datePattern.FindAllString(text, -1) {
		dates[strings.ToLower(m)] = true
	}
	return dates
}

func equalSets(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
