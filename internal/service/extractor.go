package service

import (
	"fmt"
	"strings"

	"github.com/Harshitk-cp/flash/internal/domain"
)

// profileRelevance is the fixed score for a direct structured-field match.
// Structured data is authoritative, so it sits above the short-circuit bar.
const profileRelevance = 0.95

// Document relevance is a floor plus a scaled lexical-overlap score, so a
// perfect keyword match lands at 0.8 and anything weaker stays below it.
const (
	documentRelevanceFloor = 0.5
	documentRelevanceScale = 0.3
)

// profileRule maps a set of question keywords to a profile field. All terms
// must appear in the question for the rule to fire.
type profileRule struct {
	terms []string
	value func(p *domain.Profile) string
}

// Rules are checked in order and the first match wins, so the more specific
// multi-term rules come before single-term ones that could shadow them.
var profileRules = []profileRule{
	{[]string{"email"}, func(p *domain.Profile) string { return p.Email }},
	{[]string{"phone", "number"}, func(p *domain.Profile) string { return p.Phone }},
	{[]string{"linkedin"}, func(p *domain.Profile) string { return p.LinkedInURL }},
	{[]string{"github"}, func(p *domain.Profile) string { return p.GitHubURL }},
	{[]string{"portfolio"}, func(p *domain.Profile) string { return p.PortfolioURL }},
	{[]string{"experience", "years"}, func(p *domain.Profile) string {
		if p.YearsOfExperience <= 0 {
			return ""
		}
		return fmt.Sprintf("%d years", p.YearsOfExperience)
	}},
	{[]string{"skill"}, func(p *domain.Profile) string { return strings.Join(p.Skills, ", ") }},
	{[]string{"authorization"}, func(p *domain.Profile) string { return p.WorkAuthorization }},
	{[]string{"name"}, func(p *domain.Profile) string { return p.FullName }},
	{[]string{"location"}, func(p *domain.Profile) string { return p.Location }},
	{[]string{"title"}, func(p *domain.Profile) string { return p.CurrentTitle }},
}

// ProfileExtractor matches questions against structured profile fields.
type ProfileExtractor struct{}

func NewProfileExtractor() *ProfileExtractor {
	return &ProfileExtractor{}
}

// Extract returns a profile-backed evidence source for the question, or nil
// when no rule fires or the matched field is empty. It never fails.
func (e *ProfileExtractor) Extract(question string, profile *domain.Profile) *domain.EvidenceSource {
	if profile == nil {
		return nil
	}

	q := strings.ToLower(question)
	for _, rule := range profileRules {
		if !matchesAll(q, rule.terms) {
			continue
		}
		value := rule.value(profile)
		if value == "" {
			continue
		}
		src := domain.NewEvidenceSource(domain.OriginProfile, value, profileRelevance)
		return &src
	}
	return nil
}

func matchesAll(question string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(question, t) {
			return false
		}
	}
	return true
}

// DocumentExtractor finds the paragraph of a free-text document with the
// highest lexical overlap with the question.
type DocumentExtractor struct{}

func NewDocumentExtractor() *DocumentExtractor {
	return &DocumentExtractor{}
}

// Extract scores each blank-line-delimited paragraph by the fraction of
// question keywords it contains and returns the best one, or nil if no
// paragraph matches any keyword.
func (e *DocumentExtractor) Extract(question, documentText string) *domain.EvidenceSource {
	keywords := questionKeywords(question)
	if len(keywords) == 0 || strings.TrimSpace(documentText) == "" {
		return nil
	}

	var bestParagraph string
	var bestScore float64

	for _, para := range splitParagraphs(documentText) {
		score := overlapScore(keywords, para)
		if score > bestScore {
			bestScore = score
			bestParagraph = para
		}
	}

	if bestScore == 0 {
		return nil
	}

	relevance := documentRelevanceFloor + documentRelevanceScale*bestScore
	src := domain.NewEvidenceSource(domain.OriginDocument, bestParagraph, relevance)
	return &src
}

// questionKeywords lower-cases, strips punctuation, and drops stop words and
// terms of length <= 2.
func questionKeywords(question string) []string {
	fields := strings.FieldsFunc(strings.ToLower(question), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})

	var keywords []string
	for _, f := range fields {
		if len(f) <= 2 || stopwords[f] {
			continue
		}
		keywords = append(keywords, f)
	}
	return keywords
}

func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, p := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// overlapScore is matched keywords over total keywords, clipped to [0, 1].
func overlapScore(keywords []string, paragraph string) float64 {
	lower := strings.ToLower(paragraph)
	matched := 0
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			matched++
		}
	}
	return domain.ClampScore(float64(matched) / float64(len(keywords)))
}

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "your": true, "all": true, "can": true,
	"had": true, "her": true, "was": true, "one": true, "our": true,
	"out": true, "has": true, "have": true, "what": true, "when": true,
	"where": true, "which": true, "who": true, "why": true, "how": true,
	"with": true, "this": true, "that": true, "from": true, "they": true,
	"will": true, "would": true, "there": true, "their": true, "about": true,
	"please": true, "describe": true, "tell": true, "does": true, "did": true,
	"any": true, "many": true, "much": true, "been": true, "being": true,
}
