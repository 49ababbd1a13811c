package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Harshitk-cp/flash/internal/domain"
)

// ErrQuestionEmpty is returned when a compose call carries no question text.
// This is the one input condition with no meaningful fallback.
var ErrQuestionEmpty = errors.New("question text is empty")

const (
	// shortCircuitThreshold: a source above this is copied out verbatim
	// without a generation call.
	shortCircuitThreshold = 0.9

	// generatedConfidenceCeiling caps confidence for any generated answer.
	generatedConfidenceCeiling = 0.85

	// noEvidenceConfidenceCap caps confidence when nothing grounded the
	// answer, forcing the review gate.
	noEvidenceConfidenceCap = 0.4

	// generationFailureCap applies when the provider itself failed.
	generationFailureCap = 0.3

	// sourceContentBudget truncates each source's content in the prompt.
	sourceContentBudget = 800

	maxAlternatives = 3

	generationTemperature = 0.4
	generationMaxTokens   = 300
)

const fallbackAnswer = "Unable to answer this question with the available information."

// AnswerComposer turns a ranked evidence list into a final answer. It is a
// single-pass decision pipeline with three exit points: short-circuit,
// no-evidence, and generated.
type AnswerComposer struct {
	generation domain.GenerationClient
	timeout    time.Duration
	logger     *zap.Logger
}

func NewAnswerComposer(generation domain.GenerationClient, timeout time.Duration, logger *zap.Logger) *AnswerComposer {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &AnswerComposer{
		generation: generation,
		timeout:    timeout,
		logger:     logger,
	}
}

// Compose produces a ComposedAnswer for the question. Provider failures never
// propagate; they surface as lowered confidence and a set review flag. The
// only error returned is for invalid input.
func (c *AnswerComposer) Compose(ctx context.Context, question domain.Question, sources []domain.EvidenceSource, profile *domain.Profile) (*domain.ComposedAnswer, error) {
	if strings.TrimSpace(question.Text) == "" {
		return nil, ErrQuestionEmpty
	}

	// A near-exact structured match needs no paraphrase.
	if len(sources) > 0 && sources[0].Relevance > shortCircuitThreshold {
		return c.finish(question, sources[0].Content, sources[0].Relevance, sources), nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if len(sources) == 0 {
		return c.composeWithoutEvidence(ctx, question, profile)
	}

	text, err := c.generate(ctx, buildAnswerPrompt(question, sources, profile))
	if err != nil {
		c.logger.Warn("answer generation failed",
			zap.String("question", question.Text),
			zap.Error(err),
		)
		answer := c.finish(question, fallbackAnswer, generationFailureCap, sources)
		c.attachAlternatives(ctx, question, sources, answer)
		return answer, nil
	}

	score := min(averageRelevance(sources), generatedConfidenceCeiling)
	answer := c.finish(question, text, score, sources)
	c.attachAlternatives(ctx, question, sources, answer)
	return answer, nil
}

// composeWithoutEvidence still attempts generation from the profile summary
// alone, with an explicit instruction to answer conservatively. Whatever
// comes back is never allowed to look authoritative.
func (c *AnswerComposer) composeWithoutEvidence(ctx context.Context, question domain.Question, profile *domain.Profile) (*domain.ComposedAnswer, error) {
	text, err := c.generate(ctx, buildAnswerPrompt(question, nil, profile))
	score := noEvidenceConfidenceCap
	if err != nil {
		c.logger.Warn("ungrounded generation failed",
			zap.String("question", question.Text),
			zap.Error(err),
		)
		text = fallbackAnswer
		score = generationFailureCap
	}

	answer := c.finish(question, text, score, nil)
	c.attachAlternatives(ctx, question, nil, answer)
	return answer, nil
}

// finish assembles the output with the score, level and review flag kept in
// agreement under the single band mapping.
func (c *AnswerComposer) finish(question domain.Question, text string, score float64, sources []domain.EvidenceSource) *domain.ComposedAnswer {
	score = domain.ClampScore(score)
	level := domain.ClassifyConfidence(score)
	return &domain.ComposedAnswer{
		FieldID:         question.FieldID,
		Question:        question.Text,
		Text:            text,
		ConfidenceScore: score,
		ConfidenceLevel: level,
		RequiresReview:  level.RequiresReview(),
		Sources:         sources,
		ComposedAt:      time.Now().UTC(),
	}
}

func (c *AnswerComposer) generate(ctx context.Context, prompt string) (string, error) {
	if c.generation == nil {
		return "", fmt.Errorf("no generation client configured")
	}
	messages := []domain.Message{
		{Role: "system", Content: answerSystemPrompt},
		{Role: "user", Content: prompt},
	}
	return c.generation.Complete(ctx, messages, generationTemperature, generationMaxTokens)
}

// attachAlternatives adds up to three alternative phrasings when the answer
// needs review. This is best effort; failures leave the answer untouched.
func (c *AnswerComposer) attachAlternatives(ctx context.Context, question domain.Question, sources []domain.EvidenceSource, answer *domain.ComposedAnswer) {
	if !answer.RequiresReview || c.generation == nil {
		return
	}

	contextText := "Limited context available"
	if len(sources) > 0 {
		contextText = truncate(sources[0].Content, sourceContentBudget)
	}

	prompt := fmt.Sprintf(
		"Generate %d alternative ways to answer this job application question.\n\nQUESTION: %s\n\nCONTEXT:\n%s\n\nProvide %d different professional answers, each on its own line.",
		maxAlternatives, question.Text, contextText, maxAlternatives,
	)

	response, err := c.generation.Complete(ctx, []domain.Message{
		{Role: "system", Content: answerSystemPrompt},
		{Role: "user", Content: prompt},
	}, generationTemperature, generationMaxTokens)
	if err != nil {
		c.logger.Debug("alternative generation failed", zap.Error(err))
		return
	}

	var alternatives []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		alternatives = append(alternatives, line)
		if len(alternatives) == maxAlternatives {
			break
		}
	}
	answer.Alternatives = alternatives
}

const answerSystemPrompt = "You are helping a user fill out a job application. Answer truthfully and professionally based only on the provided context. Never fabricate information."

// buildAnswerPrompt assembles the bounded context window: the question, the
// enumerated sources with individually truncated content, and a compact
// profile summary.
func buildAnswerPrompt(question domain.Question, sources []domain.EvidenceSource, profile *domain.Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "QUESTION:\n%s\n", question.Text)
	if question.FieldType != "" {
		fmt.Fprintf(&b, "\nFIELD TYPE: %s\n", question.FieldType)
	}

	if len(sources) > 0 {
		b.WriteString("\nAVAILABLE CONTEXT:\n")
		for i, src := range sources {
			fmt.Fprintf(&b, "\n%d. From %s (relevance: %.2f):\n%s\n",
				i+1, src.Origin, src.Relevance, truncate(src.Content, sourceContentBudget))
		}
	} else {
		b.WriteString("\nAVAILABLE CONTEXT:\nNone. Answer conservatively from the profile summary, or state the information is unavailable.\n")
	}

	if profile != nil {
		b.WriteString("\nUSER PROFILE:\n")
		fmt.Fprintf(&b, "- Name: %s\n", profile.FullName)
		if profile.CurrentTitle != "" {
			fmt.Fprintf(&b, "- Current Title: %s\n", profile.CurrentTitle)
		}
		fmt.Fprintf(&b, "- Experience: %d years\n", profile.YearsOfExperience)
		if len(profile.Skills) > 0 {
			skills := profile.Skills
			if len(skills) > 10 {
				skills = skills[:10]
			}
			fmt.Fprintf(&b, "- Skills: %s\n", strings.Join(skills, ", "))
		}
	}

	b.WriteString("\nINSTRUCTIONS:\n")
	b.WriteString("1. Answer truthfully based only on the provided context\n")
	b.WriteString("2. Do not fabricate information\n")
	b.WriteString("3. Keep the answer concise and professional (2-3 sentences for essay questions)\n")
	b.WriteString("4. If the question asks for specific data (email, phone), provide it directly\n")
	b.WriteString("\nANSWER:")

	return b.String()
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

func averageRelevance(sources []domain.EvidenceSource) float64 {
	if len(sources) == 0 {
		return 0
	}
	var sum float64
	for _, s := range sources {
		sum += s.Relevance
	}
	return sum / float64(len(sources))
}
