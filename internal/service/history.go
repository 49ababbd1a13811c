package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Harshitk-cp/flash/internal/domain"
)

const defaultHistoryTopK = 3

// HistorySearch retrieves prior approved answers similar to the question.
// Failures never escape this boundary; the caller just sees no history
// evidence.
type HistorySearch struct {
	answers domain.AnswerStore
	embed   domain.EmbeddingClient
	timeout time.Duration
	logger  *zap.Logger
}

func NewHistorySearch(answers domain.AnswerStore, embed domain.EmbeddingClient, timeout time.Duration, logger *zap.Logger) *HistorySearch {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HistorySearch{
		answers: answers,
		embed:   embed,
		timeout: timeout,
		logger:  logger,
	}
}

// Search returns up to topK history sources with clamped relevance scores.
// Embedding or store errors degrade to an empty result.
func (s *HistorySearch) Search(ctx context.Context, profileID uuid.UUID, question string, topK int) []domain.EvidenceSource {
	if s.answers == nil || s.embed == nil {
		return nil
	}
	if topK <= 0 {
		topK = defaultHistoryTopK
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	embedding, err := s.embed.Embed(ctx, question)
	if err != nil {
		s.logger.Warn("history search embedding failed", zap.Error(err))
		return nil
	}

	matches, err := s.answers.FindSimilar(ctx, profileID, embedding, topK)
	if err != nil {
		s.logger.Warn("history similarity search failed", zap.Error(err))
		return nil
	}

	sources := make([]domain.EvidenceSource, 0, len(matches))
	for _, m := range matches {
		if m.Answer == "" {
			continue
		}
		sources = append(sources, domain.NewEvidenceSource(domain.OriginHistory, m.Answer, float64(m.Score)))
	}
	return sources
}
