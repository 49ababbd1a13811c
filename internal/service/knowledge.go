package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Harshitk-cp/flash/internal/domain"
)

// KnowledgeService persists approved answers so future questions can reuse
// them through history search.
type KnowledgeService struct {
	answers domain.AnswerStore
	embed   domain.EmbeddingClient
	logger  *zap.Logger
}

func NewKnowledgeService(answers domain.AnswerStore, embed domain.EmbeddingClient, logger *zap.Logger) *KnowledgeService {
	return &KnowledgeService{
		answers: answers,
		embed:   embed,
		logger:  logger,
	}
}

// StoreApproved embeds the question and persists the approved pair. Answers
// at the low band are not worth learning from and are skipped. The caller's
// already-returned answer is never affected by failures here.
func (s *KnowledgeService) StoreApproved(ctx context.Context, profileID uuid.UUID, answer *domain.ComposedAnswer, metadata map[string]any) error {
	if answer.ConfidenceLevel == domain.ConfidenceLow {
		s.logger.Debug("skipping low-confidence answer", zap.String("question", answer.Question))
		return nil
	}

	embedding, err := s.embed.Embed(ctx, answer.Question)
	if err != nil {
		return fmt.Errorf("embed approved question: %w", err)
	}

	approved := &domain.ApprovedAnswer{
		ProfileID: profileID,
		Question:  answer.Question,
		Answer:    answer.Text,
		Embedding: embedding,
		Metadata:  metadata,
	}
	if err := s.answers.Create(ctx, approved); err != nil {
		return fmt.Errorf("store approved answer: %w", err)
	}

	s.logger.Info("approved answer stored",
		zap.String("answer_id", approved.ID.String()),
		zap.String("profile_id", profileID.String()),
	)
	return nil
}
