package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Harshitk-cp/flash/internal/domain"
)

// ApplicationService fills out a whole application form by composing an
// answer for every field, running the guardrails over each, and preparing the
// result for human review.
type ApplicationService struct {
	aggregator *EvidenceAggregator
	composer   *AnswerComposer
	guardrails *GuardrailsService
	logs       domain.ApplicationLogStore
	logger     *zap.Logger
}

func NewApplicationService(aggregator *EvidenceAggregator, composer *AnswerComposer, guardrails *GuardrailsService, logs domain.ApplicationLogStore, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{
		aggregator: aggregator,
		composer:   composer,
		guardrails: guardrails,
		logs:       logs,
		logger:     logger,
	}
}

// Fill answers every form field in order. Individual field failures become
// warnings rather than aborting the application; the overall status reflects
// whether anything still needs review.
func (s *ApplicationService) Fill(ctx context.Context, job *domain.JobDescription, fields []domain.FormField, profile *domain.Profile, resumeText string) (*domain.ApplicationReview, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("application has no form fields")
	}
	if profile == nil {
		return nil, fmt.Errorf("profile is required")
	}

	jobID := JobID(job)
	review := &domain.ApplicationReview{
		ApplicationID: uuid.NewString(),
		JobID:         jobID,
		Company:       job.Company,
		Role:          job.Title,
		Status:        domain.StatusInProgress,
		CreatedAt:     time.Now().UTC(),
	}

	var scoreSum float64
	answered := 0

	for _, field := range fields {
		question := domain.Question{
			Text:      field.Label,
			FieldID:   field.FieldID,
			FieldType: field.FieldType,
		}

		sources := s.aggregator.Gather(ctx, question.Text, profile, resumeText)
		answer, err := s.composer.Compose(ctx, question, sources, profile)
		if err != nil {
			s.logger.Warn("field could not be answered",
				zap.String("field_id", field.FieldID),
				zap.Error(err),
			)
			review.Warnings = append(review.Warnings, fmt.Sprintf("field %q skipped: %v", field.Label, err))
			continue
		}

		validation := s.guardrails.ValidateAnswer(answer)
		if !validation.CanProceed {
			review.Warnings = append(review.Warnings, fmt.Sprintf("field %q blocked by guardrails", field.Label))
			answer.RequiresReview = true
		}

		origin := domain.EvidenceOrigin("")
		if len(answer.Sources) > 0 {
			origin = answer.Sources[0].Origin
		}

		review.Answers = append(review.Answers, *answer)
		review.FilledFields = append(review.FilledFields, domain.FilledField{
			FieldID:    field.FieldID,
			FieldName:  field.FieldName,
			Answer:     answer.Text,
			Confidence: answer.ConfidenceLevel,
			Source:     origin,
		})

		scoreSum += answer.ConfidenceScore
		answered++
	}

	if answered > 0 {
		review.OverallConfidence = scoreSum / float64(answered)
	}

	appValidation := s.guardrails.ValidateApplication(review.FilledFields)
	review.ReadyForSubmission = appValidation.CanProceed && !needsReview(review)
	if review.ReadyForSubmission {
		review.Status = domain.StatusPending
	} else {
		review.Status = domain.StatusReviewRequired
	}

	s.logApplication(ctx, profile.ID, review)
	return review, nil
}

func needsReview(review *domain.ApplicationReview) bool {
	for _, a := range review.Answers {
		if a.RequiresReview {
			return true
		}
	}
	return len(review.Warnings) > 0
}

// logApplication records the application for analytics. Failures are logged
// and swallowed; the review has already been assembled.
func (s *ApplicationService) logApplication(ctx context.Context, profileID uuid.UUID, review *domain.ApplicationReview) {
	if s.logs == nil {
		return
	}
	entry := &domain.ApplicationLog{
		ProfileID:    profileID,
		JobID:        review.JobID,
		Company:      review.Company,
		Role:         review.Role,
		AnswersCount: len(review.Answers),
		Status:       review.Status,
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		s.logger.Warn("application log write failed", zap.Error(err))
	}
}

// History lists past applications for a profile.
func (s *ApplicationService) History(ctx context.Context, profileID uuid.UUID, limit int) ([]domain.ApplicationLog, error) {
	if s.logs == nil {
		return nil, nil
	}
	return s.logs.ListByProfile(ctx, profileID, limit)
}
