package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Harshitk-cp/flash/internal/domain"
	"github.com/Harshitk-cp/flash/internal/embedding"
	"github.com/Harshitk-cp/flash/internal/llm"
)

type mockApplicationLogStore struct {
	created []*domain.ApplicationLog
	err     error
}

func (m *mockApplicationLogStore) Create(ctx context.Context, l *domain.ApplicationLog) error {
	if m.err != nil {
		return m.err
	}
	l.ID = uuid.New()
	m.created = append(m.created, l)
	return nil
}

func (m *mockApplicationLogStore) ListByProfile(ctx context.Context, profileID uuid.UUID, limit int) ([]domain.ApplicationLog, error) {
	if m.err != nil {
		return nil, m.err
	}
	var logs []domain.ApplicationLog
	for _, l := range m.created {
		if l.ProfileID == profileID {
			logs = append(logs, *l)
		}
	}
	return logs, nil
}

func newTestApplicationService(client *llm.MockClient, logs *mockApplicationLogStore) *ApplicationService {
	history := NewHistorySearch(&mockAnswerStore{}, embedding.NewMockClient(), time.Second, zap.NewNop())
	aggregator := NewEvidenceAggregator(history, zap.NewNop())
	composer := NewAnswerComposer(client, time.Second, zap.NewNop())
	return NewApplicationService(aggregator, composer, NewGuardrailsService(), logs, zap.NewNop())
}

func testJob() *domain.JobDescription {
	return &domain.JobDescription{
		Title:   "Backend Engineer",
		Company: "Acme",
		URL:     "https://jobs.example.com/1",
	}
}

func TestFillAnswersEveryField(t *testing.T) {
	logs := &mockApplicationLogStore{}
	s := newTestApplicationService(llm.NewMockClient(), logs)

	profile := &domain.Profile{
		ID:       uuid.New(),
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
	}
	fields := []domain.FormField{
		{FieldID: "email", Label: "What is your email?", FieldType: domain.FieldTypeEmail},
		{FieldID: "name", Label: "What is your full name?", FieldType: domain.FieldTypeText},
	}

	review, err := s.Fill(context.Background(), testJob(), fields, profile, "")
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if len(review.FilledFields) != 2 {
		t.Fatalf("got %d filled fields, want 2", len(review.FilledFields))
	}
	if review.FilledFields[0].Answer != "ada@example.com" {
		t.Errorf("email field = %q, want profile email", review.FilledFields[0].Answer)
	}
	if review.FilledFields[1].Answer != "Ada Lovelace" {
		t.Errorf("name field = %q, want profile name", review.FilledFields[1].Answer)
	}
	if review.OverallConfidence <= 0 {
		t.Error("overall confidence should be positive")
	}
	if len(logs.created) != 1 {
		t.Errorf("expected one application log entry, got %d", len(logs.created))
	}
}

func TestFillRequiresFields(t *testing.T) {
	s := newTestApplicationService(llm.NewMockClient(), &mockApplicationLogStore{})

	if _, err := s.Fill(context.Background(), testJob(), nil, &domain.Profile{ID: uuid.New()}, ""); err == nil {
		t.Error("expected error for empty field list")
	}
}

func TestFillRequiresProfile(t *testing.T) {
	s := newTestApplicationService(llm.NewMockClient(), &mockApplicationLogStore{})
	fields := []domain.FormField{{FieldID: "f", Label: "Anything"}}

	if _, err := s.Fill(context.Background(), testJob(), fields, nil, ""); err == nil {
		t.Error("expected error for missing profile")
	}
}

func TestFillLowConfidenceRoutesToReview(t *testing.T) {
	client := llm.NewMockClient()
	client.CompleteResponse = "A generated guess about the question."
	logs := &mockApplicationLogStore{}
	s := newTestApplicationService(client, logs)

	// No profile data matches, no document, no history: every answer rides
	// the no-evidence path and is capped into the low band.
	profile := &domain.Profile{ID: uuid.New()}
	fields := []domain.FormField{
		{FieldID: "essay", Label: "Why do you want to join?", FieldType: domain.FieldTypeTextarea},
	}

	review, err := s.Fill(context.Background(), testJob(), fields, profile, "")
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if review.Status != domain.StatusReviewRequired {
		t.Errorf("status = %s, want review_required", review.Status)
	}
	if review.ReadyForSubmission {
		t.Error("low-confidence applications are not ready for submission")
	}
}

func TestFillLogFailureDoesNotAbort(t *testing.T) {
	logs := &mockApplicationLogStore{err: context.DeadlineExceeded}
	s := newTestApplicationService(llm.NewMockClient(), logs)

	profile := &domain.Profile{ID: uuid.New(), Email: "ada@example.com"}
	fields := []domain.FormField{
		{FieldID: "email", Label: "What is your email?", FieldType: domain.FieldTypeEmail},
	}

	if _, err := s.Fill(context.Background(), testJob(), fields, profile, ""); err != nil {
		t.Errorf("log failure must not fail the fill: %v", err)
	}
}
