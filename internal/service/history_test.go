package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Harshitk-cp/flash/internal/domain"
	"github.com/Harshitk-cp/flash/internal/embedding"
)

// mockAnswerStore is a configurable in-memory AnswerStore.
type mockAnswerStore struct {
	results []domain.AnswerWithScore
	err     error

	created     []*domain.ApprovedAnswer
	findCalls   int
	lastTopK    int
	lastProfile uuid.UUID
}

func (m *mockAnswerStore) Create(ctx context.Context, a *domain.ApprovedAnswer) error {
	if m.err != nil {
		return m.err
	}
	a.ID = uuid.New()
	m.created = append(m.created, a)
	return nil
}

func (m *mockAnswerStore) FindSimilar(ctx context.Context, profileID uuid.UUID, embedding []float32, topK int) ([]domain.AnswerWithScore, error) {
	m.findCalls++
	m.lastTopK = topK
	m.lastProfile = profileID
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func answerWithScore(text string, score float32) domain.AnswerWithScore {
	return domain.AnswerWithScore{
		ApprovedAnswer: domain.ApprovedAnswer{ID: uuid.New(), Answer: text},
		Score:          score,
	}
}

func TestHistorySearchClampsScores(t *testing.T) {
	store := &mockAnswerStore{results: []domain.AnswerWithScore{
		answerWithScore("first", 1.3),
		answerWithScore("second", -0.2),
		answerWithScore("third", 0.72),
	}}
	h := NewHistorySearch(store, embedding.NewMockClient(), time.Second, zap.NewNop())

	sources := h.Search(context.Background(), uuid.New(), "question", 3)
	if len(sources) != 3 {
		t.Fatalf("got %d sources, want 3", len(sources))
	}
	for _, s := range sources {
		if s.Relevance < 0 || s.Relevance > 1 {
			t.Errorf("relevance %f outside [0,1]", s.Relevance)
		}
		if s.Origin != domain.OriginHistory {
			t.Errorf("origin = %s, want history", s.Origin)
		}
	}
	if sources[0].Relevance != 1.0 {
		t.Errorf("over-range score should clamp to 1.0, got %f", sources[0].Relevance)
	}
	if sources[1].Relevance != 0.0 {
		t.Errorf("negative score should clamp to 0.0, got %f", sources[1].Relevance)
	}
}

func TestHistorySearchStoreErrorDegrades(t *testing.T) {
	store := &mockAnswerStore{err: errors.New("connection refused")}
	h := NewHistorySearch(store, embedding.NewMockClient(), time.Second, zap.NewNop())

	sources := h.Search(context.Background(), uuid.New(), "question", 3)
	if len(sources) != 0 {
		t.Errorf("store failure should yield no sources, got %d", len(sources))
	}
}

func TestHistorySearchEmbeddingErrorDegrades(t *testing.T) {
	embed := embedding.NewMockClient()
	embed.EmbedError = errors.New("quota exceeded")
	store := &mockAnswerStore{results: []domain.AnswerWithScore{answerWithScore("x", 0.9)}}
	h := NewHistorySearch(store, embed, time.Second, zap.NewNop())

	sources := h.Search(context.Background(), uuid.New(), "question", 3)
	if len(sources) != 0 {
		t.Errorf("embedding failure should yield no sources, got %d", len(sources))
	}
	if store.findCalls != 0 {
		t.Errorf("store should not be queried after embedding failure, got %d calls", store.findCalls)
	}
}

func TestHistorySearchDefaultTopK(t *testing.T) {
	store := &mockAnswerStore{}
	h := NewHistorySearch(store, embedding.NewMockClient(), time.Second, zap.NewNop())

	h.Search(context.Background(), uuid.New(), "question", 0)
	if store.lastTopK != defaultHistoryTopK {
		t.Errorf("topK = %d, want default %d", store.lastTopK, defaultHistoryTopK)
	}
}

func TestHistorySearchSkipsEmptyAnswers(t *testing.T) {
	store := &mockAnswerStore{results: []domain.AnswerWithScore{
		answerWithScore("", 0.9),
		answerWithScore("kept", 0.8),
	}}
	h := NewHistorySearch(store, embedding.NewMockClient(), time.Second, zap.NewNop())

	sources := h.Search(context.Background(), uuid.New(), "question", 3)
	if len(sources) != 1 || sources[0].Content != "kept" {
		t.Errorf("expected only the non-empty answer, got %+v", sources)
	}
}
