package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Harshitk-cp/flash/internal/domain"
	"github.com/Harshitk-cp/flash/internal/embedding"
)

func newTestAggregator(store *mockAnswerStore) *EvidenceAggregator {
	history := NewHistorySearch(store, embedding.NewMockClient(), time.Second, zap.NewNop())
	return NewEvidenceAggregator(history, zap.NewNop())
}

func TestGatherSortedDescending(t *testing.T) {
	store := &mockAnswerStore{results: []domain.AnswerWithScore{
		answerWithScore("history one", 0.7),
		answerWithScore("history two", 0.6),
	}}
	a := newTestAggregator(store)

	profile := &domain.Profile{ID: uuid.New(), Email: "a@b.com"}
	doc := "I answered questions about email systems and email infrastructure."

	sources := a.Gather(context.Background(), "What is your email?", profile, doc)
	if len(sources) == 0 {
		t.Fatal("expected sources")
	}
	if !sort.SliceIsSorted(sources, func(i, j int) bool {
		return sources[i].Relevance > sources[j].Relevance
	}) {
		t.Errorf("sources not sorted by descending relevance: %+v", sources)
	}
	if sources[0].Origin != domain.OriginProfile {
		t.Errorf("top source origin = %s, want profile", sources[0].Origin)
	}
}

func TestGatherTieBreakByOrigin(t *testing.T) {
	sources := []domain.EvidenceSource{
		{Origin: domain.OriginHistory, Content: "h", Relevance: 0.8},
		{Origin: domain.OriginProfile, Content: "p", Relevance: 0.8},
		{Origin: domain.OriginDocument, Content: "d", Relevance: 0.8},
	}
	sortSources(sources)

	wantOrder := []domain.EvidenceOrigin{domain.OriginProfile, domain.OriginDocument, domain.OriginHistory}
	for i, want := range wantOrder {
		if sources[i].Origin != want {
			t.Errorf("position %d: origin = %s, want %s", i, sources[i].Origin, want)
		}
	}
}

func TestGatherTruncatesToFive(t *testing.T) {
	var results []domain.AnswerWithScore
	for i := 0; i < 8; i++ {
		results = append(results, answerWithScore("prior answer", 0.5))
	}
	store := &mockAnswerStore{results: results}
	a := newTestAggregator(store)

	profile := &domain.Profile{ID: uuid.New(), Email: "a@b.com"}
	sources := a.Gather(context.Background(), "What is your email?", profile, "email email email")
	if len(sources) > maxSources {
		t.Errorf("got %d sources, want at most %d", len(sources), maxSources)
	}
}

func TestGatherEmptyIsValid(t *testing.T) {
	a := newTestAggregator(&mockAnswerStore{})

	sources := a.Gather(context.Background(), "Why do you want this role?", &domain.Profile{ID: uuid.New()}, "")
	if len(sources) != 0 {
		t.Errorf("expected empty result, got %+v", sources)
	}
}

func TestGatherHistoryFailureDegrades(t *testing.T) {
	store := &mockAnswerStore{err: errors.New("search unavailable")}
	a := newTestAggregator(store)

	profile := &domain.Profile{ID: uuid.New(), Email: "a@b.com"}
	sources := a.Gather(context.Background(), "What is your email?", profile, "")
	if len(sources) != 1 {
		t.Fatalf("expected the profile source to survive, got %d sources", len(sources))
	}
	if sources[0].Origin != domain.OriginProfile {
		t.Errorf("origin = %s, want profile", sources[0].Origin)
	}
}

func TestGatherWithoutDocument(t *testing.T) {
	a := newTestAggregator(&mockAnswerStore{})

	profile := &domain.Profile{ID: uuid.New(), Email: "a@b.com"}
	sources := a.Gather(context.Background(), "What is your email?", profile, "")
	for _, s := range sources {
		if s.Origin == domain.OriginDocument {
			t.Errorf("document source produced without a document: %+v", s)
		}
	}
}
