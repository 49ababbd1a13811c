package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerationClient is the external text-completion provider. Implementations
// must return a non-nil error on failure rather than an empty string so
// callers can apply their fallback policy.
type GenerationClient interface {
	Complete(ctx context.Context, messages []Message, temperature float32, maxTokens int) (string, error)
}

type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ApprovedAnswer is a prior question/answer pair accepted by the user and kept
// for retrieval.
type ApprovedAnswer struct {
	ID        uuid.UUID      `json:"id"`
	ProfileID uuid.UUID      `json:"profile_id"`
	Question  string         `json:"question"`
	Answer    string         `json:"answer"`
	Embedding []float32      `json:"-"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// AnswerWithScore carries the raw similarity score from the search backend.
// The score is monotonic with similarity but not guaranteed to be in [0, 1].
type AnswerWithScore struct {
	ApprovedAnswer
	Score float32 `json:"score"`
}

type ProfileStore interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]Profile, error)
}

type AnswerStore interface {
	Create(ctx context.Context, a *ApprovedAnswer) error
	FindSimilar(ctx context.Context, profileID uuid.UUID, embedding []float32, topK int) ([]AnswerWithScore, error)
}

type ApplicationLogStore interface {
	Create(ctx context.Context, l *ApplicationLog) error
	ListByProfile(ctx context.Context, profileID uuid.UUID, limit int) ([]ApplicationLog, error)
}
