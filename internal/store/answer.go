package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/Harshitk-cp/flash/internal/domain"
)

// AnswerStore persists approved answers with their question embeddings so
// future questions can be matched against them by vector similarity.
type AnswerStore struct {
	db *pgxpool.Pool
}

func NewAnswerStore(db *pgxpool.Pool) *AnswerStore {
	return &AnswerStore{db: db}
}

func (s *AnswerStore) Create(ctx context.Context, a *domain.ApprovedAnswer) error {
	var embedding *pgvector.Vector
	if len(a.Embedding) > 0 {
		v := pgvector.NewVector(a.Embedding)
		embedding = &v
	}

	return s.db.QueryRow(ctx,
		`INSERT INTO approved_answers (profile_id, question, answer, embedding, metadata)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		a.ProfileID, a.Question, a.Answer, embedding, a.Metadata,
	).Scan(&a.ID, &a.CreatedAt)
}

func (s *AnswerStore) FindSimilar(ctx context.Context, profileID uuid.UUID, embedding []float32, topK int) ([]domain.AnswerWithScore, error) {
	if topK <= 0 {
		topK = 3
	}

	vec := pgvector.NewVector(embedding)

	rows, err := s.db.Query(ctx,
		`SELECT id, profile_id, question, answer, metadata, created_at,
		        1 - (embedding <=> $2) AS score
		 FROM approved_answers
		 WHERE profile_id = $1 AND embedding IS NOT NULL
		 ORDER BY embedding <=> $2
		 LIMIT $3`,
		profileID, vec, topK,
	)
	if err != nil {
		return nil, fmt.Errorf("similarity query: %w", err)
	}
	defer rows.Close()

	var results []domain.AnswerWithScore
	for rows.Next() {
		var as domain.AnswerWithScore
		if err := rows.Scan(&as.ID, &as.ProfileID, &as.Question, &as.Answer, &as.Metadata, &as.CreatedAt, &as.Score); err != nil {
			return nil, fmt.Errorf("scan similarity row: %w", err)
		}
		results = append(results, as)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("similarity rows: %w", err)
	}

	return results, nil
}
