package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Harshitk-cp/flash/internal/domain"
)

type ApplicationLogStore struct {
	db *pgxpool.Pool
}

func NewApplicationLogStore(db *pgxpool.Pool) *ApplicationLogStore {
	return &ApplicationLogStore{db: db}
}

func (s *ApplicationLogStore) Create(ctx context.Context, l *domain.ApplicationLog) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO application_logs (profile_id, job_id, company, role, answers_count, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		l.ProfileID, l.JobID, l.Company, l.Role, l.AnswersCount, l.Status,
	).Scan(&l.ID, &l.CreatedAt)
}

func (s *ApplicationLogStore) ListByProfile(ctx context.Context, profileID uuid.UUID, limit int) ([]domain.ApplicationLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(ctx,
		`SELECT id, profile_id, job_id, company, role, answers_count, status, created_at
		 FROM application_logs
		 WHERE profile_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		profileID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.ApplicationLog
	for rows.Next() {
		var l domain.ApplicationLog
		if err := rows.Scan(&l.ID, &l.ProfileID, &l.JobID, &l.Company, &l.Role, &l.AnswersCount, &l.Status, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
