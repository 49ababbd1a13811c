package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Harshitk-cp/flash/internal/domain"
)

type ProfileStore struct {
	db *pgxpool.Pool
}

func NewProfileStore(db *pgxpool.Pool) *ProfileStore {
	return &ProfileStore{db: db}
}

func (s *ProfileStore) Create(ctx context.Context, p *domain.Profile) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO profiles (full_name, email, phone, location, linkedin_url, github_url, portfolio_url, current_title, years_of_experience, skills, preferred_roles, work_authorization)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at, updated_at`,
		p.FullName, p.Email, p.Phone, p.Location, p.LinkedInURL, p.GitHubURL, p.PortfolioURL, p.CurrentTitle, p.YearsOfExperience, p.Skills, p.PreferredRoles, p.WorkAuthorization,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (s *ProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	p := &domain.Profile{}
	err := s.db.QueryRow(ctx,
		`SELECT id, full_name, email, phone, location, linkedin_url, github_url, portfolio_url, current_title, years_of_experience, skills, preferred_roles, work_authorization, created_at, updated_at
		 FROM profiles WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.Location, &p.LinkedInURL, &p.GitHubURL, &p.PortfolioURL, &p.CurrentTitle, &p.YearsOfExperience, &p.Skills, &p.PreferredRoles, &p.WorkAuthorization, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *ProfileStore) Update(ctx context.Context, p *domain.Profile) error {
	err := s.db.QueryRow(ctx,
		`UPDATE profiles
		 SET full_name = $2, email = $3, phone = $4, location = $5, linkedin_url = $6, github_url = $7, portfolio_url = $8, current_title = $9, years_of_experience = $10, skills = $11, preferred_roles = $12, work_authorization = $13, updated_at = NOW()
		 WHERE id = $1
		 RETURNING updated_at`,
		p.ID, p.FullName, p.Email, p.Phone, p.Location, p.LinkedInURL, p.GitHubURL, p.PortfolioURL, p.CurrentTitle, p.YearsOfExperience, p.Skills, p.PreferredRoles, p.WorkAuthorization,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *ProfileStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM profiles WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProfileStore) List(ctx context.Context) ([]domain.Profile, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, full_name, email, phone, location, linkedin_url, github_url, portfolio_url, current_title, years_of_experience, skills, preferred_roles, work_authorization, created_at, updated_at
		 FROM profiles
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.Location, &p.LinkedInURL, &p.GitHubURL, &p.PortfolioURL, &p.CurrentTitle, &p.YearsOfExperience, &p.Skills, &p.PreferredRoles, &p.WorkAuthorization, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
