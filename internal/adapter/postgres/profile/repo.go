// Package profile implements the learner profile repository using PostgreSQL.
package profile

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/lingua-assistant-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

// Repo provides learner profile persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new profile repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getSQL = `
SELECT user_id, display_name, level, native_language, target_language, created_at, updated_at
FROM user_profiles
WHERE user_id = $1`

const upsertSQL = `
INSERT INTO user_profiles (user_id, display_name, level, native_language, target_language, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, now(), now())
ON CONFLICT (user_id) DO UPDATE SET
    display_name    = EXCLUDED.display_name,
    level           = EXCLUDED.level,
    native_language = EXCLUDED.native_language,
    target_language = EXCLUDED.target_language,
    updated_at      = now()
RETURNING user_id, display_name, level, native_language, target_language, created_at, updated_at`

// Get returns the stored profile.
// Returns domain.ErrNotFound if the learner never saved one.
func (r *Repo) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getSQL, userID)
	p, err := scanProfile(row)
	if err != nil {
		return nil, postgres.MapError(err, "user_profile", userID)
	}
	return &p, nil
}

// Upsert creates or replaces the learner's profile.
func (r *Repo) Upsert(ctx context.Context, p domain.UserProfile) (*domain.UserProfile, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, upsertSQL,
		p.UserID, p.DisplayName, string(p.Level), p.NativeLanguage, p.TargetLanguage,
	)
	saved, err := scanProfile(row)
	if err != nil {
		return nil, postgres.MapError(err, "user_profile", p.UserID)
	}
	return &saved, nil
}

func scanProfile(row pgx.Row) (domain.UserProfile, error) {
	var (
		p     domain.UserProfile
		level string
	)
	if err := row.Scan(&p.UserID, &p.DisplayName, &level, &p.NativeLanguage, &p.TargetLanguage, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return domain.UserProfile{}, err
	}
	p.Level = domain.CEFRLevel(level)
	return p, nil
}
