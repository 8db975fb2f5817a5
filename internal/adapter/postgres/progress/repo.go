// Package progress implements the word progress repository using PostgreSQL.
// Queries are built with squirrel.
package progress

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/lingua-assistant-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

const table = "word_progress"

var columns = []string{
	"user_id", "language", "word", "status",
	"correct_streak", "wrong_count", "last_seen",
	"created_at", "updated_at",
}

// ErrNoTx is returned by LockWord outside a transaction.
var ErrNoTx = errors.New("word lock requires a transaction")

// Repo provides word progress persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new word progress repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Get returns the record for one word.
// Returns domain.ErrNotFound if the learner never answered it.
func (r *Repo) Get(ctx context.Context, userID, language, word string) (*domain.WordProgress, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID, "language": language, "word": word}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get progress: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...)
	p, err := scanProgress(row)
	if err != nil {
		return nil, postgres.MapError(err, "word_progress", word)
	}
	return &p, nil
}

// ListByUser returns all of the learner's records in one language, ordered by word.
func (r *Repo) ListByUser(ctx context.Context, userID, language string) ([]domain.WordProgress, error) {
	return r.list(ctx, squirrel.Eq{"user_id": userID, "language": language})
}

// ListByStatus returns the learner's records with the given status, ordered by word.
func (r *Repo) ListByStatus(ctx context.Context, userID, language string, status domain.WordStatus) ([]domain.WordProgress, error) {
	return r.list(ctx, squirrel.Eq{"user_id": userID, "language": language, "status": string(status)})
}

func (r *Repo) list(ctx context.Context, where squirrel.Eq) ([]domain.WordProgress, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(where).
		OrderBy("word ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list progress: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "word_progress", fmt.Sprint(where["user_id"]))
	}
	defer rows.Close()

	result := make([]domain.WordProgress, 0)
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan word_progress: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "word_progress", fmt.Sprint(where["user_id"]))
	}
	return result, nil
}

// CountByStatus returns the number of records per status.
func (r *Repo) CountByStatus(ctx context.Context, userID, language string) (domain.ProgressStats, error) {
	sql, args, err := postgres.Builder().
		Select("status", "count(*)").
		From(table).
		Where(squirrel.Eq{"user_id": userID, "language": language}).
		GroupBy("status").
		ToSql()
	if err != nil {
		return domain.ProgressStats{}, fmt.Errorf("build count progress: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return domain.ProgressStats{}, postgres.MapError(err, "word_progress", userID)
	}
	defer rows.Close()

	var stats domain.ProgressStats
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return domain.ProgressStats{}, fmt.Errorf("scan status count: %w", err)
		}
		switch domain.WordStatus(status) {
		case domain.StatusKnown:
			stats.Known = n
		case domain.StatusLearning:
			stats.Learning = n
		case domain.StatusWeak:
			stats.Weak = n
		}
	}
	if err := rows.Err(); err != nil {
		return domain.ProgressStats{}, postgres.MapError(err, "word_progress", userID)
	}
	return stats, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// LockWord takes a transaction-scoped advisory lock on (user, language, word).
// Concurrent answers for the same word block here until the holder commits.
func (r *Repo) LockWord(ctx context.Context, userID, language, word string) error {
	if !postgres.InTx(ctx) {
		return ErrNoTx
	}
	key := userID + "\x1f" + language + "\x1f" + word
	_, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key)
	if err != nil {
		return postgres.MapError(err, "word_progress lock", word)
	}
	return nil
}

// Upsert stores the record, replacing any existing one for the same word.
// Records with status New are rejected with domain.ErrValidation.
func (r *Repo) Upsert(ctx context.Context, p domain.WordProgress) (*domain.WordProgress, error) {
	if !p.Status.IsPersistable() {
		return nil, domain.NewValidationError("status", "cannot store status "+p.Status.String())
	}

	now := time.Now().UTC()
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(p.UserID, p.Language, p.Word, string(p.Status),
			p.CorrectStreak, p.WrongCount, p.LastSeen, now, now).
		Suffix(`ON CONFLICT (user_id, language, word) DO UPDATE SET
			status = EXCLUDED.status,
			correct_streak = EXCLUDED.correct_streak,
			wrong_count = EXCLUDED.wrong_count,
			last_seen = EXCLUDED.last_seen,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert progress: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...)
	saved, err := scanProgress(row)
	if err != nil {
		return nil, postgres.MapError(err, "word_progress", p.Word)
	}
	return &saved, nil
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

func scanProgress(row pgx.Row) (domain.WordProgress, error) {
	var (
		p      domain.WordProgress
		status string
	)
	err := row.Scan(
		&p.UserID, &p.Language, &p.Word, &status,
		&p.CorrectStreak, &p.WrongCount, &p.LastSeen,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.WordProgress{}, err
	}
	p.Status = domain.WordStatus(status)
	return p, nil
}
