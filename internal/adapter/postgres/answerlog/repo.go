// Package answerlog implements the append-only answer log repository using PostgreSQL.
package answerlog

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/lingua-assistant-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

const table = "answer_logs"

var columns = []string{
	"id", "user_id", "language", "word", "is_correct",
	"prev_status", "new_status", "answered_at",
}

// Repo provides answer log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new answer log repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create appends one answer. A zero ID is replaced with a fresh UUID and a
// zero AnsweredAt with the current time.
func (r *Repo) Create(ctx context.Context, l *domain.AnswerLog) (*domain.AnswerLog, error) {
	rec := *l
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.AnsweredAt.IsZero() {
		rec.AnsweredAt = time.Now().UTC()
	}

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(rec.ID, rec.UserID, rec.Language, rec.Word, rec.IsCorrect,
			string(rec.PrevStatus), string(rec.NewStatus), rec.AnsweredAt).
		Suffix("RETURNING answered_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert answer_log: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(&rec.AnsweredAt); err != nil {
		return nil, postgres.MapError(err, "answer_log", rec.ID.String())
	}
	return &rec, nil
}

// ListRecent returns the learner's latest answers in one language, newest first.
func (r *Repo) ListRecent(ctx context.Context, userID, language string, limit int) ([]domain.AnswerLog, error) {
	q := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID, "language": language}).
		OrderBy("answered_at DESC", "id")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list answer_logs: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "answer_log", userID)
	}
	defer rows.Close()

	result := make([]domain.AnswerLog, 0)
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan answer_log: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "answer_log", userID)
	}
	return result, nil
}

func scanLog(row pgx.Row) (domain.AnswerLog, error) {
	var (
		l          domain.AnswerLog
		prev, next string
	)
	if err := row.Scan(&l.ID, &l.UserID, &l.Language, &l.Word, &l.IsCorrect, &prev, &next, &l.AnsweredAt); err != nil {
		return domain.AnswerLog{}, err
	}
	l.PrevStatus = domain.WordStatus(prev)
	l.NewStatus = domain.WordStatus(next)
	return l, nil
}
