// Package conversation implements chat history persistence using PostgreSQL.
package conversation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/lingua-assistant-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

// Repo provides chat message persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new conversation repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const insertSQL = `
INSERT INTO chat_messages (id, user_id, language, role, content, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

// listRecentSQL selects the newest $3 messages and returns them oldest first.
const listRecentSQL = `
SELECT id, user_id, language, role, content, created_at FROM (
    SELECT id, user_id, language, role, content, created_at
    FROM chat_messages
    WHERE user_id = $1 AND language = $2
    ORDER BY created_at DESC, id DESC
    LIMIT $3
) recent
ORDER BY created_at ASC, id ASC`

const deleteSQL = `DELETE FROM chat_messages WHERE user_id = $1 AND language = $2`

// Append stores messages in a single batch. Zero IDs and timestamps are filled in.
func (r *Repo) Append(ctx context.Context, msgs ...domain.ChatMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	batch := &pgx.Batch{}
	for i, m := range msgs {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		if m.CreatedAt.IsZero() {
			// Keep insertion order stable for messages appended together.
			m.CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
		}
		batch.Queue(insertSQL, m.ID, m.UserID, m.Language, string(m.Role), m.Content, m.CreatedAt)
	}

	br := postgres.QuerierFromCtx(ctx, r.pool).SendBatch(ctx, batch)
	defer br.Close()

	for range msgs {
		if _, err := br.Exec(); err != nil {
			return postgres.MapError(err, "chat_message", msgs[0].UserID)
		}
	}
	return nil
}

// ListRecent returns up to limit of the newest messages, oldest first.
func (r *Repo) ListRecent(ctx context.Context, userID, language string, limit int) ([]domain.ChatMessage, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listRecentSQL, userID, language, limit)
	if err != nil {
		return nil, postgres.MapError(err, "chat_message", userID)
	}
	defer rows.Close()

	result := make([]domain.ChatMessage, 0, limit)
	for rows.Next() {
		var (
			m    domain.ChatMessage
			role string
		)
		if err := rows.Scan(&m.ID, &m.UserID, &m.Language, &role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat_message: %w", err)
		}
		m.Role = domain.ChatRole(role)
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "chat_message", userID)
	}
	return result, nil
}

// DeleteAll removes the learner's conversation in one language and returns
// the number of deleted messages.
func (r *Repo) DeleteAll(ctx context.Context, userID, language string) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteSQL, userID, language)
	if err != nil {
		return 0, postgres.MapError(err, "chat_message", userID)
	}
	return tag.RowsAffected(), nil
}
