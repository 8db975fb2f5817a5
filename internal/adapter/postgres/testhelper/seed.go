package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

// UniqueUserID returns a user ID that does not collide with other tests
// sharing the container.
func UniqueUserID() string {
	return "user-" + uuid.New().String()[:8]
}

// SeedProgress inserts a word progress record and returns it as stored.
func SeedProgress(t *testing.T, pool *pgxpool.Pool, userID, language, word string, status domain.WordStatus, lastSeen time.Time) domain.WordProgress {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	seen := lastSeen.UTC().Truncate(time.Microsecond)
	p := domain.WordProgress{
		UserID:    userID,
		Language:  language,
		Word:      word,
		Status:    status,
		LastSeen:  &seen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if status == domain.StatusKnown {
		p.CorrectStreak = 3
	}
	if status == domain.StatusWeak {
		p.WrongCount = 1
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO word_progress (user_id, language, word, status, correct_streak, wrong_count, last_seen, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.UserID, p.Language, p.Word, string(p.Status), p.CorrectStreak, p.WrongCount, p.LastSeen, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProgress insert: %v", err)
	}
	return p
}

// SeedProfile inserts a user profile and returns it as stored.
func SeedProfile(t *testing.T, pool *pgxpool.Pool, userID string, level domain.CEFRLevel) domain.UserProfile {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	p := domain.UserProfile{
		UserID:         userID,
		DisplayName:    "Test " + userID,
		Level:          level,
		NativeLanguage: "ru",
		TargetLanguage: "en",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO user_profiles (user_id, display_name, level, native_language, target_language, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.UserID, p.DisplayName, string(p.Level), p.NativeLanguage, p.TargetLanguage, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProfile insert: %v", err)
	}
	return p
}

// SeedChatMessage inserts one conversation turn.
func SeedChatMessage(t *testing.T, pool *pgxpool.Pool, userID, language string, role domain.ChatRole, content string, at time.Time) domain.ChatMessage {
	t.Helper()

	m := domain.ChatMessage{
		ID:        uuid.New(),
		UserID:    userID,
		Language:  language,
		Role:      role,
		Content:   content,
		CreatedAt: at.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO chat_messages (id, user_id, language, role, content, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.UserID, m.Language, string(m.Role), m.Content, m.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedChatMessage insert: %v", err)
	}
	return m
}
