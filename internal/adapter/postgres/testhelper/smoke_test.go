package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	userID := UniqueUserID()
	SeedProfile(t, pool, userID, domain.LevelB2)

	var level string
	err := pool.QueryRow(
		context.Background(),
		`SELECT level FROM user_profiles WHERE user_id = $1`,
		userID,
	).Scan(&level)
	if err != nil {
		t.Fatalf("expected profile in DB, got error: %v", err)
	}
	if level != "B2" {
		t.Fatalf("expected level B2, got %q", level)
	}
}

func TestSeedProgress_RoundTrip(t *testing.T) {
	pool := SetupTestDB(t)

	userID := UniqueUserID()
	seen := time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond)
	SeedProgress(t, pool, userID, "en", "ubiquitous", domain.StatusWeak, seen)

	var status string
	var lastSeen time.Time
	err := pool.QueryRow(
		context.Background(),
		`SELECT status, last_seen FROM word_progress WHERE user_id = $1 AND language = 'en' AND word = 'ubiquitous'`,
		userID,
	).Scan(&status, &lastSeen)
	if err != nil {
		t.Fatalf("expected progress row, got error: %v", err)
	}
	if status != "Weak" {
		t.Fatalf("expected status Weak, got %q", status)
	}
	if !lastSeen.Equal(seen) {
		t.Fatalf("expected last_seen %v, got %v", seen, lastSeen)
	}
}
