package domain

import (
	"time"

	"github.com/google/uuid"
)

// WordProgress is a learner's mastery record for one word in one language.
type WordProgress struct {
	UserID        string
	Language      string
	Word          string
	Status        WordStatus
	CorrectStreak int
	WrongCount    int
	LastSeen      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewWordProgress returns the virtual record of a word that was never answered.
func NewWordProgress(userID, language, word string) WordProgress {
	return WordProgress{
		UserID:   userID,
		Language: language,
		Word:     word,
		Status:   StatusNew,
	}
}

// IsCool reports whether the word may be shown again for review: it was
// never seen, or it was last seen more than cooldown before now.
func (p WordProgress) IsCool(now time.Time, cooldown time.Duration) bool {
	if p.LastSeen == nil {
		return true
	}
	return now.Sub(*p.LastSeen) > cooldown
}

// ProgressStats holds the number of materialised records per status.
type ProgressStats struct {
	Known    int
	Learning int
	Weak     int
}

// Total returns the number of words the learner has answered at least once.
func (s ProgressStats) Total() int {
	return s.Known + s.Learning + s.Weak
}

// DailyWord is one entry of a daily practice set: the catalog entry plus the
// learner's record (materialised or synthesised as New).
type DailyWord struct {
	Entry    CatalogEntry
	Progress WordProgress
}

// AnswerLog records a single answer submission.
type AnswerLog struct {
	ID         uuid.UUID
	UserID     string
	Language   string
	Word       string
	IsCorrect  bool
	PrevStatus WordStatus
	NewStatus  WordStatus
	AnsweredAt time.Time
}

// VocabConfig holds the daily selection parameters (pure domain type).
type VocabConfig struct {
	DailyCount  int
	WeakQuota   int
	ReviewQuota int
	Cooldown    time.Duration
}
