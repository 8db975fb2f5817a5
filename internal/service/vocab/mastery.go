package vocab

import (
	"time"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

// KnownStreak is the number of consecutive correct answers that marks a word Known.
const KnownStreak = 3

// weakThreshold is the wrong-answer count from which a wrong answer marks the
// word Weak. At 1 every wrong answer marks it Weak and the Learning branch
// below never runs.
const weakThreshold = 1

// ApplyAnswer maps a record and the correctness of one answer to the next
// record. Pure function: no DB, no context, no logger. now is stamped as
// LastSeen but never moves LastSeen backwards.
func ApplyAnswer(rec domain.WordProgress, isCorrect bool, now time.Time) domain.WordProgress {
	if !rec.Status.IsValid() {
		rec.Status = domain.StatusNew
	}
	rec.CorrectStreak = max(0, rec.CorrectStreak)
	rec.WrongCount = max(0, rec.WrongCount)

	next := rec

	if isCorrect {
		next.CorrectStreak++
		switch {
		case next.CorrectStreak >= KnownStreak:
			next.Status = domain.StatusKnown
		case rec.Status == domain.StatusNew || rec.Status == domain.StatusWeak:
			next.Status = domain.StatusLearning
		}
	} else {
		next.CorrectStreak = 0
		next.WrongCount++
		if next.WrongCount >= weakThreshold {
			next.Status = domain.StatusWeak
		} else {
			next.Status = domain.StatusLearning
		}
	}

	seen := now
	if rec.LastSeen != nil && now.Before(*rec.LastSeen) {
		seen = *rec.LastSeen
	}
	next.LastSeen = &seen

	return next
}
