package vocab

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

const (
	maxTopicLength = 64
	maxWordLength  = 128
)

// DailyWordsInput holds the parameters for requesting a daily word set.
type DailyWordsInput struct {
	UserID   string
	Language string
	Topic    string
}

// Validate checks all fields and collects all errors.
func (i *DailyWordsInput) Validate() error {
	var errs []domain.FieldError

	errs = appendIdentityErrors(errs, i.UserID, i.Language)
	if utf8.RuneCountInString(strings.TrimSpace(i.Topic)) > maxTopicLength {
		errs = append(errs, domain.FieldError{Field: "topic", Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SubmitAnswerInput holds one practice answer.
type SubmitAnswerInput struct {
	UserID    string
	Language  string
	Word      string
	IsCorrect bool
}

// Validate checks all fields and collects all errors.
func (i *SubmitAnswerInput) Validate() error {
	var errs []domain.FieldError

	errs = appendIdentityErrors(errs, i.UserID, i.Language)
	word := domain.NormalizeWord(i.Word)
	if word == "" {
		errs = append(errs, domain.FieldError{Field: "word", Message: "required"})
	} else if utf8.RuneCountInString(word) > maxWordLength {
		errs = append(errs, domain.FieldError{Field: "word", Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ProgressInput holds the parameters for listing a learner's progress.
type ProgressInput struct {
	UserID   string
	Language string
	// Status optionally filters records. New is rejected: it is never stored.
	Status string
}

// Validate checks all fields and collects all errors.
func (i *ProgressInput) Validate() error {
	var errs []domain.FieldError

	errs = appendIdentityErrors(errs, i.UserID, i.Language)
	if strings.TrimSpace(i.Status) != "" {
		st, ok := domain.ParseWordStatus(i.Status)
		if !ok || !st.IsPersistable() {
			errs = append(errs, domain.FieldError{Field: "status", Message: "must be Learning, Weak, or Known"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func appendIdentityErrors(errs []domain.FieldError, userID, language string) []domain.FieldError {
	if strings.TrimSpace(userID) == "" {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if strings.TrimSpace(language) == "" {
		errs = append(errs, domain.FieldError{Field: "language", Message: "required"})
	}
	return errs
}
