package chat

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

const (
	// MaxMessageLen bounds a single learner message in runes.
	MaxMessageLen  = 4000
	maxHistoryPage = 200
)

// SendMessageInput holds parameters for a chat turn.
type SendMessageInput struct {
	UserID   string
	Language string
	Message  string
}

func (i SendMessageInput) normalize() SendMessageInput {
	i.Language = domain.NormalizeLanguage(i.Language)
	i.Message = strings.TrimSpace(i.Message)
	return i
}

// Validate checks the message shape. The language is checked later against
// the learner's profile.
func (i SendMessageInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.UserID) == "" {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if i.Message == "" {
		errs = append(errs, domain.FieldError{Field: "message", Message: "required"})
	} else if utf8.RuneCountInString(i.Message) > MaxMessageLen {
		errs = append(errs, domain.FieldError{Field: "message", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// HistoryInput selects a page of conversation history.
type HistoryInput struct {
	UserID   string
	Language string
	Limit    int
}

// Validate checks the history request. A zero limit means the default.
func (i HistoryInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.UserID) == "" {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if i.Limit < 0 || i.Limit > maxHistoryPage {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
