package profile

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

const maxDisplayNameLen = 100

// UpdateProfileInput holds parameters for the profile update operation.
type UpdateProfileInput struct {
	UserID         string
	DisplayName    string
	Level          domain.CEFRLevel
	NativeLanguage string
	TargetLanguage string
}

func (i UpdateProfileInput) normalize() UpdateProfileInput {
	i.DisplayName = strings.TrimSpace(i.DisplayName)
	i.Level = domain.CEFRLevel(strings.ToUpper(strings.TrimSpace(string(i.Level))))
	i.NativeLanguage = domain.NormalizeLanguage(i.NativeLanguage)
	i.TargetLanguage = domain.NormalizeLanguage(i.TargetLanguage)
	return i
}

// Validate checks the input against the supported target languages.
func (i UpdateProfileInput) Validate(languages []string) error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.UserID) == "" {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}

	if utf8.RuneCountInString(i.DisplayName) > maxDisplayNameLen {
		errs = append(errs, domain.FieldError{Field: "display_name", Message: "too long"})
	}

	if !i.Level.IsValid() {
		errs = append(errs, domain.FieldError{Field: "level", Message: "must be one of A1, A2, B1, B2, C1, C2"})
	}

	if i.NativeLanguage != "" && !isLanguageCode(i.NativeLanguage) {
		errs = append(errs, domain.FieldError{Field: "native_language", Message: "invalid language code"})
	}

	switch {
	case i.TargetLanguage == "":
		errs = append(errs, domain.FieldError{Field: "target_language", Message: "required"})
	case !slices.Contains(languages, i.TargetLanguage):
		errs = append(errs, domain.FieldError{Field: "target_language", Message: "unsupported"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// isLanguageCode accepts two or three lowercase ASCII letters.
func isLanguageCode(s string) bool {
	if len(s) < 2 || len(s) > 3 {
		return false
	}
	for _, c := range s {
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}
