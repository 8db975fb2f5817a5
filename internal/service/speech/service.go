// Package speech proxies text-to-speech requests.
package speech

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/lingua-assistant-backend/internal/adapter/provider/tts"
	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

type synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) (tts.Audio, error)
}

// SynthesizeInput holds the text to speak.
type SynthesizeInput struct {
	UserID string
	Text   string
	Voice  string
}

// Service implements text-to-speech.
type Service struct {
	log      *slog.Logger
	tts      synthesizer
	maxChars int
}

// NewService creates a speech service.
func NewService(logger *slog.Logger, tts synthesizer, maxChars int) *Service {
	return &Service{
		log:      logger.With("service", "speech"),
		tts:      tts,
		maxChars: maxChars,
	}
}

func (s *Service) validate(in SynthesizeInput) error {
	var errs []domain.FieldError

	if in.Text == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	} else if utf8.RuneCountInString(in.Text) > s.maxChars {
		errs = append(errs, domain.FieldError{Field: "text", Message: fmt.Sprintf("must be at most %d characters", s.maxChars)})
	}
	if len(in.Voice) > 32 {
		errs = append(errs, domain.FieldError{Field: "voice", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Synthesize returns audio for the given text.
func (s *Service) Synthesize(ctx context.Context, in SynthesizeInput) (tts.Audio, error) {
	in.Text = strings.TrimSpace(in.Text)
	in.Voice = strings.ToLower(strings.TrimSpace(in.Voice))
	if err := s.validate(in); err != nil {
		return tts.Audio{}, err
	}

	audio, err := s.tts.Synthesize(ctx, in.Text, in.Voice)
	if err != nil {
		return tts.Audio{}, fmt.Errorf("speech.Synthesize: %w", err)
	}

	s.log.InfoContext(ctx, "speech synthesized",
		slog.String("user_id", in.UserID),
		slog.Int("chars", utf8.RuneCountInString(in.Text)),
		slog.Int("bytes", len(audio.Data)),
	)
	return audio, nil
}
