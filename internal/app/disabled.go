package app

import (
	"context"
	"fmt"

	"github.com/heartmarshall/lingua-assistant-backend/internal/adapter/provider/tts"
	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

type llmClient interface {
	Complete(ctx context.Context, system string, history []domain.ChatMessage) (string, error)
}

type synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) (tts.Audio, error)
}

// disabledLLM stands in for the model client when no API key is configured.
type disabledLLM struct{}

func (disabledLLM) Complete(context.Context, string, []domain.ChatMessage) (string, error) {
	return "", fmt.Errorf("llm not configured: %w", domain.ErrUnavailable)
}

// disabledTTS stands in for the speech provider when no API key is configured.
type disabledTTS struct{}

func (disabledTTS) Synthesize(context.Context, string, string) (tts.Audio, error) {
	return tts.Audio{}, fmt.Errorf("tts not configured: %w", domain.ErrUnavailable)
}
