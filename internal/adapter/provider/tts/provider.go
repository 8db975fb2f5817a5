// Package tts is an HTTP client for an OpenAI-compatible speech endpoint.
package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

const (
	speechPath    = "/v1/audio/speech"
	retryDelay    = 500 * time.Millisecond
	maxAudioBytes = 10 << 20
	maxErrorBody  = 4 << 10
)

// Config holds provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Voice   string
	Format  string
	Timeout time.Duration
}

// Audio is a synthesized clip.
type Audio struct {
	Data        []byte
	ContentType string
}

// Provider turns text into speech.
type Provider struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger
	retryDelay time.Duration
}

// NewProvider creates a Provider.
func NewProvider(cfg Config, logger *slog.Logger) *Provider {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Provider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "tts"),
		retryDelay: retryDelay,
	}
}

type speechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

// Synthesize renders text with the given voice, falling back to the
// configured default voice when voice is empty.
func (p *Provider) Synthesize(ctx context.Context, text, voice string) (Audio, error) {
	if voice == "" {
		voice = p.cfg.Voice
	}
	payload, err := json.Marshal(speechRequest{
		Model:          p.cfg.Model,
		Input:          text,
		Voice:          voice,
		ResponseFormat: p.cfg.Format,
	})
	if err != nil {
		return Audio{}, fmt.Errorf("tts: encode request: %w", err)
	}

	p.log.DebugContext(ctx, "tts request", slog.String("voice", voice), slog.Int("chars", len(text)))

	resp, err := p.doWithRetry(ctx, payload)
	if err != nil {
		p.log.ErrorContext(ctx, "tts request failed", slog.String("error", err.Error()))
		return Audio{}, fmt.Errorf("tts: request failed: %w: %w", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return Audio{}, fmt.Errorf("tts: %w: status %d", domain.ErrUnavailable, resp.StatusCode)
		}
		return Audio{}, fmt.Errorf("tts: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioBytes))
	if err != nil {
		return Audio{}, fmt.Errorf("tts: read body: %w", err)
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		ct = contentTypeFor(p.cfg.Format)
	}

	p.log.DebugContext(ctx, "tts response", slog.Int("bytes", len(data)), slog.String("content_type", ct))
	return Audio{Data: data, ContentType: ct}, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, payload []byte) (*http.Response, error) {
	resp, err := p.do(ctx, payload)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "tts retry", slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(p.retryDelay):
	}

	return p.do(ctx, payload)
}

func (p *Provider) do(ctx context.Context, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+speechPath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	return p.httpClient.Do(req)
}

func contentTypeFor(format string) string {
	switch format {
	case "opus":
		return "audio/ogg"
	case "aac":
		return "audio/aac"
	case "flac":
		return "audio/flac"
	case "wav":
		return "audio/wav"
	default:
		return "audio/mpeg"
	}
}
