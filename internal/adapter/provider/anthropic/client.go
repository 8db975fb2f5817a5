// Package anthropic adapts the Anthropic Messages API to the chat service.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

// ErrEmptyReply is returned when the model answers without any text.
var ErrEmptyReply = errors.New("llm returned no text")

// Config holds the client settings.
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// Client sends tutor conversations to Claude.
type Client struct {
	api       anthropic.Client
	model     string
	maxTokens int64
	log       *slog.Logger
}

// NewClient creates a Client. An empty BaseURL keeps the SDK default.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(1),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	return &Client{
		api:       anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: int64(cfg.MaxTokens),
		log:       logger.With("adapter", "anthropic"),
	}
}

// Complete sends the system prompt and the conversation and returns the
// assistant's reply. Consecutive messages must alternate roles; the last
// one must come from the user.
func (c *Client) Complete(ctx context.Context, system string, history []domain.ChatMessage) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("anthropic: empty conversation")
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages:  toMessageParams(history),
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	start := time.Now()
	msg, err := c.api.Messages.New(ctx, params)
	if err != nil {
		c.log.ErrorContext(ctx, "llm request failed",
			slog.String("model", c.model),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("anthropic: messages.new: %w", mapError(err))
	}

	reply := joinText(msg.Content)
	if reply == "" {
		return "", fmt.Errorf("anthropic: %w", ErrEmptyReply)
	}

	c.log.DebugContext(ctx, "llm response",
		slog.String("model", c.model),
		slog.Int("messages", len(history)),
		slog.Int64("output_tokens", msg.Usage.OutputTokens),
		slog.Duration("duration", time.Since(start)),
	)
	return reply, nil
}

// toMessageParams converts stored messages into API turns, merging
// consecutive messages of the same role.
func toMessageParams(history []domain.ChatMessage) []anthropic.MessageParam {
	type turn struct {
		role  domain.ChatRole
		parts []string
	}
	var turns []turn
	for _, m := range history {
		if n := len(turns); n > 0 && turns[n-1].role == m.Role {
			turns[n-1].parts = append(turns[n-1].parts, m.Content)
			continue
		}
		turns = append(turns, turn{role: m.Role, parts: []string{m.Content}})
	}
	// The API requires the first turn to come from the user.
	for len(turns) > 0 && turns[0].role != domain.ChatRoleUser {
		turns = turns[1:]
	}

	out := make([]anthropic.MessageParam, 0, len(turns))
	for _, t := range turns {
		block := anthropic.NewTextBlock(strings.Join(t.parts, "\n\n"))
		if t.role == domain.ChatRoleAssistant {
			out = append(out, anthropic.NewAssistantMessage(block))
		} else {
			out = append(out, anthropic.NewUserMessage(block))
		}
	}
	return out
}

func joinText(blocks []anthropic.ContentBlockUnion) string {
	var sb strings.Builder
	for _, b := range blocks {
		if b.Type != "text" || b.Text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(b.Text)
	}
	return strings.TrimSpace(sb.String())
}

// mapError marks overload and server-side failures as unavailable so the
// transport layer answers 503 instead of 500.
func mapError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 429, apiErr.StatusCode >= 500:
			return fmt.Errorf("%w: status %d: %w", domain.ErrUnavailable, apiErr.StatusCode, err)
		}
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
}
