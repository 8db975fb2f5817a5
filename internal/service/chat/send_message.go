package chat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

// SendMessage sends the learner's message with recent history to the model
// and stores both turns. Nothing is stored when the model call fails.
func (s *Service) SendMessage(ctx context.Context, input SendMessageInput) (*domain.ChatMessage, error) {
	input = input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	profile, err := s.loadProfile(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("chat.SendMessage: %w", err)
	}
	language, err := s.resolveLanguage(input.Language, profile)
	if err != nil {
		return nil, err
	}

	var history []domain.ChatMessage
	if s.cfg.HistoryLimit > 0 {
		history, err = s.messages.ListRecent(ctx, input.UserID, language, s.cfg.HistoryLimit)
		if err != nil {
			return nil, fmt.Errorf("chat.SendMessage: load history: %w", err)
		}
	}

	now := s.now()
	userMsg := domain.ChatMessage{
		ID:        uuid.New(),
		UserID:    input.UserID,
		Language:  language,
		Role:      domain.ChatRoleUser,
		Content:   input.Message,
		CreatedAt: now,
	}

	reply, err := s.llm.Complete(ctx, buildSystemPrompt(profile, language), append(history, userMsg))
	if err != nil {
		return nil, fmt.Errorf("chat.SendMessage: %w", err)
	}

	assistantMsg := domain.ChatMessage{
		ID:        uuid.New(),
		UserID:    input.UserID,
		Language:  language,
		Role:      domain.ChatRoleAssistant,
		Content:   reply,
		CreatedAt: s.now(),
	}
	if !assistantMsg.CreatedAt.After(now) {
		assistantMsg.CreatedAt = now.Add(time.Microsecond)
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.messages.Append(ctx, userMsg, assistantMsg)
	})
	if err != nil {
		return nil, fmt.Errorf("chat.SendMessage: save: %w", err)
	}

	s.log.InfoContext(ctx, "chat reply sent",
		slog.String("user_id", input.UserID),
		slog.String("language", language),
		slog.Int("history", len(history)),
		slog.Int("reply_chars", len(reply)),
	)
	return &assistantMsg, nil
}

// History returns up to Limit stored messages, oldest first.
func (s *Service) History(ctx context.Context, input HistoryInput) ([]domain.ChatMessage, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	profile, err := s.loadProfile(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("chat.History: %w", err)
	}
	language, err := s.resolveLanguage(domain.NormalizeLanguage(input.Language), profile)
	if err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = max(s.cfg.HistoryLimit, 1)
	}

	msgs, err := s.messages.ListRecent(ctx, input.UserID, language, limit)
	if err != nil {
		return nil, fmt.Errorf("chat.History: %w", err)
	}
	if msgs == nil {
		msgs = []domain.ChatMessage{}
	}
	return msgs, nil
}

// ClearHistory deletes the learner's conversation in one language and
// returns how many messages were removed.
func (s *Service) ClearHistory(ctx context.Context, userID, language string) (int64, error) {
	if userID == "" {
		return 0, domain.NewValidationError("user_id", "required")
	}
	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("chat.ClearHistory: %w", err)
	}
	language, err = s.resolveLanguage(domain.NormalizeLanguage(language), profile)
	if err != nil {
		return 0, err
	}

	n, err := s.messages.DeleteAll(ctx, userID, language)
	if err != nil {
		return 0, fmt.Errorf("chat.ClearHistory: %w", err)
	}

	s.log.InfoContext(ctx, "chat history cleared",
		slog.String("user_id", userID),
		slog.String("language", language),
		slog.Int64("deleted", n),
	)
	return n, nil
}
