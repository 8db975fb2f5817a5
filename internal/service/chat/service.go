// Package chat proxies tutor conversations to the language model and keeps
// their history.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

type profileRepo interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
}

type conversationRepo interface {
	Append(ctx context.Context, msgs ...domain.ChatMessage) error
	ListRecent(ctx context.Context, userID, language string, limit int) ([]domain.ChatMessage, error)
	DeleteAll(ctx context.Context, userID, language string) (int64, error)
}

type llmClient interface {
	Complete(ctx context.Context, system string, history []domain.ChatMessage) (string, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Config tunes the chat service.
type Config struct {
	HistoryLimit int
	Languages    []string
}

// Service implements the tutor chat.
type Service struct {
	log      *slog.Logger
	profiles profileRepo
	messages conversationRepo
	llm      llmClient
	tx       txManager
	cfg      Config
	now      func() time.Time
}

// NewService creates a chat service.
func NewService(
	logger *slog.Logger,
	profiles profileRepo,
	messages conversationRepo,
	llm llmClient,
	tx txManager,
	cfg Config,
) *Service {
	return &Service{
		log:      logger.With("service", "chat"),
		profiles: profiles,
		messages: messages,
		llm:      llm,
		tx:       tx,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// loadProfile returns the stored profile or the default one.
func (s *Service) loadProfile(ctx context.Context, userID string) (domain.UserProfile, error) {
	p, err := s.profiles.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DefaultUserProfile(userID), nil
	}
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("load profile: %w", err)
	}
	return *p, nil
}

// resolveLanguage picks the explicit language or, when blank, the profile's
// target language.
func (s *Service) resolveLanguage(language string, p domain.UserProfile) (string, error) {
	if language == "" {
		language = p.TargetLanguage
	}
	if !slices.Contains(s.cfg.Languages, language) {
		return "", domain.NewValidationError("language", "unsupported")
	}
	return language, nil
}
