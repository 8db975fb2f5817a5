// Package profile serves learner profiles.
package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

type profileRepo interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	Upsert(ctx context.Context, p domain.UserProfile) (*domain.UserProfile, error)
}

// Service implements profile read and update.
type Service struct {
	log       *slog.Logger
	profiles  profileRepo
	languages []string
}

// NewService creates a profile service. languages lists the target
// languages a learner may pick.
func NewService(logger *slog.Logger, profiles profileRepo, languages []string) *Service {
	return &Service{
		log:       logger.With("service", "profile"),
		profiles:  profiles,
		languages: languages,
	}
}

// GetProfile returns the stored profile, or the default profile when the
// learner never saved one.
func (s *Service) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if userID == "" {
		return nil, domain.NewValidationError("user_id", "required")
	}

	p, err := s.profiles.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		def := domain.DefaultUserProfile(userID)
		if len(s.languages) > 0 && !slices.Contains(s.languages, def.TargetLanguage) {
			def.TargetLanguage = s.languages[0]
		}
		return &def, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profile.GetProfile: %w", err)
	}
	return p, nil
}

// UpdateProfile validates and stores the learner's profile.
func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.UserProfile, error) {
	input = input.normalize()
	if err := input.Validate(s.languages); err != nil {
		return nil, err
	}

	saved, err := s.profiles.Upsert(ctx, domain.UserProfile{
		UserID:         input.UserID,
		DisplayName:    input.DisplayName,
		Level:          input.Level,
		NativeLanguage: input.NativeLanguage,
		TargetLanguage: input.TargetLanguage,
	})
	if err != nil {
		return nil, fmt.Errorf("profile.UpdateProfile: %w", err)
	}

	s.log.InfoContext(ctx, "profile updated",
		slog.String("user_id", input.UserID),
		slog.String("level", saved.Level.String()),
		slog.String("target_language", saved.TargetLanguage),
	)
	return saved, nil
}
