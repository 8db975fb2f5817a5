package vocab

import (
	"context"
	"fmt"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

const recentAnswersLimit = 20

// GetProgress lists the learner's stored records, optionally filtered by status.
func (s *Service) GetProgress(ctx context.Context, input ProgressInput) (*ProgressResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	language := domain.NormalizeLanguage(input.Language)
	if err := s.checkLanguage(language); err != nil {
		return nil, err
	}

	var (
		records []domain.WordProgress
		err     error
	)
	if status, ok := domain.ParseWordStatus(input.Status); ok {
		records, err = s.progress.ListByStatus(ctx, input.UserID, language, status)
	} else {
		records, err = s.progress.ListByUser(ctx, input.UserID, language)
	}
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	stats, err := s.progress.CountByStatus(ctx, input.UserID, language)
	if err != nil {
		return nil, fmt.Errorf("count progress: %w", err)
	}

	recent, err := s.answers.ListRecent(ctx, input.UserID, language, recentAnswersLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent answers: %w", err)
	}

	if records == nil {
		records = []domain.WordProgress{}
	}

	return &ProgressResult{
		Language: language,
		Records:  records,
		Stats:    stats,
		Recent:   recent,
	}, nil
}
