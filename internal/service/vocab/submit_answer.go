package vocab

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

// SubmitAnswer applies one answer to the learner's record for a word and
// stores the result. The read-modify-write runs in one transaction holding a
// per-word lock, so concurrent answers for the same word are serialised.
func (s *Service) SubmitAnswer(ctx context.Context, input SubmitAnswerInput) (*domain.WordProgress, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	language := domain.NormalizeLanguage(input.Language)
	if err := s.checkLanguage(language); err != nil {
		return nil, err
	}

	word := domain.NormalizeWord(input.Word)
	if _, ok := s.catalog.Lookup(language, word); !ok {
		s.log.WarnContext(ctx, "answer for word outside catalog",
			slog.String("user_id", input.UserID),
			slog.String("language", language),
			slog.String("word", word),
		)
	}

	var (
		updated    *domain.WordProgress
		prevStatus domain.WordStatus
	)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.progress.LockWord(txCtx, input.UserID, language, word); err != nil {
			return fmt.Errorf("lock word: %w", err)
		}

		current, err := s.progress.Get(txCtx, input.UserID, language, word)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			rec := domain.NewWordProgress(input.UserID, language, word)
			current = &rec
		case err != nil:
			return fmt.Errorf("get progress: %w", err)
		}

		prevStatus = current.Status
		next := ApplyAnswer(*current, input.IsCorrect, s.now())

		saved, err := s.progress.Upsert(txCtx, next)
		if err != nil {
			return fmt.Errorf("upsert progress: %w", err)
		}

		if _, err := s.answers.Create(txCtx, &domain.AnswerLog{
			ID:         uuid.New(),
			UserID:     input.UserID,
			Language:   language,
			Word:       word,
			IsCorrect:  input.IsCorrect,
			PrevStatus: prevStatus,
			NewStatus:  saved.Status,
			AnsweredAt: *next.LastSeen,
		}); err != nil {
			return fmt.Errorf("create answer log: %w", err)
		}

		updated = saved
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "answer recorded",
		slog.String("user_id", input.UserID),
		slog.String("language", language),
		slog.String("word", word),
		slog.Bool("correct", input.IsCorrect),
		slog.String("prev_status", prevStatus.String()),
		slog.String("new_status", updated.Status.String()),
	)

	return updated, nil
}
