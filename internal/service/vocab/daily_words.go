package vocab

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

// RequestDailyWords selects today's practice set for the learner. It reads a
// snapshot of the learner's records and writes nothing.
func (s *Service) RequestDailyWords(ctx context.Context, input DailyWordsInput) (*DailyWordsResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	language := domain.NormalizeLanguage(input.Language)
	if err := s.checkLanguage(language); err != nil {
		return nil, err
	}

	entries, err := s.catalog.Entries(language)
	if err != nil {
		return nil, fmt.Errorf("catalog entries: %w", err)
	}

	snapshot, err := s.progress.ListByUser(ctx, input.UserID, language)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	topic := strings.TrimSpace(input.Topic)
	words := SelectDaily(entries, snapshot, SelectParams{
		Topic:       topic,
		TargetCount: s.cfg.DailyCount,
		WeakQuota:   s.cfg.WeakQuota,
		ReviewQuota: s.cfg.ReviewQuota,
		Cooldown:    s.cfg.Cooldown,
		Now:         s.now(),
	}, s.rnd)

	for i := range words {
		if words[i].Progress.Status == domain.StatusNew {
			words[i].Progress.UserID = input.UserID
			words[i].Progress.Language = language
		}
	}

	stats := statsFromSnapshot(snapshot, entries)

	s.log.InfoContext(ctx, "daily words selected",
		slog.String("user_id", input.UserID),
		slog.String("language", language),
		slog.String("topic", topic),
		slog.Int("count", len(words)),
	)

	return &DailyWordsResult{
		Language: language,
		Topic:    topic,
		Words:    words,
		Stats:    stats,
	}, nil
}

// statsFromSnapshot counts the records of words still present in the catalog.
func statsFromSnapshot(snapshot []domain.WordProgress, entries []domain.CatalogEntry) domain.ProgressStats {
	inCatalog := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		inCatalog[domain.NormalizeWord(e.Word)] = struct{}{}
	}

	var stats domain.ProgressStats
	for _, rec := range snapshot {
		if _, ok := inCatalog[domain.NormalizeWord(rec.Word)]; !ok {
			continue
		}
		switch rec.Status {
		case domain.StatusKnown:
			stats.Known++
		case domain.StatusLearning:
			stats.Learning++
		case domain.StatusWeak:
			stats.Weak++
		}
	}
	return stats
}
