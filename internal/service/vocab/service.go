package vocab

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type progressRepo interface {
	Get(ctx context.Context, userID, language, word string) (*domain.WordProgress, error)
	ListByUser(ctx context.Context, userID, language string) ([]domain.WordProgress, error)
	ListByStatus(ctx context.Context, userID, language string, status domain.WordStatus) ([]domain.WordProgress, error)
	CountByStatus(ctx context.Context, userID, language string) (domain.ProgressStats, error)
	LockWord(ctx context.Context, userID, language, word string) error
	Upsert(ctx context.Context, p domain.WordProgress) (*domain.WordProgress, error)
}

type answerLogRepo interface {
	Create(ctx context.Context, log *domain.AnswerLog) (*domain.AnswerLog, error)
	ListRecent(ctx context.Context, userID, language string, limit int) ([]domain.AnswerLog, error)
}

type wordCatalog interface {
	Supports(language string) bool
	Entries(language string) ([]domain.CatalogEntry, error)
	Lookup(language, word string) (domain.CatalogEntry, bool)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements vocabulary practice: daily selection and answer recording.
type Service struct {
	progress progressRepo
	answers  answerLogRepo
	catalog  wordCatalog
	tx       txManager
	log      *slog.Logger
	cfg      domain.VocabConfig
	rnd      Rand
	now      func() time.Time
}

// NewService creates a new Vocab service. rnd may be nil.
func NewService(
	log *slog.Logger,
	progress progressRepo,
	answers answerLogRepo,
	catalog wordCatalog,
	tx txManager,
	cfg domain.VocabConfig,
	rnd Rand,
) *Service {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &Service{
		progress: progress,
		answers:  answers,
		catalog:  catalog,
		tx:       tx,
		log:      log.With("service", "vocab"),
		cfg:      cfg,
		rnd:      rnd,
		now:      time.Now,
	}
}

func (s *Service) checkLanguage(language string) error {
	if !s.catalog.Supports(language) {
		return domain.NewValidationError("language", "unsupported")
	}
	return nil
}
