package vocab

import (
	"context"
	"sync"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

// Hand-written mocks in the moq layout: one XxxFunc per method plus recorded calls.

type progressRepoMock struct {
	GetFunc           func(ctx context.Context, userID, language, word string) (*domain.WordProgress, error)
	ListByUserFunc    func(ctx context.Context, userID, language string) ([]domain.WordProgress, error)
	ListByStatusFunc  func(ctx context.Context, userID, language string, status domain.WordStatus) ([]domain.WordProgress, error)
	CountByStatusFunc func(ctx context.Context, userID, language string) (domain.ProgressStats, error)
	LockWordFunc      func(ctx context.Context, userID, language, word string) error
	UpsertFunc        func(ctx context.Context, p domain.WordProgress) (*domain.WordProgress, error)

	mu          sync.Mutex
	upsertCalls []domain.WordProgress
	lockCalls   []string
}

func (m *progressRepoMock) Get(ctx context.Context, userID, language, word string) (*domain.WordProgress, error) {
	if m.GetFunc == nil {
		panic("progressRepoMock.GetFunc: method is nil but progressRepo.Get was just called")
	}
	return m.GetFunc(ctx, userID, language, word)
}

func (m *progressRepoMock) ListByUser(ctx context.Context, userID, language string) ([]domain.WordProgress, error) {
	if m.ListByUserFunc == nil {
		panic("progressRepoMock.ListByUserFunc: method is nil but progressRepo.ListByUser was just called")
	}
	return m.ListByUserFunc(ctx, userID, language)
}

func (m *progressRepoMock) ListByStatus(ctx context.Context, userID, language string, status domain.WordStatus) ([]domain.WordProgress, error) {
	if m.ListByStatusFunc == nil {
		panic("progressRepoMock.ListByStatusFunc: method is nil but progressRepo.ListByStatus was just called")
	}
	return m.ListByStatusFunc(ctx, userID, language, status)
}

func (m *progressRepoMock) CountByStatus(ctx context.Context, userID, language string) (domain.ProgressStats, error) {
	if m.CountByStatusFunc == nil {
		panic("progressRepoMock.CountByStatusFunc: method is nil but progressRepo.CountByStatus was just called")
	}
	return m.CountByStatusFunc(ctx, userID, language)
}

func (m *progressRepoMock) LockWord(ctx context.Context, userID, language, word string) error {
	m.mu.Lock()
	m.lockCalls = append(m.lockCalls, word)
	m.mu.Unlock()
	if m.LockWordFunc == nil {
		return nil
	}
	return m.LockWordFunc(ctx, userID, language, word)
}

func (m *progressRepoMock) Upsert(ctx context.Context, p domain.WordProgress) (*domain.WordProgress, error) {
	m.mu.Lock()
	m.upsertCalls = append(m.upsertCalls, p)
	m.mu.Unlock()
	if m.UpsertFunc == nil {
		panic("progressRepoMock.UpsertFunc: method is nil but progressRepo.Upsert was just called")
	}
	return m.UpsertFunc(ctx, p)
}

func (m *progressRepoMock) UpsertCalls() []domain.WordProgress {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.WordProgress(nil), m.upsertCalls...)
}

func (m *progressRepoMock) LockWordCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.lockCalls...)
}

type answerLogRepoMock struct {
	CreateFunc     func(ctx context.Context, log *domain.AnswerLog) (*domain.AnswerLog, error)
	ListRecentFunc func(ctx context.Context, userID, language string, limit int) ([]domain.AnswerLog, error)

	mu          sync.Mutex
	createCalls []*domain.AnswerLog
}

func (m *answerLogRepoMock) Create(ctx context.Context, log *domain.AnswerLog) (*domain.AnswerLog, error) {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, log)
	m.mu.Unlock()
	if m.CreateFunc == nil {
		return log, nil
	}
	return m.CreateFunc(ctx, log)
}

func (m *answerLogRepoMock) ListRecent(ctx context.Context, userID, language string, limit int) ([]domain.AnswerLog, error) {
	if m.ListRecentFunc == nil {
		m.mu.Lock()
		defer m.mu.Unlock()
		var out []domain.AnswerLog
		for i := len(m.createCalls) - 1; i >= 0 && len(out) < limit; i-- {
			if l := m.createCalls[i]; l.UserID == userID && l.Language == language {
				out = append(out, *l)
			}
		}
		return out, nil
	}
	return m.ListRecentFunc(ctx, userID, language, limit)
}

func (m *answerLogRepoMock) CreateCalls() []*domain.AnswerLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.AnswerLog(nil), m.createCalls...)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc == nil {
		return fn(ctx)
	}
	return m.RunInTxFunc(ctx, fn)
}

// staticCatalog is a fixed in-memory wordCatalog.
type staticCatalog map[string][]domain.CatalogEntry

func (c staticCatalog) Supports(language string) bool {
	_, ok := c[language]
	return ok
}

func (c staticCatalog) Entries(language string) ([]domain.CatalogEntry, error) {
	entries, ok := c[language]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return entries, nil
}

func (c staticCatalog) Lookup(language, word string) (domain.CatalogEntry, bool) {
	for _, e := range c[language] {
		if e.Word == domain.NormalizeWord(word) {
			return e, true
		}
	}
	return domain.CatalogEntry{}, false
}

// memStore is a concurrency-safe progressRepo whose LockWord/transaction
// pairing mimics a per-word advisory lock held until commit.
type memStore struct {
	mu      sync.Mutex
	records map[string]domain.WordProgress
	locks   sync.Map // key -> *sync.Mutex
}

func newMemStore() *memStore {
	return &memStore{records: map[string]domain.WordProgress{}}
}

func memKey(userID, language, word string) string { return userID + "|" + language + "|" + word }

type heldLocksKey struct{}

func (s *memStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	var held []*sync.Mutex
	txCtx := context.WithValue(ctx, heldLocksKey{}, &held)
	defer func() {
		for _, l := range held {
			l.Unlock()
		}
	}()
	return fn(txCtx)
}

func (s *memStore) LockWord(ctx context.Context, userID, language, word string) error {
	v, _ := s.locks.LoadOrStore(memKey(userID, language, word), &sync.Mutex{})
	l := v.(*sync.Mutex)
	l.Lock()
	held := ctx.Value(heldLocksKey{}).(*[]*sync.Mutex)
	*held = append(*held, l)
	return nil
}

func (s *memStore) Get(_ context.Context, userID, language, word string) (*domain.WordProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[memKey(userID, language, word)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (s *memStore) ListByUser(_ context.Context, userID, language string) ([]domain.WordProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.WordProgress
	for _, rec := range s.records {
		if rec.UserID == userID && rec.Language == language {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *memStore) ListByStatus(ctx context.Context, userID, language string, status domain.WordStatus) ([]domain.WordProgress, error) {
	all, _ := s.ListByUser(ctx, userID, language)
	var out []domain.WordProgress
	for _, rec := range all {
		if rec.Status == status {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *memStore) CountByStatus(ctx context.Context, userID, language string) (domain.ProgressStats, error) {
	all, _ := s.ListByUser(ctx, userID, language)
	var stats domain.ProgressStats
	for _, rec := range all {
		switch rec.Status {
		case domain.StatusKnown:
			stats.Known++
		case domain.StatusLearning:
			stats.Learning++
		case domain.StatusWeak:
			stats.Weak++
		}
	}
	return stats, nil
}

func (s *memStore) Upsert(_ context.Context, p domain.WordProgress) (*domain.WordProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[memKey(p.UserID, p.Language, p.Word)] = p
	return &p, nil
}
