package chat

import (
	"context"
	"sync"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

var (
	_ profileRepo      = &profileRepoMock{}
	_ conversationRepo = &conversationRepoMock{}
	_ llmClient        = &llmClientMock{}
	_ txManager        = &txManagerMock{}
)

type profileRepoMock struct {
	GetFunc func(ctx context.Context, userID string) (*domain.UserProfile, error)
}

func (mock *profileRepoMock) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if mock.GetFunc == nil {
		return nil, domain.ErrNotFound
	}
	return mock.GetFunc(ctx, userID)
}

type conversationRepoMock struct {
	AppendFunc     func(ctx context.Context, msgs ...domain.ChatMessage) error
	ListRecentFunc func(ctx context.Context, userID, language string, limit int) ([]domain.ChatMessage, error)
	DeleteAllFunc  func(ctx context.Context, userID, language string) (int64, error)

	calls struct {
		Append []struct {
			Ctx  context.Context
			Msgs []domain.ChatMessage
		}
		ListRecent []struct {
			UserID   string
			Language string
			Limit    int
		}
	}
	lockAppend     sync.RWMutex
	lockListRecent sync.RWMutex
}

func (mock *conversationRepoMock) Append(ctx context.Context, msgs ...domain.ChatMessage) error {
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, struct {
		Ctx  context.Context
		Msgs []domain.ChatMessage
	}{Ctx: ctx, Msgs: msgs})
	mock.lockAppend.Unlock()
	if mock.AppendFunc == nil {
		return nil
	}
	return mock.AppendFunc(ctx, msgs...)
}

func (mock *conversationRepoMock) AppendCalls() []struct {
	Ctx  context.Context
	Msgs []domain.ChatMessage
} {
	mock.lockAppend.RLock()
	defer mock.lockAppend.RUnlock()
	return mock.calls.Append
}

func (mock *conversationRepoMock) ListRecent(ctx context.Context, userID, language string, limit int) ([]domain.ChatMessage, error) {
	mock.lockListRecent.Lock()
	mock.calls.ListRecent = append(mock.calls.ListRecent, struct {
		UserID   string
		Language string
		Limit    int
	}{UserID: userID, Language: language, Limit: limit})
	mock.lockListRecent.Unlock()
	if mock.ListRecentFunc == nil {
		return nil, nil
	}
	return mock.ListRecentFunc(ctx, userID, language, limit)
}

func (mock *conversationRepoMock) ListRecentCalls() []struct {
	UserID   string
	Language string
	Limit    int
} {
	mock.lockListRecent.RLock()
	defer mock.lockListRecent.RUnlock()
	return mock.calls.ListRecent
}

func (mock *conversationRepoMock) DeleteAll(ctx context.Context, userID, language string) (int64, error) {
	if mock.DeleteAllFunc == nil {
		panic("conversationRepoMock.DeleteAllFunc: method is nil but conversationRepo.DeleteAll was just called")
	}
	return mock.DeleteAllFunc(ctx, userID, language)
}

type llmClientMock struct {
	CompleteFunc func(ctx context.Context, system string, history []domain.ChatMessage) (string, error)

	calls struct {
		Complete []struct {
			System  string
			History []domain.ChatMessage
		}
	}
	lockComplete sync.RWMutex
}

func (mock *llmClientMock) Complete(ctx context.Context, system string, history []domain.ChatMessage) (string, error) {
	if mock.CompleteFunc == nil {
		panic("llmClientMock.CompleteFunc: method is nil but llmClient.Complete was just called")
	}
	mock.lockComplete.Lock()
	mock.calls.Complete = append(mock.calls.Complete, struct {
		System  string
		History []domain.ChatMessage
	}{System: system, History: history})
	mock.lockComplete.Unlock()
	return mock.CompleteFunc(ctx, system, history)
}

func (mock *llmClientMock) CompleteCalls() []struct {
	System  string
	History []domain.ChatMessage
} {
	mock.lockComplete.RLock()
	defer mock.lockComplete.RUnlock()
	return mock.calls.Complete
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		return fn(ctx)
	}
	return mock.RunInTxFunc(ctx, fn)
}
