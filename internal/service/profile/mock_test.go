package profile

import (
	"context"
	"sync"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

var _ profileRepo = &profileRepoMock{}

type profileRepoMock struct {
	GetFunc    func(ctx context.Context, userID string) (*domain.UserProfile, error)
	UpsertFunc func(ctx context.Context, p domain.UserProfile) (*domain.UserProfile, error)

	calls struct {
		Get []struct {
			Ctx    context.Context
			UserID string
		}
		Upsert []struct {
			Ctx context.Context
			P   domain.UserProfile
		}
	}
	lockGet    sync.RWMutex
	lockUpsert sync.RWMutex
}

func (mock *profileRepoMock) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if mock.GetFunc == nil {
		panic("profileRepoMock.GetFunc: method is nil but profileRepo.Get was just called")
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, struct {
		Ctx    context.Context
		UserID string
	}{Ctx: ctx, UserID: userID})
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, userID)
}

func (mock *profileRepoMock) GetCalls() []struct {
	Ctx    context.Context
	UserID string
} {
	mock.lockGet.RLock()
	defer mock.lockGet.RUnlock()
	return mock.calls.Get
}

func (mock *profileRepoMock) Upsert(ctx context.Context, p domain.UserProfile) (*domain.UserProfile, error) {
	if mock.UpsertFunc == nil {
		panic("profileRepoMock.UpsertFunc: method is nil but profileRepo.Upsert was just called")
	}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, struct {
		Ctx context.Context
		P   domain.UserProfile
	}{Ctx: ctx, P: p})
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, p)
}

func (mock *profileRepoMock) UpsertCalls() []struct {
	Ctx context.Context
	P   domain.UserProfile
} {
	mock.lockUpsert.RLock()
	defer mock.lockUpsert.RUnlock()
	return mock.calls.Upsert
}
