package rest

import (
	"context"
	"net/http"

	"github.com/heartmarshall/lingua-assistant-backend/internal/adapter/provider/tts"
	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
	"github.com/heartmarshall/lingua-assistant-backend/internal/service/chat"
	"github.com/heartmarshall/lingua-assistant-backend/internal/service/profile"
	"github.com/heartmarshall/lingua-assistant-backend/internal/service/speech"
	"github.com/heartmarshall/lingua-assistant-backend/internal/service/vocab"
	"github.com/heartmarshall/lingua-assistant-backend/internal/transport/middleware"
	"github.com/heartmarshall/lingua-assistant-backend/pkg/ctxutil"
)

var (
	_ vocabService   = &vocabServiceMock{}
	_ profileService = &profileServiceMock{}
	_ chatService    = &chatServiceMock{}
	_ speechService  = &speechServiceMock{}
)

type vocabServiceMock struct {
	RequestDailyWordsFunc func(ctx context.Context, input vocab.DailyWordsInput) (*vocab.DailyWordsResult, error)
	SubmitAnswerFunc      func(ctx context.Context, input vocab.SubmitAnswerInput) (*domain.WordProgress, error)
	GetProgressFunc       func(ctx context.Context, input vocab.ProgressInput) (*vocab.ProgressResult, error)
}

func (m *vocabServiceMock) RequestDailyWords(ctx context.Context, input vocab.DailyWordsInput) (*vocab.DailyWordsResult, error) {
	return m.RequestDailyWordsFunc(ctx, input)
}

func (m *vocabServiceMock) SubmitAnswer(ctx context.Context, input vocab.SubmitAnswerInput) (*domain.WordProgress, error) {
	return m.SubmitAnswerFunc(ctx, input)
}

func (m *vocabServiceMock) GetProgress(ctx context.Context, input vocab.ProgressInput) (*vocab.ProgressResult, error) {
	return m.GetProgressFunc(ctx, input)
}

type profileServiceMock struct {
	GetProfileFunc    func(ctx context.Context, userID string) (*domain.UserProfile, error)
	UpdateProfileFunc func(ctx context.Context, input profile.UpdateProfileInput) (*domain.UserProfile, error)
}

func (m *profileServiceMock) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return m.GetProfileFunc(ctx, userID)
}

func (m *profileServiceMock) UpdateProfile(ctx context.Context, input profile.UpdateProfileInput) (*domain.UserProfile, error) {
	return m.UpdateProfileFunc(ctx, input)
}

type chatServiceMock struct {
	SendMessageFunc  func(ctx context.Context, input chat.SendMessageInput) (*domain.ChatMessage, error)
	HistoryFunc      func(ctx context.Context, input chat.HistoryInput) ([]domain.ChatMessage, error)
	ClearHistoryFunc func(ctx context.Context, userID, language string) (int64, error)
}

func (m *chatServiceMock) SendMessage(ctx context.Context, input chat.SendMessageInput) (*domain.ChatMessage, error) {
	return m.SendMessageFunc(ctx, input)
}

func (m *chatServiceMock) History(ctx context.Context, input chat.HistoryInput) ([]domain.ChatMessage, error) {
	return m.HistoryFunc(ctx, input)
}

func (m *chatServiceMock) ClearHistory(ctx context.Context, userID, language string) (int64, error) {
	return m.ClearHistoryFunc(ctx, userID, language)
}

type speechServiceMock struct {
	SynthesizeFunc func(ctx context.Context, in speech.SynthesizeInput) (tts.Audio, error)
}

func (m *speechServiceMock) Synthesize(ctx context.Context, in speech.SynthesizeInput) (tts.Audio, error) {
	return m.SynthesizeFunc(ctx, in)
}

// fakeAuth authenticates every request carrying "Bearer ok" as alice.
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer ok" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(ctxutil.WithUserID(r.Context(), "alice")))
	})
}

var _ middleware.Middleware = fakeAuth
