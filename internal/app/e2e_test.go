//go:build e2e

package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lingua-assistant-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lingua-assistant-backend/internal/adapter/postgres/answerlog"
	"github.com/heartmarshall/lingua-assistant-backend/internal/adapter/postgres/conversation"
	profilerepo "github.com/heartmarshall/lingua-assistant-backend/internal/adapter/postgres/profile"
	"github.com/heartmarshall/lingua-assistant-backend/internal/adapter/postgres/progress"
	"github.com/heartmarshall/lingua-assistant-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/lingua-assistant-backend/internal/auth"
	"github.com/heartmarshall/lingua-assistant-backend/internal/catalog"
	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
	"github.com/heartmarshall/lingua-assistant-backend/internal/service/chat"
	"github.com/heartmarshall/lingua-assistant-backend/internal/service/profile"
	"github.com/heartmarshall/lingua-assistant-backend/internal/service/speech"
	"github.com/heartmarshall/lingua-assistant-backend/internal/service/vocab"
	"github.com/heartmarshall/lingua-assistant-backend/internal/transport/middleware"
	"github.com/heartmarshall/lingua-assistant-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// Full-stack server backed by a real PostgreSQL container.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	UserID string
	jwt    *auth.JWTManager
}

type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// echoLLM answers every conversation with the last user turn.
type echoLLM struct{}

func (echoLLM) Complete(_ context.Context, _ string, history []domain.ChatMessage) (string, error) {
	return "echo: " + history[len(history)-1].Content, nil
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	cat, err := catalog.LoadEmbedded([]string{"en", "es"})
	require.NoError(t, err)
	languages := cat.Languages()

	txm := postgres.NewTxManager(pool, 3, logger)
	progressRepo := progress.New(pool)
	answerRepo := answerlog.New(pool)
	profileRepo := profilerepo.New(pool)
	conversationRepo := conversation.New(pool)

	vocabSvc := vocab.NewService(logger, progressRepo, answerRepo, cat, txm, domain.VocabConfig{
		DailyCount:  10,
		WeakQuota:   3,
		ReviewQuota: 2,
		Cooldown:    24 * time.Hour,
	}, nil)
	profileSvc := profile.NewService(logger, profileRepo, languages)
	chatSvc := chat.NewService(logger, profileRepo, conversationRepo, echoLLM{}, txm, chat.Config{
		HistoryLimit: 20,
		Languages:    languages,
	})
	speechSvc := speech.NewService(logger, disabledTTS{}, 500)

	jwtMgr := auth.NewJWTManager("test-secret-at-least-32-chars-long!!", "test-issuer", 15*time.Minute)
	userID := testhelper.UniqueUserID()
	authenticator := auth.NewAuthenticator(logger, jwtMgr, []string{userID})
	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	router := rest.NewRouter(rest.Handlers{
		Health:  rest.NewHealthHandler(pool, "test", languages...),
		Vocab:   rest.NewVocabHandler(vocabSvc, languages[0], logger),
		Profile: rest.NewProfileHandler(profileSvc, logger),
		Chat:    rest.NewChatHandler(chatSvc, logger),
		Speech:  rest.NewSpeechHandler(speechSvc, logger),
	}, rest.RouteMiddleware{
		Auth:      middleware.Auth(authenticator),
		ChatLimit: limiter.Limit("chat", 100),
		TTSLimit:  limiter.Limit("tts", 100),
	})

	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
	)(router)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: srv.Client(), UserID: userID, jwt: jwtMgr}
}

func (ts *testServer) token(t *testing.T, userID string) string {
	t.Helper()
	tok, err := ts.jwt.GenerateAccessToken(userID)
	require.NoError(t, err)
	return tok
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.ContentLength != 0 {
		_ = json.NewDecoder(resp.Body).Decode(&out)
	}
	return resp.StatusCode, out
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestE2E_Health(t *testing.T) {
	ts := setupTestServer(t)

	status, body := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestE2E_APIRequiresToken(t *testing.T) {
	ts := setupTestServer(t)

	status, _ := ts.do(t, http.MethodGet, "/api/vocab/daily", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestE2E_VocabFlow(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.token(t, ts.UserID)

	// Fresh user: every word is new, nothing is persisted yet.
	status, body := ts.do(t, http.MethodGet, "/api/vocab/daily?language=en", token, nil)
	require.Equal(t, http.StatusOK, status)
	words := body["words"].([]any)
	require.Len(t, words, 10)
	first := words[0].(map[string]any)
	assert.Equal(t, "New", first["status"])
	word := first["word"].(string)

	// Wrong answer moves a new word straight to weak.
	status, body = ts.do(t, http.MethodPost, "/api/vocab/answers", token, map[string]any{
		"language":  "en",
		"word":      word,
		"isCorrect": false,
	})
	require.Equal(t, http.StatusOK, status)
	rec := body["progress"].(map[string]any)
	assert.Equal(t, "Weak", rec["status"])
	assert.EqualValues(t, 1, rec["wrongCount"])

	// Three correct answers in a row promote it to known.
	for range 3 {
		status, body = ts.do(t, http.MethodPost, "/api/vocab/answers", token, map[string]any{
			"language":  "en",
			"word":      word,
			"isCorrect": true,
		})
		require.Equal(t, http.StatusOK, status)
	}
	rec = body["progress"].(map[string]any)
	assert.Equal(t, "Known", rec["status"])
	assert.EqualValues(t, 3, rec["correctStreak"])

	status, body = ts.do(t, http.MethodGet, "/api/vocab/progress?language=en", token, nil)
	require.Equal(t, http.StatusOK, status)
	stats := body["stats"].(map[string]any)
	assert.EqualValues(t, 1, stats["known"])
	assert.Len(t, body["recent"].([]any), 4)

	// Known words only fill in once new words run out.
	status, body = ts.do(t, http.MethodGet, "/api/vocab/daily?language=en", token, nil)
	require.Equal(t, http.StatusOK, status)
	for _, w := range body["words"].([]any) {
		assert.NotEqual(t, word, w.(map[string]any)["word"])
	}
}

func TestE2E_VocabValidation(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.token(t, ts.UserID)

	status, body := ts.do(t, http.MethodGet, "/api/vocab/daily?language=xx", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])

	status, body = ts.do(t, http.MethodPost, "/api/vocab/answers", token, map[string]any{
		"language": "en",
		"word":     "hello",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestE2E_ProfileAndChat(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.token(t, ts.UserID)

	status, body := ts.do(t, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "B1", body["level"])

	status, body = ts.do(t, http.MethodPut, "/api/profile", token, map[string]any{
		"displayName":    "Ana",
		"level":          "B1",
		"nativeLanguage": "pt",
		"targetLanguage": "es",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "es", body["targetLanguage"])

	// No language given: chat follows the profile's target language.
	status, body = ts.do(t, http.MethodPost, "/api/chat", token, map[string]any{"message": "hola"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "echo: hola", body["reply"])

	status, body = ts.do(t, http.MethodGet, "/api/chat/history?language=es", token, nil)
	require.Equal(t, http.StatusOK, status)
	msgs := body["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "user", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "assistant", msgs[1].(map[string]any)["role"])

	status, body = ts.do(t, http.MethodDelete, "/api/chat/history?language=es", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, body["deleted"])
}

func TestE2E_SpeechDisabled(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.token(t, ts.UserID)

	status, body := ts.do(t, http.MethodPost, "/api/tts", token, map[string]any{"text": "hello"})
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "UNAVAILABLE", body["code"])
}
