package rest

import (
	"net/http"

	"github.com/heartmarshall/lingua-assistant-backend/internal/transport/middleware"
)

// Handlers groups the endpoint handlers served by the router.
type Handlers struct {
	Health  *HealthHandler
	Vocab   *VocabHandler
	Profile *ProfileHandler
	Chat    *ChatHandler
	Speech  *SpeechHandler
}

// RouteMiddleware holds middleware applied to parts of the API.
// Auth wraps every /api route; the limits wrap the routes that call paid
// upstream APIs. A nil limit leaves its route unlimited.
type RouteMiddleware struct {
	Auth      middleware.Middleware
	ChatLimit middleware.Middleware
	TTSLimit  middleware.Middleware
}

// NewRouter registers all routes.
func NewRouter(h Handlers, mw RouteMiddleware) *http.ServeMux {
	api := http.NewServeMux()

	api.HandleFunc("GET /api/vocab/daily", h.Vocab.Daily)
	api.HandleFunc("POST /api/vocab/answers", h.Vocab.SubmitAnswer)
	api.HandleFunc("GET /api/vocab/progress", h.Vocab.Progress)

	api.HandleFunc("GET /api/profile", h.Profile.Get)
	api.HandleFunc("PUT /api/profile", h.Profile.Update)

	api.Handle("POST /api/chat", middleware.Chain(mw.ChatLimit)(http.HandlerFunc(h.Chat.Send)))
	api.HandleFunc("GET /api/chat/history", h.Chat.History)
	api.HandleFunc("DELETE /api/chat/history", h.Chat.Clear)

	api.Handle("POST /api/tts", middleware.Chain(mw.TTSLimit)(http.HandlerFunc(h.Speech.Synthesize)))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.Handle("/api/", mw.Auth(api))
	return mux
}
