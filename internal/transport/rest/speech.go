package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/lingua-assistant-backend/internal/adapter/provider/tts"
	"github.com/heartmarshall/lingua-assistant-backend/internal/service/speech"
)

type speechService interface {
	Synthesize(ctx context.Context, in speech.SynthesizeInput) (tts.Audio, error)
}

// SpeechHandler serves text-to-speech.
type SpeechHandler struct {
	svc speechService
	log *slog.Logger
}

// NewSpeechHandler creates a SpeechHandler.
func NewSpeechHandler(svc speechService, logger *slog.Logger) *SpeechHandler {
	return &SpeechHandler{svc: svc, log: logger.With("handler", "speech")}
}

type synthesizeRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

// Synthesize handles POST /api/tts and streams back the audio.
func (h *SpeechHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req synthesizeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	audio, err := h.svc.Synthesize(r.Context(), speech.SynthesizeInput{
		UserID: userID,
		Text:   req.Text,
		Voice:  req.Voice,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.Header().Set("Content-Type", audio.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(audio.Data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(audio.Data) //nolint:errcheck
}
