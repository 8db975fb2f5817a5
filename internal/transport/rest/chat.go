package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
	"github.com/heartmarshall/lingua-assistant-backend/internal/service/chat"
)

type chatService interface {
	SendMessage(ctx context.Context, input chat.SendMessageInput) (*domain.ChatMessage, error)
	History(ctx context.Context, input chat.HistoryInput) ([]domain.ChatMessage, error)
	ClearHistory(ctx context.Context, userID, language string) (int64, error)
}

// ChatHandler serves tutor chat endpoints.
type ChatHandler struct {
	svc chatService
	log *slog.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(svc chatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, log: logger.With("handler", "chat")}
}

type sendMessageRequest struct {
	Message  string `json:"message"`
	Language string `json:"language"`
}

type chatMessageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"createdAt"`
}

type sendMessageResponse struct {
	Reply   string              `json:"reply"`
	Message chatMessageResponse `json:"message"`
}

type historyResponse struct {
	Messages []chatMessageResponse `json:"messages"`
}

// Send handles POST /api/chat.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.svc.SendMessage(r.Context(), chat.SendMessageInput{
		UserID:   userID,
		Language: req.Language,
		Message:  req.Message,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sendMessageResponse{Reply: reply.Content, Message: toChatMessageResponse(*reply)})
}

// History handles GET /api/chat/history.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()

	var limit int
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			handleError(h.log, w, r, domain.NewValidationError("limit", "must be an integer"))
			return
		}
		limit = n
	}

	msgs, err := h.svc.History(r.Context(), chat.HistoryInput{
		UserID:   userID,
		Language: q.Get("language"),
		Limit:    limit,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := historyResponse{Messages: make([]chatMessageResponse, 0, len(msgs))}
	for _, m := range msgs {
		resp.Messages = append(resp.Messages, toChatMessageResponse(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Clear handles DELETE /api/chat/history.
func (h *ChatHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	n, err := h.svc.ClearHistory(r.Context(), userID, r.URL.Query().Get("language"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

func toChatMessageResponse(m domain.ChatMessage) chatMessageResponse {
	return chatMessageResponse{
		ID:        m.ID.String(),
		Role:      string(m.Role),
		Content:   m.Content,
		Language:  m.Language,
		CreatedAt: m.CreatedAt,
	}
}
