package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
	"github.com/heartmarshall/lingua-assistant-backend/internal/service/profile"
)

type profileService interface {
	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, input profile.UpdateProfileInput) (*domain.UserProfile, error)
}

// ProfileHandler serves learner profile endpoints.
type ProfileHandler struct {
	svc profileService
	log *slog.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(svc profileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{svc: svc, log: logger.With("handler", "profile")}
}

type profileResponse struct {
	UserID         string     `json:"userId"`
	DisplayName    string     `json:"displayName"`
	Level          string     `json:"level"`
	NativeLanguage string     `json:"nativeLanguage"`
	TargetLanguage string     `json:"targetLanguage"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

type updateProfileRequest struct {
	DisplayName    string `json:"displayName"`
	Level          string `json:"level"`
	NativeLanguage string `json:"nativeLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	p, err := h.svc.GetProfile(r.Context(), userID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

// Update handles PUT /api/profile.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.UpdateProfile(r.Context(), profile.UpdateProfileInput{
		UserID:         userID,
		DisplayName:    req.DisplayName,
		Level:          domain.CEFRLevel(req.Level),
		NativeLanguage: req.NativeLanguage,
		TargetLanguage: req.TargetLanguage,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

func toProfileResponse(p *domain.UserProfile) profileResponse {
	resp := profileResponse{
		UserID:         p.UserID,
		DisplayName:    p.DisplayName,
		Level:          p.Level.String(),
		NativeLanguage: p.NativeLanguage,
		TargetLanguage: p.TargetLanguage,
	}
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		resp.UpdatedAt = &t
	}
	return resp
}
