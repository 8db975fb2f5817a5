package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
	"github.com/heartmarshall/lingua-assistant-backend/internal/service/vocab"
)

type vocabService interface {
	RequestDailyWords(ctx context.Context, input vocab.DailyWordsInput) (*vocab.DailyWordsResult, error)
	SubmitAnswer(ctx context.Context, input vocab.SubmitAnswerInput) (*domain.WordProgress, error)
	GetProgress(ctx context.Context, input vocab.ProgressInput) (*vocab.ProgressResult, error)
}

// VocabHandler serves vocabulary practice endpoints.
type VocabHandler struct {
	svc             vocabService
	defaultLanguage string
	log             *slog.Logger
}

// NewVocabHandler creates a VocabHandler. defaultLanguage is used when a
// request does not name one.
func NewVocabHandler(svc vocabService, defaultLanguage string, logger *slog.Logger) *VocabHandler {
	return &VocabHandler{svc: svc, defaultLanguage: defaultLanguage, log: logger.With("handler", "vocab")}
}

type dailyWordResponse struct {
	Word          string     `json:"word"`
	Status        string     `json:"status"`
	CorrectStreak int        `json:"correctStreak"`
	WrongCount    int        `json:"wrongCount"`
	LastSeen      *time.Time `json:"lastSeen"`
	Level         string     `json:"level"`
	Tags          []string   `json:"tags"`
}

type statsResponse struct {
	Known    int `json:"known"`
	Learning int `json:"learning"`
	Weak     int `json:"weak"`
	Total    int `json:"total"`
}

type dailyWordsResponse struct {
	Language string              `json:"language"`
	Topic    string              `json:"topic,omitempty"`
	Words    []dailyWordResponse `json:"words"`
	Stats    statsResponse       `json:"stats"`
}

type progressRecordResponse struct {
	Word          string     `json:"word"`
	Status        string     `json:"status"`
	CorrectStreak int        `json:"correctStreak"`
	WrongCount    int        `json:"wrongCount"`
	LastSeen      *time.Time `json:"lastSeen"`
}

type answerLogResponse struct {
	Word       string    `json:"word"`
	IsCorrect  bool      `json:"isCorrect"`
	PrevStatus string    `json:"prevStatus"`
	NewStatus  string    `json:"newStatus"`
	AnsweredAt time.Time `json:"answeredAt"`
}

type progressResponse struct {
	Language string                   `json:"language"`
	Records  []progressRecordResponse `json:"records"`
	Stats    statsResponse            `json:"stats"`
	Recent   []answerLogResponse      `json:"recent"`
}

type submitAnswerRequest struct {
	Language  string `json:"language"`
	Word      string `json:"word"`
	IsCorrect *bool  `json:"isCorrect"`
}

type submitAnswerResponse struct {
	Success  bool                   `json:"success"`
	Progress progressRecordResponse `json:"progress"`
}

func (h *VocabHandler) language(raw string) string {
	if raw == "" {
		return h.defaultLanguage
	}
	return raw
}

// Daily handles GET /api/vocab/daily.
func (h *VocabHandler) Daily(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()

	result, err := h.svc.RequestDailyWords(r.Context(), vocab.DailyWordsInput{
		UserID:   userID,
		Language: h.language(q.Get("language")),
		Topic:    q.Get("topic"),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := dailyWordsResponse{
		Language: result.Language,
		Topic:    result.Topic,
		Words:    make([]dailyWordResponse, 0, len(result.Words)),
		Stats:    toStatsResponse(result.Stats),
	}
	for _, dw := range result.Words {
		tags := dw.Entry.Tags
		if tags == nil {
			tags = []string{}
		}
		resp.Words = append(resp.Words, dailyWordResponse{
			Word:          dw.Entry.Word,
			Status:        dw.Progress.Status.String(),
			CorrectStreak: dw.Progress.CorrectStreak,
			WrongCount:    dw.Progress.WrongCount,
			LastSeen:      dw.Progress.LastSeen,
			Level:         dw.Entry.Level.String(),
			Tags:          tags,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// SubmitAnswer handles POST /api/vocab/answers.
func (h *VocabHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req submitAnswerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.IsCorrect == nil {
		handleError(h.log, w, r, domain.NewValidationError("isCorrect", "required"))
		return
	}

	rec, err := h.svc.SubmitAnswer(r.Context(), vocab.SubmitAnswerInput{
		UserID:    userID,
		Language:  h.language(req.Language),
		Word:      req.Word,
		IsCorrect: *req.IsCorrect,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, submitAnswerResponse{Success: true, Progress: toProgressRecord(*rec)})
}

// Progress handles GET /api/vocab/progress.
func (h *VocabHandler) Progress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()

	result, err := h.svc.GetProgress(r.Context(), vocab.ProgressInput{
		UserID:   userID,
		Language: h.language(q.Get("language")),
		Status:   q.Get("status"),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := progressResponse{
		Language: result.Language,
		Records:  make([]progressRecordResponse, 0, len(result.Records)),
		Stats:    toStatsResponse(result.Stats),
		Recent:   make([]answerLogResponse, 0, len(result.Recent)),
	}
	for _, rec := range result.Records {
		resp.Records = append(resp.Records, toProgressRecord(rec))
	}
	for _, a := range result.Recent {
		resp.Recent = append(resp.Recent, answerLogResponse{
			Word:       a.Word,
			IsCorrect:  a.IsCorrect,
			PrevStatus: a.PrevStatus.String(),
			NewStatus:  a.NewStatus.String(),
			AnsweredAt: a.AnsweredAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func toStatsResponse(s domain.ProgressStats) statsResponse {
	return statsResponse{Known: s.Known, Learning: s.Learning, Weak: s.Weak, Total: s.Total()}
}

func toProgressRecord(p domain.WordProgress) progressRecordResponse {
	return progressRecordResponse{
		Word:          p.Word,
		Status:        p.Status.String(),
		CorrectStreak: p.CorrectStreak,
		WrongCount:    p.WrongCount,
		LastSeen:      p.LastSeen,
	}
}
