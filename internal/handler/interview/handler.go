package interview

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ayanpandit/PrepTera/internal/model/interview"
	interviewService "github.com/ayanpandit/PrepTera/internal/service/interview"
	"github.com/ayanpandit/PrepTera/pkg/utils"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// Handler serves the interview JSON API.
type Handler struct {
	svc         *interviewService.Service
	environment string
	now         func() time.Time
}

// New creates the interview handler.
func New(svc *interviewService.Service, environment string) *Handler {
	return &Handler{
		svc:         svc,
		environment: environment,
		now:         time.Now,
	}
}

// RegisterRoutes mounts the interview endpoints on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleRoot)
	r.Get("/health", h.handleHealth)
	r.Post("/start", h.handleStart)
	r.Post("/answer", h.handleAnswer)
	r.Post("/feedback", h.handleFeedback)
	r.Delete("/session/{sessionID}", h.handleDiscard)
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":      "PrepTera Backend API",
		"version":     Version,
		"timestamp":   h.now().UTC().Format(time.RFC3339Nano),
		"environment": h.environment,
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": h.now().UTC().Format(time.RFC3339Nano),
	})
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	var payload interview.StartRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.svc.Start(r.Context(), payload)
	if err != nil {
		log.Printf("[interview] start failed: %v", err)
		RespondServiceError(w, err, msgStartFailed)
		return
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var payload interview.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.svc.Answer(r.Context(), payload)
	if err != nil {
		RespondServiceError(w, err, msgAnswerFailed)
		return
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var payload interview.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.svc.Feedback(r.Context(), payload.SessionID)
	if err != nil {
		RespondServiceError(w, err, msgFeedbackFailed)
		return
	}

	log.Printf("[interview] generated feedback for session=%s", payload.SessionID)
	utils.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleDiscard(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := h.svc.Discard(r.Context(), sessionID); err != nil {
		RespondServiceError(w, err, msgDiscardFailed)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
