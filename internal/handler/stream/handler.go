package stream

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	interviewHandler "github.com/ayanpandit/PrepTera/internal/handler/interview"
	"github.com/ayanpandit/PrepTera/internal/model/interview"
	interviewService "github.com/ayanpandit/PrepTera/internal/service/interview"
	"github.com/ayanpandit/PrepTera/pkg/utils"
)

// Handler streams interview feedback via Server-Sent Events.
type Handler struct {
	svc *interviewService.Service
}

// New creates a new stream handler.
func New(svc *interviewService.Service) *Handler {
	return &Handler{svc: svc}
}

// ChunkEvent carries one piece of feedback text.
type ChunkEvent struct {
	Content string `json:"content"`
}

// ErrorEvent reports a failure after the stream has started.
type ErrorEvent struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RegisterRoutes mounts GET /feedback/stream.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/feedback/stream", h.handleFeedbackStream)
}

func (h *Handler) handleFeedbackStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	sessionID := r.URL.Query().Get("sessionId")
	started := false
	begin := func() {
		if !started {
			utils.SetupSSEHeaders(w)
			w.WriteHeader(http.StatusOK)
			started = true
		}
	}

	resp, err := h.svc.StreamFeedback(r.Context(), sessionID, func(chunk string) error {
		begin()
		return utils.SendSSEEvent(w, flusher, "chunk", ChunkEvent{Content: chunk})
	})
	if err != nil {
		log.Printf("[stream] feedback stream for session=%s failed: %v", sessionID, err)
		if !started {
			// Nothing has been sent yet, so the plain JSON error contract still applies.
			interviewHandler.RespondServiceError(w, err, "Failed to generate feedback. Please try again.")
			return
		}
		_ = utils.SendSSEEvent(w, flusher, "error", ErrorEvent{
			Error:   "Failed to generate feedback. Please try again.",
			Details: err.Error(),
		})
		return
	}

	begin()
	_ = utils.SendSSEEvent(w, flusher, "done", interview.FeedbackResponse{
		Feedback:    resp.Feedback,
		SessionInfo: resp.SessionInfo,
	})
	log.Printf("[stream] completed feedback stream for session=%s", sessionID)
}
