package interview

import (
	"errors"
	"net/http"

	interviewService "github.com/ayanpandit/PrepTera/internal/service/interview"
	"github.com/ayanpandit/PrepTera/pkg/utils"
)

// Fallback messages for failures that are not caller mistakes.
const (
	msgStartFailed    = "Failed to start interview. Please try again."
	msgAnswerFailed   = "Failed to process answer"
	msgFeedbackFailed = "Failed to generate feedback. Please try again."
	msgDiscardFailed  = "Failed to discard session"
)

// Classify maps a service error onto a status and a user-facing message.
// details is set for server-side failures only; unknown errors use fallback.
func Classify(err error, fallback string) (status int, message, details string) {
	switch {
	case errors.Is(err, interviewService.ErrMissingFields):
		return http.StatusBadRequest, "Missing required fields: jobRole, domain, interviewType", ""
	case errors.Is(err, interviewService.ErrMissingAnswer):
		return http.StatusBadRequest, "Missing sessionId or answer", ""
	case errors.Is(err, interviewService.ErrMissingSession):
		return http.StatusBadRequest, "Missing sessionId", ""
	case errors.Is(err, interviewService.ErrSessionComplete):
		return http.StatusBadRequest, "Interview already complete. Please call /feedback.", ""
	case errors.Is(err, interviewService.ErrSessionNotFound):
		return http.StatusBadRequest, "Invalid or expired session", ""
	case errors.Is(err, interviewService.ErrUpstream):
		return http.StatusInternalServerError, msgFeedbackFailed, err.Error()
	default:
		return http.StatusInternalServerError, fallback, err.Error()
	}
}

// RespondServiceError writes err using the JSON error contract.
func RespondServiceError(w http.ResponseWriter, err error, fallback string) {
	status, message, details := Classify(err, fallback)
	if details == "" {
		utils.RespondError(w, status, message)
		return
	}
	utils.RespondErrorDetails(w, status, message, details)
}
