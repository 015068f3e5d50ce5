package interview

import (
	"errors"

	"github.com/ayanpandit/PrepTera/internal/model/interview"
	"github.com/ayanpandit/PrepTera/internal/service/ai"
)

var (
	ErrMissingFields  = errors.New("missing required fields: jobRole, domain, interviewType")
	ErrMissingAnswer  = errors.New("missing sessionId or answer")
	ErrMissingSession = errors.New("missing sessionId")

	ErrSessionNotFound = interview.ErrSessionNotFound
	ErrSessionComplete = interview.ErrSessionComplete
	ErrUpstream        = ai.ErrUpstream
)
