package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Interview flow
	InterviewsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "preptera_interviews_started_total",
		Help: "The total number of interview sessions created.",
	})
	AnswersRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "preptera_answers_recorded_total",
		Help: "The total number of answers accepted.",
	})
	FeedbackGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "preptera_feedback_generated_total",
		Help: "The total number of feedback reports served.",
	})
	QuestionSets = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "preptera_question_sets_total",
		Help: "Question sets produced, by source (ai or fallback).",
	}, []string{"source"})

	// Sessions
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "preptera_sessions_active",
		Help: "The current number of sessions held in memory.",
	})
	SessionsReaped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "preptera_sessions_reaped_total",
		Help: "The total number of sessions deleted after feedback.",
	})

	// Upstream
	UpstreamCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "preptera_upstream_calls_total",
		Help: "Calls to the generation API, by operation and outcome.",
	}, []string{"operation", "outcome"})

	// Live channel
	LiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "preptera_live_connections_active",
		Help: "The current number of open live interview websockets.",
	})
)

// ObserveUpstream records the outcome of one generation call.
func ObserveUpstream(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	UpstreamCalls.WithLabelValues(operation, outcome).Inc()
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
