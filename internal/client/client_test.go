package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayanpandit/PrepTera/internal/frontend"
	catalogHandler "github.com/ayanpandit/PrepTera/internal/handler/catalog"
	interviewHandler "github.com/ayanpandit/PrepTera/internal/handler/interview"
	"github.com/ayanpandit/PrepTera/internal/model/catalog"
	"github.com/ayanpandit/PrepTera/internal/model/interview"
	"github.com/ayanpandit/PrepTera/internal/service/ai"
	interviewService "github.com/ayanpandit/PrepTera/internal/service/interview"
	"github.com/ayanpandit/PrepTera/internal/voice"
)

type twoQuestions struct{}

func (twoQuestions) Generate(context.Context, string, string, string) ai.QuestionSet {
	return ai.QuestionSet{Questions: []string{"Q1?", "Q2?"}, Source: ai.SourceAI}
}

type staticEvaluator struct{}

func (staticEvaluator) Generate(_ context.Context, s interview.Session) (string, error) {
	return "answered " + ai.FormatTranscript(s.Answers), nil
}

func (staticEvaluator) Stream(ctx context.Context, s interview.Session) (*schema.StreamReader[*schema.Message], error) {
	text, _ := staticEvaluator{}.Generate(ctx, s)
	return schema.StreamReaderFromArray([]*schema.Message{schema.AssistantMessage(text, nil)}), nil
}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	svc := interviewService.NewService(twoQuestions{}, staticEvaluator{}, interviewService.Options{CleanupDelay: time.Minute})
	t.Cleanup(svc.Close)

	r := chi.NewRouter()
	interviewHandler.New(svc, "test").RegisterRoutes(r)
	catalogHandler.New(catalog.Default()).RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientDrivesInterview(t *testing.T) {
	srv := newBackend(t)
	c := New(srv.URL+"/", nil)
	ctx := context.Background()

	require.NoError(t, c.Health(ctx))

	cat, err := c.Catalog(ctx)
	require.NoError(t, err)
	assert.Len(t, cat.Roles, 5)

	var _ frontend.API = c
	iv := &frontend.Interview{
		API:      c,
		Listener: voice.NewTextInput(strings.NewReader("one\n\ntwo\n\n")),
	}
	resp, err := iv.Run(ctx, interview.StartRequest{JobRole: "Software Engineer", Domain: "Fullstack Development", InterviewType: "Technical"})
	require.NoError(t, err)
	assert.Equal(t, "answered 1. Q: Q1?\nA: one\n\n2. Q: Q2?\nA: two", resp.Feedback)
	assert.Equal(t, 2, resp.SessionInfo.TotalQuestions)
}

func TestClientErrors(t *testing.T) {
	srv := newBackend(t)
	c := New(srv.URL, nil)
	ctx := context.Background()

	_, err := c.Start(ctx, interview.StartRequest{JobRole: "Software Engineer"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Missing required fields: jobRole, domain, interviewType", apiErr.Message)

	_, err = c.Answer(ctx, interview.AnswerRequest{SessionID: "gone", Answer: "hi"})
	assert.True(t, errors.Is(err, interview.ErrSessionNotFound))

	started, err := c.Start(ctx, interview.StartRequest{JobRole: "Software Engineer", Domain: "Fullstack Development", InterviewType: "Technical"})
	require.NoError(t, err)
	for _, a := range []string{"one", "two"} {
		_, err = c.Answer(ctx, interview.AnswerRequest{SessionID: started.SessionID, Answer: a})
		require.NoError(t, err)
	}
	_, err = c.Answer(ctx, interview.AnswerRequest{SessionID: started.SessionID, Answer: "three"})
	assert.True(t, errors.Is(err, interview.ErrSessionComplete))
}

func TestClientPlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := New(srv.URL, nil).Health(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "bad gateway", apiErr.Message)
}

func TestClientConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := New(url, nil).Health(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to server")
}
