package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ayanpandit/PrepTera/internal/config"
	catalogModel "github.com/ayanpandit/PrepTera/internal/model/catalog"
	"github.com/ayanpandit/PrepTera/internal/service/ai"
	interviewService "github.com/ayanpandit/PrepTera/internal/service/interview"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	questions, err := ai.NewQuestionGenerator(context.Background(), nil, 10, config.GenerationParams{})
	if err != nil {
		t.Fatalf("NewQuestionGenerator err: %v", err)
	}
	svc := interviewService.NewService(questions, nil, interviewService.Options{CleanupDelay: time.Minute})
	t.Cleanup(svc.Close)

	cfg := config.ServerConfig{AllowedOrigins: []string{"http://localhost:5173"}, Environment: "test"}
	return NewRouter(cfg, svc, catalogModel.Default())
}

func TestRouterServesEndpoints(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/", "/health", "/catalog", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, resp.Code)
		}
	}
}

func TestRouterStartUsesFallbackWithoutModel(t *testing.T) {
	r := newTestRouter(t)

	body := `{"jobRole":"Software Engineer","domain":"Technology","interviewType":"Technical"}`
	req := httptest.NewRequest(http.MethodPost, "/start", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"totalQuestions":10`) ||
		!strings.Contains(resp.Body.String(), "Tell me about yourself and your background.") {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/start", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
	if !strings.Contains(resp.Header().Get("Access-Control-Allow-Methods"), http.MethodPost) {
		t.Fatalf("unexpected allow-methods %q", resp.Header().Get("Access-Control-Allow-Methods"))
	}
}
