package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const geminiReply = `{"candidates":[{"content":{"role":"model","parts":[{"text":%q}]},"finishReason":"STOP","index":0}]}`

// fakeGemini serves generateContent and streamGenerateContent and records the
// last request body.
func fakeGemini(t *testing.T, chunks ...string) (*httptest.Server, *map[string]any) {
	t.Helper()
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "models/gemini-2.0-flash")
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		if strings.HasSuffix(r.URL.Path, ":streamGenerateContent") {
			w.Header().Set("Content-Type", "text/event-stream")
			for _, c := range chunks {
				fmt.Fprintf(w, "data: "+geminiReply+"\r\n\r\n", c)
			}
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, geminiReply, strings.Join(chunks, ""))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func newTestGemini(t *testing.T, baseURL string) model.BaseChatModel {
	t.Helper()
	m, err := NewGeminiChatModel(context.Background(), GeminiConfig{
		APIKey:  "secret",
		Model:   "gemini-2.0-flash",
		BaseURL: baseURL,
		TopK:    40,
	})
	require.NoError(t, err)
	return m
}

func TestGeminiGenerate(t *testing.T) {
	srv, got := fakeGemini(t, "1. Hello world")
	m := newTestGemini(t, srv.URL)

	msg, err := m.Generate(context.Background(),
		[]*schema.Message{schema.SystemMessage("be brief"), schema.UserMessage("hi")},
		model.WithTemperature(0.7), model.WithTopP(0.95), model.WithMaxTokens(1024))
	require.NoError(t, err)
	assert.Equal(t, "1. Hello world", msg.Content)

	body, err := json.Marshal(*got)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"hi"`)

	genCfg, ok := (*got)["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig missing: %s", body)
	assert.EqualValues(t, 40, genCfg["topK"])
	assert.EqualValues(t, 1024, genCfg["maxOutputTokens"])
	assert.InDelta(t, 0.7, genCfg["temperature"], 1e-6)
}

func TestGeminiStreamDeliversEachChunk(t *testing.T) {
	srv, _ := fakeGemini(t, "Strong ", "answers.")
	m := newTestGemini(t, srv.URL)

	sr, err := m.Stream(context.Background(), []*schema.Message{schema.UserMessage("evaluate")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Strong ", "answers."}, readChunks(t, sr))
}

func TestGeminiGenerateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"quota","status":"INVALID_ARGUMENT"}}`))
	}))
	defer srv.Close()

	m := newTestGemini(t, srv.URL)
	_, err := m.Generate(context.Background(), []*schema.Message{schema.UserMessage("hi")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota")
}

func TestNewGeminiChatModelValidates(t *testing.T) {
	_, err := NewGeminiChatModel(context.Background(), GeminiConfig{Model: "m"})
	assert.Error(t, err)
	_, err = NewGeminiChatModel(context.Background(), GeminiConfig{APIKey: "k"})
	assert.Error(t, err)
}
