package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayanpandit/PrepTera/internal/config"
)

const openAIChunk = `{"id":"c1","object":"chat.completion.chunk","created":1,"model":"gpt-4o-mini","choices":[{"index":0,"delta":{"content":%q},"finish_reason":null}]}`

// fakeOpenAI answers chat completions with content, streamed as one event per
// element when the request asks for a stream.
func fakeOpenAI(t *testing.T, content ...string) (*httptest.Server, *map[string]any) {
	t.Helper()
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		if got["stream"] == true {
			w.Header().Set("Content-Type", "text/event-stream")
			for _, c := range content {
				fmt.Fprintf(w, "data: "+openAIChunk+"\n\n", c)
			}
			fmt.Fprint(w, "data: [DONE]\n\n")
			return
		}

		text := ""
		for _, c := range content {
			text += c
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":[{"index":0,"message":{"role":"assistant","content":%q},"finish_reason":"stop"}]}`, text)
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func newTestOpenAI(baseURL string) *OpenAIChatModel {
	return NewOpenAIChatModel(OpenAIConfig{APIKey: "secret", Model: "gpt-4o-mini", BaseURL: baseURL})
}

func TestOpenAIGenerateMapsMessagesAndParams(t *testing.T) {
	srv, got := fakeOpenAI(t, "1. Tell me about yourself")
	m := newTestOpenAI(srv.URL)

	msg, err := m.Generate(context.Background(),
		[]*schema.Message{
			schema.SystemMessage("be brief"),
			schema.UserMessage("hi"),
			schema.AssistantMessage("hello", nil),
			schema.UserMessage("questions please"),
		},
		model.WithTemperature(0.7), model.WithTopP(0.95), model.WithMaxTokens(1024), WithTopK(40))
	require.NoError(t, err)
	assert.Equal(t, "1. Tell me about yourself", msg.Content)

	body := *got
	assert.Equal(t, "gpt-4o-mini", body["model"])
	assert.InDelta(t, 0.7, body["temperature"], 1e-6)
	assert.InDelta(t, 0.95, body["top_p"], 1e-6)
	assert.EqualValues(t, 1024, body["max_completion_tokens"])
	assert.NotContains(t, body, "top_k")

	messages, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 4)
	var roles []string
	for _, raw := range messages {
		roles = append(roles, raw.(map[string]any)["role"].(string))
	}
	assert.Equal(t, []string{"system", "user", "assistant", "user"}, roles)
}

func TestOpenAIGenerateWrapsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"bad model","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	m := newTestOpenAI(srv.URL)
	_, err := m.Generate(context.Background(), []*schema.Message{schema.UserMessage("hi")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai api error")

	_, err = m.Stream(context.Background(), []*schema.Message{schema.UserMessage("hi")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai api error")
}

func TestOpenAIStreamDeliversDeltas(t *testing.T) {
	srv, got := fakeOpenAI(t, "Good ", "structure, ", "clear examples.")
	m := newTestOpenAI(srv.URL)

	sr, err := m.Stream(context.Background(), []*schema.Message{schema.UserMessage("evaluate")}, model.WithMaxTokens(2048))
	require.NoError(t, err)
	assert.Equal(t, []string{"Good ", "structure, ", "clear examples."}, readChunks(t, sr))
	assert.Equal(t, true, (*got)["stream"])
}

func TestFeedbackStreamIsIncremental(t *testing.T) {
	srv, _ := fakeOpenAI(t, "Overall: solid. ", "Rating: 8/10")

	gen, err := NewFeedbackGenerator(context.Background(), newTestOpenAI(srv.URL), config.GenerationParams{Temperature: 0.3, TopK: 40, TopP: 0.95, MaxTokens: 2048})
	require.NoError(t, err)

	sr, err := gen.Stream(context.Background(), answeredSession())
	require.NoError(t, err)
	assert.Equal(t, []string{"Overall: solid. ", "Rating: 8/10"}, readChunks(t, sr))
}
