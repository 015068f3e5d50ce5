package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIConfig configures the OpenAI chat completions adapter.
type OpenAIConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// OpenAIChatModel adapts the official OpenAI client to eino.
type OpenAIChatModel struct {
	client *openai.Client
	model  string
}

// NewOpenAIChatModel builds the adapter from cfg. SDK retries are disabled.
func NewOpenAIChatModel(cfg OpenAIConfig) *OpenAIChatModel {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey), option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	client := openai.NewClient(opts...)
	return &OpenAIChatModel{client: &client, model: cfg.Model}
}

func (m *OpenAIChatModel) params(input []*schema.Message, opts []model.Option) openai.ChatCompletionNewParams {
	common, _ := resolveOptions(opts)

	var messages []openai.ChatCompletionMessageParamUnion
	for _, msg := range input {
		if msg == nil {
			continue
		}
		switch msg.Role {
		case schema.System:
			messages = append(messages, openai.SystemMessage(msg.Content))
		case schema.Assistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Messages: messages,
		Model:    m.model,
	}
	if common.Temperature != nil {
		params.Temperature = openai.Float(float64(*common.Temperature))
	}
	if common.TopP != nil {
		params.TopP = openai.Float(float64(*common.TopP))
	}
	if common.MaxTokens != nil {
		params.MaxCompletionTokens = openai.Int(int64(*common.MaxTokens))
	}
	return params
}

// Generate runs a non-streaming chat completion.
func (m *OpenAIChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	resp, err := m.client.Chat.Completions.New(ctx, m.params(input, opts))
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no choices returned")
	}

	return schema.AssistantMessage(resp.Choices[0].Message.Content, nil), nil
}

// Stream forwards completion deltas as they arrive.
func (m *OpenAIChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	stream := m.client.Chat.Completions.NewStreaming(ctx, m.params(input, opts))
	return pipeText[openai.ChatCompletionChunk]("openai", stream, func(chunk openai.ChatCompletionChunk) string {
		if len(chunk.Choices) == 0 {
			return ""
		}
		return chunk.Choices[0].Delta.Content
	})
}
