package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

const defaultAnthropicMaxTokens = 2048

// AnthropicConfig configures the Anthropic messages adapter.
type AnthropicConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// AnthropicChatModel adapts the official Anthropic client to eino.
type AnthropicChatModel struct {
	client *anthropic.Client
	model  anthropic.Model
}

// NewAnthropicChatModel builds the adapter from cfg. SDK retries are disabled.
func NewAnthropicChatModel(cfg AnthropicConfig) *AnthropicChatModel {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey), option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	client := anthropic.NewClient(opts...)
	return &AnthropicChatModel{client: &client, model: anthropic.Model(cfg.Model)}
}

func (m *AnthropicChatModel) params(input []*schema.Message, opts []model.Option) anthropic.MessageNewParams {
	common, sampling := resolveOptions(opts)

	var (
		system   []anthropic.TextBlockParam
		messages []anthropic.MessageParam
	)
	for _, msg := range input {
		if msg == nil {
			continue
		}
		switch msg.Role {
		case schema.System:
			system = append(system, anthropic.TextBlockParam{Text: msg.Content})
		case schema.Assistant:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	maxTokens := int64(defaultAnthropicMaxTokens)
	if common.MaxTokens != nil {
		maxTokens = int64(*common.MaxTokens)
	}

	params := anthropic.MessageNewParams{
		Model:     m.model,
		Messages:  messages,
		MaxTokens: maxTokens,
	}
	if len(system) > 0 {
		params.System = system
	}
	if common.Temperature != nil {
		params.Temperature = anthropic.Float(float64(*common.Temperature))
	}
	if common.TopP != nil {
		params.TopP = anthropic.Float(float64(*common.TopP))
	}
	if sampling.TopK != nil {
		params.TopK = anthropic.Int(int64(*sampling.TopK))
	}
	return params
}

// Generate sends one Messages API request.
func (m *AnthropicChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	resp, err := m.client.Messages.New(ctx, m.params(input, opts))
	if err != nil {
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.AsText().Text)
		}
	}
	return schema.AssistantMessage(text.String(), nil), nil
}

// Stream forwards text deltas from the streaming Messages API.
func (m *AnthropicChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	stream := m.client.Messages.NewStreaming(ctx, m.params(input, opts))
	return pipeText[anthropic.MessageStreamEventUnion]("anthropic", stream, func(event anthropic.MessageStreamEventUnion) string {
		if event.Type != "content_block_delta" || event.Delta.Type != "text_delta" {
			return ""
		}
		return event.Delta.Text
	})
}
