package ai

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"

	"github.com/ayanpandit/PrepTera/internal/config"
)

// NewChatModel builds the chat model for the configured provider.
func NewChatModel(ctx context.Context, cfg config.AIConfig) (model.BaseChatModel, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("credentials for AI provider %q are not configured", cfg.Provider)
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case config.ProviderGemini:
		geminiModel, err := NewGeminiChatModel(ctx, GeminiConfig{
			APIKey:     cfg.GeminiAPIKey,
			Model:      cfg.GeminiModel,
			BaseURL:    cfg.GeminiBaseURL,
			TopK:       cfg.GeminiTopK,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, err
		}
		return geminiModel, nil
	case config.ProviderArk:
		arkModel, err := ark.NewChatModel(ctx, arkConfig(cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to create ark chat model: %w", err)
		}
		return arkModel, nil
	case config.ProviderOpenAI:
		return NewOpenAIChatModel(OpenAIConfig{
			APIKey:     cfg.OpenAIAPIKey,
			Model:      cfg.OpenAIModel,
			BaseURL:    cfg.OpenAIBaseURL,
			HTTPClient: httpClient,
		}), nil
	case config.ProviderAnthropic:
		return NewAnthropicChatModel(AnthropicConfig{
			APIKey:     cfg.AnthropicAPIKey,
			Model:      cfg.AnthropicModel,
			HTTPClient: httpClient,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider %q", cfg.Provider)
	}
}

// arkConfig maps cfg onto the Ark client settings. Retries are disabled so a
// failed call surfaces immediately.
func arkConfig(cfg config.AIConfig) *ark.ChatModelConfig {
	timeout := cfg.Timeout
	retries := 0
	return &ark.ChatModelConfig{
		BaseURL:    cfg.ArkBaseURL,
		Region:     cfg.ArkRegion,
		APIKey:     cfg.ArkAPIKey,
		AccessKey:  cfg.ArkAccessKey,
		SecretKey:  cfg.ArkSecretKey,
		Model:      cfg.ArkModel,
		Timeout:    &timeout,
		RetryTimes: &retries,
	}
}
