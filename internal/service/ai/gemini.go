package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"
)

// GeminiConfig configures the Gemini chat model.
type GeminiConfig struct {
	APIKey     string
	Model      string
	// BaseURL overrides the Gemini API endpoint; empty uses the SDK default.
	BaseURL    string
	TopK       int
	HTTPClient *http.Client
}

// NewGeminiChatModel builds an eino chat model backed by the genai client.
func NewGeminiChatModel(ctx context.Context, cfg GeminiConfig) (*gemini.ChatModel, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("gemini model is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	modelCfg := &gemini.Config{
		Client: client,
		Model:  cfg.Model,
	}
	if cfg.TopK > 0 {
		topK := int32(cfg.TopK)
		modelCfg.TopK = &topK
	}

	chatModel, err := gemini.NewChatModel(ctx, modelCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini chat model: %w", err)
	}
	return chatModel, nil
}
