package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported upstream providers.
const (
	ProviderGemini    = "gemini"
	ProviderArk       = "ark"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config aggregates every setting of the service and its client.
type Config struct {
	Server    ServerConfig
	AI        AIConfig
	Interview InterviewConfig
	Client    ClientConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	interview, err := loadInterviewConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:    server,
		AI:        ai,
		Interview: interview,
		Client:    loadClientConfig(),
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
	Environment    string
}

var defaultAllowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "3000"
	}

	var addr string
	switch {
	case strings.Contains(port, ":"):
		// ":3000" and "127.0.0.1:3000" are accepted as-is.
		addr = port
	case strings.Contains(port, " "):
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	default:
		addr = ":" + port
	}

	origins := parseList(os.Getenv("ALLOWED_ORIGINS"))
	if len(origins) == 0 {
		origins = append([]string(nil), defaultAllowedOrigins...)
	}

	return ServerConfig{
		Addr:           addr,
		AllowedOrigins: origins,
		Environment:    getEnvOrDefault("APP_ENV", "development"),
	}, nil
}

// AIConfig selects and configures the upstream generation provider.
type AIConfig struct {
	Provider string
	Timeout  time.Duration

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	GeminiTopK    int

	ArkAPIKey    string
	ArkAccessKey string
	ArkSecretKey string
	ArkModel     string
	ArkBaseURL   string
	ArkRegion    string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	AnthropicAPIKey string
	AnthropicModel  string
}

// Enabled reports whether credentials for the selected provider are present.
func (c AIConfig) Enabled() bool {
	switch c.Provider {
	case ProviderGemini:
		return c.GeminiAPIKey != ""
	case ProviderArk:
		return c.ArkModel != "" && (c.ArkAPIKey != "" || (c.ArkAccessKey != "" && c.ArkSecretKey != ""))
	case ProviderOpenAI:
		return c.OpenAIAPIKey != ""
	case ProviderAnthropic:
		return c.AnthropicAPIKey != ""
	default:
		return false
	}
}

func loadAIConfig() (AIConfig, error) {
	provider := strings.ToLower(getEnvOrDefault("AI_PROVIDER", ProviderGemini))
	switch provider {
	case ProviderGemini, ProviderArk, ProviderOpenAI, ProviderAnthropic:
	default:
		return AIConfig{}, fmt.Errorf("invalid AI_PROVIDER value %q", provider)
	}

	timeout, err := parseOptionalIntEnv("AI_TIMEOUT")
	if err != nil {
		return AIConfig{}, err
	}
	timeoutSeconds := 60
	if timeout != nil {
		if *timeout < 1 {
			return AIConfig{}, fmt.Errorf("invalid AI_TIMEOUT value %d", *timeout)
		}
		timeoutSeconds = *timeout
	}

	geminiTopK := 40
	topK, err := parseOptionalIntEnv("GEMINI_TOP_K")
	if err != nil {
		return AIConfig{}, err
	}
	if topK != nil {
		if *topK < 0 {
			return AIConfig{}, fmt.Errorf("invalid GEMINI_TOP_K value %d", *topK)
		}
		geminiTopK = *topK
	}

	return AIConfig{
		Provider: provider,
		Timeout:  time.Duration(timeoutSeconds) * time.Second,

		GeminiAPIKey:  strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:   getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL: strings.TrimSpace(os.Getenv("GEMINI_BASE_URL")),
		GeminiTopK:    geminiTopK,

		ArkAPIKey:    strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		ArkAccessKey: strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		ArkSecretKey: strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		ArkModel:     strings.TrimSpace(os.Getenv("ARK_MODEL")),
		ArkBaseURL:   getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		ArkRegion:    getEnvOrDefault("ARK_REGION", "cn-beijing"),

		OpenAIAPIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel:   getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),

		AnthropicAPIKey: strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")),
		AnthropicModel:  getEnvOrDefault("ANTHROPIC_MODEL", "claude-3-5-sonnet-20241022"),
	}, nil
}

// GenerationParams bounds one upstream call.
type GenerationParams struct {
	Temperature float32
	TopK        int
	TopP        float32
	MaxTokens   int
}

// InterviewConfig tunes the interview flow.
type InterviewConfig struct {
	QuestionCount  int
	CleanupDelay   time.Duration
	QuestionParams GenerationParams
	FeedbackParams GenerationParams
}

func loadInterviewConfig() (InterviewConfig, error) {
	cfg := InterviewConfig{
		QuestionCount: 10,
		CleanupDelay:  5 * time.Minute,
		QuestionParams: GenerationParams{
			Temperature: 0.7,
			TopK:        40,
			TopP:        0.95,
			MaxTokens:   1024,
		},
		FeedbackParams: GenerationParams{
			Temperature: 0.3,
			TopK:        40,
			TopP:        0.95,
			MaxTokens:   2048,
		},
	}

	count, err := parseOptionalIntEnv("INTERVIEW_QUESTION_COUNT")
	if err != nil {
		return InterviewConfig{}, err
	}
	if count != nil {
		if *count < 1 {
			return InterviewConfig{}, fmt.Errorf("invalid INTERVIEW_QUESTION_COUNT value %d", *count)
		}
		cfg.QuestionCount = *count
	}

	delay, err := parseOptionalDurationEnv("INTERVIEW_CLEANUP_DELAY")
	if err != nil {
		return InterviewConfig{}, err
	}
	if delay != nil {
		cfg.CleanupDelay = *delay
	}

	if err := overrideParams(&cfg.QuestionParams, "QUESTION"); err != nil {
		return InterviewConfig{}, err
	}
	if err := overrideParams(&cfg.FeedbackParams, "FEEDBACK"); err != nil {
		return InterviewConfig{}, err
	}
	return cfg, nil
}

// overrideParams applies <PREFIX>_TEMPERATURE and <PREFIX>_MAX_TOKENS.
func overrideParams(p *GenerationParams, prefix string) error {
	temperature, err := parseOptionalFloat32Env(prefix + "_TEMPERATURE")
	if err != nil {
		return err
	}
	if temperature != nil {
		p.Temperature = *temperature
	}

	maxTokens, err := parseOptionalIntEnv(prefix + "_MAX_TOKENS")
	if err != nil {
		return err
	}
	if maxTokens != nil {
		p.MaxTokens = *maxTokens
	}
	return nil
}

// ClientConfig tells front ends where the backend lives.
type ClientConfig struct {
	APIBaseURL string
}

func loadClientConfig() ClientConfig {
	return ClientConfig{
		APIBaseURL: strings.TrimRight(getEnvOrDefault("API_BASE_URL", "http://localhost:3000"), "/"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalFloat32Env(key string) (*float32, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	result := float32(val)
	return &result, nil
}

func parseOptionalDurationEnv(key string) (*time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := time.ParseDuration(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	if val <= 0 {
		return nil, fmt.Errorf("invalid %s value %q: must be positive", key, value)
	}
	return &val, nil
}
