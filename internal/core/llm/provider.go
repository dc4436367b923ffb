package llm

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

// LLMProvider interface for multiple AI providers
type LLMProvider interface {
	GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error)
	GenerateJSON(ctx context.Context, systemPrompt, userMessage string) (string, error)
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
	GetProviderName() string
}

// ProviderType for the factory
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderGroq   ProviderType = "groq"
)

// ProviderConfig for creating a provider
type ProviderConfig struct {
	Type ProviderType

	OpenAIKey string
	GroqKey   string

	Model       string
	Temperature float32
	MaxTokens   int
}

// NewProvider factory for the configured LLM provider
func NewProvider(cfg *ProviderConfig) (LLMProvider, error) {
	switch cfg.Type {
	case ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required")
		}
		return NewOpenAIProvider(cfg.OpenAIKey, cfg.Model, cfg.Temperature, cfg.MaxTokens), nil

	case ProviderGroq:
		if cfg.GroqKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is required")
		}
		return NewGroqProvider(cfg.GroqKey, cfg.Model, cfg.Temperature, cfg.MaxTokens), nil

	default:
		return nil, fmt.Errorf("unknown LLM provider type: %s", cfg.Type)
	}
}

// LoadProviderFromEnv loads config from environment variables
func LoadProviderFromEnv() (*ProviderConfig, error) {
	providerType := os.Getenv("LLM_PROVIDER")
	if providerType == "" {
		providerType = "openai" // default
	}

	cfg := &ProviderConfig{
		Type:      ProviderType(providerType),
		OpenAIKey: os.Getenv("OPENAI_API_KEY"),
		GroqKey:   os.Getenv("GROQ_API_KEY"),
		Model:     os.Getenv("LLM_MODEL"),
	}

	if temp := os.Getenv("LLM_TEMPERATURE"); temp != "" {
		if parsed, err := strconv.ParseFloat(temp, 32); err == nil {
			cfg.Temperature = float32(parsed)
		}
	}
	if tokens := os.Getenv("LLM_MAX_TOKENS"); tokens != "" {
		if parsed, err := strconv.Atoi(tokens); err == nil {
			cfg.MaxTokens = parsed
		}
	}

	return cfg, nil
}
