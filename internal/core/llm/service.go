package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// Service wraps an LLM provider for dependency injection
type Service struct {
	provider LLMProvider
}

// NewService creates the LLM service with the provider from environment
func NewService() *Service {
	cfg, err := LoadProviderFromEnv()
	if err != nil {
		log.Fatalf("❌ Failed to load LLM config: %v", err)
	}

	provider, err := NewProvider(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to create LLM provider: %v", err)
	}

	log.Printf("🤖 Using LLM provider: %s (model: %s)", provider.GetProviderName(), cfg.Model)

	return &Service{provider: provider}
}

// NewServiceWithProvider creates service with custom provider (for testing)
func NewServiceWithProvider(provider LLMProvider) *Service {
	return &Service{provider: provider}
}

// GenerateResponse generates a free-text AI response
func (s *Service) GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	return s.provider.GenerateResponse(ctx, systemPrompt, userMessage)
}

// GenerateStructured asks for JSON output and unmarshals it into target.
// The system prompt must describe the expected schema.
func (s *Service) GenerateStructured(ctx context.Context, systemPrompt, userMessage string, target interface{}) error {
	raw, err := s.provider.GenerateJSON(ctx, systemPrompt, userMessage)
	if err != nil {
		return err
	}

	// Some models still wrap the object in a code fence
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), target); err != nil {
		return fmt.Errorf("failed to parse structured output: %w", err)
	}

	return nil
}

// GenerateImage renders an image for the prompt
func (s *Service) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	return s.provider.GenerateImage(ctx, prompt)
}

// GetProviderName returns current provider name
func (s *Service) GetProviderName() string {
	return s.provider.GetProviderName()
}
