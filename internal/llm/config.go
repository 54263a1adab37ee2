// Package llm provides centralized LLM configuration and client abstractions.
// A single client is constructed at startup and shared by every request.
package llm

import (
	"fmt"
	"strings"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider
	ProviderOpenAI Provider = "openai"
	// ProviderAnthropic is the Anthropic/Claude provider
	ProviderAnthropic Provider = "anthropic"
)

// DefaultMaxTokens bounds the response length for providers that require it.
const DefaultMaxTokens = 4096

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Model       string
	APIKey      string
	BaseURL     string // Optional custom endpoint (OpenAI and Anthropic only)
	Temperature float32
	MaxTokens   int
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderGemini,
		Model:       DefaultModel(ProviderGemini),
		Temperature: 0.7,
		MaxTokens:   DefaultMaxTokens,
	}
}

// DefaultModel returns the model used when none is configured for a provider.
func DefaultModel(p Provider) string {
	switch p {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderAnthropic:
		return "claude-3-5-haiku-latest"
	default:
		return "gemini-1.5-flash"
	}
}

// APIKeyEnv returns the environment variable holding the API key for a provider.
func APIKeyEnv(p Provider) string {
	switch p {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return "GEMINI_API_KEY"
	}
}

// ParseProvider converts a provider name into a Provider.
// An empty name selects Gemini.
func ParseProvider(name string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(name))) {
	case "", ProviderGemini:
		return ProviderGemini, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	case ProviderAnthropic:
		return ProviderAnthropic, nil
	default:
		return "", fmt.Errorf("unsupported LLM provider %q", name)
	}
}

// WithModel returns a copy of the Config using a specific model
func (c *Config) WithModel(model string) *Config {
	newConfig := *c
	newConfig.Model = model
	return &newConfig
}

// ModelName returns the configured model, falling back to the provider default.
func (c *Config) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	return DefaultModel(c.Provider)
}
