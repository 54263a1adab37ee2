// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/smart-resume/internal/llm"
	"github.com/jonathan/smart-resume/internal/retry"
)

// Defaults
const (
	DefaultPort          = 8080
	DefaultMaxConcurrent = 4
	DefaultSessionTTL    = time.Hour
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultOutput        = "smart_resume.md"
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Model
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"` // gemini, openai or anthropic
	Model    string `json:"model,omitempty" yaml:"model,omitempty"`       // Provider model name
	APIKey   string `json:"api_key,omitempty" yaml:"api_key,omitempty"`   // Provider API key

	// Retry
	MaxAttempts int    `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty"` // Attempts per model call
	BaseDelay   string `json:"base_delay,omitempty" yaml:"base_delay,omitempty"`     // First backoff wait, e.g. "2s"

	// Server
	Port          int    `json:"port,omitempty" yaml:"port,omitempty"`
	MaxConcurrent int    `json:"max_concurrent,omitempty" yaml:"max_concurrent,omitempty"` // Concurrent generations
	SessionTTL    string `json:"session_ttl,omitempty" yaml:"session_ttl,omitempty"`       // Submission lifetime, e.g. "1h"

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"` // text or json

	// CLI
	Output string `json:"output,omitempty" yaml:"output,omitempty"` // Markdown output path
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Provider:      string(llm.ProviderGemini),
		Model:         llm.DefaultModel(llm.ProviderGemini),
		MaxAttempts:   retry.DefaultMaxAttempts,
		BaseDelay:     retry.DefaultBaseDelay.String(),
		Port:          DefaultPort,
		MaxConcurrent: DefaultMaxConcurrent,
		SessionTTL:    DefaultSessionTTL.String(),
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
		Output:        DefaultOutput,
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Unset variables leave fields empty.
// The API key is read from the variable that matches the selected provider.
func FromEnv() Config {
	cfg := Config{
		Provider:  os.Getenv("LLM_PROVIDER"),
		Model:     os.Getenv("LLM_MODEL"),
		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: os.Getenv("LOG_FORMAT"),
	}

	if provider, err := llm.ParseProvider(cfg.Provider); err == nil {
		cfg.APIKey = os.Getenv(llm.APIKeyEnv(provider))
	}

	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}

	return cfg
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for the API key since that is reported when the client is built.
func (c *Config) Validate() error {
	if _, err := llm.ParseProvider(c.Provider); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// Validate numeric ranges
	if c.MaxAttempts < 0 {
		return fmt.Errorf("config error: 'max_attempts' must be non-negative")
	}
	if c.MaxConcurrent < 0 {
		return fmt.Errorf("config error: 'max_concurrent' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if _, err := parseDuration(c.BaseDelay); err != nil {
		return fmt.Errorf("config error: invalid 'base_delay': %w", err)
	}
	if _, err := parseDuration(c.SessionTTL); err != nil {
		return fmt.Errorf("config error: invalid 'session_ttl': %w", err)
	}

	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("config error: 'log_format' must be text or json")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer config file values over env values over built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	// Model and key only carry over when the provider is unchanged
	sameProvider := strings.EqualFold(result.Provider, defaults.Provider)
	if result.Model == "" && sameProvider {
		result.Model = defaults.Model
	}
	if result.APIKey == "" && sameProvider {
		result.APIKey = defaults.APIKey
	}
	if result.BaseDelay == "" {
		result.BaseDelay = defaults.BaseDelay
	}
	if result.SessionTTL == "" {
		result.SessionTTL = defaults.SessionTTL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}

	// Int fields: use default if zero
	if result.MaxAttempts == 0 {
		result.MaxAttempts = defaults.MaxAttempts
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxConcurrent == 0 {
		result.MaxConcurrent = defaults.MaxConcurrent
	}

	return result
}

// Resolve layers a config file (optional) over the environment over the built-in defaults.
func Resolve(path string) (Config, error) {
	env := FromEnv()
	base := env.MergeWithDefaults(Defaults())

	cfg := base
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(base)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LLMConfig converts the model settings into an llm.Config.
func (c *Config) LLMConfig() (*llm.Config, error) {
	provider, err := llm.ParseProvider(c.Provider)
	if err != nil {
		return nil, err
	}

	cfg := llm.DefaultConfig()
	cfg.Provider = provider
	cfg.Model = c.Model
	cfg.APIKey = c.APIKey
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(llm.APIKeyEnv(provider))
	}
	return cfg, nil
}

// RetryPolicy returns the retry policy described by MaxAttempts and BaseDelay.
func (c *Config) RetryPolicy() retry.Policy {
	policy := retry.DefaultPolicy()
	if c.MaxAttempts > 0 {
		policy.MaxAttempts = c.MaxAttempts
	}
	if d, err := parseDuration(c.BaseDelay); err == nil && d > 0 {
		policy.BaseDelay = d
	}
	return policy
}

// SessionTTLDuration returns the parsed session lifetime, or DefaultSessionTTL.
func (c *Config) SessionTTLDuration() time.Duration {
	if d, err := parseDuration(c.SessionTTL); err == nil && d > 0 {
		return d
	}
	return DefaultSessionTTL
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration %q must be non-negative", s)
	}
	return d, nil
}
