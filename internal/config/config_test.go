package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/smart-resume/internal/llm"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LLM_PROVIDER", "LLM_MODEL", "GEMINI_API_KEY", "OPENAI_API_KEY",
		"ANTHROPIC_API_KEY", "PORT", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"provider": "openai",
		"model": "gpt-4o",
		"max_attempts": 3,
		"base_delay": "500ms",
		"port": 9090,
		"log_format": "json"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, "500ms", cfg.BaseDelay)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
provider: anthropic
max_concurrent: 2
session_ttl: 30m
output: out/resume.md
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, 2, cfg.MaxConcurrent)
	assert.Equal(t, "30m", cfg.SessionTTL)
	assert.Equal(t, "out/resume.md", cfg.Output)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{ invalid json }`)

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeFile(t, "config.yml", "provider: [unterminated")

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"defaults", Defaults(), ""},
		{"empty", Config{}, ""},
		{"unknown provider", Config{Provider: "cohere"}, "unsupported LLM provider"},
		{"negative attempts", Config{MaxAttempts: -1}, "'max_attempts' must be non-negative"},
		{"negative concurrency", Config{MaxConcurrent: -2}, "'max_concurrent' must be non-negative"},
		{"port out of range", Config{Port: 70000}, "'port' must be between"},
		{"bad base delay", Config{BaseDelay: "soon"}, "invalid 'base_delay'"},
		{"negative session ttl", Config{SessionTTL: "-1m"}, "invalid 'session_ttl'"},
		{"bad log format", Config{LogFormat: "xml"}, "'log_format' must be text or json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		Port:     9000,
		LogLevel: "debug",
	}

	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "debug", merged.LogLevel)
	assert.Equal(t, "gemini", merged.Provider)
	assert.Equal(t, "gemini-1.5-flash", merged.Model)
	assert.Equal(t, 5, merged.MaxAttempts)
	assert.Equal(t, "2s", merged.BaseDelay)
	assert.Equal(t, DefaultMaxConcurrent, merged.MaxConcurrent)
	assert.Equal(t, DefaultOutput, merged.Output)
}

func TestMergeWithDefaults_ProviderChangeDropsModelAndKey(t *testing.T) {
	base := Defaults()
	base.APIKey = "gemini-key"

	cfg := &Config{Provider: "openai"}
	merged := cfg.MergeWithDefaults(base)

	assert.Equal(t, "openai", merged.Provider)
	assert.Empty(t, merged.Model)
	assert.Empty(t, merged.APIKey)
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("GEMINI_API_KEY", "gm-key")
	t.Setenv("PORT", "7070")
	t.Setenv("LOG_LEVEL", "warn")

	cfg := FromEnv()

	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "sk-ant", cfg.APIKey)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestFromEnv_DefaultsToGeminiKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "gm-key")
	t.Setenv("PORT", "not-a-port")

	cfg := FromEnv()

	assert.Empty(t, cfg.Provider)
	assert.Equal(t, "gm-key", cfg.APIKey)
	assert.Zero(t, cfg.Port)
}

func TestResolve_Precedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7070")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("GEMINI_API_KEY", "gm-key")

	path := writeFile(t, "config.yaml", "port: 9090\n")

	cfg, err := Resolve(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)       // file beats env
	assert.Equal(t, "warn", cfg.LogLevel) // env beats defaults
	assert.Equal(t, "gm-key", cfg.APIKey)
	assert.Equal(t, DefaultOutput, cfg.Output)
}

func TestResolve_NoFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestResolve_InvalidFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.json", `{"provider": "cohere"}`)

	_, err := Resolve(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM provider")
}

func TestLLMConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")

	cfg := &Config{Provider: "openai"}
	llmCfg, err := cfg.LLMConfig()
	require.NoError(t, err)

	assert.Equal(t, llm.ProviderOpenAI, llmCfg.Provider)
	assert.Equal(t, "sk-openai", llmCfg.APIKey)
	assert.Equal(t, "gpt-4o-mini", llmCfg.ModelName())
}

func TestRetryPolicy(t *testing.T) {
	cfg := &Config{MaxAttempts: 3, BaseDelay: "100ms"}
	policy := cfg.RetryPolicy()
	assert.Equal(t, 3, policy.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, policy.BaseDelay)

	empty := &Config{}
	policy = empty.RetryPolicy()
	assert.Equal(t, 5, policy.MaxAttempts)
	assert.Equal(t, 2*time.Second, policy.BaseDelay)
}

func TestSessionTTLDuration(t *testing.T) {
	assert.Equal(t, 30*time.Minute, (&Config{SessionTTL: "30m"}).SessionTTLDuration())
	assert.Equal(t, DefaultSessionTTL, (&Config{}).SessionTTLDuration())
	assert.Equal(t, DefaultSessionTTL, (&Config{SessionTTL: "bogus"}).SessionTTLDuration())
}
