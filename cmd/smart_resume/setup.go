package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/smart-resume/internal/config"
	"github.com/jonathan/smart-resume/internal/llm"
	"github.com/jonathan/smart-resume/internal/logging"
	"github.com/jonathan/smart-resume/internal/resume"
	"github.com/jonathan/smart-resume/internal/types"
)

// newClient builds the LLM client; tests replace it with a scripted client.
var newClient = llm.NewClient

// loadSettings resolves configuration and builds the logger.
func loadSettings() (config.Config, *logrus.Logger, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

// buildOrchestrator creates the single LLM client and wraps it in an orchestrator.
// The caller closes the returned client.
func buildOrchestrator(ctx context.Context, cfg config.Config, logger logrus.FieldLogger) (*resume.Orchestrator, llm.Client, error) {
	llmCfg, err := cfg.LLMConfig()
	if err != nil {
		return nil, nil, err
	}
	if llmCfg.APIKey == "" {
		return nil, nil, fmt.Errorf("API key is required (set %s or api_key in the config file)", llm.APIKeyEnv(llmCfg.Provider))
	}

	client, err := newClient(ctx, llmCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	orch := resume.New(client,
		resume.WithRetryPolicy(cfg.RetryPolicy()),
		resume.WithLogger(logging.Component(logger, "resume")),
	)
	return orch, client, nil
}

// readForm loads a ResumeForm from a YAML or JSON file, chosen by extension.
func readForm(path string) (*types.ResumeForm, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read form file: %w", err)
	}

	var form types.ResumeForm
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &form); err != nil {
			return nil, fmt.Errorf("failed to parse form YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &form); err != nil {
			return nil, fmt.Errorf("failed to parse form JSON: %w", err)
		}
	}
	return &form, nil
}
