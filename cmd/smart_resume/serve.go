package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/smart-resume/internal/logging"
	"github.com/jonathan/smart-resume/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that generates and analyzes resumes from submitted forms.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides config and PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadSettings()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	orch, client, err := buildOrchestrator(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	srv, err := server.New(server.Config{
		Port:          cfg.Port,
		MaxConcurrent: cfg.MaxConcurrent,
		SessionTTL:    cfg.SessionTTLDuration(),
		Logger:        logging.Component(logger, "http"),
	}, orch)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.WithField("model", orch.Model()).Info("LLM client ready")
	return srv.Start()
}
