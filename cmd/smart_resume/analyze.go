package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/smart-resume/internal/observability"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score an existing Markdown resume for ATS compatibility",
	Long:  "Runs only the ATS analysis on an existing resume file and prints the score and suggestions.",
	RunE:  runAnalyze,
}

var analyzeInputFile string

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeInputFile, "in", "i", "", "Path to Markdown resume (required)")

	if err := analyzeCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	content, err := os.ReadFile(analyzeInputFile)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}
	text := strings.TrimSpace(string(content))
	if text == "" {
		return fmt.Errorf("resume file is empty: %s", analyzeInputFile)
	}

	cfg, logger, err := loadSettings()
	if err != nil {
		return err
	}

	ctx := context.Background()
	orch, client, err := buildOrchestrator(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	printer := observability.NewPrinter(cmd.OutOrStdout())
	analysis, err := orch.WithProgress(printer.PrintProgress).AnalyzeResume(ctx, text)
	if err != nil {
		return err
	}

	printer.PrintAnalysis(analysis)
	return nil
}
