package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/smart-resume/internal/observability"
	"github.com/jonathan/smart-resume/internal/resume"
	"github.com/jonathan/smart-resume/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and analyze a resume from a form file",
	Long:  "Reads a resume form from a YAML or JSON file, generates an ATS-friendly Markdown resume, writes it to disk and prints the ATS analysis.",
	RunE:  runGenerate,
}

var (
	generateInputFile  string
	generateRole       string
	generateOutputFile string
)

func init() {
	generateCmd.Flags().StringVarP(&generateInputFile, "in", "i", "", "Path to form file, .yaml or .json (required)")
	generateCmd.Flags().StringVarP(&generateRole, "role", "r", "", "Target role (overrides the form's role)")
	generateCmd.Flags().StringVarP(&generateOutputFile, "out", "o", "", "Path to output Markdown file (default smart_resume.md)")

	if err := generateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	form, err := readForm(generateInputFile)
	if err != nil {
		return err
	}
	if generateRole != "" {
		form.Role = generateRole
	}

	form.Normalize()
	if form.Role != "" && !slices.Contains(types.Roles, form.Role) {
		return fmt.Errorf("unknown role %q: must be one of %s", form.Role, strings.Join(types.Roles, ", "))
	}
	if err := form.Validate(); err != nil {
		missing := types.MissingFields(err)
		return fmt.Errorf("%s: %v", resume.UserMessage(err), missing)
	}

	cfg, logger, err := loadSettings()
	if err != nil {
		return err
	}
	outPath := generateOutputFile
	if outPath == "" {
		outPath = cfg.Output
	}

	ctx := context.Background()
	orch, client, err := buildOrchestrator(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	printer := observability.NewPrinter(cmd.OutOrStdout())
	orch = orch.WithProgress(printer.PrintProgress)

	sub, submitErr := orch.Submit(ctx, form.ToInput(), form.Role)

	written := ""
	if sub.HasResume() {
		if err := writeResume(outPath, sub.Resume.Text); err != nil {
			return err
		}
		written = outPath
	}

	printer.PrintSubmission(sub, written)

	if submitErr != nil {
		return fmt.Errorf("%s", sub.Error)
	}
	return nil
}

// writeResume writes the resume text unchanged, creating parent directories.
func writeResume(path, text string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write resume: %w", err)
	}
	return nil
}
