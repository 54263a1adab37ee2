// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/smart-resume/internal/resume"
	"github.com/jonathan/smart-resume/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// innerWidth is the usable text width inside a box
	innerWidth = boxWidth - 4
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", innerWidth, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range wrap(line, innerWidth) {
			fmt.Fprintf(p.out, "│ %-*s │\n", innerWidth, wrapped)
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// wrap splits line on spaces into chunks of at most width runes.
// Continuation lines keep the leading indentation.
func wrap(line string, width int) []string {
	if len([]rune(line)) <= width {
		return []string{line}
	}

	indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
	var out []string
	current := ""
	for _, word := range strings.Fields(line) {
		switch {
		case current == "":
			current = indent + word
		case len([]rune(current))+1+len([]rune(word)) <= width:
			current += " " + word
		default:
			out = append(out, current)
			current = indent + "  " + word
		}
	}
	if current != "" {
		out = append(out, current)
	}
	return out
}

// PrintAnalysis outputs the ATS score with its band and the numbered suggestions.
func (p *Printer) PrintAnalysis(analysis *types.AtsAnalysis) {
	if analysis == nil {
		return
	}

	band := types.BandFor(analysis.Score)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ATS Score: %d/100 (%s)\n", analysis.Score, band))
	sb.WriteString(scoreBar(analysis.Score))
	sb.WriteString("\n")

	if len(analysis.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		for i, s := range analysis.Suggestions {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, s))
		}
	}

	p.printBox("ATS ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// scoreBar renders a 40-cell bar proportional to the score.
func scoreBar(score int) string {
	const cells = 40
	filled := score * cells / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", cells-filled) + "]"
}

// PrintSubmission outputs the outcome of a submission and where the resume was written.
// outPath may be empty when nothing was written.
func (p *Printer) PrintSubmission(sub *types.Submission, outPath string) {
	if sub == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:      %s\n", sub.ID))
	sb.WriteString(fmt.Sprintf("Role:    %s\n", sub.Role))
	sb.WriteString(fmt.Sprintf("Status:  %s\n", sub.Status))
	if sub.HasResume() {
		words := len(strings.Fields(sub.Resume.Text))
		sb.WriteString(fmt.Sprintf("Words:   %d\n", words))
	}
	if outPath != "" {
		sb.WriteString(fmt.Sprintf("Output:  %s\n", outPath))
	}
	if sub.Error != "" {
		sb.WriteString(fmt.Sprintf("\nError: %s\n", sub.Error))
	}

	p.printBox("SMART RESUME", strings.TrimSuffix(sb.String(), "\n"))
	p.PrintAnalysis(sub.Analysis)
}

// PrintProgress outputs a one-line progress message.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(event resume.ProgressEvent) {
	switch event.Status {
	case "retrying":
		fmt.Fprintf(p.out, "  ⚠️  %s (attempt %d)\n", event.Message, event.Attempt)
	case "failed":
		fmt.Fprintf(p.out, "  ✗ %s\n", event.Message)
	case "completed":
		fmt.Fprintf(p.out, "  ✓ %s\n", event.Message)
	default:
		fmt.Fprintf(p.out, "%s\n", event.Message)
	}
}
