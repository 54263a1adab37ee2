// Package types provides type definitions for structured data used throughout the smart-resume system.
package types

// MaxSuggestions is the upper bound on improvement suggestions kept from an analysis.
const MaxSuggestions = 5

// Experience describes the single work experience entry collected by the form.
type Experience struct {
	Title   string `json:"title" yaml:"title"`
	Company string `json:"company" yaml:"company"`
	Details string `json:"details" yaml:"details"` // Raw achievement text, sentences separated by periods
}

// ResumeInput is the submitted candidate data used to build the generation prompt.
// It is built wholly from user-provided strings and is not modified after submission.
type ResumeInput struct {
	Name       string     `json:"name" yaml:"name"`
	Contact    string     `json:"contact" yaml:"contact"`
	Summary    string     `json:"summary" yaml:"summary"`
	Experience Experience `json:"experience" yaml:"experience"`
	Skills     []string   `json:"skills" yaml:"skills"`
	Education  string     `json:"education" yaml:"education"`
}

// GeneratedResume holds the Markdown document returned by the model.
type GeneratedResume struct {
	Text string `json:"text"`
}

// AtsAnalysis is the parsed ATS compatibility result for a generated resume.
type AtsAnalysis struct {
	Score       int      `json:"score"`
	Suggestions []string `json:"suggestions"`
}

// ScoreBand classifies a score for display.
type ScoreBand string

// Score bands used to color the score panel
const (
	BandGood ScoreBand = "good"
	BandFair ScoreBand = "fair"
	BandPoor ScoreBand = "poor"
)

// BandFor returns the display band for a score.
func BandFor(score int) ScoreBand {
	switch {
	case score >= 75:
		return BandGood
	case score >= 50:
		return BandFair
	default:
		return BandPoor
	}
}

// Color returns the hex color used to render the band.
func (b ScoreBand) Color() string {
	switch b {
	case BandGood:
		return "#10b981"
	case BandFair:
		return "#f4a261"
	default:
		return "#e11d48"
	}
}
