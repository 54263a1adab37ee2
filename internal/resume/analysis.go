package resume

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/jonathan/smart-resume/internal/llm"
	"github.com/jonathan/smart-resume/internal/schemas"
	"github.com/jonathan/smart-resume/internal/types"
)

// rawAnalysis is the model's analysis payload before clamping and truncation.
type rawAnalysis struct {
	Score       json.Number `json:"score"`
	Suggestions []string    `json:"suggestions"`
}

// ParseAnalysis converts a model response into an AtsAnalysis.
// A ```json fence is stripped first. Invalid JSON yields *AnalysisParseError; valid JSON
// of the wrong shape yields *AnalysisError. The score is clamped to [0,100] and at most
// MaxSuggestions suggestions are kept in order.
func ParseAnalysis(response string) (*types.AtsAnalysis, error) {
	payload := llm.ExtractFencedJSON(response)

	if !json.Valid([]byte(payload)) {
		var doc any
		return nil, &AnalysisParseError{
			Message: "response is not valid JSON",
			Cause:   json.Unmarshal([]byte(payload), &doc),
		}
	}

	if err := schemas.ValidateAnalysis(payload); err != nil {
		return nil, &AnalysisError{
			Message: "response does not match the analysis format",
			Cause:   err,
		}
	}

	var raw rawAnalysis
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, &AnalysisError{
			Message: "failed to decode analysis",
			Cause:   err,
		}
	}

	score, err := scoreValue(raw.Score)
	if err != nil {
		return nil, &AnalysisError{
			Message: "failed to decode analysis score",
			Cause:   err,
		}
	}

	suggestions := raw.Suggestions
	if len(suggestions) > types.MaxSuggestions {
		suggestions = suggestions[:types.MaxSuggestions]
	}
	out := make([]string, len(suggestions))
	copy(out, suggestions)

	return &types.AtsAnalysis{
		Score:       ClampScore(score),
		Suggestions: out,
	}, nil
}

// scoreValue converts a JSON number to float64. Numbers beyond the float64 range
// become +Inf or -Inf so they clamp like any other out-of-range score.
func scoreValue(n json.Number) (float64, error) {
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return f, nil
}

// ClampScore truncates a score toward zero and clamps it into [0,100].
func ClampScore(score float64) int {
	switch {
	case score >= 100:
		return 100
	case score <= 0:
		return 0
	default:
		return int(score)
	}
}
