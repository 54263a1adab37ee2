package resume

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// GenerationError indicates the resume could not be generated.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resume generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("resume generation failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// AnalysisParseError indicates the analysis call succeeded but its payload was not valid JSON.
type AnalysisParseError struct {
	Message string
	Cause   error
}

func (e *AnalysisParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to parse analysis: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to parse analysis: %s", e.Message)
}

func (e *AnalysisParseError) Unwrap() error {
	return e.Cause
}

// AnalysisError indicates the analysis call failed or returned an unusable payload.
type AnalysisError struct {
	Message string
	Cause   error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis failed: %s", e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the message shown to the user for a failed submission.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var (
		genErr   *GenerationError
		parseErr *AnalysisParseError
		anaErr   *AnalysisError
		valErrs  validator.ValidationErrors
	)

	switch {
	case errors.As(err, &valErrs):
		return "Please fill all required fields (*)"
	case errors.As(err, &genErr):
		return fmt.Sprintf("Resume generation failed: %v", causeOf(genErr.Cause, genErr.Message))
	case errors.As(err, &parseErr):
		return fmt.Sprintf("Failed to parse analysis: %v", causeOf(parseErr.Cause, parseErr.Message))
	case errors.As(err, &anaErr):
		return fmt.Sprintf("Analysis failed: %v", causeOf(anaErr.Cause, anaErr.Message))
	default:
		return err.Error()
	}
}

func causeOf(cause error, message string) any {
	if cause != nil {
		return cause
	}
	return message
}
