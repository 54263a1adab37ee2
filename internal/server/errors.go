// Package server provides the HTTP REST API for the smart resume builder.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/smart-resume/internal/resume"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Fields  []string
	Message string
}

func (e *ErrValidation) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", strings.Join(e.Fields, ", "), e.Message)
}

// ErrSubmissionNotFound indicates the submission ID is unknown or expired
type ErrSubmissionNotFound struct {
	ID string
}

func (e *ErrSubmissionNotFound) Error() string {
	return fmt.Sprintf("submission not found: %s", e.ID)
}

// ErrNoResume indicates the submission has no resume to download
type ErrNoResume struct {
	ID string
}

func (e *ErrNoResume) Error() string {
	return fmt.Sprintf("submission %s has no resume", e.ID)
}

// ErrBusy indicates every generation slot is taken
type ErrBusy struct{}

func (e *ErrBusy) Error() string {
	return "server busy, please try again shortly"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		genErr   *resume.GenerationError
		parseErr *resume.AnalysisParseError
		anaErr   *resume.AnalysisError
	)

	switch err.(type) {
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrSubmissionNotFound:
		return http.StatusNotFound
	case *ErrNoResume:
		return http.StatusConflict
	case *ErrBusy:
		return http.StatusServiceUnavailable
	}

	switch {
	case errors.As(err, &genErr), errors.As(err, &parseErr), errors.As(err, &anaErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
