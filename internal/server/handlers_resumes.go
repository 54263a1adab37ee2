package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/smart-resume/internal/resume"
	"github.com/jonathan/smart-resume/internal/types"
)

// DownloadFilename is the attachment name for GET /resumes/{id}/download
const DownloadFilename = "smart_resume.md"

// AnalysisResponse is an ATS analysis with its display band
type AnalysisResponse struct {
	Score       int             `json:"score"`
	Suggestions []string        `json:"suggestions"`
	ScoreBand   types.ScoreBand `json:"score_band"`
	Color       string          `json:"color"`
}

// SubmissionResponse represents a submission returned by the /resumes endpoints
type SubmissionResponse struct {
	ID        string            `json:"id"`
	Role      string            `json:"role"`
	Status    types.Status      `json:"status"`
	Resume    string            `json:"resume,omitempty"`
	Analysis  *AnalysisResponse `json:"analysis,omitempty"`
	Error     string            `json:"error,omitempty"`
	CreatedAt string            `json:"created_at"`
}

func newSubmissionResponse(sub *types.Submission) SubmissionResponse {
	resp := SubmissionResponse{
		ID:        sub.ID,
		Role:      sub.Role,
		Status:    sub.Status,
		Error:     sub.Error,
		CreatedAt: sub.CreatedAt.Format(time.RFC3339),
	}
	if sub.HasResume() {
		resp.Resume = sub.Resume.Text
	}
	if sub.Analysis != nil {
		resp.Analysis = newAnalysisResponse(sub.Analysis)
	}
	return resp
}

func newAnalysisResponse(a *types.AtsAnalysis) *AnalysisResponse {
	band := types.BandFor(a.Score)
	return &AnalysisResponse{
		Score:       a.Score,
		Suggestions: a.Suggestions,
		ScoreBand:   band,
		Color:       band.Color(),
	}
}

// handleRoles lists the selectable target roles
func (s *Server) handleRoles(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string][]string{"roles": types.Roles})
}

// handleCreateResume generates and analyzes a resume, returning the finished submission.
// Failures return 502 with whatever the submission holds, including a resume kept after
// a failed analysis.
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	form, err := s.decodeForm(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if !s.slots.TryAcquire(1) {
		err := &ErrBusy{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	defer s.slots.Release(1)

	sub, err := s.orchestrator.Submit(r.Context(), form.ToInput(), form.Role)
	s.store.Put(sub)

	status := http.StatusOK
	if err != nil {
		status = HTTPStatus(err)
	}
	s.jsonResponse(w, status, newSubmissionResponse(sub))
}

// handleCreateResumeStream runs a submission and streams progress via SSE
func (s *Server) handleCreateResumeStream(w http.ResponseWriter, r *http.Request) {
	form, err := s.decodeForm(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if !s.slots.TryAcquire(1) {
		err := &ErrBusy{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	defer s.slots.Release(1)

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	orch := s.orchestrator.WithProgress(func(e resume.ProgressEvent) {
		if e.Status == "retrying" {
			sse.WriteEvent(EventRetrying, map[string]any{ //nolint:errcheck
				"step":          e.Step,
				"attempt":       e.Attempt,
				"delay_seconds": e.Delay.Seconds(),
				"message":       e.Message,
			})
			return
		}
		sse.WriteEvent(EventStatus, e) //nolint:errcheck
	})

	sub, err := orch.Submit(r.Context(), form.ToInput(), form.Role)
	s.store.Put(sub)

	if sub.HasResume() {
		sse.WriteEvent(EventResume, map[string]string{ //nolint:errcheck
			"id":   sub.ID,
			"text": sub.Resume.Text,
		})
	}
	if sub.Analysis != nil {
		sse.WriteEvent(EventAnalysis, newAnalysisResponse(sub.Analysis)) //nolint:errcheck
	}
	if err != nil {
		sse.WriteError(sub.Error)
	}
	sse.WriteComplete(sub.ID, string(sub.Status))
}

// handleGetResume returns a stored submission
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sub, ok := s.store.Get(id)
	if !ok {
		err := &ErrSubmissionNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, newSubmissionResponse(sub))
}

// handleDownloadResume returns the resume text as a Markdown attachment, byte for byte
func (s *Server) handleDownloadResume(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sub, ok := s.store.Get(id)
	if !ok {
		err := &ErrSubmissionNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if !sub.HasResume() {
		err := &ErrNoResume{ID: id}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/markdown")
	w.Header().Set("Content-Disposition", `attachment; filename="`+DownloadFilename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(sub.Resume.Text)); err != nil {
		s.log.WithError(err).WithField("submission_id", id).Error("Failed to write download")
	}
}

// decodeForm reads and validates the form body.
func (s *Server) decodeForm(r *http.Request) (*types.ResumeForm, error) {
	var form types.ResumeForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		return nil, &ErrValidation{Message: "invalid request body: " + err.Error()}
	}

	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, validationError(err)
	}
	return &form, nil
}

// validationError converts validator errors into ErrValidation.
// An unknown role is reported separately from missing fields.
func validationError(err error) *ErrValidation {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ErrValidation{Message: err.Error()}
	}

	for _, fe := range verrs {
		if fe.Tag() == "oneof" {
			return &ErrValidation{
				Fields:  []string{"role"},
				Message: "role must be one of: " + strings.Join(types.Roles, ", "),
			}
		}
	}

	return &ErrValidation{
		Fields:  types.MissingFields(err),
		Message: resume.UserMessage(err),
	}
}
