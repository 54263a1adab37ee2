package types

import "time"

// Status is the lifecycle state of a submission.
type Status string

// Submission states. Generated, GenerationFailed and AnalysisFailed are terminal.
const (
	StatusPending          Status = "pending"
	StatusGenerating       Status = "generating"
	StatusGenerated        Status = "generated"
	StatusGenerationFailed Status = "generation_failed"
	StatusAnalysisFailed   Status = "analysis_failed"
)

// IsTerminal reports whether no further transitions are expected.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusGenerated, StatusGenerationFailed, StatusAnalysisFailed:
		return true
	default:
		return false
	}
}

// Submission is the result of one form submission: the resume, its analysis and the outcome.
// On analysis failure the resume is retained and Analysis is nil.
type Submission struct {
	ID        string           `json:"id"`
	Role      string           `json:"role"`
	Status    Status           `json:"status"`
	Resume    *GeneratedResume `json:"resume,omitempty"`
	Analysis  *AtsAnalysis     `json:"analysis,omitempty"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// HasResume reports whether a resume is available for display or download.
func (s *Submission) HasResume() bool {
	return s != nil && s.Resume != nil && s.Resume.Text != ""
}
