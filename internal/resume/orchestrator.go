// Package resume orchestrates resume generation and ATS analysis against a language model.
//
// A submission runs two strictly sequential model calls: the resume is generated first and
// its text is then analyzed. Each call goes through the retry policy.
package resume

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/smart-resume/internal/llm"
	"github.com/jonathan/smart-resume/internal/retry"
	"github.com/jonathan/smart-resume/internal/types"
)

// Step names reported in progress events
const (
	StepGenerate = "generate"
	StepAnalyze  = "analyze"
)

// ProgressEvent represents a progress update during a submission
type ProgressEvent struct {
	Step    string        `json:"step"`
	Status  string        `json:"status"` // started, retrying, completed, failed
	Message string        `json:"message"`
	Attempt int           `json:"attempt,omitempty"`
	Delay   time.Duration `json:"delay,omitempty"`
}

// ProgressFunc is called when submission progress occurs
type ProgressFunc func(event ProgressEvent)

// Orchestrator runs generation and analysis against a shared LLM client.
// It is safe for concurrent use; With* methods return modified copies.
type Orchestrator struct {
	client     llm.Client
	policy     retry.Policy
	log        logrus.FieldLogger
	onProgress ProgressFunc
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRetryPolicy overrides the default retry policy.
func WithRetryPolicy(p retry.Policy) Option {
	return func(o *Orchestrator) {
		o.policy = p
	}
}

// WithLogger sets the logger used for retry and outcome messages.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Orchestrator) {
		o.log = l
	}
}

// New creates an Orchestrator around an already constructed client.
func New(client llm.Client, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client: client,
		policy: retry.DefaultPolicy(),
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithProgress returns a copy that reports progress, including retry waits, to fn.
func (o *Orchestrator) WithProgress(fn ProgressFunc) *Orchestrator {
	cp := *o
	cp.onProgress = fn
	return &cp
}

// Model returns the model identifier of the underlying client.
func (o *Orchestrator) Model() string {
	return o.client.Model()
}

// GenerateResume asks the model for a Markdown resume targeting role.
// The trimmed response is returned verbatim. Failures are returned as *GenerationError.
func (o *Orchestrator) GenerateResume(ctx context.Context, input types.ResumeInput, role string) (*types.GeneratedResume, error) {
	prompt := BuildGenerationPrompt(input, role)

	o.emit(ProgressEvent{Step: StepGenerate, Status: "started", Message: "Crafting your resume..."})

	text, err := o.call(ctx, StepGenerate, prompt)
	if err != nil {
		o.emit(ProgressEvent{Step: StepGenerate, Status: "failed", Message: err.Error()})
		return nil, &GenerationError{Message: "model call failed", Cause: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		o.emit(ProgressEvent{Step: StepGenerate, Status: "failed", Message: "empty response"})
		return nil, &GenerationError{Message: "model returned an empty resume"}
	}

	o.emit(ProgressEvent{Step: StepGenerate, Status: "completed", Message: "Resume generated"})
	return &types.GeneratedResume{Text: text}, nil
}

// AnalyzeResume asks the model for an ATS score and suggestions for resumeText.
// Call failures return *AnalysisError; non-JSON payloads return *AnalysisParseError.
func (o *Orchestrator) AnalyzeResume(ctx context.Context, resumeText string) (*types.AtsAnalysis, error) {
	prompt := BuildAnalysisPrompt(resumeText)

	o.emit(ProgressEvent{Step: StepAnalyze, Status: "started", Message: "Analyzing ATS compatibility..."})

	text, err := o.call(ctx, StepAnalyze, prompt)
	if err != nil {
		o.emit(ProgressEvent{Step: StepAnalyze, Status: "failed", Message: err.Error()})
		return nil, &AnalysisError{Message: "model call failed", Cause: err}
	}

	analysis, err := ParseAnalysis(text)
	if err != nil {
		o.emit(ProgressEvent{Step: StepAnalyze, Status: "failed", Message: err.Error()})
		return nil, err
	}

	o.emit(ProgressEvent{Step: StepAnalyze, Status: "completed", Message: "Resume analyzed"})
	return analysis, nil
}

// Submit generates and then analyzes a resume, returning the submission in its terminal state.
// The returned error is nil only when the status is StatusGenerated. When analysis fails the
// submission keeps the generated resume.
func (o *Orchestrator) Submit(ctx context.Context, input types.ResumeInput, role string) (*types.Submission, error) {
	sub := &types.Submission{
		ID:        uuid.NewString(),
		Role:      role,
		Status:    types.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	log := o.log.WithField("submission_id", sub.ID)

	sub.Status = types.StatusGenerating
	generated, err := o.GenerateResume(ctx, input, role)
	if err != nil {
		sub.Status = types.StatusGenerationFailed
		sub.Error = UserMessage(err)
		log.WithError(err).Error("Resume generation failed")
		return sub, err
	}
	sub.Resume = generated

	analysis, err := o.AnalyzeResume(ctx, generated.Text)
	if err != nil {
		sub.Status = types.StatusAnalysisFailed
		sub.Error = UserMessage(err)
		log.WithError(err).Error("ATS analysis failed")
		return sub, err
	}
	sub.Analysis = analysis
	sub.Status = types.StatusGenerated

	log.WithFields(logrus.Fields{
		"status": sub.Status,
		"score":  analysis.Score,
	}).Info("Resume generated and analyzed")
	return sub, nil
}

// call runs one model request through the retry policy.
func (o *Orchestrator) call(ctx context.Context, step, prompt string) (string, error) {
	policy := o.policy.WithOnRetry(func(attempt int, delay time.Duration, err error) {
		o.log.WithFields(logrus.Fields{
			"step":    step,
			"attempt": attempt,
			"delay":   delay.String(),
		}).WithError(err).Warn("API error, retrying")

		o.emit(ProgressEvent{
			Step:    step,
			Status:  "retrying",
			Message: "API error. Retrying in " + delay.String() + "...",
			Attempt: attempt,
			Delay:   delay,
		})
	})

	return retry.Do(ctx, policy, func(ctx context.Context) (string, error) {
		return o.client.GenerateContent(ctx, prompt)
	})
}

func (o *Orchestrator) emit(event ProgressEvent) {
	if o.onProgress != nil {
		o.onProgress(event)
	}
}
