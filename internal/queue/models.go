package queue

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle of a conversion job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Job is one source-file-to-destination-file conversion attempt.
type Job struct {
	ID          string
	Source      string
	Destination string
	Status      Status
	// Reason is a short failure classification ("encoder exited with error").
	Reason string
	// Diagnostic is the captured encoder output for failed jobs.
	Diagnostic string
	StartedAt  time.Time
	FinishedAt time.Time
	// Elapsed is the last media timestamp the encoder reported.
	Elapsed     time.Duration
	SourceBytes int64
	OutputBytes int64
	// DeleteErr records a failed source removal. It never changes Status.
	DeleteErr error
	Deleted   bool
}

// NewJob creates a pending job for source with its destination derived
// from outputDir.
func NewJob(source, outputDir string) *Job {
	return &Job{
		ID:          uuid.NewString(),
		Source:      source,
		Destination: DestinationFor(source, outputDir),
		Status:      StatusPending,
	}
}

// Start moves a pending job to running.
func (j *Job) Start() error {
	if j.Status != StatusPending {
		return &TransitionError{From: j.Status, To: StatusRunning}
	}
	j.Status = StatusRunning
	j.StartedAt = time.Now()
	return nil
}

// Succeed marks a running job as converted.
func (j *Job) Succeed() error {
	if j.Status != StatusRunning {
		return &TransitionError{From: j.Status, To: StatusSucceeded}
	}
	j.Status = StatusSucceeded
	j.FinishedAt = time.Now()
	return nil
}

// Fail marks a pending or running job as failed. A pending job can fail
// when it is never started (for example when its source vanished).
func (j *Job) Fail(reason, diagnostic string) error {
	if j.Status.IsTerminal() {
		return &TransitionError{From: j.Status, To: StatusFailed}
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "conversion failed"
	}
	j.Status = StatusFailed
	j.Reason = reason
	j.Diagnostic = strings.TrimSpace(diagnostic)
	j.FinishedAt = time.Now()
	return nil
}

// Duration returns the wall-clock time spent converting, or zero when the
// job has not finished.
func (j *Job) Duration() time.Duration {
	if j.StartedAt.IsZero() || j.FinishedAt.IsZero() {
		return 0
	}
	return j.FinishedAt.Sub(j.StartedAt)
}
