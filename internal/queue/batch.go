package queue

import "time"

// Batch is the ordered set of jobs processed in one run.
type Batch struct {
	RunID      string
	InputDir   string
	OutputDir  string
	StartedAt  time.Time
	FinishedAt time.Time
	Jobs       []*Job

	// Interrupted is set when the run was canceled before every file ran.
	Interrupted bool
}

// NewBatch starts an empty batch for a run.
func NewBatch(runID, inputDir, outputDir string) *Batch {
	return &Batch{
		RunID:     runID,
		InputDir:  inputDir,
		OutputDir: outputDir,
		StartedAt: time.Now(),
	}
}

// Add appends a job in processing order.
func (b *Batch) Add(job *Job) {
	b.Jobs = append(b.Jobs, job)
}

// Finish stamps the batch completion time.
func (b *Batch) Finish() {
	b.FinishedAt = time.Now()
}

// Total returns the number of jobs in the batch.
func (b *Batch) Total() int {
	if b == nil {
		return 0
	}
	return len(b.Jobs)
}

// Empty reports whether no input files were found.
func (b *Batch) Empty() bool {
	return b.Total() == 0
}

// Succeeded returns the number of jobs that converted successfully.
func (b *Batch) Succeeded() int {
	return b.count(StatusSucceeded)
}

// Failed returns the number of jobs that failed.
func (b *Batch) Failed() int {
	return b.count(StatusFailed)
}

// Failures returns the failed jobs in processing order.
func (b *Batch) Failures() []*Job {
	return b.filter(func(j *Job) bool { return j.Status == StatusFailed })
}

// DeleteFailures returns succeeded jobs whose source could not be removed.
func (b *Batch) DeleteFailures() []*Job {
	return b.filter(func(j *Job) bool { return j.DeleteErr != nil })
}

// Duration returns wall-clock time for the whole run.
func (b *Batch) Duration() time.Duration {
	if b == nil || b.FinishedAt.IsZero() {
		return 0
	}
	return b.FinishedAt.Sub(b.StartedAt)
}

func (b *Batch) count(status Status) int {
	if b == nil {
		return 0
	}
	n := 0
	for _, job := range b.Jobs {
		if job.Status == status {
			n++
		}
	}
	return n
}

func (b *Batch) filter(keep func(*Job) bool) []*Job {
	if b == nil {
		return nil
	}
	var out []*Job
	for _, job := range b.Jobs {
		if keep(job) {
			out = append(out, job)
		}
	}
	return out
}
