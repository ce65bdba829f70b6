package batch

import (
	"movconv/internal/queue"
	"movconv/internal/services/ffmpeg"
)

// Reporter observes a run as it progresses. Calls are made from the
// goroutine executing Run, one at a time.
type Reporter interface {
	BatchStarted(total int)
	JobStarted(job *queue.Job, index, total int)
	JobProgress(job *queue.Job, update ffmpeg.ProgressUpdate)
	JobFinished(job *queue.Job)
	BatchFinished(batch *queue.Batch)
}

// NopReporter ignores every event.
type NopReporter struct{}

func (NopReporter) BatchStarted(int) {}
func (NopReporter) JobStarted(*queue.Job, int, int) {}
func (NopReporter) JobProgress(*queue.Job, ffmpeg.ProgressUpdate) {}
func (NopReporter) JobFinished(*queue.Job) {}
func (NopReporter) BatchFinished(*queue.Batch) {}

var _ Reporter = NopReporter{}
