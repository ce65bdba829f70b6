package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"movconv/internal/logging"
	"movconv/internal/queue"
	"movconv/internal/services/ffmpeg"
)

// barReporter draws a batch-level bar with the current file and its encoded
// media time, printing a check or cross line as each file finishes.
type barReporter struct {
	out      io.Writer
	colorize bool
	bar      *progressbar.ProgressBar
}

func newBarReporter(out io.Writer, colorize bool) *barReporter {
	return &barReporter{out: out, colorize: colorize}
}

func (r *barReporter) BatchStarted(total int) {
	if total == 0 {
		return
	}
	fmt.Fprintf(r.out, "Found %d MOV files to process\n", total)
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionEnableColorCodes(r.colorize),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "▓",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (r *barReporter) JobStarted(job *queue.Job, index, total int) {
	if r.bar == nil {
		return
	}
	r.bar.Describe(fmt.Sprintf("Converting: %s", filepath.Base(job.Source)))
}

func (r *barReporter) JobProgress(job *queue.Job, update ffmpeg.ProgressUpdate) {
	if r.bar == nil {
		return
	}
	r.bar.Describe(progressDescription(job, update))
}

func (r *barReporter) JobFinished(job *queue.Job) {
	if r.bar != nil {
		_ = r.bar.Clear()
	}
	fmt.Fprintln(r.out, renderJobResult(job, r.colorize))
	if r.bar != nil {
		_ = r.bar.Add(1)
	}
}

func (r *barReporter) BatchFinished(*queue.Batch) {
	if r.bar == nil {
		return
	}
	_ = r.bar.Finish()
	fmt.Fprintln(r.out)
}

func progressDescription(job *queue.Job, update ffmpeg.ProgressUpdate) string {
	name := filepath.Base(job.Source)
	elapsed := ffmpeg.FormatElapsed(update.Elapsed)
	if update.Total > 0 {
		return fmt.Sprintf("Converting: %s %s / %s", name, elapsed, ffmpeg.FormatElapsed(update.Total))
	}
	return fmt.Sprintf("Converting: %s %s", name, elapsed)
}

// logReporter turns encoder progress into throttled structured log lines
// for non-interactive output.
type logReporter struct {
	logger  *slog.Logger
	sampler *logging.ProgressSampler
}

func newLogReporter(logger *slog.Logger, interval time.Duration) *logReporter {
	return &logReporter{
		logger:  logging.NewComponentLogger(logger, "progress"),
		sampler: logging.NewProgressSampler(10, interval),
	}
}

func (r *logReporter) BatchStarted(int) {}

func (r *logReporter) JobStarted(*queue.Job, int, int) {
	r.sampler.Reset()
}

func (r *logReporter) JobProgress(job *queue.Job, update ffmpeg.ProgressUpdate) {
	if !r.sampler.ShouldLog(update.Elapsed, update.Percent) {
		return
	}
	attrs := []logging.Attr{
		logging.String(logging.FieldEventType, "job_progress"),
		logging.String(logging.FieldJobID, job.ID),
		logging.String(logging.FieldSource, filepath.Base(job.Source)),
		logging.String(logging.FieldElapsed, ffmpeg.FormatElapsed(update.Elapsed)),
	}
	if update.Percent >= 0 {
		attrs = append(attrs, logging.Float64(logging.FieldProgressPercent, roundPercent(update.Percent)))
	}
	if update.Speed > 0 {
		attrs = append(attrs, logging.Float64("speed", update.Speed))
	}
	r.logger.Info("conversion progress", logging.Args(attrs...)...)
}

func (r *logReporter) JobFinished(*queue.Job) {}

func (r *logReporter) BatchFinished(*queue.Batch) {}

func roundPercent(p float64) float64 {
	return float64(int(p*10+0.5)) / 10
}
