package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"movconv/internal/queue"
	"movconv/internal/services/ffmpeg"
)

func TestProgressDescription(t *testing.T) {
	job := queue.NewJob("/in/holiday.mov", "/out")
	tests := []struct {
		name   string
		update ffmpeg.ProgressUpdate
		want   string
	}{
		{
			name:   "known duration",
			update: ffmpeg.ProgressUpdate{Elapsed: 61 * time.Second, Total: 2 * time.Hour, Percent: 0.8},
			want:   "Converting: holiday.mov 00:01:01 / 02:00:00",
		},
		{
			name:   "unknown duration",
			update: ffmpeg.ProgressUpdate{Elapsed: 5 * time.Second, Percent: -1},
			want:   "Converting: holiday.mov 00:00:05",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := progressDescription(job, tt.update); got != tt.want {
				t.Fatalf("progressDescription = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBarReporterPrintsResultLines(t *testing.T) {
	var out bytes.Buffer
	reporter := newBarReporter(&out, false)

	job := queue.NewJob("/in/a.mov", "/out")
	reporter.BatchStarted(1)
	reporter.JobStarted(job, 0, 1)
	mustNoErr(t, job.Start())
	reporter.JobProgress(job, ffmpeg.ProgressUpdate{Elapsed: time.Second, Total: 2 * time.Second, Percent: 50})
	mustNoErr(t, job.Succeed())
	reporter.JobFinished(job)
	reporter.BatchFinished(nil)

	requireContains(t, out.String(), "Found 1 MOV files to process")
	requireContains(t, out.String(), "✓ Successfully converted: a.mov")
}

func TestBarReporterIgnoresEmptyBatch(t *testing.T) {
	var out bytes.Buffer
	reporter := newBarReporter(&out, false)
	reporter.BatchStarted(0)
	reporter.BatchFinished(nil)
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestLogReporterSamplesProgress(t *testing.T) {
	var buf bytes.Buffer
	reporter := newLogReporter(slog.New(slog.NewJSONHandler(&buf, nil)), 10*time.Second)

	job := queue.NewJob("/in/a.mov", "/out")
	reporter.JobStarted(job, 0, 1)
	for _, pct := range []float64{1, 2, 3, 12, 13, 25} {
		reporter.JobProgress(job, ffmpeg.ProgressUpdate{Elapsed: time.Second, Total: time.Minute, Percent: pct})
	}
	lines := strings.Count(buf.String(), "conversion progress")
	if lines != 3 {
		t.Fatalf("expected 3 sampled progress lines, got %d:\n%s", lines, buf.String())
	}
	requireContains(t, buf.String(), `"event_type":"job_progress"`)
}
