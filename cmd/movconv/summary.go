package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"movconv/internal/queue"
	"movconv/internal/services/ffmpeg"
)

type summaryOptions struct {
	colorize     bool
	deleteSource bool
	logPath      string
}

// renderSummary formats the end-of-run report: counts, a per-file table,
// failure diagnostics, and any sources that could not be deleted.
func renderSummary(batch *queue.Batch, opts summaryOptions) string {
	var b strings.Builder
	if batch.Empty() {
		fmt.Fprintf(&b, "No MOV files found in %s; nothing to convert\n", batch.InputDir)
		writeLogPath(&b, opts.logPath)
		return b.String()
	}

	for _, line := range renderSectionHeader("Summary", opts.colorize) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(renderJobTable(batch.Jobs))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%d Total files processed\n", batch.Total())
	fmt.Fprintf(&b, "%d Successfully converted\n", batch.Succeeded())
	fmt.Fprintf(&b, "%d Failed conversions\n", batch.Failed())
	if opts.deleteSource {
		deleted := 0
		for _, job := range batch.Jobs {
			if job.Deleted {
				deleted++
			}
		}
		fmt.Fprintf(&b, "%d Source files deleted\n", deleted)
	}
	if batch.Interrupted {
		b.WriteString("Run interrupted; remaining files were not converted\n")
	}

	if failures := batch.Failures(); len(failures) > 0 {
		b.WriteByte('\n')
		for _, line := range renderSectionHeader("Failures", opts.colorize) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		for _, job := range failures {
			b.WriteString(renderJobResult(job, opts.colorize))
			b.WriteByte('\n')
			for _, line := range strings.Split(job.Diagnostic, "\n") {
				if strings.TrimSpace(line) == "" {
					continue
				}
				b.WriteString(statusIndent + statusIndent + line + "\n")
			}
		}
	}

	if deleteFailures := batch.DeleteFailures(); len(deleteFailures) > 0 {
		b.WriteByte('\n')
		for _, line := range renderSectionHeader("Sources not deleted", opts.colorize) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		for _, job := range deleteFailures {
			b.WriteString(renderJobResult(job, opts.colorize))
			b.WriteByte('\n')
		}
	}

	writeLogPath(&b, opts.logPath)
	return b.String()
}

func renderJobTable(jobs []*queue.Job) string {
	layout := tableLayout{
		headers: []string{"File", "Status", "Media", "Took", "Source", "Output"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
		rows:    make([][]string, 0, len(jobs)),
	}
	var took time.Duration
	var sourceBytes, outputBytes int64
	for _, job := range jobs {
		layout.rows = append(layout.rows, []string{
			filepath.Base(job.Source),
			string(job.Status),
			ffmpeg.FormatElapsed(job.Elapsed),
			formatTook(job.Duration()),
			formatBytes(job.SourceBytes),
			formatBytes(job.OutputBytes),
		})
		took += job.Duration()
		sourceBytes += job.SourceBytes
		outputBytes += job.OutputBytes
	}
	layout.footer = []string{"Total", "", "", formatTook(took), formatBytes(sourceBytes), formatBytes(outputBytes)}
	return renderTable(layout)
}

func formatTook(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(100 * time.Millisecond).String()
}

func formatBytes(n int64) string {
	if n <= 0 {
		return "-"
	}
	return humanize.Bytes(uint64(n))
}

func writeLogPath(b *strings.Builder, path string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	fmt.Fprintf(b, "\nRun log: %s\n", path)
}
