package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"movconv/internal/queue"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

type statusStyle struct {
	label string
	glyph string
	color string
}

var statusStyles = map[statusKind]statusStyle{
	statusInfo:  {label: "INFO", glyph: "·", color: ansiBlue},
	statusOK:    {label: "OK", glyph: "✓", color: ansiGreen},
	statusWarn:  {label: "WARN", glyph: "!", color: ansiYellow},
	statusError: {label: "ERROR", glyph: "✗", color: ansiRed},
}

func styleFor(kind statusKind) statusStyle {
	if style, ok := statusStyles[kind]; ok {
		return style
	}
	return statusStyles[statusInfo]
}

func paint(kind statusKind, text string, colorize bool) string {
	if !colorize {
		return text
	}
	return styleFor(kind).color + text + ansiReset
}

// renderStatusLine formats a "label: [KIND] message" line for check output.
func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	status := "[" + styleFor(kind).label + "]"
	if message != "" {
		status += " " + message
	}
	return paint(kind, fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", status), colorize)
}

// jobStatusKind classifies a finished job. A converted file whose source
// could not be removed is a warning, not a failure.
func jobStatusKind(job *queue.Job) statusKind {
	switch {
	case job.Status == queue.StatusFailed:
		return statusError
	case job.Status != queue.StatusSucceeded:
		return statusInfo
	case job.DeleteErr != nil:
		return statusWarn
	default:
		return statusOK
	}
}

// renderJobResult is the one-line outcome of a job, shared by the progress
// bar and the summary.
func renderJobResult(job *queue.Job, colorize bool) string {
	kind := jobStatusKind(job)
	name := filepath.Base(job.Source)
	var text string
	switch kind {
	case statusError:
		text = fmt.Sprintf("Failed to convert %s: %s", name, job.Reason)
	case statusWarn:
		text = fmt.Sprintf("Converted %s; source not deleted: %v", name, job.DeleteErr)
	case statusOK:
		text = "Successfully converted: " + name
		if job.Deleted {
			text += " (source deleted)"
		}
	default:
		text = fmt.Sprintf("%s: %s", name, job.Status)
	}
	return paint(kind, styleFor(kind).glyph+" "+text, colorize)
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	return []string{paint(statusInfo, line, colorize), paint(statusInfo, rule, colorize)}
}

// shouldColorize doubles as the "interactive terminal" test: the progress
// bar is drawn only where colors would be.
func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
