package ffmpeg

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ProgressUpdate is one parsed stats line from ffmpeg.
type ProgressUpdate struct {
	// Elapsed is the media timestamp reached so far (the time= token).
	Elapsed time.Duration
	// Total is the input duration from the Duration: header, zero if unknown.
	Total time.Duration
	// Percent is Elapsed/Total in [0,100], or -1 when Total is unknown.
	Percent float64
	// Speed is the encode speed multiplier (speed=2.5x), zero if unknown.
	Speed float64
	Line  string
}

// ParseProgressLine extracts the time= and speed= tokens from an ffmpeg stats
// line. It reports false for lines without a usable time= value.
func ParseProgressLine(line string) (ProgressUpdate, bool) {
	raw, ok := tokenValue(line, "time=")
	if !ok {
		return ProgressUpdate{}, false
	}
	elapsed, ok := parseTimestamp(raw)
	if !ok {
		return ProgressUpdate{}, false
	}
	update := ProgressUpdate{Elapsed: elapsed, Percent: -1, Line: strings.TrimSpace(line)}
	if rawSpeed, ok := tokenValue(line, "speed="); ok {
		if speed, err := strconv.ParseFloat(strings.TrimSuffix(rawSpeed, "x"), 64); err == nil {
			update.Speed = speed
		}
	}
	return update, true
}

// ParseDurationLine extracts the total from an input header line such as
// "  Duration: 00:01:02.50, start: 0.000000, bitrate: 1234 kb/s".
func ParseDurationLine(line string) (time.Duration, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "Duration:") {
		return 0, false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(trimmed, "Duration:"))
	if idx := strings.IndexByte(raw, ','); idx >= 0 {
		raw = raw[:idx]
	}
	total, ok := parseTimestamp(strings.TrimSpace(raw))
	if !ok || total <= 0 {
		return 0, false
	}
	return total, true
}

// withTotal fills in Total and Percent once the input duration is known.
func (u ProgressUpdate) withTotal(total time.Duration) ProgressUpdate {
	u.Total = total
	if total <= 0 {
		u.Percent = -1
		return u
	}
	percent := float64(u.Elapsed) / float64(total) * 100
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}
	u.Percent = percent
	return u
}

// FormatElapsed renders d as HH:MM:SS for progress display.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// tokenValue returns the value following key, skipping the padding ffmpeg
// inserts after '=' (for example "size=     256kB").
func tokenValue(line, key string) (string, bool) {
	idx := strings.Index(line, key)
	if idx < 0 {
		return "", false
	}
	rest := strings.TrimLeft(line[idx+len(key):], " ")
	if end := strings.IndexAny(rest, " \t"); end >= 0 {
		rest = rest[:end]
	}
	if rest == "" {
		return "", false
	}
	return rest, true
}

// parseTimestamp parses [-]HH:MM:SS[.frac]. Negative values clamp to zero;
// N/A and malformed values are rejected.
func parseTimestamp(value string) (time.Duration, bool) {
	negative := strings.HasPrefix(value, "-")
	value = strings.TrimPrefix(value, "-")
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes >= 60 {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil || seconds < 0 || seconds >= 60 {
		return 0, false
	}
	if negative {
		return 0, true
	}
	d := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds*float64(time.Second))
	return d, true
}

// scanLines is a bufio.SplitFunc that ends a token at '\n' or '\r'. ffmpeg
// redraws its stats line with bare carriage returns, so bufio.ScanLines would
// buffer the whole encode as one line. Empty tokens (from "\r\n") are
// skipped by the caller.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
