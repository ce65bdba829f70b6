package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"movconv/internal/services"
)

var commandContext = exec.CommandContext

const (
	defaultBinary          = "ffmpeg"
	defaultDiagnosticLines = 20
	maxLineBytes           = 1024 * 1024
)

// DefaultArgs selects H.264 video and AAC audio.
var DefaultArgs = []string{"-c:v", "libx264", "-c:a", "aac"}

// Result summarizes one encoder invocation.
type Result struct {
	// Elapsed is the last media timestamp the encoder reported.
	Elapsed time.Duration
	// Total is the input duration, zero when the header was not seen.
	Total time.Duration
	// Diagnostic holds the last non-progress output lines.
	Diagnostic string
}

// Converter defines MOV to MP4 conversion behaviour.
type Converter interface {
	Convert(ctx context.Context, input, output string, progress func(ProgressUpdate)) (Result, error)
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary = strings.TrimSpace(binary); binary != "" {
			c.binary = binary
		}
	}
}

// WithArgs replaces the codec arguments placed between input and output.
// A nil slice keeps the defaults; an empty non-nil slice passes none.
func WithArgs(args []string) Option {
	return func(c *CLI) {
		if args != nil {
			c.args = append([]string(nil), args...)
		}
	}
}

// WithDiagnosticLines sets how many trailing output lines are kept.
func WithDiagnosticLines(n int) Option {
	return func(c *CLI) {
		if n > 0 {
			c.diagnosticLines = n
		}
	}
}

// CLI wraps the ffmpeg command-line encoder.
type CLI struct {
	binary          string
	args            []string
	diagnosticLines int
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{
		binary:          defaultBinary,
		args:            append([]string(nil), DefaultArgs...),
		diagnosticLines: defaultDiagnosticLines,
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Binary returns the executable the client launches.
func (c *CLI) Binary() string {
	return c.binary
}

// BuildArgs returns the full argument list for converting input to output.
func (c *CLI) BuildArgs(input, output string) []string {
	args := make([]string, 0, len(c.args)+7)
	args = append(args, "-hide_banner", "-nostdin", "-y", "-i", input)
	args = append(args, c.args...)
	args = append(args, output)
	return args
}

// Convert runs ffmpeg for one file and blocks until it exits. progress is
// called for every stats line. A non-zero exit returns an error marked
// services.ErrEncoderExit; failure to launch is services.ErrSpawn; a
// canceled context is services.ErrCanceled. The Result is populated in all
// cases so callers can report the diagnostic tail.
func (c *CLI) Convert(ctx context.Context, input, output string, progress func(ProgressUpdate)) (Result, error) {
	var result Result
	if strings.TrimSpace(input) == "" {
		return result, errors.New("input path required")
	}
	if strings.TrimSpace(output) == "" {
		return result, errors.New("output path required")
	}
	if err := ctx.Err(); err != nil {
		return result, services.Wrap(services.ErrCanceled, "convert", "start ffmpeg", "conversion interrupted", err)
	}

	cmd := commandContext(ctx, c.binary, c.BuildArgs(input, output)...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return result, services.Wrap(services.ErrSpawn, "convert", "stdout pipe", "", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		result.Diagnostic = err.Error()
		return result, services.Wrap(services.ErrSpawn, "convert", "start ffmpeg", c.binary, err)
	}

	tail := newLineTail(c.diagnosticLines)
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	scanner.Split(scanLines)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if result.Total == 0 {
			if total, ok := ParseDurationLine(line); ok {
				result.Total = total
			}
		}
		if update, ok := ParseProgressLine(line); ok {
			update = update.withTotal(result.Total)
			result.Elapsed = update.Elapsed
			if progress != nil {
				progress(update)
			}
			continue
		}
		tail.add(line)
	}
	scanErr := scanner.Err()
	if scanErr != nil {
		// Keep the pipe flowing so the encoder can exit.
		_, _ = io.Copy(io.Discard, stdout)
	}

	waitErr := cmd.Wait()
	result.Diagnostic = tail.String()

	if ctxErr := ctx.Err(); ctxErr != nil && waitErr != nil {
		return result, services.Wrap(services.ErrCanceled, "convert", "run ffmpeg", "conversion interrupted", ctxErr)
	}
	if waitErr != nil {
		message := waitErr.Error()
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			message = fmt.Sprintf("exit status %d", exitErr.ExitCode())
		}
		if result.Diagnostic == "" {
			result.Diagnostic = message
		}
		return result, services.Wrap(services.ErrEncoderExit, "convert", "run ffmpeg", message, waitErr)
	}
	if scanErr != nil {
		return result, services.Wrap(services.ErrEncoderExit, "convert", "read ffmpeg output", "", scanErr)
	}
	return result, nil
}

// Version runs "<binary> -version" and returns the first output line.
func (c *CLI) Version(ctx context.Context) (string, error) {
	cmd := commandContext(ctx, c.binary, "-version") //nolint:gosec
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", services.Wrap(services.ErrSpawn, "preflight", "ffmpeg -version", c.binary, err)
	}
	first, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(first), nil
}

// lineTail keeps the most recent n lines.
type lineTail struct {
	lines []string
	limit int
}

func newLineTail(limit int) *lineTail {
	if limit <= 0 {
		limit = defaultDiagnosticLines
	}
	return &lineTail{limit: limit}
}

func (t *lineTail) add(line string) {
	if len(t.lines) == t.limit {
		copy(t.lines, t.lines[1:])
		t.lines = t.lines[:t.limit-1]
	}
	t.lines = append(t.lines, line)
}

func (t *lineTail) String() string {
	return strings.Join(t.lines, "\n")
}

var _ Converter = (*CLI)(nil)
