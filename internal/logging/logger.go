package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"movconv/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level       string
	Format      string
	OutputPaths []string
}

// New constructs a slog logger using the provided options. Log files named
// in OutputPaths stay open for the life of the process.
func New(opts Options) (*slog.Logger, error) {
	handler, _, err := newHandler(opts)
	if err != nil {
		return nil, err
	}
	return slog.New(handler), nil
}

// RunLog is the JSON file sink of one run.
type RunLog struct {
	Path  string
	files io.Closer
}

// Close flushes and closes the log file. It is safe on a nil RunLog.
func (r *RunLog) Close() error {
	if r == nil || r.files == nil {
		return nil
	}
	return r.files.Close()
}

func newHandler(opts Options) (slog.Handler, io.Closer, error) {
	level := parseLevel(opts.Level)
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}
	if format != "json" && format != "console" {
		return nil, nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	outputWriter, files, err := openWriters(defaultSlice(opts.OutputPaths, []string{"stdout"}))
	if err != nil {
		return nil, nil, err
	}

	addSource := level <= slog.LevelDebug
	if format == "json" {
		return newJSONHandler(outputWriter, levelVar, addSource), files, nil
	}
	return newPrettyHandler(outputWriter, levelVar, addSource), files, nil
}

// NewFromConfig creates the run logger: console (or JSON) output on stdout at
// consoleLevel, plus a JSON file sink under cfg.Logging.Dir when configured.
// An empty consoleLevel uses cfg.Logging.Level. The returned RunLog is nil
// when no log file was opened; callers close it when the run ends.
func NewFromConfig(cfg *config.Config, runID, consoleLevel string) (*slog.Logger, *RunLog, error) {
	if strings.TrimSpace(consoleLevel) == "" {
		consoleLevel = cfg.Logging.Level
	}

	console, _, err := newHandler(Options{
		Level:       consoleLevel,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stdout"},
	})
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(console)

	if strings.TrimSpace(cfg.Logging.Dir) == "" {
		return logger, nil, nil
	}

	name := "movconv.log"
	if runID != "" {
		name = fmt.Sprintf("movconv-%s.log", runID)
	}
	logPath := filepath.Join(cfg.Logging.Dir, name)
	file, files, err := newHandler(Options{
		Level:       cfg.Logging.Level,
		Format:      "json",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open run log: %w", err)
	}
	return TeeLogger(logger, file), &RunLog{Path: logPath, files: files}, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func defaultSlice(value []string, fallback []string) []string {
	src := value
	if len(src) == 0 {
		src = fallback
	}
	cp := make([]string, len(src))
	copy(cp, src)
	return cp
}

// fileClosers closes every log file opened for a handler.
type fileClosers []io.Closer

func (c fileClosers) Close() error {
	var errs []error
	for _, closer := range c {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func openWriters(paths []string) (io.Writer, fileClosers, error) {
	seen := map[string]struct{}{}
	var writers []io.Writer
	var files fileClosers

	for _, path := range paths {
		trimmed := strings.TrimSpace(path)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}

		switch trimmed {
		case "stdout":
			writers = append(writers, os.Stdout)
		case "stderr":
			writers = append(writers, os.Stderr)
		default:
			if err := ensureLogDir(trimmed); err != nil {
				_ = files.Close()
				return nil, nil, err
			}
			file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
			if err != nil {
				_ = files.Close()
				return nil, nil, fmt.Errorf("open log file %s: %w", trimmed, err)
			}
			writers = append(writers, file)
			files = append(files, file)
		}
	}

	switch len(writers) {
	case 0:
		return os.Stdout, files, nil
	case 1:
		return writers[0], files, nil
	default:
		return io.MultiWriter(writers...), files, nil
	}
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	opts := slog.HandlerOptions{
		Level:     lvl,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339Nano))
				}
			case slog.LevelKey:
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
			}
			return attr
		},
	}
	return slog.NewJSONHandler(w, &opts)
}
