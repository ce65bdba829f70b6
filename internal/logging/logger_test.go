package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"movconv/internal/config"
	"movconv/internal/logging"
	"movconv/internal/services"
)

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-info.log")

	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message without caller", logging.String("source", "a b.mov"))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	text := string(content)
	if strings.Contains(text, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", text)
	}
	if !strings.Contains(text, "INFO – message without caller") {
		t.Fatalf("expected level and message in output, got %q", text)
	}
	if !strings.Contains(text, `source="a b.mov"`) {
		t.Fatalf("expected quoted attribute value, got %q", text)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-debug.log")

	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "debug",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Debug("message with caller")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestConsoleLoggerLiftsComponentAndJob(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-subject.log")

	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger = logging.NewComponentLogger(logger, "convert")
	logger.Info("converted",
		logging.String(logging.FieldJobID, "0123456789abcdef"),
		logging.String(logging.FieldRunID, "run-should-be-hidden"),
	)

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, "INFO [convert] job 01234567 – converted") {
		t.Fatalf("expected component and short job id in header, got %q", text)
	}
	if strings.Contains(text, "run-should-be-hidden") {
		t.Fatalf("expected run id to be omitted from console output, got %q", text)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestJSONLoggerWritesStructuredRecords(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.json")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("json message", logging.String("k", "v"))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(content), &record); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, content)
	}
	if record["level"] != "info" || record["msg"] != "json message" || record["k"] != "v" {
		t.Fatalf("unexpected json record: %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key in json record: %v", record)
	}
}

func TestNewFromConfigWritesRunLog(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Dir = t.TempDir()

	logger, runLog, err := logging.NewFromConfig(&cfg, "run42", "error")
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	if runLog == nil || runLog.Path != filepath.Join(cfg.Logging.Dir, "movconv-run42.log") {
		t.Fatalf("unexpected run log %+v", runLog)
	}
	logger.Info("recorded in file only")
	if err := runLog.Close(); err != nil {
		t.Fatalf("close run log: %v", err)
	}

	content, err := os.ReadFile(runLog.Path)
	if err != nil {
		t.Fatalf("read run log: %v", err)
	}
	if !strings.Contains(string(content), "recorded in file only") {
		t.Fatalf("expected info record in run log, got %q", content)
	}

	logger.Info("after close")
	content, err = os.ReadFile(runLog.Path)
	if err != nil {
		t.Fatalf("read run log: %v", err)
	}
	if strings.Contains(string(content), "after close") {
		t.Fatalf("closed run log must not receive records, got %q", content)
	}
}

func TestNewFromConfigWithoutDir(t *testing.T) {
	cfg := config.Default()
	logger, runLog, err := logging.NewFromConfig(&cfg, "run", "")
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	if logger == nil || runLog != nil {
		t.Fatalf("expected console-only logger, got run log %+v", runLog)
	}
	if err := runLog.Close(); err != nil {
		t.Fatalf("closing a nil run log must be a no-op: %v", err)
	}
}

func TestWithContextAddsFields(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-1")
	ctx = services.WithJobID(ctx, "job-2")

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logging.WithContext(ctx, logger).Info("contextual log")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record[logging.FieldRunID] != "run-1" {
		t.Fatalf("run id = %v, want run-1", record[logging.FieldRunID])
	}
	if record[logging.FieldJobID] != "job-2" {
		t.Fatalf("job id = %v, want job-2", record[logging.FieldJobID])
	}
}

func TestTeeLoggerDuplicatesRecords(t *testing.T) {
	var first, second bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&first, &slog.HandlerOptions{Level: slog.LevelWarn}))
	logger := logging.TeeLogger(base, slog.NewJSONHandler(&second, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logger.Info("info only in second")
	logger.Warn("warn in both")

	if strings.Contains(first.String(), "info only in second") {
		t.Fatalf("expected first handler to filter info, got %q", first.String())
	}
	if !strings.Contains(first.String(), "warn in both") || !strings.Contains(second.String(), "warn in both") {
		t.Fatalf("expected warn record in both handlers: %q / %q", first.String(), second.String())
	}
	if !strings.Contains(second.String(), "info only in second") {
		t.Fatalf("expected info record in second handler, got %q", second.String())
	}
}

func TestWarnWithContextFillsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logging.WarnWithContext(logger, "could not delete source", "source_delete_failed")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record[logging.FieldEventType] != "source_delete_failed" {
		t.Fatalf("unexpected event type %v", record[logging.FieldEventType])
	}
	if record[logging.FieldImpact] == nil {
		t.Fatal("expected default impact field")
	}
}
