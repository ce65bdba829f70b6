package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"movconv/internal/services"
	"movconv/internal/testsupport"
)

func TestConvertSucceedsAndDeletesSources(t *testing.T) {
	env := setupCLITestEnv(t,
		testsupport.WithSources("a.mov", "b.MOV", "notes.txt"),
		testsupport.WithStubbedFFmpeg(testsupport.FFmpegSucceed),
		testsupport.WithLogDir(),
	)

	out, _, err := runCLI(t, []string{"--delete"}, env.configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	requireContains(t, out, "2 Total files processed")
	requireContains(t, out, "2 Successfully converted")
	requireContains(t, out, "0 Failed conversions")
	requireContains(t, out, "2 Source files deleted")
	requireContains(t, out, "Run log: ")

	for _, name := range []string{"a.mp4", "b.mp4"} {
		data, err := os.ReadFile(filepath.Join(env.cfg.Paths.OutputDir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if string(data) != "converted" {
			t.Fatalf("unexpected %s contents %q", name, data)
		}
	}
	for _, name := range []string{"a.mov", "b.MOV"} {
		if testsupport.Exists(filepath.Join(env.cfg.Paths.InputDir, name)) {
			t.Fatalf("expected %s to be deleted", name)
		}
	}
	if !testsupport.Exists(filepath.Join(env.cfg.Paths.InputDir, "notes.txt")) {
		t.Fatal("non-MOV file must be left alone")
	}
}

func TestConvertKeepsSourcesWithoutDeleteFlag(t *testing.T) {
	env := setupCLITestEnv(t,
		testsupport.WithSources("clip.mov"),
		testsupport.WithStubbedFFmpeg(testsupport.FFmpegSucceed),
	)

	out, _, err := runCLI(t, nil, env.configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	requireContains(t, out, "1 Successfully converted")
	requireNotContains(t, out, "Source files deleted")
	if !testsupport.Exists(filepath.Join(env.cfg.Paths.InputDir, "clip.mov")) {
		t.Fatal("source must be kept without --delete")
	}
}

func TestConvertDeletesWhenConfigured(t *testing.T) {
	env := setupCLITestEnv(t,
		testsupport.WithSources("clip.mov"),
		testsupport.WithStubbedFFmpeg(testsupport.FFmpegSucceed),
		testsupport.WithDeleteSource(),
	)

	out, _, err := runCLI(t, nil, env.configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	requireContains(t, out, "1 Source files deleted")
	if testsupport.Exists(filepath.Join(env.cfg.Paths.InputDir, "clip.mov")) {
		t.Fatal("delete_source in the config file must remove the source")
	}
}

func TestConvertReportsFailureDiagnostic(t *testing.T) {
	env := setupCLITestEnv(t,
		testsupport.WithSources("broken.mov"),
		testsupport.WithStubbedFFmpeg(testsupport.FFmpegFail),
	)

	out, _, err := runCLI(t, []string{"-d"}, env.configPath)
	if err != nil {
		t.Fatalf("per-file failures must not fail the run: %v", err)
	}
	requireContains(t, out, "1 Failed conversions")
	requireContains(t, out, "== Failures ==")
	requireContains(t, out, "Invalid data found when processing input")
	if !testsupport.Exists(filepath.Join(env.cfg.Paths.InputDir, "broken.mov")) {
		t.Fatal("failed source must be retained")
	}
	if testsupport.Exists(filepath.Join(env.cfg.Paths.OutputDir, "broken.mp4")) {
		t.Fatal("failed conversion must not leave an output file")
	}
}

func TestConvertMissingInputDirIsFatal(t *testing.T) {
	env := setupCLITestEnv(t,
		testsupport.WithStubbedFFmpeg(testsupport.FFmpegSucceed),
		testsupport.WithLogDir(),
	)
	missing := filepath.Join(env.baseDir, "nowhere")

	_, _, err := runCLI(t, []string{"--input-dir", missing}, env.configPath)
	if err == nil {
		t.Fatal("expected error for missing input directory")
	}
	if !errors.Is(err, services.ErrDiscovery) {
		t.Fatalf("expected discovery error, got %v", err)
	}
	if testsupport.Exists(env.cfg.Paths.OutputDir) {
		t.Fatal("output directory must not be created when discovery fails")
	}

	logs, err := filepath.Glob(filepath.Join(env.cfg.Logging.Dir, "movconv-*.log"))
	if err != nil || len(logs) != 1 {
		t.Fatalf("expected one run log, got %v (%v)", logs, err)
	}
	content, err := os.ReadFile(logs[0])
	if err != nil {
		t.Fatalf("read run log: %v", err)
	}
	requireContains(t, string(content), `"event_type":"batch_aborted"`)
}

func TestConvertWithNoSources(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedFFmpeg(testsupport.FFmpegSucceed))

	out, _, err := runCLI(t, nil, env.configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	requireContains(t, out, "No MOV files found in "+env.cfg.Paths.InputDir+"; nothing to convert")
}

func TestConvertFlagOverridesConfig(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedFFmpeg(testsupport.FFmpegSucceed))
	altInput := filepath.Join(env.baseDir, "alt-in")
	altOutput := filepath.Join(env.baseDir, "alt-out")
	testsupport.WriteFile(t, filepath.Join(altInput, "x.mov"), 16)

	out, _, err := runCLI(t, []string{"--input-dir", altInput, "--output-dir", altOutput}, env.configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	requireContains(t, out, "1 Successfully converted")
	if !testsupport.Exists(filepath.Join(altOutput, "x.mp4")) {
		t.Fatal("expected output in overridden directory")
	}
	if testsupport.Exists(env.cfg.Paths.OutputDir) {
		t.Fatal("configured output directory must not be used")
	}
}

func TestConvertRejectsSameInputAndOutput(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"--output-dir", env.cfg.Paths.InputDir}, env.configPath)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
