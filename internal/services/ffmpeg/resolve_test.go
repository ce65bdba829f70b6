package ffmpeg

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func stubLookPath(t *testing.T, results map[string]string) {
	t.Helper()
	original := lookPath
	lookPath = func(name string) (string, error) {
		if path, ok := results[name]; ok {
			return path, nil
		}
		return "", errors.New("executable file not found in $PATH")
	}
	t.Cleanup(func() {
		lookPath = original
	})
}

func writeExecutable(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestResolveBinaryPrefersConfiguredPath(t *testing.T) {
	stubLookPath(t, map[string]string{"ffmpeg": "/usr/bin/ffmpeg"})
	configured := filepath.Join(t.TempDir(), "custom", LocalBinaryName())
	writeExecutable(t, configured)

	path, found := ResolveBinary(configured, t.TempDir())
	if path != configured || !found {
		t.Fatalf("expected configured binary, got %q found=%v", path, found)
	}
}

func TestResolveBinaryConfiguredMissing(t *testing.T) {
	stubLookPath(t, map[string]string{"ffmpeg": "/usr/bin/ffmpeg"})
	configured := filepath.Join(t.TempDir(), "nope", "ffmpeg")

	path, found := ResolveBinary(configured, t.TempDir())
	if path != configured || found {
		t.Fatalf("expected missing configured binary to be kept, got %q found=%v", path, found)
	}
}

func TestResolveBinaryConfiguredName(t *testing.T) {
	stubLookPath(t, map[string]string{"ffmpeg7": "/opt/bin/ffmpeg7"})

	path, found := ResolveBinary("ffmpeg7", t.TempDir())
	if path != "/opt/bin/ffmpeg7" || !found {
		t.Fatalf("expected PATH lookup of configured name, got %q found=%v", path, found)
	}
}

func TestResolveBinaryUsesPath(t *testing.T) {
	stubLookPath(t, map[string]string{"ffmpeg": "/usr/bin/ffmpeg"})

	path, found := ResolveBinary("", t.TempDir())
	if path != "/usr/bin/ffmpeg" || !found {
		t.Fatalf("expected PATH binary, got %q found=%v", path, found)
	}
}

func TestResolveBinaryFallsBackToLocalDir(t *testing.T) {
	stubLookPath(t, nil)
	localDir := filepath.Join(t.TempDir(), "bin", "ffmpeg")
	local := filepath.Join(localDir, LocalBinaryName())
	writeExecutable(t, local)

	path, found := ResolveBinary("", localDir)
	if path != local || !found {
		t.Fatalf("expected local fallback, got %q found=%v", path, found)
	}
}

func TestResolveBinaryNothingFound(t *testing.T) {
	stubLookPath(t, nil)
	localDir := filepath.Join(t.TempDir(), "bin", "ffmpeg")

	path, found := ResolveBinary("", localDir)
	if found {
		t.Fatal("expected found=false when no encoder exists")
	}
	if path != filepath.Join(localDir, LocalBinaryName()) {
		t.Fatalf("expected fallback path to be returned, got %q", path)
	}
}

func TestResolveBinaryIgnoresNonExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bits are not meaningful on windows")
	}
	stubLookPath(t, nil)
	localDir := t.TempDir()
	local := filepath.Join(localDir, LocalBinaryName())
	if err := os.WriteFile(local, []byte("data"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, found := ResolveBinary("", localDir); found {
		t.Fatal("expected non-executable fallback to be reported as missing")
	}
}
