package ffmpeg

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

var lookPath = exec.LookPath

// LocalBinaryName is the executable name expected inside the bundled
// fallback directory.
func LocalBinaryName() string {
	if runtime.GOOS == "windows" {
		return defaultBinary + ".exe"
	}
	return defaultBinary
}

// ResolveBinary picks the ffmpeg executable for a run. A configured value
// wins (a bare name is looked up on PATH); otherwise PATH is searched, then
// localDir. When nothing is found the local fallback path is still returned
// with found=false, so each job fails to spawn instead of the run aborting.
func ResolveBinary(configured, localDir string) (path string, found bool) {
	if configured = strings.TrimSpace(configured); configured != "" {
		if !strings.ContainsAny(configured, `/\`) {
			if resolved, err := lookPath(configured); err == nil {
				return resolved, true
			}
			return configured, false
		}
		return configured, isExecutableFile(configured)
	}

	if resolved, err := lookPath(defaultBinary); err == nil {
		return resolved, true
	}

	fallback := filepath.Join(localDir, LocalBinaryName())
	return fallback, isExecutableFile(fallback)
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
