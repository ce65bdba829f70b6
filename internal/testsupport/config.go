package testsupport

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"movconv/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// FFmpegMode selects how a stubbed encoder behaves.
type FFmpegMode string

const (
	// FFmpegSucceed writes the output file and exits 0.
	FFmpegSucceed FFmpegMode = "succeed"
	// FFmpegFail prints a diagnostic and exits 1 without writing output.
	FFmpegFail FFmpegMode = "fail"
)

// NewConfig produces a config seeded with unique temp directories per test.
// The input directory exists; the output directory does not.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InputDir = filepath.Join(base, "mov")
	cfgVal.Paths.OutputDir = filepath.Join(base, "mp4")
	cfgVal.Paths.LocalBinDir = filepath.Join(base, "bin", "ffmpeg")
	if err := os.MkdirAll(cfgVal.Paths.InputDir, 0o755); err != nil {
		t.Fatalf("mkdir input dir: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithDeleteSource enables source removal after successful conversion.
func WithDeleteSource() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Conversion.DeleteSource = true
	}
}

// WithLogDir points the run log at a directory under the test root.
func WithLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.Dir = filepath.Join(b.baseDir, "logs")
	}
}

// WithSources creates empty-ish source files in the input directory.
func WithSources(names ...string) ConfigOption {
	return func(b *configBuilder) {
		for _, name := range names {
			WriteFile(b.t, filepath.Join(b.cfg.Paths.InputDir, name), 64)
		}
	}
}

// WithStubbedFFmpeg writes a shell script that mimics ffmpeg's output and
// configures it as the encoder binary. The stub answers "-version", prints a
// Duration header and two carriage-return stats lines, and then either
// writes its last argument (the output path) or fails.
func WithStubbedFFmpeg(mode FFmpegMode) ConfigOption {
	return func(b *configBuilder) {
		if runtime.GOOS == "windows" {
			b.t.Skip("ffmpeg stub requires a unix shell")
		}
		binDir := filepath.Join(b.baseDir, "stub")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir stub dir: %v", err)
		}
		result := "printf 'converted' > \"$last\"\nexit 0\n"
		if mode == FFmpegFail {
			result = "echo \"$input: Invalid data found when processing input\" >&2\nexit 1\n"
		}
		script := "#!/bin/sh\n" +
			"if [ \"$1\" = \"-version\" ]; then echo 'ffmpeg version 7.1-stub'; exit 0; fi\n" +
			"input=''\nprev=''\n" +
			"for last; do if [ \"$prev\" = \"-i\" ]; then input=\"$last\"; fi; prev=\"$last\"; done\n" +
			"echo \"Input #0, mov,mp4,m4a,3gp,3g2,mj2, from '$input':\" >&2\n" +
			"echo '  Duration: 00:00:02.00, start: 0.000000, bitrate: 100 kb/s' >&2\n" +
			"printf 'frame=   24 fps=0.0 q=28.0 size=       0kB time=00:00:01.00 bitrate=N/A speed=2.0x\\r' >&2\n" +
			"printf 'frame=   48 fps=0.0 q=-1.0 Lsize=      1kB time=00:00:02.00 bitrate=4.0kbits/s speed=2.0x\\n' >&2\n" +
			result
		target := filepath.Join(binDir, "ffmpeg")
		if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
			b.t.Fatalf("write ffmpeg stub: %v", err)
		}
		b.cfg.Encoder.Binary = target
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.InputDir)
}
