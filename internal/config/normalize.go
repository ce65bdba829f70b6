package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeEncoder(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.LocalBinDir) == "" {
		c.Paths.LocalBinDir = defaultLocalBinDir
	}

	var err error
	if c.Paths.InputDir, err = expandPath(strings.TrimSpace(c.Paths.InputDir)); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LocalBinDir, err = expandPath(strings.TrimSpace(c.Paths.LocalBinDir)); err != nil {
		return fmt.Errorf("paths.local_bin_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeEncoder() error {
	c.Encoder.Binary = strings.TrimSpace(c.Encoder.Binary)
	if c.Encoder.Binary == "" {
		if value, ok := os.LookupEnv("MOVCONV_FFMPEG"); ok {
			c.Encoder.Binary = strings.TrimSpace(value)
		}
	}
	if strings.ContainsAny(c.Encoder.Binary, `/\`) {
		expanded, err := expandPath(c.Encoder.Binary)
		if err != nil {
			return fmt.Errorf("encoder.binary: %w", err)
		}
		c.Encoder.Binary = expanded
	}

	args := make([]string, 0, len(c.Encoder.Args))
	for _, arg := range c.Encoder.Args {
		if trimmed := strings.TrimSpace(arg); trimmed != "" {
			args = append(args, trimmed)
		}
	}
	c.Encoder.Args = args

	if c.Encoder.DiagnosticLines <= 0 {
		c.Encoder.DiagnosticLines = defaultDiagnosticLines
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.ProgressIntervalSeconds <= 0 {
		c.Logging.ProgressIntervalSeconds = defaultProgressIntervalSeconds
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		dir, err := expandPath(strings.TrimSpace(c.Logging.Dir))
		if err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
		c.Logging.Dir = dir
	}
	return nil
}
