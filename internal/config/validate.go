package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateEncoder(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.InputDir == "" {
		return errors.New("paths.input_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if filepath.Clean(c.Paths.InputDir) == filepath.Clean(c.Paths.OutputDir) {
		return fmt.Errorf("paths.output_dir must differ from paths.input_dir (%s)", c.Paths.InputDir)
	}
	return nil
}

func (c *Config) validateEncoder() error {
	for _, arg := range c.Encoder.Args {
		switch arg {
		case "-i", "-y", "-n":
			return fmt.Errorf("encoder.args must not contain %q; input, output, and overwrite flags are managed by movconv", arg)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if strings.TrimSpace(c.Logging.Dir) != "" && filepath.Clean(c.Logging.Dir) == filepath.Clean(c.Paths.InputDir) {
		return errors.New("logging.dir must not be the input directory")
	}
	return nil
}
