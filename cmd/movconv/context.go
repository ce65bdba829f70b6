package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"movconv/internal/config"
	"movconv/internal/services"
)

type commandContext struct {
	configFlag    *string
	inputDirFlag  *string
	outputDirFlag *string
	ffmpegFlag    *string
	logLevelFlag  *string
	logFormatFlag *string
	deleteFlag    *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext() *commandContext {
	return &commandContext{
		configFlag:    new(string),
		inputDirFlag:  new(string),
		outputDirFlag: new(string),
		ffmpegFlag:    new(string),
		logLevelFlag:  new(string),
		logFormatFlag: new(string),
		deleteFlag:    new(bool),
	}
}

// ensureConfig loads the configuration file once and layers command-line
// overrides on top of it.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(strings.TrimSpace(*c.configFlag))
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", path, err)
			return
		}
		c.applyOverrides(cfg)
		if err := cfg.Finalize(); err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "apply flags", "", err)
			return
		}
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

func (c *commandContext) applyOverrides(cfg *config.Config) {
	if v := strings.TrimSpace(*c.inputDirFlag); v != "" {
		cfg.Paths.InputDir = v
	}
	if v := strings.TrimSpace(*c.outputDirFlag); v != "" {
		cfg.Paths.OutputDir = v
	}
	if v := strings.TrimSpace(*c.ffmpegFlag); v != "" {
		cfg.Encoder.Binary = v
	}
	if v := strings.TrimSpace(*c.logLevelFlag); v != "" {
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(*c.logFormatFlag); v != "" {
		cfg.Logging.Format = v
	}
	if *c.deleteFlag {
		cfg.Conversion.DeleteSource = true
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
