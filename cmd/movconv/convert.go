package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"movconv/internal/batch"
	"movconv/internal/logging"
	"movconv/internal/preflight"
	"movconv/internal/services"
	"movconv/internal/services/ffmpeg"
)

func runConvert(cmd *cobra.Command, ctx *commandContext) error {
	signalCtx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	interactive := shouldColorize(out)
	runID := uuid.NewString()

	// The progress bar owns the terminal; only warnings and errors interleave with it.
	consoleLevel := ""
	if interactive && (cfg.Logging.Level == "info" || cfg.Logging.Level == "") {
		consoleLevel = "warn"
	}
	logger, runLog, err := logging.NewFromConfig(cfg, runID, consoleLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = runLog.Close() }()
	logPath := ""
	if runLog != nil {
		logPath = runLog.Path
	}
	logger = logger.With(logging.String(logging.FieldRunID, runID))
	if ctx.configPath != "" {
		logger.Debug("configuration resolved", logging.String("config_path", ctx.configPath))
	}

	for _, result := range preflight.Failed(preflight.RunAll(signalCtx, cfg)) {
		logging.WarnWithContext(logger, "preflight check failed", "preflight_failed",
			logging.String("check", result.Name),
			logging.String("detail", result.Detail),
			logging.String(logging.FieldImpact, "conversions depending on this will fail"),
		)
	}

	binary, found := ffmpeg.ResolveBinary(cfg.FFmpegBinary(), cfg.Paths.LocalBinDir)
	logger.Debug("encoder resolved",
		logging.String("binary", binary),
		logging.Bool("found", found),
		logging.Any("args", cfg.Encoder.Args),
	)
	converter := ffmpeg.NewCLI(
		ffmpeg.WithBinary(binary),
		ffmpeg.WithArgs(cfg.Encoder.Args),
		ffmpeg.WithDiagnosticLines(cfg.Encoder.DiagnosticLines),
	)

	var reporter batch.Reporter
	if interactive {
		reporter = newBarReporter(out, true)
	} else {
		interval := time.Duration(cfg.Logging.ProgressIntervalSeconds) * time.Second
		reporter = newLogReporter(logger, interval)
	}

	runner, err := batch.NewRunner(batch.Options{
		InputDir:     cfg.Paths.InputDir,
		OutputDir:    cfg.Paths.OutputDir,
		DeleteSource: cfg.Conversion.DeleteSource,
		RunID:        runID,
		Converter:    converter,
		Reporter:     reporter,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	result, err := runner.Run(signalCtx)
	if err != nil {
		if services.IsFatal(err) {
			logging.ErrorWithContext(logger, "conversion run aborted", "batch_aborted",
				logging.String(logging.FieldImpact, "no files were converted"),
				logging.Error(err),
			)
		}
		return err
	}

	fmt.Fprint(out, renderSummary(result, summaryOptions{
		colorize:     interactive,
		deleteSource: cfg.Conversion.DeleteSource,
		logPath:      logPath,
	}))

	if result.Interrupted {
		return context.Canceled
	}
	return nil
}
