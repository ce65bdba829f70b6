package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"movconv/internal/discovery"
	"movconv/internal/logging"
	"movconv/internal/queue"
	"movconv/internal/services"
	"movconv/internal/services/ffmpeg"
)

// Options configures a Runner.
type Options struct {
	InputDir     string
	OutputDir    string
	DeleteSource bool
	RunID        string
	Converter    ffmpeg.Converter
	Reporter     Reporter
	Logger       *slog.Logger
}

// Runner converts every MOV file in one directory, one at a time.
type Runner struct {
	inputDir     string
	outputDir    string
	deleteSource bool
	runID        string
	converter    ffmpeg.Converter
	reporter     Reporter
	logger       *slog.Logger
}

// NewRunner validates opts and returns a Runner.
func NewRunner(opts Options) (*Runner, error) {
	if opts.Converter == nil {
		return nil, errors.New("batch runner requires a converter")
	}
	if strings.TrimSpace(opts.InputDir) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "run", "validate options", "input directory required", nil)
	}
	if strings.TrimSpace(opts.OutputDir) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "run", "validate options", "output directory required", nil)
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Runner{
		inputDir:     opts.InputDir,
		outputDir:    opts.OutputDir,
		deleteSource: opts.DeleteSource,
		runID:        opts.RunID,
		converter:    opts.Converter,
		reporter:     reporter,
		logger:       logging.NewComponentLogger(opts.Logger, "batch"),
	}, nil
}

// Run performs the conversion pass. Fatal problems (unreadable input
// directory, output directory that cannot be created, a concurrent run)
// return a nil Batch and an error; per-file failures are recorded on the
// returned Batch and Run returns a nil error. Canceling ctx stops the
// current conversion, skips the remaining files, and marks the Batch
// Interrupted.
func (r *Runner) Run(ctx context.Context) (*queue.Batch, error) {
	ctx = services.WithRunID(ctx, r.runID)
	logger := logging.WithContext(ctx, r.logger)

	sources, err := discovery.Discover(r.inputDir)
	if err != nil {
		return nil, err
	}
	paths := slices.Collect(sources)

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrOutputDir, "run", "create output directory", r.outputDir, err)
	}

	lock, err := acquireLock(filepath.Join(r.outputDir, LockFileName))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.release(); err != nil {
			logger.Warn("failed to release run lock", logging.Error(err))
		}
	}()

	batch := queue.NewBatch(r.runID, r.inputDir, r.outputDir)
	total := len(paths)
	logger.Info("conversion run started",
		logging.String(logging.FieldEventType, "batch_start"),
		logging.String("input_dir", r.inputDir),
		logging.String("output_dir", r.outputDir),
		logging.Int("files", total),
		logging.Bool("delete_source", r.deleteSource),
	)
	r.reporter.BatchStarted(total)

	written := make(map[string]string, total)
	for idx, source := range paths {
		if ctx.Err() != nil {
			break
		}
		job := queue.NewJob(source, r.outputDir)
		if earlier, ok := written[job.Destination]; ok {
			logging.WarnWithContext(logger, "destination already written in this run", "destination_collision",
				logging.String(logging.FieldSource, job.Source),
				logging.String("earlier_source", earlier),
				logging.String(logging.FieldDestination, job.Destination),
				logging.String(logging.FieldImpact, "earlier output is overwritten"),
			)
		}
		written[job.Destination] = job.Source
		batch.Add(job)
		r.runJob(ctx, job, idx+1, total)
	}
	if ctx.Err() != nil {
		batch.Interrupted = true
		logging.WarnWithContext(logger, "conversion run interrupted", "batch_interrupted",
			logging.Int("processed", batch.Total()),
			logging.Int("skipped", total-batch.Total()),
			logging.String(logging.FieldImpact, "remaining files were not converted"),
		)
	}

	if r.deleteSource {
		removeSources(batch, logger)
	}

	batch.Finish()
	logger.Info("conversion run finished",
		logging.String(logging.FieldEventType, "batch_complete"),
		logging.Int("total", batch.Total()),
		logging.Int("succeeded", batch.Succeeded()),
		logging.Int("failed", batch.Failed()),
		logging.Duration("duration", batch.Duration()),
	)
	r.reporter.BatchFinished(batch)
	return batch, nil
}

func (r *Runner) runJob(ctx context.Context, job *queue.Job, index, total int) {
	ctx = services.WithJobID(ctx, job.ID)
	logger := logging.WithContext(ctx, r.logger).With(
		logging.String(logging.FieldSource, job.Source),
		logging.String(logging.FieldDestination, job.Destination),
	)

	if info, err := os.Stat(job.Source); err == nil {
		job.SourceBytes = info.Size()
	}

	if err := job.Start(); err != nil {
		logger.Error("job could not be started", logging.Error(err))
		return
	}
	r.reporter.JobStarted(job, index, total)
	logger.Info("conversion started",
		logging.String(logging.FieldEventType, "job_start"),
		logging.String("position", fmt.Sprintf("%d/%d", index, total)),
	)

	result, err := r.converter.Convert(ctx, job.Source, job.Destination, func(update ffmpeg.ProgressUpdate) {
		job.Elapsed = update.Elapsed
		r.reporter.JobProgress(job, update)
	})
	if result.Elapsed > job.Elapsed {
		job.Elapsed = result.Elapsed
	}

	if err != nil {
		diagnostic := result.Diagnostic
		if strings.TrimSpace(diagnostic) == "" {
			diagnostic = err.Error()
		}
		_ = job.Fail(services.FailureReason(err), diagnostic)
		removePartialOutput(job, err, logger)
		logging.ErrorWithContext(logger, "conversion failed", "job_failed",
			logging.String("reason", job.Reason),
			logging.Duration(logging.FieldElapsed, job.Elapsed),
			logging.Error(err),
		)
		r.reporter.JobFinished(job)
		return
	}

	_ = job.Succeed()
	if info, statErr := os.Stat(job.Destination); statErr == nil {
		job.OutputBytes = info.Size()
	}
	logger.Info("conversion succeeded",
		logging.String(logging.FieldEventType, "job_complete"),
		logging.Duration(logging.FieldElapsed, job.Elapsed),
		logging.Duration("duration", job.Duration()),
		logging.Int64("output_bytes", job.OutputBytes),
	)
	r.reporter.JobFinished(job)
}
