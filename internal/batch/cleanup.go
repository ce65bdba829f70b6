package batch

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"movconv/internal/logging"
	"movconv/internal/queue"
	"movconv/internal/services"
)

var removeFile = os.Remove

// removeSources deletes the source of every succeeded job. Failures are
// stored on Job.DeleteErr; job status is never changed.
func removeSources(batch *queue.Batch, logger *slog.Logger) {
	for _, job := range batch.Jobs {
		if job.Status != queue.StatusSucceeded {
			continue
		}
		if err := removeFile(job.Source); err != nil {
			job.DeleteErr = services.Wrap(services.ErrDelete, "cleanup", "remove source", job.Source, err)
			logging.WarnWithContext(logger, "source file could not be deleted",
				"source_delete_failed",
				logging.String(logging.FieldJobID, job.ID),
				logging.String(logging.FieldSource, job.Source),
				logging.String(logging.FieldImpact, "converted file kept alongside its source"),
				logging.Error(err),
			)
			continue
		}
		job.Deleted = true
		logger.Debug("source file deleted",
			logging.String(logging.FieldJobID, job.ID),
			logging.String(logging.FieldSource, job.Source),
		)
	}
}

// removePartialOutput drops a destination ffmpeg started writing but did not
// finish. Spawn failures never touched the destination, so they are skipped.
func removePartialOutput(job *queue.Job, cause error, logger *slog.Logger) {
	if !errors.Is(cause, services.ErrEncoderExit) && !errors.Is(cause, services.ErrCanceled) {
		return
	}
	if err := removeFile(job.Destination); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Debug("partial output not removed",
			logging.String(logging.FieldDestination, job.Destination),
			logging.Error(err),
		)
	}
}
