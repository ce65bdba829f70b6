package logging

import (
	"context"
	"log/slog"

	"movconv/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID identifies one invocation of the converter.
	FieldRunID = "run_id"
	// FieldJobID identifies one source-to-destination conversion.
	FieldJobID = "job_id"
	// FieldSource is the source file path of a job.
	FieldSource = "source"
	// FieldDestination is the output file path of a job.
	FieldDestination = "destination"
	// FieldEventType classifies a log line for downstream filtering.
	FieldEventType = "event_type"
	// FieldImpact describes the user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldElapsed is the encoded media time reported by the encoder.
	FieldElapsed = "elapsed"
	// FieldProgressPercent is the completion percentage, when known.
	FieldProgressPercent = "progress_percent"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if id, ok := services.JobIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldJobID, id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
