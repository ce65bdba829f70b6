package services

import (
	"errors"
	"fmt"
	"strings"
)

// Fatal markers abort the whole run.
var (
	ErrDiscovery     = errors.New("discovery error")
	ErrConfiguration = errors.New("configuration error")
	ErrOutputDir     = errors.New("output directory error")
	ErrLocked        = errors.New("run locked")
)

// Per-job markers are recorded against a single job; the run continues.
var (
	ErrSpawn       = errors.New("encoder spawn failure")
	ErrEncoderExit = errors.New("encoder exited with error")
	ErrDelete      = errors.New("source deletion failure")
	ErrCanceled    = errors.New("conversion canceled")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrEncoderExit
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether err must abort the run instead of failing one job.
func IsFatal(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrDiscovery),
		errors.Is(err, ErrConfiguration),
		errors.Is(err, ErrOutputDir),
		errors.Is(err, ErrLocked):
		return true
	default:
		return false
	}
}

// FailureReason returns a short label for a per-job error, used in summaries.
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCanceled):
		return "canceled"
	case errors.Is(err, ErrSpawn):
		return "encoder could not be started"
	case errors.Is(err, ErrEncoderExit):
		return "encoder exited with error"
	case errors.Is(err, ErrDelete):
		return "source deletion failed"
	default:
		return "conversion failed"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
