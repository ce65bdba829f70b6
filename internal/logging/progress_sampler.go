package logging

import "time"

// ProgressSampler suppresses repetitive progress logs while preserving signal.
// When the total duration is known it emits on percent bucket changes;
// otherwise it emits each time the encoded media time crosses an interval.
type ProgressSampler struct {
	bucketSize  float64
	interval    time.Duration
	lastBucket  int
	lastElapsed int64
}

// NewProgressSampler constructs a sampler with the given percent bucket size
// (default 10%) and media-time interval (default 10s).
func NewProgressSampler(bucketSize float64, interval time.Duration) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 10
	}
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &ProgressSampler{bucketSize: bucketSize, interval: interval, lastBucket: -1, lastElapsed: -1}
}

// ShouldLog reports whether a progress event should be logged. Percent is
// negative when the total duration is unknown.
func (s *ProgressSampler) ShouldLog(elapsed time.Duration, percent float64) bool {
	if s == nil {
		return true
	}
	if percent >= 0 {
		bucket := int(percent / s.bucketSize)
		if percent >= 100 {
			bucket = int(100 / s.bucketSize)
		}
		if bucket > s.lastBucket {
			s.lastBucket = bucket
			return true
		}
		return false
	}
	if elapsed < 0 {
		return false
	}
	step := int64(elapsed / s.interval)
	if step > s.lastElapsed {
		s.lastElapsed = step
		return true
	}
	return false
}

// Reset clears the sampler state (e.g. when a new job starts).
func (s *ProgressSampler) Reset() {
	if s == nil {
		return
	}
	s.lastBucket = -1
	s.lastElapsed = -1
}
