// Package queue holds the in-memory model of one conversion run.
//
// A Job tracks a single source-to-destination conversion through the
// pending, running, succeeded, and failed states; a Batch keeps the ordered
// jobs of a run for the final summary. Nothing here is persisted: a Batch
// lives for exactly one invocation and carries no memory across runs.
//
// Status transitions are enforced by the Job methods so callers cannot
// finish a job twice or succeed one that never started.
package queue
