// Package services defines shared utilities consumed by the conversion
// runner and the external encoder integration.
//
// Key responsibilities:
//   - Context helpers that stamp run and job identifiers for logging.
//   - Structured error markers plus the Wrap helper that split failures into
//     fatal (abort the run) and per-job (record and continue) classes.
//
// Use these helpers when wiring new conversion logic so error handling and
// observability stay uniform across the pipeline.
package services
