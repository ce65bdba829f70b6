// Package batch runs one conversion pass over the input directory.
//
// Runner discovers the MOV sources, prepares the output directory, takes the
// run lock, and converts each file in turn through an ffmpeg.Converter,
// recording every outcome on a queue.Batch. Source removal happens only after
// the last job finishes and only for jobs that succeeded; a removal failure
// is recorded on the job without changing its status.
//
// Reporter receives lifecycle callbacks so the CLI can draw a progress bar or
// emit sampled log lines. Runner itself never writes to the terminal.
package batch
