// Package ffmpeg drives the external ffmpeg executable that performs the
// actual MOV to MP4 transcode.
//
// CLI builds the argument list, merges the child's stdout and stderr into one
// stream, and splits that stream on both newlines and carriage returns so the
// constantly rewritten stats line is seen as discrete progress events. Lines
// that are not progress are kept as a bounded diagnostic tail for failure
// reports. ResolveBinary locates the executable (configured path, PATH, then
// the bundled fallback directory).
//
// Tests replace commandContext to run a helper process instead of ffmpeg.
package ffmpeg
