package config

const (
	defaultInputDir                = "mov"
	defaultOutputDir               = "mp4"
	defaultLocalBinDir             = "bin/ffmpeg"
	defaultDiagnosticLines         = 20
	defaultLogFormat               = "console"
	defaultLogLevel                = "info"
	defaultProgressIntervalSeconds = 10
)

// defaultEncoderArgs mirrors the codec selection of the legacy converter:
// H.264 video with AAC audio, which every MP4 player understands.
var defaultEncoderArgs = []string{"-c:v", "libx264", "-c:a", "aac"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:    defaultInputDir,
			OutputDir:   defaultOutputDir,
			LocalBinDir: defaultLocalBinDir,
		},
		Encoder: Encoder{
			Args:            append([]string(nil), defaultEncoderArgs...),
			DiagnosticLines: defaultDiagnosticLines,
		},
		Logging: Logging{
			Format:                  defaultLogFormat,
			Level:                   defaultLogLevel,
			ProgressIntervalSeconds: defaultProgressIntervalSeconds,
		},
	}
}
