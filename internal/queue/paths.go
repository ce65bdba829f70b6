package queue

import (
	"path/filepath"
	"strings"
)

// DestinationExt is the extension given to every converted file.
const DestinationExt = ".mp4"

// DestinationFor derives the output path for source: the same base name with
// an .mp4 extension inside outputDir. foo.MOV becomes <outputDir>/foo.mp4.
// No collision handling is performed.
func DestinationFor(source, outputDir string) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+DestinationExt)
}
