//go:build !unix

package preflight

import (
	"os"
	"path/filepath"
)

// checkAccess approximates access(2) by opening the directory and, for
// write checks, creating a temporary file inside it.
func checkAccess(path string, access Access) error {
	dir, err := os.Open(path)
	if err != nil {
		return err
	}
	_ = dir.Close()
	if access != AccessWrite {
		return nil
	}
	probe, err := os.CreateTemp(path, ".movconv-check-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(filepath.Clean(name))
}
