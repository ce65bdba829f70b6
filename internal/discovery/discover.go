package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/text/cases"

	"movconv/internal/services"
)

// SourceExt is the extension, case-folded, that marks a convertible file.
const SourceExt = ".mov"

// Discover reads dir (non-recursively) and returns the regular files whose
// extension folds to .mov, in directory-read order (lexicographic). The
// returned sequence may be consumed once; later iterations yield nothing.
// A missing or unreadable directory is reported with services.ErrDiscovery.
func Discover(dir string) (iter.Seq[string], error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		message := "input directory is unreadable"
		if errors.Is(err, fs.ErrNotExist) {
			message = "input directory does not exist"
		}
		return nil, services.Wrap(services.ErrDiscovery, "discovery", "read input directory", fmt.Sprintf("%s: %s", message, dir), err)
	}

	var consumed atomic.Bool
	return func(yield func(string) bool) {
		if !consumed.CompareAndSwap(false, true) {
			return
		}
		fold := cases.Fold()
		for _, entry := range entries {
			if !isMOV(fold, entry.Name()) {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			if !isRegular(entry, path) {
				continue
			}
			if !yield(path) {
				return
			}
		}
	}, nil
}

func isMOV(fold cases.Caser, name string) bool {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return false
	}
	return fold.String(ext) == SourceExt
}

// isRegular accepts regular files and symlinks that resolve to one.
func isRegular(entry fs.DirEntry, path string) bool {
	mode := entry.Type()
	if mode.IsRegular() {
		return true
	}
	if mode&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
