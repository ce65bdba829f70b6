package batch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"movconv/internal/services"
)

// LockFileName is created inside the output directory while a run is active.
const LockFileName = ".movconv.lock"

type runLock struct {
	path string
	lock *flock.Flock
}

// acquireLock takes an exclusive, non-blocking lock on path. Two runs
// writing into the same output directory would overwrite each other's files.
func acquireLock(path string) (*runLock, error) {
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrLocked, "run", "acquire lock", path, err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrLocked, "run", "acquire lock",
			fmt.Sprintf("another movconv run is writing to %s", filepath.Dir(path)), nil)
	}
	return &runLock{path: path, lock: lock}, nil
}

// release removes the lock file while it is still held, then unlocks, so
// the output directory is left as the run found it.
func (l *runLock) release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	removeErr := os.Remove(l.path)
	if errors.Is(removeErr, fs.ErrNotExist) {
		removeErr = nil
	}
	return errors.Join(removeErr, l.lock.Unlock())
}
