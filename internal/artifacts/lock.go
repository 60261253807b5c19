package artifacts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrWorkspaceBusy indicates another process holds the episode run lock.
var ErrWorkspaceBusy = errors.New("episode workspace is locked by another run")

// RunLock guards an episode workspace against concurrent pipeline runs.
type RunLock struct {
	lock *flock.Flock
}

// AcquireRunLock takes the workspace lock without blocking. It fails with
// ErrWorkspaceBusy when another run already holds it.
func AcquireRunLock(w Workspace) (*RunLock, error) {
	if err := os.MkdirAll(filepath.Dir(w.LockPath()), 0o755); err != nil {
		return nil, fmt.Errorf("create workspace directory: %w", err)
	}
	lock := flock.New(w.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire workspace lock: %w", err)
	}
	if !ok {
		return nil, ErrWorkspaceBusy
	}
	return &RunLock{lock: lock}, nil
}

// Release drops the workspace lock.
func (l *RunLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
