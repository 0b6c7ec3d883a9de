package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"stardate/internal/stardate"
)

// Lock is an advisory single-writer lock on the data directory.
type Lock struct {
	lock *flock.Flock
}

// AcquireLock takes the lock at path without blocking. A lock held by another
// process is reported as ErrTransient so the caller can retry later.
func AcquireLock(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, stardate.Wrap(stardate.ErrTransient, "store", "lock",
			fmt.Sprintf("another stardate process holds %s", path), nil)
	}
	return &Lock{lock: lock}, nil
}

// Release drops the lock. It is safe to call on a nil Lock.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
