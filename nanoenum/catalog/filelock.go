package catalog

import (
	"context"
	"time"

	"github.com/gofrs/flock"
)

// FileLock guards the catalog file across processes
type FileLock interface {
	// TryLockContext attempts to acquire an exclusive lock with retries
	TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error)

	// Unlock releases the lock
	Unlock() error
}

// FileLockFactory creates FileLock instances
type FileLockFactory interface {
	New(path string) FileLock
}

// flockFactory creates locks backed by github.com/gofrs/flock
type flockFactory struct{}

func (flockFactory) New(path string) FileLock {
	return flock.New(path)
}
