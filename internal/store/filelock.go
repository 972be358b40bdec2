package store

import (
	"context"
	"time"

	"github.com/gofrs/flock"
)

// FileLock is an exclusive advisory lock.
type FileLock interface {
	// TryLockContext retries every retryInterval until the lock is taken or ctx ends.
	TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error)
	Unlock() error
}

// FileLockFactory creates a FileLock for a lock file path.
type FileLockFactory interface {
	New(path string) FileLock
}

// FlockFactory creates locks backed by github.com/gofrs/flock.
type FlockFactory struct{}

// New implements FileLockFactory.
func (FlockFactory) New(path string) FileLock {
	return flock.New(path)
}
