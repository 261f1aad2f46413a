// Package lock provides advisory file locks with a bounded wait, shared by
// the settings store and the entry-store layout migration.
package lock

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

// ErrLockTimeout indicates the lock could not be acquired before the
// deadline. It is a distinct failure, never treated as success.
var ErrLockTimeout = errors.New("lock acquisition timed out")

// pollInterval is how often Acquire retries a busy lock.
const pollInterval = 200 * time.Millisecond

// Token represents exclusive ownership of one on-disk lock file. Release it
// unconditionally on every exit path.
type Token struct {
	fl *flock.Flock
}

// Acquire obtains the advisory lock at path, polling until timeout. On
// timeout it returns ErrLockTimeout wrapped with the lock path.
func Acquire(path string, timeout time.Duration) (*Token, error) {
	fl := flock.New(path)
	deadline := time.Now().Add(timeout)
	for {
		locked, err := fl.TryLock()
		if err != nil {
			return nil, fmt.Errorf("cannot acquire lock %s: %w", path, err)
		}
		if locked {
			return &Token{fl: fl}, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, path)
		}
		time.Sleep(pollInterval)
	}
}

// TryAcquire makes a single attempt on the lock at path. ok is false when
// another process holds it.
func TryAcquire(path string) (t *Token, ok bool, err error) {
	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, false, fmt.Errorf("cannot acquire lock %s: %w", path, err)
	}
	if !locked {
		return nil, false, nil
	}
	return &Token{fl: fl}, true, nil
}

// Release drops the lock. Safe to call on a nil token.
func (t *Token) Release() {
	if t == nil || t.fl == nil {
		return
	}
	_ = t.fl.Unlock()
}
