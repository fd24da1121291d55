// Package lock prevents two cueconvert runs from writing the same target
// tree at once.
package lock

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another run holds the lock.
var ErrLocked = errors.New("target is locked by another run")

// TargetLock is an advisory file lock. It is released when Release is
// called or when the process exits.
type TargetLock struct {
	path string
	fl   *flock.Flock
	held bool
}

// New creates a lock backed by the file at path. The lock is not acquired
// until TryAcquire or AcquireOrFail is called.
func New(path string) *TargetLock {
	return &TargetLock{path: path, fl: flock.New(path)}
}

// ForTarget returns the lock for a target root, using name as the lock
// file inside it.
func ForTarget(targetRoot, name string) *TargetLock {
	return New(filepath.Join(targetRoot, name))
}

// TryAcquire attempts to take the lock without waiting. It returns false
// when another holder has it.
func (l *TargetLock) TryAcquire() (bool, error) {
	if l.held {
		return true, nil
	}
	ok, err := l.fl.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to lock %s: %w", l.path, err)
	}
	l.held = ok
	return ok, nil
}

// AcquireOrFail takes the lock or returns ErrLocked.
func (l *TargetLock) AcquireOrFail() error {
	ok, err := l.TryAcquire()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocked, l.path)
	}
	return nil
}

// Release drops the lock. It returns false if the lock was not held.
func (l *TargetLock) Release() (bool, error) {
	if !l.held {
		return false, nil
	}
	if err := l.fl.Unlock(); err != nil {
		return false, fmt.Errorf("failed to unlock %s: %w", l.path, err)
	}
	l.held = false
	return true, nil
}

// IsHeld reports whether this instance holds the lock.
func (l *TargetLock) IsHeld() bool {
	return l.held
}

// Path returns the lock file path.
func (l *TargetLock) Path() string {
	return l.path
}

// WithLock runs fn while holding the lock, releasing it however fn exits.
// When l is already held, fn runs under that hold and l stays held.
func (l *TargetLock) WithLock(fn func() error) error {
	if l.IsHeld() {
		return fn()
	}
	if err := l.AcquireOrFail(); err != nil {
		return err
	}
	defer func() {
		_, _ = l.Release()
	}()

	return fn()
}

// IsLocked reports whether some other holder currently has the lock at
// path. The check is not atomic.
func IsLocked(path string) (bool, error) {
	probe := New(path)
	ok, err := probe.TryAcquire()
	if err != nil {
		return false, err
	}
	if ok {
		_, _ = probe.Release()
		return false, nil
	}
	return true, nil
}
