// Package dirlock guards exclusive ownership of a data directory across
// controller processes with an advisory file lock.
package dirlock

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gofrs/flock"

	"github.com/pgforge/pgentry/internal/sentinel"
)

// ErrHeld is returned when another process already holds the ownership lock.
const ErrHeld = sentinel.Error("data directory is locked by another process")

// Lock holds an exclusive advisory lock next to a data directory. The lock
// file is a sibling of the directory (<datadir>.lock) rather than inside it,
// because cluster initialization requires the data directory to be empty.
type Lock struct {
	fl  *flock.Flock
	log *slog.Logger
}

// Acquire takes a non-blocking exclusive lock on path. Two outcomes are not
// errors by design:
//
//   - the lock was taken: a valid *Lock is returned;
//   - the lock file cannot be created (e.g. the parent is a read-only
//     mount): nil is returned with a warning logged, because the ownership
//     guard must never fail a container whose data directory is otherwise
//     serviceable.
//
// Only a lock already held by another process produces ErrHeld.
func Acquire(path string, logger *slog.Logger) (*Lock, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil {
		if os.IsPermission(err) || os.IsNotExist(err) {
			logger.Warn("ownership lock unavailable; continuing without it",
				"path", path, "error", err)
			return nil, nil
		}
		return nil, fmt.Errorf("acquire ownership lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("ownership lock %s: %w", path, ErrHeld)
	}
	return &Lock{fl: fl, log: logger}, nil
}

// Release drops the lock and closes its descriptor. The lock file is left on
// disk: removing it could invalidate a lock concurrently acquired by another
// process through the same path. Safe on a nil receiver.
func (l *Lock) Release() {
	if l == nil || l.fl == nil {
		return
	}
	if err := l.fl.Close(); err != nil {
		l.log.Debug("release ownership lock", "path", l.fl.Path(), "error", err)
	}
	l.fl = nil
}
