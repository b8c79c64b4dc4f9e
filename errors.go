package pgentry

import "github.com/pgforge/pgentry/internal/core"

// Sentinel errors for error inspection with errors.Is.
// These are immutable constants safe for use in wrapped error chain comparison.
const (
	// ErrDataDirNotSet is returned when no data directory is configured
	// (the required PGDATA environment variable is missing or empty). The
	// controller performs no filesystem work before failing.
	ErrDataDirNotSet = core.ErrDataDirNotSet

	// ErrDataDirNotWritable is returned when the data directory rejects
	// writes, e.g. a read-only volume mount. Initialization is never
	// attempted against such a target.
	ErrDataDirNotWritable = core.ErrDataDirNotWritable

	// ErrBinaryNotFound is returned when initdb or pg_ctl cannot be
	// resolved on the execution path. This is a packaging defect, distinct
	// from data-directory errors.
	ErrBinaryNotFound = core.ErrBinaryNotFound

	// ErrDataDirLocked is returned when another controller process already
	// owns the data directory.
	ErrDataDirLocked = core.ErrDataDirLocked
)
