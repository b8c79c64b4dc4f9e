package pgentry

import (
	"log/slog"

	"github.com/pgforge/pgentry/internal/core"
)

// SetLogger replaces the package-level logger used by pgentry, allowing
// applications to integrate controller logging with their own
// infrastructure. The provided logger should already carry any desired
// attributes; pgentry will not add its own.
//
// If l is nil, the logger resets to the default: slog.Default() with a
// "component" attribute, re-derived on the next use and then cached. Call
// SetLogger(nil) after slog.SetDefault() to pick up changes.
//
// SetLogger is safe to call concurrently with other pgentry operations; the
// logger is stored behind an atomic pointer. For a strict happens-before
// guarantee, call it before Run.
func SetLogger(l *slog.Logger) {
	core.SetLogger(l)
}
