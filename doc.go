// Package pgentry implements the container initialization and startup
// lifecycle for a packaged PostgreSQL server: a small sequential state
// machine that decides whether a data directory needs first-time
// initialization, reconciles staged configuration with persisted
// configuration, starts the server, and then supervises the foreground log
// stream for the life of the container.
//
// # Basic Usage
//
//	import "github.com/pgforge/pgentry"
//
//	opts, err := pgentry.OptionsFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ctrl, err := pgentry.New(opts...)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Blocks for the life of the container once the server is up.
//	if err := ctrl.Run(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
// # Lifecycle
//
// Run walks CHECK_INITIALIZED → [UNINIT_PATH | INIT_PATH] → CONFIG_SYNC →
// PRECONDITION_CHECK → LAUNCH → SUPERVISE. A present, non-empty PG_VERSION
// marker skips initialization entirely; staged configuration fragments are
// refreshed on every run (fatally on the first run, best-effort on
// restarts). On success the controller never returns control: it becomes
// the container's foreground log-streaming process.
//
// # Error Model
//
// Every fatal condition surfaces as one wrapped error naming the failing
// phase; the sentinel errors (ErrDataDirNotSet, ErrDataDirNotWritable,
// ErrBinaryNotFound, ErrDataDirLocked) distinguish configuration, volume,
// and image defects for the operator. There is no retry loop and no
// degraded mode inside the controller; restart policy belongs to the
// container orchestrator.
package pgentry
