// Package process runs the engine's control subprocesses (initdb, pg_ctl)
// and provides polling-based readiness checks.
//
// Unlike a long-lived child process, both collaborators are synchronous:
// they run, report, and exit. Run therefore captures combined output for
// diagnostics instead of managing log files and wait goroutines.
package process
