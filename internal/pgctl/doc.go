// Package pgctl wraps the engine's process-control primitive for launching
// the server in "start and wait for readiness" mode.
package pgctl
