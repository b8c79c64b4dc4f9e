// Package core implements the lifecycle controller: a sequential state
// machine that takes a data directory from unknown state to a running,
// supervised server. It decides whether first-time cluster initialization is
// needed, reconciles staged configuration fragments with the persisted
// copies, verifies the engine's control binaries, launches the server, and
// then follows the server log for the life of the container.
package core
