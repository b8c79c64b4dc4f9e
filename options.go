package pgentry

import (
	"fmt"
	"io"
	"time"
)

// requirePositive panics if v <= 0 with a descriptive message.
func requirePositive(name string, v time.Duration) {
	if v <= 0 {
		panic(fmt.Sprintf("pgentry: %s must be greater than 0, got %v", name, v))
	}
}

// requireNonEmpty panics if s is empty with a descriptive message.
func requireNonEmpty(name, s string) {
	if s == "" {
		panic(fmt.Sprintf("pgentry: %s must not be empty", name))
	}
}

// Option configures a Controller during construction via New.
// Each With* function returns an Option that sets a specific field.
//
// Several With* functions panic on invalid input (empty paths, non-positive
// durations, out-of-range ports). These panics are intentional: option
// values are typically compile-time constants or already-validated operator
// input, so an invalid value indicates a programmer error rather than a
// runtime condition. The pattern mirrors [regexp.MustCompile]: fail fast
// during construction instead of returning errors that would be universally
// fatal anyway.
type Option func(*controllerConfig)

// WithDataDir sets the persistent data directory (PGDATA). This is the only
// setting without a default; New returns ErrDataDirNotSet when it is
// missing. Panics if dir is empty — callers reading operator input should
// check for emptiness first (OptionsFromEnv does).
func WithDataDir(dir string) Option {
	requireNonEmpty("data directory", dir)
	return func(c *controllerConfig) {
		c.DataDir = dir
	}
}

// WithConfigDir sets the read-only staging directory holding the
// postgresql.conf and pg_hba.conf fragments.
//
// Default: /etc/postgresql.
//
// Panics if dir is empty.
func WithConfigDir(dir string) Option {
	requireNonEmpty("config directory", dir)
	return func(c *controllerConfig) {
		c.ConfigDir = dir
	}
}

// WithSuperuserPassword sets the credential seed consumed once at
// initialization time. It is delivered to initdb through an anonymous pipe
// and never persisted in plaintext.
//
// Default: "postgres" (a convenience default for debugging setups).
//
// Panics if password is empty.
func WithSuperuserPassword(password string) Option {
	requireNonEmpty("superuser password", password)
	return func(c *controllerConfig) {
		c.Password = password
	}
}

// WithInitDBBinary sets the path to the cluster-initialization binary.
// Panics if binPath is empty.
func WithInitDBBinary(binPath string) Option {
	requireNonEmpty("initdb binary path", binPath)
	return func(c *controllerConfig) {
		c.InitDBBinary = binPath
	}
}

// WithPGCtlBinary sets the path to the process-control binary.
// Panics if binPath is empty.
func WithPGCtlBinary(binPath string) Option {
	requireNonEmpty("pg_ctl binary path", binPath)
	return func(c *controllerConfig) {
		c.PGCtlBinary = binPath
	}
}

// WithPort sets the TCP port probed after launch to confirm the server is
// accepting connections. A value of 0 disables the probe, leaving pg_ctl's
// own readiness wait as the only launch gate.
//
// Default: 5432.
//
// Panics if port is negative or above 65535.
func WithPort(port int) Option {
	if port < 0 || port > 65535 {
		panic(fmt.Sprintf("pgentry: port must be between 0 and 65535, got %d", port))
	}
	return func(c *controllerConfig) {
		c.Port = port
	}
}

// WithStartTimeout sets the launch budget: how long pg_ctl waits for the
// server to report ready, and how long the follow-up socket probe may poll.
// Exceeding it is treated as launch failure, not as "keep waiting".
//
// Default: 60 seconds.
//
// Panics if d <= 0.
func WithStartTimeout(d time.Duration) Option {
	requirePositive("start timeout", d)
	return func(c *controllerConfig) {
		c.StartTimeout = d
	}
}

// WithLogSink sets the destination for the supervised server log stream.
// Defaults to the process's standard output; intended for tests and
// embedding scenarios.
//
// Panics if w is nil.
func WithLogSink(w io.Writer) Option {
	if w == nil {
		panic("pgentry: log sink must not be nil")
	}
	return func(c *controllerConfig) {
		c.LogSink = w
	}
}
