package core

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pgforge/pgentry/internal/dirlock"
	"github.com/pgforge/pgentry/internal/process"
	"github.com/pgforge/pgentry/internal/sentinel"
)

// Sentinel errors for the controller's fatal conditions. Grouped by the
// operator action they call for: fix the environment, fix the volume, or
// fix the image.
const (
	// ErrDataDirNotSet is returned when no data directory is configured.
	// The controller performs no filesystem work in this case.
	ErrDataDirNotSet = sentinel.Error("data directory not set")

	// ErrDataDirNotWritable is returned when the data directory exists but
	// rejects writes, e.g. a read-only volume mount.
	ErrDataDirNotWritable = sentinel.Error("data directory is not writable")

	// ErrBinaryNotFound is returned when one of the engine's control
	// binaries cannot be resolved. This is a packaging defect: the image
	// must be rebuilt, the data volume is fine.
	ErrBinaryNotFound = sentinel.Error("control binary not found")

	// ErrDataDirLocked is returned when another controller process holds
	// the ownership lock for the data directory.
	ErrDataDirLocked = dirlock.ErrHeld
)

// Names of the two externally staged configuration fragments and of the
// files the controller manages inside the data directory.
const (
	// ServerConfigName is the primary server configuration fragment.
	ServerConfigName = "postgresql.conf"

	// HBAConfigName is the client-authentication rules fragment.
	HBAConfigName = "pg_hba.conf"

	// MarkerName is the version-marker file whose non-empty presence
	// signals an already-initialized cluster.
	MarkerName = "PG_VERSION"

	// ServerLogName is the server log file written inside the data
	// directory and followed during supervision.
	ServerLogName = "server.log"
)

// Config holds the complete configuration of a lifecycle controller.
//
// All fields are immutable after NewController; the controller never writes
// back into its config.
type Config struct {
	DataDir      string        // persistent cluster directory (PGDATA)
	ConfigDir    string        // read-only staging dir holding the fragments
	Password     string        // superuser credential seed
	InitDBBinary string        // cluster-initialization binary
	PGCtlBinary  string        // process-control binary
	Encoding     string        // cluster encoding for initdb
	Locale       string        // cluster locale for initdb
	Superuser    string        // administrative role name
	AuthMode     string        // local authentication method for initdb
	Port         int           // TCP readiness probe port; 0 disables the probe
	StartTimeout time.Duration // launch + readiness budget

	// Runner executes control subprocesses (optional, defaults to
	// process.Run). Tests substitute a fake.
	Runner process.Runner

	// LogSink receives the followed server log during supervision
	// (optional, defaults to os.Stdout).
	LogSink io.Writer
}

// validate checks that all required fields are set. DataDir gets a dedicated
// sentinel because its absence is the documented "required environment
// missing" condition; everything else is defaulted upstream, so an empty
// value here indicates a programming error rather than operator input.
func (c Config) validate() error {
	if c.DataDir == "" {
		return ErrDataDirNotSet
	}
	if c.ConfigDir == "" {
		return errors.New("config dir must not be empty")
	}
	if c.Password == "" {
		return errors.New("password must not be empty")
	}
	if c.InitDBBinary == "" {
		return errors.New("initdb binary must not be empty")
	}
	if c.PGCtlBinary == "" {
		return errors.New("pg_ctl binary must not be empty")
	}
	if c.Encoding == "" {
		return errors.New("encoding must not be empty")
	}
	if c.Locale == "" {
		return errors.New("locale must not be empty")
	}
	if c.Superuser == "" {
		return errors.New("superuser must not be empty")
	}
	if c.AuthMode == "" {
		return errors.New("auth mode must not be empty")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.StartTimeout <= 0 {
		return errors.New("start timeout must be positive")
	}
	return nil
}
