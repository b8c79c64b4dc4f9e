package pgentry

import "time"

// Default configuration values for New. These constants are exported so
// callers can reference the defaults when building custom configurations
// relative to them.
const (
	// DefaultSuperuserPassword is the credential seed used when no
	// password is supplied. A deliberate convenience default for local
	// debugging setups, not a security posture.
	DefaultSuperuserPassword = "postgres"

	// DefaultConfigDir is the staging path where externally mounted
	// configuration fragments are expected.
	DefaultConfigDir = "/etc/postgresql"

	// DefaultInitDBBinary is the binary name used to locate the
	// cluster-initialization primitive in PATH.
	DefaultInitDBBinary = "initdb"

	// DefaultPGCtlBinary is the binary name used to locate the
	// process-control primitive in PATH.
	DefaultPGCtlBinary = "pg_ctl"

	// DefaultEncoding is the cluster encoding passed to initdb.
	DefaultEncoding = "UTF8"

	// DefaultLocale is the cluster locale passed to initdb.
	DefaultLocale = "C"

	// DefaultSuperuser is the administrative role name created at
	// initialization time.
	DefaultSuperuser = "postgres"

	// DefaultAuthMode is the authentication method recorded by initdb for
	// local connections.
	DefaultAuthMode = "scram-sha-256"

	// DefaultPort is the TCP port probed after launch to confirm the
	// server is accepting connections.
	DefaultPort = 5432

	// DefaultStartTimeout bounds the launch step: pg_ctl's readiness wait
	// and the follow-up socket probe. Exceeding it is launch failure.
	DefaultStartTimeout = 60 * time.Second
)
