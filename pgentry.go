package pgentry

import (
	"context"
	"fmt"

	"github.com/pgforge/pgentry/internal/core"
)

// Controller drives the lifecycle of one database server instance inside a
// container. Construct it with New, then call Run exactly once; a
// controller is single-use, mirroring the one-shot nature of a container
// entrypoint.
type Controller struct {
	// The core controller is stored as a named (unexported) field rather
	// than embedded to keep internal methods out of the public surface.
	inner *core.Controller
}

// defaultControllerConfig returns a controllerConfig populated with all
// default values. Required fields with no sensible default (DataDir) stay
// empty and are caught by validation in New.
func defaultControllerConfig() controllerConfig {
	return controllerConfig{core.Config{
		ConfigDir:    DefaultConfigDir,
		Password:     DefaultSuperuserPassword,
		InitDBBinary: DefaultInitDBBinary,
		PGCtlBinary:  DefaultPGCtlBinary,
		Encoding:     DefaultEncoding,
		Locale:       DefaultLocale,
		Superuser:    DefaultSuperuser,
		AuthMode:     DefaultAuthMode,
		Port:         DefaultPort,
		StartTimeout: DefaultStartTimeout,
	}}
}

// New creates a Controller with the given options. It performs no I/O;
// all side effects happen in Run.
//
// Returns ErrDataDirNotSet when no data directory was configured. Panics if
// any option receives a structurally invalid value; see individual With*
// functions for constraints.
func New(opts ...Option) (*Controller, error) {
	cfg := defaultControllerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	inner, err := core.NewController(cfg.toCoreConfig())
	if err != nil {
		return nil, fmt.Errorf("pgentry: %w", err)
	}
	return &Controller{inner: inner}, nil
}

// Run executes the full lifecycle and, on success, blocks streaming the
// server log until ctx is canceled or the log follow ends. Any fatal
// condition is returned as a single wrapped error identifying the failing
// phase; the caller is expected to log it once and exit non-zero.
func (c *Controller) Run(ctx context.Context) error {
	return c.inner.Run(ctx)
}
