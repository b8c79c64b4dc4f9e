package pgentry

import "github.com/pgforge/pgentry/internal/core"

// controllerConfig holds configuration for a Controller. This unexported
// type wraps core.Config via embedding, keeping internal/core types out of
// the public API signature while avoiding field-by-field duplication.
type controllerConfig struct {
	core.Config
}

// toCoreConfig returns the embedded core.Config.
func (c controllerConfig) toCoreConfig() core.Config {
	return c.Config
}
