package pgentry

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Environment variables read by OptionsFromEnv. PGDATA and
// POSTGRES_PASSWORD follow the engine's established container conventions;
// the PGENTRY_* variables tune the controller itself.
const (
	// EnvDataDir names the data directory. Required.
	EnvDataDir = "PGDATA"

	// EnvPassword supplies the superuser credential seed. Optional;
	// falls back to DefaultSuperuserPassword.
	EnvPassword = "POSTGRES_PASSWORD"

	// EnvConfigDir overrides the configuration staging directory. Optional.
	EnvConfigDir = "PGENTRY_CONFIG_DIR"

	// EnvPort overrides the readiness probe port; "0" disables the probe.
	// Optional.
	EnvPort = "PGENTRY_PORT"

	// EnvStartTimeout overrides the launch budget, in Go duration syntax
	// (e.g. "90s"). Optional.
	EnvStartTimeout = "PGENTRY_START_TIMEOUT"
)

// OptionsFromEnv builds controller options from the process environment.
// PGDATA is the one required variable; when it is missing or empty,
// OptionsFromEnv returns ErrDataDirNotSet without touching the filesystem.
// Optional variables are only turned into options when present, so the
// documented defaults apply otherwise.
func OptionsFromEnv() ([]Option, error) {
	v := viper.New()
	for key, env := range map[string]string{
		"data_dir":      EnvDataDir,
		"password":      EnvPassword,
		"config_dir":    EnvConfigDir,
		"port":          EnvPort,
		"start_timeout": EnvStartTimeout,
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	dataDir := v.GetString("data_dir")
	if dataDir == "" {
		return nil, fmt.Errorf("%s: %w", EnvDataDir, ErrDataDirNotSet)
	}
	opts := []Option{WithDataDir(dataDir)}

	if password := v.GetString("password"); password != "" {
		opts = append(opts, WithSuperuserPassword(password))
	}
	if configDir := v.GetString("config_dir"); configDir != "" {
		opts = append(opts, WithConfigDir(configDir))
	}
	if raw := v.GetString("port"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port < 0 || port > 65535 {
			return nil, fmt.Errorf("%s: invalid port %q", EnvPort, raw)
		}
		opts = append(opts, WithPort(port))
	}
	if raw := v.GetString("start_timeout"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%s: invalid duration %q", EnvStartTimeout, raw)
		}
		opts = append(opts, WithStartTimeout(d))
	}

	return opts, nil
}
