package pgentry

import (
	"errors"
	"testing"
	"time"
)

// clearEnv unsets every variable OptionsFromEnv reads so tests control the
// full environment. t.Setenv registers automatic restoration.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{EnvDataDir, EnvPassword, EnvConfigDir, EnvPort, EnvStartTimeout} {
		t.Setenv(env, "")
	}
}

func TestOptionsFromEnv_MissingDataDir(t *testing.T) {
	clearEnv(t)

	_, err := OptionsFromEnv()
	if !errors.Is(err, ErrDataDirNotSet) {
		t.Errorf("error = %v, want %v", err, ErrDataDirNotSet)
	}
}

func TestOptionsFromEnv_DataDirOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDataDir, "/var/lib/postgresql/data")

	opts, err := OptionsFromEnv()
	if err != nil {
		t.Fatalf("OptionsFromEnv: %v", err)
	}

	cfg := defaultControllerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.DataDir != "/var/lib/postgresql/data" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	// Unset optionals keep their defaults.
	if cfg.Password != DefaultSuperuserPassword {
		t.Errorf("Password = %q, want default", cfg.Password)
	}
	if cfg.ConfigDir != DefaultConfigDir {
		t.Errorf("ConfigDir = %q, want default", cfg.ConfigDir)
	}
}

func TestOptionsFromEnv_AllVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDataDir, "/data")
	t.Setenv(EnvPassword, "seed")
	t.Setenv(EnvConfigDir, "/mnt/config")
	t.Setenv(EnvPort, "15432")
	t.Setenv(EnvStartTimeout, "90s")

	opts, err := OptionsFromEnv()
	if err != nil {
		t.Fatalf("OptionsFromEnv: %v", err)
	}

	cfg := defaultControllerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Password != "seed" {
		t.Errorf("Password = %q", cfg.Password)
	}
	if cfg.ConfigDir != "/mnt/config" {
		t.Errorf("ConfigDir = %q", cfg.ConfigDir)
	}
	if cfg.Port != 15432 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.StartTimeout != 90*time.Second {
		t.Errorf("StartTimeout = %v", cfg.StartTimeout)
	}
}

func TestOptionsFromEnv_ProbeDisabled(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDataDir, "/data")
	t.Setenv(EnvPort, "0")

	opts, err := OptionsFromEnv()
	if err != nil {
		t.Fatalf("OptionsFromEnv: %v", err)
	}

	cfg := defaultControllerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Port != 0 {
		t.Errorf("Port = %d, want 0 (probe disabled)", cfg.Port)
	}
}

func TestOptionsFromEnv_InvalidValues(t *testing.T) {
	type testCase struct {
		env   string
		value string
	}

	tests := map[string]testCase{
		"garbage port":      {env: EnvPort, value: "not-a-port"},
		"port out of range": {env: EnvPort, value: "70000"},
		"garbage timeout":   {env: EnvStartTimeout, value: "soon"},
		"negative timeout":  {env: EnvStartTimeout, value: "-5s"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvDataDir, "/data")
			t.Setenv(tc.env, tc.value)

			if _, err := OptionsFromEnv(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestNew_MissingDataDir(t *testing.T) {
	t.Parallel()

	_, err := New()
	if !errors.Is(err, ErrDataDirNotSet) {
		t.Errorf("error = %v, want %v", err, ErrDataDirNotSet)
	}
}
