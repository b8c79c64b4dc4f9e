package initdb

import (
	"bufio"
	"context"
	"errors"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/pgforge/pgentry/internal/process"
)

func validConfig() Config {
	return Config{
		Binary:    "/usr/lib/postgresql/bin/initdb",
		DataDir:   "/var/lib/postgresql/data",
		Encoding:  "UTF8",
		Locale:    "C",
		Superuser: "postgres",
		AuthMode:  "scram-sha-256",
		Password:  "postgres",
	}
}

func TestRun_ValidatesConfig(t *testing.T) {
	t.Parallel()

	type testCase struct {
		mutate func(*Config)
	}

	tests := map[string]testCase{
		"empty binary":    {mutate: func(c *Config) { c.Binary = "" }},
		"empty data dir":  {mutate: func(c *Config) { c.DataDir = "" }},
		"empty encoding":  {mutate: func(c *Config) { c.Encoding = "" }},
		"empty locale":    {mutate: func(c *Config) { c.Locale = "" }},
		"empty superuser": {mutate: func(c *Config) { c.Superuser = "" }},
		"empty auth mode": {mutate: func(c *Config) { c.AuthMode = "" }},
		"empty password":  {mutate: func(c *Config) { c.Password = "" }},
	}

	for name, tc := range tests {
		name, tc := name, tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tc.mutate(&cfg)
			cfg.Runner = func(context.Context, process.Command) ([]byte, error) {
				t.Fatal("runner must not be invoked for invalid config")
				return nil, nil
			}

			if err := Run(context.Background(), cfg); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestRun_BuildsArguments(t *testing.T) {
	t.Parallel()

	var got process.Command
	cfg := validConfig()
	cfg.Runner = func(_ context.Context, cmd process.Command) ([]byte, error) {
		got = cmd
		return nil, nil
	}

	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got.Path != cfg.Binary {
		t.Errorf("path = %q, want %q", got.Path, cfg.Binary)
	}
	want := []string{
		"--pgdata=/var/lib/postgresql/data",
		"--encoding=UTF8",
		"--locale=C",
		"--username=postgres",
		"--auth=scram-sha-256",
		"--pwfile=/dev/fd/3",
	}
	if !slices.Equal(got.Args, want) {
		t.Errorf("args = %v, want %v", got.Args, want)
	}
}

func TestRun_PasswordNeverInArgs(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Password = "s3cr3t-seed"
	cfg.Runner = func(_ context.Context, cmd process.Command) ([]byte, error) {
		for _, arg := range cmd.Args {
			if strings.Contains(arg, cfg.Password) {
				t.Errorf("argument %q leaks the credential seed", arg)
			}
		}
		return nil, nil
	}

	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRun_CredentialDeliveredOnPipe(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Password = "pipe-delivered"
	cfg.Runner = func(_ context.Context, cmd process.Command) ([]byte, error) {
		if len(cmd.ExtraFiles) != 1 {
			t.Fatalf("extra files = %d, want 1", len(cmd.ExtraFiles))
		}
		line, err := bufio.NewReader(cmd.ExtraFiles[0]).ReadString('\n')
		if err != nil {
			t.Fatalf("read credential pipe: %v", err)
		}
		if got := strings.TrimSuffix(line, "\n"); got != cfg.Password {
			t.Errorf("pipe content = %q, want %q", got, cfg.Password)
		}
		return nil, nil
	}

	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRun_FailureSurfacesDiagnostics(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	exitErr := errors.New("exit status 1")
	cfg.Runner = func(context.Context, process.Command) ([]byte, error) {
		return []byte("initdb: directory exists but is not empty\n"), exitErr
	}

	err := Run(context.Background(), cfg)
	if !errors.Is(err, exitErr) {
		t.Fatalf("error = %v, want wrapped %v", err, exitErr)
	}
	if !strings.Contains(err.Error(), "directory exists but is not empty") {
		t.Errorf("error %q does not carry the tool's diagnostic", err)
	}
}

func TestRun_NoCredentialFileLeftBehind(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := validConfig()
	cfg.DataDir = dir
	cfg.Password = "must-not-persist"
	cfg.Runner = func(context.Context, process.Command) ([]byte, error) {
		return nil, nil
	}

	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("data dir contains %d unexpected entries after Run", len(entries))
	}
}
