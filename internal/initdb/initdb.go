package initdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/pgforge/pgentry/internal/process"
)

// Config holds the configuration for one initdb invocation.
type Config struct {
	Binary    string // Path to the initdb binary
	DataDir   string // Target cluster directory (must be empty)
	Encoding  string // Cluster encoding (e.g., "UTF8")
	Locale    string // Cluster locale (e.g., "C")
	Superuser string // Administrative role name (e.g., "postgres")
	AuthMode  string // Local authentication method (e.g., "scram-sha-256")
	Password  string // Credential seed, delivered via an anonymous pipe

	// Runner (optional, defaults to process.Run)
	Runner process.Runner
	// Logger (optional, defaults to slog.Default())
	Logger *slog.Logger
}

// validate checks that all required Config fields are set and returns an
// error describing the first missing field.
func (c Config) validate() error {
	if c.Binary == "" {
		return errors.New("binary path must not be empty")
	}
	if c.DataDir == "" {
		return errors.New("data dir must not be empty")
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
	if c.Password == "" {
		return errors.New("password must not be empty")
	}
	return nil
}

// Run initializes a new cluster in cfg.DataDir.
//
// The credential seed travels through an anonymous pipe inherited by the
// child as descriptor 3 and referenced as --pwfile=/dev/fd/3, so the
// password appears neither in the argument list nor in any file under the
// data directory. The seed is written and the write end closed before the
// child starts; the few bytes involved sit comfortably inside the kernel
// pipe buffer, so the write cannot block.
func Run(ctx context.Context, cfg Config) error {
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("invalid initdb config: %w", err)
	}
	runner := cfg.Runner
	if runner == nil {
		runner = process.Run
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("create credential pipe: %w", err)
	}
	defer pr.Close()

	if _, err := pw.WriteString(cfg.Password + "\n"); err != nil {
		_ = pw.Close()
		return fmt.Errorf("write credential seed: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close credential pipe: %w", err)
	}

	args := []string{
		"--pgdata=" + cfg.DataDir,
		"--encoding=" + cfg.Encoding,
		"--locale=" + cfg.Locale,
		"--username=" + cfg.Superuser,
		"--auth=" + cfg.AuthMode,
		"--pwfile=/dev/fd/3",
	}

	log.Info("initializing cluster",
		"data_dir", cfg.DataDir, "encoding", cfg.Encoding, "locale", cfg.Locale, "superuser", cfg.Superuser)

	out, err := runner(ctx, process.Command{
		Path:       cfg.Binary,
		Args:       args,
		ExtraFiles: []*os.File{pr},
	})
	if err != nil {
		return fmt.Errorf("initialize cluster in %s: %w", cfg.DataDir, process.Diagnose(err, out))
	}
	return nil
}
