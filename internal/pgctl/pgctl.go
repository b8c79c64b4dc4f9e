package pgctl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/pgforge/pgentry/internal/process"
)

// Config holds the configuration for a pg_ctl start invocation.
type Config struct {
	Binary  string        // Path to the pg_ctl binary
	DataDir string        // Cluster directory to start
	LogFile string        // Server log destination (absolute path)
	Timeout time.Duration // How long pg_ctl waits for readiness

	// Runner (optional, defaults to process.Run)
	Runner process.Runner
	// Logger (optional, defaults to slog.Default())
	Logger *slog.Logger
}

// validate checks that all required Config fields are set and returns an
// error describing the first missing or invalid field.
func (c Config) validate() error {
	if c.Binary == "" {
		return errors.New("binary path must not be empty")
	}
	if c.DataDir == "" {
		return errors.New("data dir must not be empty")
	}
	if c.LogFile == "" {
		return errors.New("log file path must not be empty")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}

// Start launches the server and blocks until pg_ctl reports it ready or the
// configured timeout elapses. The postmaster detaches from the controller;
// pg_ctl itself exits once the wait resolves. On failure the tool's combined
// output is folded into the returned error verbatim.
func Start(ctx context.Context, cfg Config) error {
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("invalid pg_ctl config: %w", err)
	}
	runner := cfg.Runner
	if runner == nil {
		runner = process.Run
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	// Round up so sub-second timeouts do not truncate to -t 0, which
	// pg_ctl would reject.
	seconds := int((cfg.Timeout + time.Second - 1) / time.Second)

	args := []string{
		"--pgdata=" + cfg.DataDir,
		"--log=" + cfg.LogFile,
		"--wait",
		"--timeout=" + strconv.Itoa(seconds),
		"start",
	}

	log.Info("starting server", "data_dir", cfg.DataDir, "log_file", cfg.LogFile, "timeout", cfg.Timeout)

	out, err := runner(ctx, process.Command{
		Path: cfg.Binary,
		Args: args,
		Dir:  cfg.DataDir,
	})
	if err != nil {
		return fmt.Errorf("start server in %s: %w", cfg.DataDir, process.Diagnose(err, out))
	}
	return nil
}
