// Command pgentry is the container entrypoint for a packaged PostgreSQL
// server. Invoked bare (or as "pgentry run") it executes the full
// lifecycle: initialize the data directory if needed, sync staged
// configuration, start the server, and stream its log to stdout for the
// life of the container.
package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pgforge/pgentry"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// envLogLevel tunes the controller's own log verbosity; the server's log
// stream is forwarded unfiltered regardless.
const envLogLevel = "PGENTRY_LOG_LEVEL"

var rootCmd = &cobra.Command{
	Use:   "pgentry",
	Short: "Lifecycle controller for a containerized PostgreSQL server",
	Long: `pgentry brings exactly one PostgreSQL instance from unknown state to
accepting connections, then supervises its log stream.

Configuration is taken from the environment:
  PGDATA                 data directory (required)
  POSTGRES_PASSWORD      superuser credential seed (default "postgres")
  PGENTRY_CONFIG_DIR     staging dir for postgresql.conf / pg_hba.conf
  PGENTRY_PORT           readiness probe port ("0" disables)
  PGENTRY_START_TIMEOUT  launch budget, e.g. "90s"
  PGENTRY_LOG_LEVEL      controller verbosity (debug, info, warn, error)`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runLifecycle,
}

// newLogger builds the process logger: text handler on stderr so the
// supervised server log owns stdout exclusively.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv(envLogLevel)) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runLifecycle(cmd *cobra.Command, _ []string) error {
	opts, err := pgentry.OptionsFromEnv()
	if err != nil {
		return err
	}
	ctrl, err := pgentry.New(opts...)
	if err != nil {
		return err
	}
	// Blocks for the remaining life of the container on success.
	return ctrl.Run(cmd.Context())
}

func init() {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full container lifecycle (default)",
		RunE:  runLifecycle,
	}
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(healthcheckCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func main() {
	log := newLogger()
	slog.SetDefault(log)
	pgentry.SetLogger(log.With("component", "pgentry"))

	if err := rootCmd.Execute(); err != nil {
		// The single fatal diagnostic: one timestamped line naming the
		// failing step, then a non-zero exit.
		log.Error("lifecycle failed", "error", err)
		os.Exit(1)
	}
}
