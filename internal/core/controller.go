package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pgforge/pgentry/internal/dirlock"
	"github.com/pgforge/pgentry/internal/fileutil"
	"github.com/pgforge/pgentry/internal/initdb"
	"github.com/pgforge/pgentry/internal/pgctl"
	"github.com/pgforge/pgentry/internal/process"
	"github.com/pgforge/pgentry/internal/tailer"
)

// readinessPollInterval is the interval between TCP readiness probes after
// pg_ctl reports the server started. 100ms keeps the post-launch
// verification cheap; pg_ctl's own wait has already absorbed the multi-
// second part of startup.
const readinessPollInterval = 100 * time.Millisecond

// dataDirMode is the permission mode for a freshly created data directory.
// The engine refuses to run against a directory with group or world access.
const dataDirMode = os.FileMode(0o700)

// fragmentMode is the permission mode for configuration copies inside the
// data directory.
const fragmentMode = os.FileMode(0o600)

// Controller drives the container lifecycle for exactly one server instance.
// It is a sequential procedure with branch points, not a concurrent system:
// one Run call per process, no internal goroutines beyond the parallel
// fragment sync.
type Controller struct {
	cfg    Config
	runner process.Runner
	sink   io.Writer
	log    *slog.Logger
}

// NewController creates a Controller with the given configuration.
// It performs no I/O; all side effects happen in Run.
func NewController(cfg Config) (*Controller, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid controller config: %w", err)
	}
	runner := cfg.Runner
	if runner == nil {
		runner = process.Run
	}
	sink := cfg.LogSink
	if sink == nil {
		sink = os.Stdout
	}
	return &Controller{cfg: cfg, runner: runner, sink: sink, log: Logger()}, nil
}

// Run executes the full lifecycle:
//
//	CHECK_INITIALIZED → [UNINIT_PATH | INIT_PATH] → CONFIG_SYNC
//	                  → PRECONDITION_CHECK → LAUNCH → SUPERVISE
//
// On success Run does not return until the log follow ends (ctx canceled or
// the log file removed). Any fatal condition returns a single wrapped error
// naming the failing phase; no partial-degraded operation and no retry
// happen inside the controller.
func (c *Controller) Run(ctx context.Context) error {
	initialized, err := c.checkInitialized()
	if err != nil {
		return fmt.Errorf("check initialized: %w", err)
	}

	if !initialized {
		if err := c.prepareDataDir(); err != nil {
			return fmt.Errorf("prepare data directory: %w", err)
		}
	}

	// Exactly one controller may own a data directory. The lock is held
	// until Run returns, which on the success path is the end of the
	// container's life.
	lock, err := dirlock.Acquire(c.lockPath(), c.log)
	if err != nil {
		return fmt.Errorf("acquire ownership: %w", err)
	}
	defer lock.Release()

	if initialized {
		// Idempotence invariant: a present marker must never trigger a
		// second initialization, which would destroy existing data.
		c.log.Info("cluster already initialized; skipping initdb", "data_dir", c.cfg.DataDir)
		c.syncConfigBestEffort(ctx)
	} else {
		if err := c.initializeCluster(ctx); err != nil {
			return fmt.Errorf("first-time initialization: %w", err)
		}
		if err := c.syncConfigStrict(ctx); err != nil {
			return fmt.Errorf("first-time configuration sync: %w", err)
		}
	}

	if err := c.checkBinaries(); err != nil {
		return fmt.Errorf("precondition check: %w", err)
	}

	if err := c.launch(ctx); err != nil {
		return fmt.Errorf("launch: %w", err)
	}

	return c.supervise(ctx)
}

// lockPath returns the ownership lock location: a sibling of the data
// directory, because initdb requires the data directory itself to be empty.
func (c *Controller) lockPath() string {
	return filepath.Clean(c.cfg.DataDir) + ".lock"
}

// serverLogPath returns the server log location inside the data directory.
func (c *Controller) serverLogPath() string {
	return filepath.Join(c.cfg.DataDir, ServerLogName)
}

// checkInitialized tests for the presence and non-emptiness of the version
// marker inside the data directory.
func (c *Controller) checkInitialized() (bool, error) {
	return fileutil.NonEmptyFile(filepath.Join(c.cfg.DataDir, MarkerName))
}

// prepareDataDir creates the data directory if missing and verifies it
// accepts writes. Initialization against a read-only target must fail here,
// before the engine is invoked.
func (c *Controller) prepareDataDir() error {
	if err := fileutil.EnsureDir(c.cfg.DataDir, dataDirMode); err != nil {
		return err
	}
	if err := fileutil.ProbeWritable(c.cfg.DataDir); err != nil {
		return fmt.Errorf("%w: %s", ErrDataDirNotWritable, err)
	}
	return nil
}

// initializeCluster invokes the engine's cluster-initialization primitive.
// Failure is fatal with no cleanup: the operator removes the directory and
// reruns.
func (c *Controller) initializeCluster(ctx context.Context) error {
	return initdb.Run(ctx, initdb.Config{
		Binary:    c.cfg.InitDBBinary,
		DataDir:   c.cfg.DataDir,
		Encoding:  c.cfg.Encoding,
		Locale:    c.cfg.Locale,
		Superuser: c.cfg.Superuser,
		AuthMode:  c.cfg.AuthMode,
		Password:  c.cfg.Password,
		Runner:    c.runner,
		Logger:    c.log,
	})
}

// fragments lists the staged configuration fragments by name.
func fragments() []string {
	return []string{ServerConfigName, HBAConfigName}
}

// syncConfigStrict copies each staged fragment into the data directory.
// An absent fragment is informational (the engine's packaged defaults
// apply); a failed copy is fatal, because a freshly initialized cluster
// must come up with deterministic configuration.
func (c *Controller) syncConfigStrict(ctx context.Context) error {
	g, _ := errgroup.WithContext(ctx)
	for _, name := range fragments() {
		name := name
		g.Go(func() error {
			return c.syncFragment(name, true)
		})
	}
	return g.Wait()
}

// syncConfigBestEffort refreshes each staged fragment, logging a warning and
// keeping the persisted copy on failure. An existing, working cluster must
// not be taken down because a configuration refresh failed.
func (c *Controller) syncConfigBestEffort(ctx context.Context) {
	g, _ := errgroup.WithContext(ctx)
	for _, name := range fragments() {
		name := name
		g.Go(func() error {
			if err := c.syncFragment(name, false); err != nil {
				c.log.Warn("configuration refresh failed; keeping persisted copy",
					"fragment", name, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// syncFragment copies one staged fragment into the data directory. Absence
// of the staging file is never an error; stat failures are only fatal in
// strict mode.
func (c *Controller) syncFragment(name string, strict bool) error {
	src := filepath.Join(c.cfg.ConfigDir, name)
	exists, err := fileutil.FileExists(src)
	if err != nil {
		if strict {
			return err
		}
		return fmt.Errorf("inspect staged fragment: %w", err)
	}
	if !exists {
		c.log.Info("no staged fragment; packaged defaults apply", "fragment", name, "staging", c.cfg.ConfigDir)
		return nil
	}
	dst, err := fileutil.CopyIntoDir(src, c.cfg.DataDir, fragmentMode)
	if err != nil {
		return fmt.Errorf("copy fragment %s: %w", name, err)
	}
	c.log.Info("configuration fragment synced", "fragment", name, "dst", dst)
	return nil
}

// checkBinaries verifies both control binaries resolve on the execution
// path. A miss is reported as a packaging error, distinct from data errors,
// so operators know to fix the image rather than the volume.
func (c *Controller) checkBinaries() error {
	for _, bin := range []string{c.cfg.InitDBBinary, c.cfg.PGCtlBinary} {
		if _, err := process.LookupBinary(bin); err != nil {
			return fmt.Errorf("%w: %s", ErrBinaryNotFound, err)
		}
	}
	return nil
}

// launch starts the server through pg_ctl in wait mode, then confirms the
// socket is accepting connections. Exceeding the timeout is launch failure,
// not "keep waiting".
func (c *Controller) launch(ctx context.Context) error {
	if err := pgctl.Start(ctx, pgctl.Config{
		Binary:  c.cfg.PGCtlBinary,
		DataDir: c.cfg.DataDir,
		LogFile: c.serverLogPath(),
		Timeout: c.cfg.StartTimeout,
		Runner:  c.runner,
		Logger:  c.log,
	}); err != nil {
		return err
	}

	// pg_ctl's wait already covers the slow part of startup; this probe is
	// a direct confirmation of "accepting connections" on the wire.
	if c.cfg.Port > 0 {
		addr := fmt.Sprintf("127.0.0.1:%d", c.cfg.Port)
		if err := process.WaitTCPReady(ctx, process.WaitReadyConfig{
			Interval: readinessPollInterval,
			Timeout:  c.cfg.StartTimeout,
			Name:     "postgres",
			Logger:   c.log,
		}, addr); err != nil {
			return err
		}
	}

	c.log.Info("server ready", "data_dir", c.cfg.DataDir)
	return nil
}

// supervise follows the server log until the container is stopped. The log
// stream is the liveness signal: the controller does not poll the server
// process itself.
func (c *Controller) supervise(ctx context.Context) error {
	if err := tailer.Follow(ctx, c.serverLogPath(), c.sink, c.log); err != nil {
		return fmt.Errorf("supervise: %w", err)
	}
	return nil
}
