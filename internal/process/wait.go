package process

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
)

// Sentinel errors returned by WaitReady for invalid configuration. Callers
// can match these with errors.Is through wrapped error chains.
var (
	// ErrIntervalNotPositive indicates a non-positive poll interval.
	ErrIntervalNotPositive = errors.New("interval must be positive")

	// ErrTimeoutNotPositive indicates a non-positive timeout.
	ErrTimeoutNotPositive = errors.New("timeout must be positive")
)

// dialTimeout is the per-attempt timeout for the TCP dial used in readiness
// checks. 1 second is generous for a loopback connection; attempts that fail
// because the postmaster is not yet listening return immediately with a
// connection-refused error, so this only guards against pathological cases.
const dialTimeout = time.Second

// ReadinessCheck reports whether the server is ready. The context is
// canceled when the polling loop times out or the caller cancels. The
// attempt parameter is 1-based. A non-nil error aborts polling.
type ReadinessCheck func(ctx context.Context, attempt int) (ready bool, err error)

// WaitReadyConfig configures the wait behavior.
type WaitReadyConfig struct {
	Interval time.Duration // Poll interval
	Timeout  time.Duration // Overall timeout
	Name     string        // For logging (e.g., "postgres")
	Logger   *slog.Logger  // Optional logger (defaults to slog.Default())
}

// WaitReady polls check until it returns true, returns a fatal error, or the
// timeout elapses.
func WaitReady(ctx context.Context, cfg WaitReadyConfig, check ReadinessCheck) error {
	if cfg.Name == "" {
		return errors.New("wait ready: name must not be empty")
	}
	if cfg.Interval <= 0 {
		return fmt.Errorf("wait for %s: %w", cfg.Name, ErrIntervalNotPositive)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("wait for %s: %w", cfg.Name, ErrTimeoutNotPositive)
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	// attempt needs no synchronization: PollUntilContextTimeout invokes the
	// condition sequentially, each call completing before the next starts.
	attempt := 0
	if err := wait.PollUntilContextTimeout(ctx, cfg.Interval, cfg.Timeout, true,
		func(pollCtx context.Context) (bool, error) {
			attempt++
			ready, err := check(pollCtx, attempt)
			if err != nil {
				return false, err
			}
			if ready {
				log.Debug("wait succeeded", "name", cfg.Name, "attempt", attempt)
			}
			return ready, nil
		}); err != nil {
		return fmt.Errorf("wait for %s readiness: %w", cfg.Name, err)
	}
	return nil
}

// WaitTCPReady polls addr until a TCP connection succeeds, confirming the
// server is accepting connections on its socket.
func WaitTCPReady(ctx context.Context, cfg WaitReadyConfig, addr string) error {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	dialer := &net.Dialer{Timeout: dialTimeout}

	return WaitReady(ctx, cfg, func(checkCtx context.Context, attempt int) (bool, error) {
		conn, err := dialer.DialContext(checkCtx, "tcp", addr)
		if err != nil {
			if log.Enabled(checkCtx, slog.LevelDebug) {
				log.Debug("readiness dial failed", "name", cfg.Name, "addr", addr, "attempt", attempt, "error", err)
			}
			return false, nil
		}
		_ = conn.Close()
		return true, nil
	})
}
