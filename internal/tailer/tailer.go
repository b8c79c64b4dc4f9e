// Package tailer binds the container's lifetime to the server log: it
// follows the growing log file and forwards it to the controller's stdout.
package tailer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nxadm/tail"
)

// Follow streams lines appended to path into w until ctx is canceled or the
// underlying follow ends (for example, the file is removed). The follow
// starts at the current end of the file, so a restart against a large
// existing log does not replay history.
//
// Follow intentionally does not watch the server process itself: the log
// stream is the liveness signal. If the server dies, the file stops growing
// and Follow keeps blocking until the container is stopped externally.
//
// The file does not need to exist yet; the follow begins once it appears.
func Follow(ctx context.Context, path string, w io.Writer, logger *slog.Logger) error {
	if path == "" {
		return fmt.Errorf("follow log: path must not be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	t, err := tail.TailFile(path, tail.Config{
		Follow:    true,
		ReOpen:    false,
		MustExist: false,
		Location:  &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("follow log %s: %w", path, err)
	}

	logger.Info("supervising server log", "path", path)

	for {
		select {
		case <-ctx.Done():
			// Stop waits for the watcher goroutine before Cleanup releases
			// inotify resources.
			_ = t.Stop()
			t.Cleanup()
			return nil
		case line, ok := <-t.Lines:
			if !ok {
				t.Cleanup()
				if err := t.Err(); err != nil {
					return fmt.Errorf("follow log %s: %w", path, err)
				}
				logger.Info("server log follow ended", "path", path)
				return nil
			}
			if line.Err != nil {
				logger.Warn("log line error", "path", path, "error", line.Err)
				continue
			}
			if _, err := fmt.Fprintln(w, line.Text); err != nil {
				_ = t.Stop()
				t.Cleanup()
				return fmt.Errorf("forward log line: %w", err)
			}
		}
	}
}
