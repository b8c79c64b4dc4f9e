package process

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pgforge/pgentry/internal/sentinel"
)

// ErrEmptyPath is returned when a Command carries no binary path.
const ErrEmptyPath = sentinel.Error("command path must not be empty")

// Command describes one blocking invocation of a control subprocess.
type Command struct {
	Path string   // binary path or bare name resolved via PATH
	Args []string // arguments, excluding argv[0]
	Dir  string   // working directory; empty inherits the controller's

	// ExtraFiles are inherited by the child starting at descriptor 3,
	// mirroring exec.Cmd.ExtraFiles. Used to hand the credential seed to
	// initdb through an anonymous pipe instead of a file on disk.
	ExtraFiles []*os.File
}

// Runner executes a Command and returns its combined stdout/stderr. Tests
// substitute a fake to observe invocations without spawning real engines.
type Runner func(ctx context.Context, cmd Command) ([]byte, error)

// Run is the default Runner. It blocks until the subprocess exits and
// returns whatever output was produced, even on failure, so callers can
// surface the tool's own diagnostics verbatim.
func Run(ctx context.Context, cmd Command) ([]byte, error) {
	if cmd.Path == "" {
		return nil, ErrEmptyPath
	}

	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...) //nolint:gosec // G204: paths are operator-configured
	c.Dir = cmd.Dir
	c.ExtraFiles = cmd.ExtraFiles
	configureSysProcAttr(c)

	out, err := c.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("%s: %w", cmd.Path, err)
	}
	return out, nil
}

// Diagnose folds a subprocess failure and its captured output into a single
// error value. Output is trimmed and attached so the failing tool's last
// words survive into the controller's one fatal log line.
func Diagnose(err error, output []byte) error {
	if err == nil {
		return nil
	}
	text := strings.TrimSpace(string(output))
	if text == "" {
		return err
	}
	return fmt.Errorf("%w: %s", err, text)
}

// LookupBinary resolves name on PATH, returning the absolute path. A miss is
// a packaging defect (the image was built without the engine), so the error
// names the binary explicitly for the operator.
func LookupBinary(name string) (string, error) {
	if name == "" {
		return "", ErrEmptyPath
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("locate %s: %w", name, err)
	}
	return path, nil
}
