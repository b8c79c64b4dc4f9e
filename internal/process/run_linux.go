//go:build linux

package process

import (
	"os/exec"
	"syscall"
)

// configureSysProcAttr sets Linux-specific process attributes on cmd.
// Pdeathsig delivers SIGTERM to the subprocess if the controller dies while
// a control invocation (e.g. a long initdb) is still in flight, so an
// abruptly stopped container does not leave an orphan mutating the data
// directory.
func configureSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Pdeathsig: syscall.SIGTERM,
	}
}
