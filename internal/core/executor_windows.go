//go:build windows

package core

import (
	"os"
	"os/exec"
)

func detectShell() string {
	if comspec := os.Getenv("COMSPEC"); comspec != "" {
		return comspec
	}
	return "cmd"
}

func newShellCommand(shell, command string) *exec.Cmd {
	return exec.Command(shell, "/C", command)
}

// terminate kills the shell process. Windows has no process groups in
// the POSIX sense; child processes of the shell may survive.
func terminate(cmd *exec.Cmd) {
	if cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
}
