//go:build !windows

package core

import (
	"os/exec"
	"syscall"
)

// detectShell prefers bash for its richer builtins, falling back to sh.
func detectShell() string {
	if path, err := exec.LookPath("bash"); err == nil {
		return path
	}
	return "sh"
}

// newShellCommand builds the shell invocation with the child in its own
// process group, so killing it takes down the whole pipeline and not
// just the shell.
func newShellCommand(shell, command string) *exec.Cmd {
	cmd := exec.Command(shell, "-c", command)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	return cmd
}

// terminate kills the command's entire process group.
func terminate(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL); err != nil {
		_ = cmd.Process.Kill()
	}
}
