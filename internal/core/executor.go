package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"
)

// Status describes how a command execution ended.
type Status string

const (
	// StatusCompleted means the command ran to completion, whatever its
	// exit code.
	StatusCompleted Status = "completed"
	// StatusTimedOut means the command was killed at the deadline.
	StatusTimedOut Status = "timed_out"
	// StatusSpawnError means the command never started.
	StatusSpawnError Status = "spawn_error"
)

// Outcome is the result of one command execution.
type Outcome struct {
	Status   Status
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

// Succeeded reports whether the command ran and exited zero.
func (o *Outcome) Succeeded() bool {
	return o.Status == StatusCompleted && o.ExitCode == 0
}

// Executor runs commands through the shell with a hard deadline.
type Executor struct {
	shell   string
	timeout time.Duration
}

// NewExecutor creates an executor. Each command gets at most timeout to
// finish before its whole process group is killed.
func NewExecutor(timeout time.Duration) *Executor {
	return &Executor{
		shell:   detectShell(),
		timeout: timeout,
	}
}

// Execute runs a single command string through the shell. Stdout and
// stderr are captured separately; on timeout whatever was written
// before the kill is preserved in the outcome.
func (e *Executor) Execute(ctx context.Context, command string) *Outcome {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := newShellCommand(e.shell, command)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logrus.Debugf("Executing command: %s", command)

	if err := cmd.Start(); err != nil {
		return &Outcome{
			Status:   StatusSpawnError,
			ExitCode: -1,
			Err:      fmt.Errorf("failed to start command: %w", err),
		}
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case <-ctx.Done():
		terminate(cmd)
		<-done

		err := ctx.Err()
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("command timed out after %d seconds", int(e.timeout.Seconds()))
		}
		logrus.Warnf("Command killed: %v", err)

		return &Outcome{
			Status:   StatusTimedOut,
			ExitCode: -1,
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			Err:      err,
		}

	case err := <-done:
		outcome := &Outcome{
			Status: StatusCompleted,
			Stdout: stdout.String(),
			Stderr: stderr.String(),
		}

		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				outcome.ExitCode = exitErr.ExitCode()
			} else {
				outcome.ExitCode = -1
				outcome.Err = err
			}
		}

		return outcome
	}
}
