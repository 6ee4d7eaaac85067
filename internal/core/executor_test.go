package core

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestExecute_SimpleCommand(t *testing.T) {
	executor := NewExecutor(5 * time.Second)

	outcome := executor.Execute(context.Background(), "echo hello world")

	if outcome.Status != StatusCompleted {
		t.Fatalf("Expected status %s, got %s", StatusCompleted, outcome.Status)
	}
	if !outcome.Succeeded() {
		t.Errorf("Expected success, got exit code %d, err %v", outcome.ExitCode, outcome.Err)
	}
	if strings.TrimSpace(outcome.Stdout) != "hello world" {
		t.Errorf("Expected 'hello world', got %q", outcome.Stdout)
	}
}

func TestExecute_SeparatesStdoutAndStderr(t *testing.T) {
	executor := NewExecutor(5 * time.Second)

	outcome := executor.Execute(context.Background(), "echo to-stdout; echo to-stderr 1>&2")

	if !strings.Contains(outcome.Stdout, "to-stdout") {
		t.Errorf("Stdout missing expected text: %q", outcome.Stdout)
	}
	if strings.Contains(outcome.Stdout, "to-stderr") {
		t.Errorf("Stderr text leaked into stdout: %q", outcome.Stdout)
	}
	if !strings.Contains(outcome.Stderr, "to-stderr") {
		t.Errorf("Stderr missing expected text: %q", outcome.Stderr)
	}
}

func TestExecute_NonZeroExit(t *testing.T) {
	executor := NewExecutor(5 * time.Second)

	outcome := executor.Execute(context.Background(), "exit 3")

	if outcome.Status != StatusCompleted {
		t.Fatalf("Expected status %s, got %s", StatusCompleted, outcome.Status)
	}
	if outcome.ExitCode != 3 {
		t.Errorf("Expected exit code 3, got %d", outcome.ExitCode)
	}
	if outcome.Succeeded() {
		t.Error("Expected Succeeded() to be false")
	}
	if outcome.Err != nil {
		t.Errorf("Non-zero exit is not an execution error, got %v", outcome.Err)
	}
}

func TestExecute_CommandNotFoundIsNotSpawnError(t *testing.T) {
	executor := NewExecutor(5 * time.Second)

	outcome := executor.Execute(context.Background(), "nonexistent-command-xyz123")

	// The shell itself starts fine; the lookup failure is an ordinary
	// command failure reported through the exit code.
	if outcome.Status != StatusCompleted {
		t.Fatalf("Expected status %s, got %s", StatusCompleted, outcome.Status)
	}
	if outcome.ExitCode == 0 {
		t.Error("Expected non-zero exit code for missing command")
	}
}

func TestExecute_Timeout(t *testing.T) {
	executor := NewExecutor(1 * time.Second)

	start := time.Now()
	outcome := executor.Execute(context.Background(), "echo partial; sleep 30")
	elapsed := time.Since(start)

	if outcome.Status != StatusTimedOut {
		t.Fatalf("Expected status %s, got %s", StatusTimedOut, outcome.Status)
	}
	if elapsed > 10*time.Second {
		t.Errorf("Timeout did not take down the process group, took %s", elapsed)
	}
	if outcome.Err == nil || !strings.Contains(outcome.Err.Error(), "timed out") {
		t.Errorf("Expected timeout error, got %v", outcome.Err)
	}
	if !strings.Contains(outcome.Stdout, "partial") {
		t.Errorf("Expected partial output to survive the kill, got %q", outcome.Stdout)
	}
}

func TestExecute_SpawnError(t *testing.T) {
	executor := &Executor{shell: "/nonexistent-shell-xyz123", timeout: 5 * time.Second}

	outcome := executor.Execute(context.Background(), "echo hello")

	if outcome.Status != StatusSpawnError {
		t.Fatalf("Expected status %s, got %s", StatusSpawnError, outcome.Status)
	}
	if outcome.Err == nil {
		t.Error("Expected spawn error to be set")
	}
	if outcome.Stdout != "" || outcome.Stderr != "" {
		t.Error("Expected no output from a command that never started")
	}
}

func TestOutcome_Succeeded(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    bool
	}{
		{"completed zero exit", Outcome{Status: StatusCompleted, ExitCode: 0}, true},
		{"completed non-zero exit", Outcome{Status: StatusCompleted, ExitCode: 1}, false},
		{"timed out", Outcome{Status: StatusTimedOut, ExitCode: -1}, false},
		{"spawn error", Outcome{Status: StatusSpawnError, ExitCode: -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outcome.Succeeded(); got != tt.want {
				t.Errorf("Succeeded() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectShell(t *testing.T) {
	shell := detectShell()
	if shell == "" {
		t.Fatal("detectShell returned empty string")
	}
}
