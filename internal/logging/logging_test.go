package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func restoreLogger() {
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetFormatter(&logrus.TextFormatter{})
}

func TestSetup_InvalidLevel(t *testing.T) {
	if err := Setup("chatty", ""); err == nil {
		t.Error("Expected error for unknown level, got nil")
	}
}

func TestSetup_SetsLevel(t *testing.T) {
	defer restoreLogger()

	if err := Setup("debug", ""); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if logrus.GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %v", logrus.GetLevel())
	}
}

func TestSetup_WritesToFile(t *testing.T) {
	defer restoreLogger()

	file := filepath.Join(t.TempDir(), "logs", "agent.log")
	if err := Setup("info", file); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	logrus.Info("command blocked")

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "command blocked") {
		t.Errorf("Expected log entry in file, got %q", string(data))
	}
}
