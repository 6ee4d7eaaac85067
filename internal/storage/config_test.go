package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetConfigDir(t *testing.T) {
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir failed: %v", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("Failed to get home dir: %v", err)
	}

	expected := filepath.Join(home, AgentDirName)
	if dir != expected {
		t.Errorf("Expected %s, got %s", expected, dir)
	}
}

func TestInitConfig_Defaults(t *testing.T) {
	// Use temp directory for testing
	oldHome := os.Getenv("HOME")
	tmpDir, err := os.MkdirTemp("", "install-agent-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)
	os.Setenv("HOME", tmpDir)
	defer os.Setenv("HOME", oldHome)

	cfg, err := InitConfig()
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	if cfg.AI.Provider != "ollama" {
		t.Errorf("Expected provider 'ollama', got '%s'", cfg.AI.Provider)
	}
	if cfg.AI.Model != "phi" {
		t.Errorf("Expected model 'phi', got '%s'", cfg.AI.Model)
	}
	if cfg.AI.BaseURL != "http://localhost:11434" {
		t.Errorf("Expected default base URL, got '%s'", cfg.AI.BaseURL)
	}
	if cfg.AI.Timeout != 180 {
		t.Errorf("Expected AI timeout 180, got %d", cfg.AI.Timeout)
	}
	if cfg.AI.MaxRetries != 3 {
		t.Errorf("Expected max retries 3, got %d", cfg.AI.MaxRetries)
	}
	if !cfg.Security.RequireConfirmation {
		t.Error("Expected confirmation required by default")
	}
	if cfg.Executor.Timeout != 30 {
		t.Errorf("Expected executor timeout 30, got %d", cfg.Executor.Timeout)
	}
	if cfg.Chat.HistoryLimit != 50 {
		t.Errorf("Expected history limit 50, got %d", cfg.Chat.HistoryLimit)
	}
	if !cfg.Chat.RenderMarkdown {
		t.Error("Expected markdown rendering enabled by default")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Expected log level 'info', got '%s'", cfg.Log.Level)
	}

	if GetConfig() != cfg {
		t.Error("Expected GetConfig to return the loaded config")
	}
}

func TestInitConfig_ReadsUserFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	configDir := filepath.Join(tmpDir, AgentDirName)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	content := `ai:
  model: llama2
security:
  require_confirmation: false
executor:
  timeout: 5
`
	path := filepath.Join(configDir, ConfigFileName+"."+ConfigFileType)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := InitConfig()
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	if cfg.AI.Model != "llama2" {
		t.Errorf("Expected model 'llama2' from file, got '%s'", cfg.AI.Model)
	}
	if cfg.Security.RequireConfirmation {
		t.Error("Expected confirmation disabled by file")
	}
	if cfg.Executor.Timeout != 5 {
		t.Errorf("Expected executor timeout 5 from file, got %d", cfg.Executor.Timeout)
	}
	// Unset keys keep their defaults.
	if cfg.AI.Provider != "ollama" {
		t.Errorf("Expected default provider, got '%s'", cfg.AI.Provider)
	}
}

func TestConfig_RulesFilePath(t *testing.T) {
	cfg := &Config{}
	cfg.Security.RulesFile = "/etc/install-agent/rules.yaml"

	path, err := cfg.RulesFilePath()
	if err != nil {
		t.Fatalf("RulesFilePath failed: %v", err)
	}
	if path != "/etc/install-agent/rules.yaml" {
		t.Errorf("Expected configured path, got '%s'", path)
	}
}

func TestConfig_RulesFilePathDefault(t *testing.T) {
	cfg := &Config{}

	path, err := cfg.RulesFilePath()
	if err != nil {
		t.Fatalf("RulesFilePath failed: %v", err)
	}

	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir failed: %v", err)
	}
	if path != filepath.Join(configDir, RulesFileName) {
		t.Errorf("Expected default rules path under config dir, got '%s'", path)
	}
}

func TestConfig_LogFilePath(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		wantSuffix string
	}{
		{"configured path wins", "/var/log/agent.log", "/var/log/agent.log"},
		{"empty falls back to config dir", "", filepath.Join(AgentDirName, LogFileName)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.Log.File = tt.configured

			path, err := cfg.LogFilePath()
			if err != nil {
				t.Fatalf("LogFilePath failed: %v", err)
			}
			if !strings.HasSuffix(path, tt.wantSuffix) {
				t.Errorf("Expected path ending %q, got %q", tt.wantSuffix, path)
			}
		})
	}
}
