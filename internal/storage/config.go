package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bluebird3624/install-agent/internal/core/security"
	"github.com/spf13/viper"
)

const (
	ConfigFileName = "config"
	ConfigFileType = "yaml"
	AgentDirName   = ".install-agent"

	RulesFileName        = "rules.yaml"
	LogFileName          = "install-agent.log"
	PromptFileName       = "system_prompt.md"
	ConversationsDirName = "conversations"
)

var config *Config

// Config holds the application configuration
type Config struct {
	AI       AIConfig        `mapstructure:"ai"`
	Security security.Policy `mapstructure:"security"`
	Executor ExecutorConfig  `mapstructure:"executor"`
	Chat     ChatConfig      `mapstructure:"chat"`
	Log      LogConfig       `mapstructure:"log"`
}

// AIConfig holds model backend configuration
type AIConfig struct {
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
	BaseURL  string `mapstructure:"base_url"`
	// Timeout bounds a single model call, in seconds.
	Timeout int `mapstructure:"timeout"`
	// MaxRetries caps how many times a failed command may re-engage the
	// model within one turn.
	MaxRetries int `mapstructure:"max_retries"`
}

// ExecutorConfig holds command execution configuration
type ExecutorConfig struct {
	// Timeout is the wall-clock bound for one command, in seconds.
	Timeout int `mapstructure:"timeout"`
}

// ChatConfig holds conversation configuration
type ChatConfig struct {
	HistoryLimit   int  `mapstructure:"history_limit"`
	RenderMarkdown bool `mapstructure:"render_markdown"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// GetConfigDir returns the install-agent config directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, AgentDirName), nil
}

// InitConfig initializes the configuration
func InitConfig() (*Config, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}

	// Create config directory if not exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileType)
	v.AddConfigPath(configDir)

	// Model backend defaults
	v.SetDefault("ai.provider", "ollama")
	v.SetDefault("ai.model", "phi")
	v.SetDefault("ai.base_url", "http://localhost:11434")
	v.SetDefault("ai.timeout", 180)
	v.SetDefault("ai.max_retries", 3)

	// Security defaults
	pol := security.DefaultPolicy()
	v.SetDefault("security.require_confirmation", pol.RequireConfirmation)
	v.SetDefault("security.rules_file", pol.RulesFile)

	// Executor defaults
	v.SetDefault("executor.timeout", 30)

	// Chat defaults
	v.SetDefault("chat.history_limit", 50)
	v.SetDefault("chat.render_markdown", true)

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	// Read config file (ignore if not exists)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config not found, defaults apply
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config = &cfg
	return config, nil
}

// GetConfig returns the loaded config
func GetConfig() *Config {
	return config
}

// RulesFilePath resolves the security rule file location: the configured
// path when set, otherwise rules.yaml in the config directory.
func (c *Config) RulesFilePath() (string, error) {
	if c.Security.RulesFile != "" {
		return c.Security.RulesFile, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, RulesFileName), nil
}

// LogFilePath resolves the log file location: the configured path when
// set, otherwise install-agent.log in the config directory.
func (c *Config) LogFilePath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, LogFileName), nil
}

// ConversationsDir returns the conversation snapshot directory.
func ConversationsDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConversationsDirName), nil
}

// SystemPromptPath returns the location of the editable system prompt file.
func SystemPromptPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, PromptFileName), nil
}
