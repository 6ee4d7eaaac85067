package security

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ForbiddenRule is a destructive-command pattern and its human description.
type ForbiddenRule struct {
	Pattern string `yaml:"pattern"`
	Reason  string `yaml:"reason"`
}

// RuleSet holds the classification rule tables.
type RuleSet struct {
	Forbidden  []ForbiddenRule `yaml:"forbidden"`
	Privileged []string        `yaml:"privileged"`
}

// DefaultRuleSet returns the built-in rule tables.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		Forbidden: []ForbiddenRule{
			{Pattern: `rm\s+-rf\s+/`, Reason: "recursive deletion from the filesystem root"},
			{Pattern: `format\s+c:`, Reason: "formatting the system drive"},
			{Pattern: `del\s+/s\s+/q\s+c:\\`, Reason: "recursive forced deletion of the Windows system drive"},
			{Pattern: `shutdown\s+-h\s+now`, Reason: "immediate system shutdown"},
			{Pattern: `init\s+0`, Reason: "immediate system halt"},
			{Pattern: `:\(\)\s*\{.*\};\s*:`, Reason: "fork bomb"},
			{Pattern: `dd\s+if=/dev/zero`, Reason: "overwriting a device with zeros"},
			{Pattern: `mkfs\.`, Reason: "creating a filesystem over an existing device"},
			{Pattern: `fdisk.*--delete`, Reason: "deleting disk partitions"},
		},
		Privileged: []string{
			"sudo", "su", "doas", "runas",
			"systemctl", "service", "chkconfig",
			"apt", "yum", "dnf", "pacman", "zypper",
			"mount", "umount", "fsck",
			"iptables", "ufw", "firewall-cmd",
			"choco", "brew",
		},
	}
}

// LoadRuleSet reads rule tables from a YAML file.
func LoadRuleSet(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rules RuleSet
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	return &rules, nil
}

// EnsureRuleFile loads the rule tables from path, writing the defaults
// there first if no file exists yet.
func EnsureRuleFile(path string) (*RuleSet, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := WriteRuleSet(path, DefaultRuleSet()); err != nil {
			return nil, err
		}
	}
	return LoadRuleSet(path)
}

// WriteRuleSet marshals rule tables to a YAML file, creating parent
// directories as needed.
func WriteRuleSet(path string, rules *RuleSet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create rules directory: %w", err)
	}

	data, err := yaml.Marshal(rules)
	if err != nil {
		return fmt.Errorf("failed to marshal rules: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write rules file: %w", err)
	}

	return nil
}
