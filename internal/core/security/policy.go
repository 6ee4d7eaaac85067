package security

// Policy defines the security configuration.
type Policy struct {
	// RequireConfirmation gates privileged commands behind an interactive
	// prompt. When false, privileged commands are auto-approved and the
	// auto-approval is logged.
	RequireConfirmation bool `mapstructure:"require_confirmation"`

	// RulesFile is the path to the YAML rule tables. Empty means the
	// default location under the config directory.
	RulesFile string `mapstructure:"rules_file"`
}

// DefaultPolicy returns the default security policy.
func DefaultPolicy() *Policy {
	return &Policy{
		RequireConfirmation: true,
	}
}
