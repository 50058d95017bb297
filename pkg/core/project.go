package core

// LintConfig holds lint rule configuration as it appears under the `lint` key
// of ktsmell.yaml.
type LintConfig struct {
	// Disabled contains rule IDs to disable
	Disabled []string `koanf:"disabled" yaml:"disabled"`

	// Severity maps rule ID to severity override (error, warning, info, hint)
	Severity map[string]Severity `koanf:"severity" yaml:"severity,omitempty"`

	// Rules contains rule-specific options keyed by rule ID
	Rules map[string]RuleOptions `koanf:"rules" yaml:"rules,omitempty"`
}

// RuleOptions holds rule-specific configuration options.
type RuleOptions map[string]any

// Options returns the options configured for a rule, or nil.
func (c *LintConfig) Options(ruleID string) RuleOptions {
	if c == nil || c.Rules == nil {
		return nil
	}
	return c.Rules[ruleID]
}
