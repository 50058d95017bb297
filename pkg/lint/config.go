package lint

import "github.com/leapstack-labs/ktsmell/pkg/core"

// Config controls which rules are enabled, their severity and their options.
type Config struct {
	// DisabledRules contains rule IDs to skip
	DisabledRules map[string]bool

	// SeverityOverrides changes the default severity of rules
	SeverityOverrides map[string]core.Severity

	// RuleOptions holds per-rule options passed to each rule's Factory
	RuleOptions map[string]core.RuleOptions
}

// NewConfig creates a default configuration with all rules enabled.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]core.Severity),
		RuleOptions:       make(map[string]core.RuleOptions),
	}
}

// ConfigFromCore builds a Config from the lint section of the project config.
func ConfigFromCore(lc *core.LintConfig) *Config {
	cfg := NewConfig()
	if lc == nil {
		return cfg
	}
	for _, id := range lc.Disabled {
		cfg.Disable(id)
	}
	for id, sev := range lc.Severity {
		cfg.SetSeverity(id, sev)
	}
	for id, opts := range lc.Rules {
		cfg.SetOptions(id, opts)
	}
	return cfg
}

// IsDisabled returns true if the rule should be skipped.
func (c *Config) IsDisabled(ruleID string) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[ruleID]
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(ruleID string, defaultSeverity core.Severity) core.Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[ruleID]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// GetOptions returns the options configured for a rule (may be nil).
func (c *Config) GetOptions(ruleID string) core.RuleOptions {
	if c == nil {
		return nil
	}
	return c.RuleOptions[ruleID]
}

// Disable disables a rule by ID.
func (c *Config) Disable(ruleID string) *Config {
	c.DisabledRules[ruleID] = true
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(ruleID string, severity core.Severity) *Config {
	c.SeverityOverrides[ruleID] = severity
	return c
}

// SetOptions sets the options for a rule.
func (c *Config) SetOptions(ruleID string, opts core.RuleOptions) *Config {
	c.RuleOptions[ruleID] = opts
	return c
}
