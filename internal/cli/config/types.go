// Package config provides configuration management for the ktsmell CLI.
//
// The shared lint configuration type lives in pkg/core and is re-exported
// here via type aliases for convenience.
package config

import "github.com/leapstack-labs/ktsmell/pkg/core"

// LintConfig is an alias for the shared lint configuration.
type LintConfig = core.LintConfig

// RuleOptions is an alias for the shared rule options type.
type RuleOptions = core.RuleOptions

// Config holds all CLI configuration options.
type Config struct {
	Include      []string    `koanf:"include" yaml:"include,omitempty"`
	Exclude      []string    `koanf:"exclude" yaml:"exclude,omitempty"`
	Concurrency  int         `koanf:"concurrency" yaml:"concurrency,omitempty"`
	StatePath    string      `koanf:"state_path" yaml:"state_path,omitempty"`
	Verbose      bool        `koanf:"verbose" yaml:"verbose,omitempty"`
	OutputFormat string      `koanf:"output" yaml:"output,omitempty"`
	DocsURL      string      `koanf:"docs_url" yaml:"docs_url,omitempty"` // Base URL for rule documentation links
	Lint         *LintConfig `koanf:"lint" yaml:"lint,omitempty"`

	// ProjectRoot is the directory holding the config file, or the working
	// directory when there is none. Not read from configuration.
	ProjectRoot string `koanf:"-" yaml:"-"`
}

// Default configuration values.
const (
	ConfigFileName    = "ktsmell.yaml"
	AltConfigFileName = "ktsmell.yml"
	DefaultStateFile  = ".ktsmell/state.db"
	DefaultOutput     = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	EnvPrefix         = "KTSMELL_"
)

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Include:      []string{"*.kt", "*.kts"},
		Exclude:      []string{"build/**", ".gradle/**", "out/**"},
		StatePath:    DefaultStateFile,
		OutputFormat: DefaultOutput,
		Lint:         &LintConfig{},
	}
}
