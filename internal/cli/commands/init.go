package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/ktsmell/internal/cli/config"
	"github.com/leapstack-labs/ktsmell/internal/cli/output"
	"github.com/leapstack-labs/ktsmell/pkg/core"
	"github.com/leapstack-labs/ktsmell/pkg/lint"
)

const configHeader = `# ktsmell configuration
# Paths are relative to this file. Run 'ktsmell rules' to list rule IDs.
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a ktsmell.yaml configuration file",
		Long: `Create a ktsmell.yaml configuration file with the default settings.

The generated file lists every registered rule with its default severity,
so rules can be tuned or disabled in one place.`,
		Example: `  # Initialize in current directory
  ktsmell init

  # Initialize in another directory
  ktsmell init path/to/project

  # Force overwrite existing config
  ktsmell init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(r *output.Renderer, dir string, force bool) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", config.ConfigFileName)
	}

	data, err := defaultConfigYAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	r.Success("Created " + configPath)
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Adjust rule severities and options in " + config.ConfigFileName)
	r.Println("  2. Run 'ktsmell lint' to analyze your sources")
	r.Println("  3. Run 'ktsmell lint --record' to keep a history of results")

	return nil
}

// defaultConfigYAML renders the default configuration with every rule's
// default severity spelled out.
func defaultConfigYAML() ([]byte, error) {
	cfg := config.Default()
	cfg.Lint = &config.LintConfig{
		Disabled: []string{},
		Severity: make(map[string]core.Severity),
	}
	for _, info := range lint.AllRules() {
		cfg.Lint.Severity[info.ID] = info.DefaultSeverity
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return buf.Bytes(), nil
}
