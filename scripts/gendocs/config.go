package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/ktsmell/internal/cli/config"
	"github.com/leapstack-labs/ktsmell/pkg/lint"
)

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
}

// getConfigSchema returns the configuration schema definition.
// Defaults are taken from config.Default so the page cannot drift.
func getConfigSchema() []ConfigField {
	def := config.Default()
	return []ConfigField{
		{Name: "include", Type: "[]string", Default: strings.Join(def.Include, ", "), Description: "File name patterns to analyze"},
		{Name: "exclude", Type: "[]string", Default: strings.Join(def.Exclude, ", "), Description: "Path patterns to skip. A `dir/**` pattern skips the whole directory"},
		{Name: "concurrency", Type: "int", Default: "number of CPUs", Description: "Files analyzed at once"},
		{Name: "state_path", Type: "string", Default: def.StatePath, Description: "SQLite database for recorded runs, relative to the config file"},
		{Name: "output", Type: "string", Default: def.OutputFormat, Description: "Output format: auto, text, markdown, json, sonar"},
		{Name: "docs_url", Type: "string", Default: lint.DefaultDocsBaseURL, Description: "Base URL of the rule documentation linked from findings"},
		{Name: "verbose", Type: "bool", Default: "false", Description: "Debug logging on stderr"},
		{Name: "lint.disabled", Type: "[]string", Description: "Rule IDs to disable"},
		{Name: "lint.severity", Type: "map[string]string", Description: "Severity override per rule ID: error, warning, info or hint"},
		{Name: "lint.rules", Type: "map[string]map[string]any", Description: "Rule-specific options keyed by rule ID"},
	}
}

// generateConfigDocs generates the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "ktsmell configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph(fmt.Sprintf("ktsmell reads %s from the working directory or the nearest parent directory. Run %s to create one.",
		InlineCode(config.ConfigFileName), InlineCode("ktsmell init")))

	w.Header(2, "Precedence")
	w.BulletList([]string{
		"Command-line flags",
		fmt.Sprintf("Environment variables with the %s prefix", InlineCode(config.EnvPrefix)),
		"The configuration file",
		"Built-in defaults",
	})

	w.Header(2, "Fields")
	var rows [][]string
	for _, f := range getConfigSchema() {
		defVal := "-"
		if f.Default != "" {
			defVal = InlineCode(f.Default)
		}
		rows = append(rows, []string{InlineCode(f.Name), f.Type, defVal, f.Description})
	}
	w.Table([]string{"Field", "Type", "Default", "Description"}, rows)

	if err := os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")
	return nil
}
