package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/ktsmell/pkg/core"
	"github.com/leapstack-labs/ktsmell/pkg/lint"
	_ "github.com/leapstack-labs/ktsmell/pkg/lint/rules"
)

// groupDescriptions provides human-readable descriptions for rule groups.
var groupDescriptions = map[string]string{
	"complexity": "Rules about declarations that are harder to use or read than they need to be.",
	"style":      "Rules about modifiers and declarations that say more than the code does.",
}

// generateLintDocs generates all lint documentation files.
func generateLintDocs(outDir string) error {
	log.Printf("Generating lint docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rules := lint.AllRules()
	grouped := groupRulesByGroup(rules)

	if err := generateLintIndex(outDir, rules, grouped); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	for group, groupRules := range grouped {
		if err := generateGroupPage(outDir, group, groupRules); err != nil {
			return err
		}
		log.Printf("  Generated %s.md", group)
	}

	return nil
}

// generateLintIndex generates the rules overview page.
func generateLintIndex(outDir string, rules []core.RuleInfo, grouped map[string][]core.RuleInfo) error {
	w := NewMarkdownWriter()
	titleCaser := cases.Title(language.English)

	w.Frontmatter("Rules", "Code smell rules shipped with ktsmell")
	w.GeneratedMarker()

	w.Header(1, "Rules")
	w.Paragraph(fmt.Sprintf("ktsmell ships %s in %d groups.", Bold(fmt.Sprintf("%d rules", len(rules))), len(grouped)))

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Description"},
		[][]string{
			{InlineCode("error"), "Critical issue that should be fixed"},
			{InlineCode("warning"), "Potential issue that should be reviewed"},
			{InlineCode("info"), "Informational feedback"},
			{InlineCode("hint"), "Suggestion for improvement"},
		},
	)

	w.Header(2, "Configuration")
	w.Paragraph("Rules can be configured in `ktsmell.yaml`:")
	w.CodeBlock("yaml", `lint:
  disabled:
    - LongParameterList            # disable rule
  severity:
    ProtectedMemberInFinalClass: error   # override severity
  rules:
    LongParameterList:
      threshold: 7                 # rule-specific option`)

	w.Header(2, "All Rules")
	var rows [][]string
	for _, r := range rules {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](/rules/%s#%s)", r.ID, r.Group, strings.ToLower(r.ID)),
			titleCaser.String(r.Group),
			InlineCode(r.DefaultSeverity.String()),
			r.Debt,
			cleanDescription(r.Description),
		})
	}
	w.Table([]string{"Rule", "Group", "Severity", "Debt", "Description"}, rows)

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// generateGroupPage writes the documentation of every rule in one group.
func generateGroupPage(outDir, group string, rules []core.RuleInfo) error {
	w := NewMarkdownWriter()
	title := cases.Title(language.English).String(group) + " Rules"

	w.Frontmatter(title, fmt.Sprintf("%s rules for ktsmell", group))
	w.GeneratedMarker()

	w.Header(1, title)
	if desc, ok := groupDescriptions[group]; ok {
		w.Paragraph(desc)
	}

	for _, rule := range rules {
		writeRuleDoc(w, rule)
	}

	return os.WriteFile(filepath.Join(outDir, group+".md"), w.Bytes(), 0600)
}

// groupRulesByGroup organizes rules by their Group field, sorted by ID.
func groupRulesByGroup(rules []core.RuleInfo) map[string][]core.RuleInfo {
	grouped := make(map[string][]core.RuleInfo)
	for _, r := range rules {
		grouped[r.Group] = append(grouped[r.Group], r)
	}
	for group := range grouped {
		sort.Slice(grouped[group], func(i, j int) bool {
			return grouped[group][i].ID < grouped[group][j].ID
		})
	}
	return grouped
}

// writeRuleDoc writes detailed documentation for a single rule.
func writeRuleDoc(w *MarkdownWriter, rule core.RuleInfo) {
	w.Line(fmt.Sprintf("## %s {#%s}", rule.ID, strings.ToLower(rule.ID)))
	w.Newline()

	w.Line(fmt.Sprintf("**Severity:** %s | **Debt:** %s | **Key:** %s",
		InlineCode(rule.DefaultSeverity.String()), rule.Debt, InlineCode(rule.Name)))
	w.Newline()

	w.Paragraph(rule.Description)
	w.Line("> " + rule.Message)
	w.Newline()

	if rule.Rationale != "" {
		w.Header(3, "Why This Matters")
		w.Paragraph(rule.Rationale)
	}

	if rule.BadExample != "" {
		w.Header(3, "Bad")
		w.CodeBlock("kotlin", rule.BadExample)
	}

	if rule.GoodExample != "" {
		w.Header(3, "Good")
		w.CodeBlock("kotlin", rule.GoodExample)
	}

	if rule.Fix != "" {
		w.Header(3, "How to Fix")
		w.Paragraph(rule.Fix)
	}

	if len(rule.ConfigKeys) > 0 {
		w.Header(3, "Configuration")
		w.Paragraph(fmt.Sprintf("This rule accepts the following configuration options: %s",
			InlineCode(strings.Join(rule.ConfigKeys, ", "))))
	}

	w.Line("---")
	w.Newline()
}
