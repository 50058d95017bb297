package output

// LintSummary aggregates the findings of a lint run.
type LintSummary struct {
	FilesAnalyzed   int `json:"files_analyzed"`
	FilesWithIssues int `json:"files_with_issues"`
	TotalIssues     int `json:"total_issues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Info            int `json:"info"`
	Hints           int `json:"hints"`
	ParseErrors     int `json:"parse_errors"`
	DebtMinutes     int `json:"debt_minutes"`
}

// LintDiagnostic is one finding in JSON output.
type LintDiagnostic struct {
	RuleID           string `json:"rule_id"`
	Severity         string `json:"severity"`
	Message          string `json:"message"`
	Entity           string `json:"entity"`
	Signature        string `json:"signature,omitempty"`
	Line             int    `json:"line"`
	Column           int    `json:"column"`
	Debt             string `json:"debt"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}

// LintFileResult groups the findings of one file.
type LintFileResult struct {
	Path        string           `json:"path"`
	ParseError  string           `json:"parse_error,omitempty"`
	Diagnostics []LintDiagnostic `json:"diagnostics"`
}

// LintOutput is the JSON document written by `ktsmell lint --format json`.
type LintOutput struct {
	RunID   string           `json:"run_id,omitempty"`
	Summary LintSummary      `json:"summary"`
	Files   []LintFileResult `json:"files"`
}

// SonarReport is the generic external issue format understood by SonarQube.
type SonarReport struct {
	Issues []SonarIssue `json:"issues"`
}

// SonarIssue is one external issue.
type SonarIssue struct {
	EngineID        string        `json:"engineId"`
	RuleID          string        `json:"ruleId"`
	Severity        string        `json:"severity"`
	Type            string        `json:"type"`
	PrimaryLocation SonarLocation `json:"primaryLocation"`
	EffortMinutes   int           `json:"effortMinutes,omitempty"`
}

// SonarLocation points an issue at a file position.
type SonarLocation struct {
	Message   string         `json:"message"`
	FilePath  string         `json:"filePath"`
	TextRange SonarTextRange `json:"textRange"`
}

// SonarTextRange uses 1-based lines and 0-based columns.
type SonarTextRange struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// SonarSeverity maps a ktsmell severity name to a Sonar severity.
func SonarSeverity(severity string) string {
	switch severity {
	case "error":
		return "CRITICAL"
	case "warning":
		return "MAJOR"
	case "info":
		return "MINOR"
	default:
		return "INFO"
	}
}
