package lint

import "github.com/leapstack-labs/ktsmell/pkg/core"

// Severity indicates the importance of a finding.
type Severity = core.Severity

// Severity levels, re-exported so rule packages only need to import lint.
const (
	SeverityError   = core.SeverityError
	SeverityWarning = core.SeverityWarning
	SeverityInfo    = core.SeverityInfo
	SeverityHint    = core.SeverityHint
)

// ParseSeverity converts a string to a Severity value.
func ParseSeverity(s string) (Severity, bool) {
	return core.ParseSeverity(s)
}
