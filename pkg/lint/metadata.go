package lint

import (
	"strings"
	"sync"
)

// DefaultDocsBaseURL is the hosted rule documentation. Rule pages are laid
// out one per group with an anchor per rule, as written by scripts/gendocs.
const DefaultDocsBaseURL = "https://ktsmell.dev/docs/rules"

var (
	docsMu      sync.RWMutex
	docsBaseURL = DefaultDocsBaseURL
)

// BuildDocURL returns the documentation link for a rule: base/group#id for
// rules in the global registry, base/id otherwise.
func BuildDocURL(ruleID string) string {
	docsMu.RLock()
	base := docsBaseURL
	docsMu.RUnlock()

	anchor := strings.ToLower(ruleID)
	if info, ok := globalRegistry.Info(ruleID); ok && info.Group != "" {
		return base + "/" + info.Group + "#" + anchor
	}
	return base + "/" + anchor
}

// SetDocsBaseURL points documentation links at another site, for example a
// locally served copy of the generated docs.
func SetDocsBaseURL(url string) {
	docsMu.Lock()
	defer docsMu.Unlock()
	docsBaseURL = strings.TrimSuffix(url, "/")
}

// ResetDocsBaseURL restores DefaultDocsBaseURL.
func ResetDocsBaseURL() {
	docsMu.Lock()
	defer docsMu.Unlock()
	docsBaseURL = DefaultDocsBaseURL
}
