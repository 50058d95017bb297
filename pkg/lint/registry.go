package lint

import (
	"sort"
	"sync"

	"github.com/leapstack-labs/ktsmell/pkg/core"
)

// globalRegistry is the single global registry for all lint rules.
var globalRegistry = NewRegistry()

// Registry stores rule factories for discovery.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory       // keyed by ID
	infos     map[string]core.RuleInfo // metadata from a default-configured instance
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		infos:     make(map[string]core.RuleInfo),
	}
}

// DefaultRegistry returns the registry rule packages register into.
func DefaultRegistry() *Registry {
	return globalRegistry
}

// Register adds a rule factory, keyed by the ID of the rule it builds.
// A later registration with the same ID replaces the earlier one.
func (r *Registry) Register(f Factory) {
	info := GetRuleInfo(f(nil))
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[info.ID] = f
	r.infos[info.ID] = info
}

// IDs returns the registered rule IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Factory returns the factory registered for id.
func (r *Registry) Factory(id string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[id]
	return f, ok
}

// Infos returns metadata for every registered rule, sorted by ID.
func (r *Registry) Infos() []core.RuleInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]core.RuleInfo, 0, len(r.infos))
	for _, info := range r.infos {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// Info returns metadata for one rule.
func (r *Registry) Info(id string) (core.RuleInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.infos[id]
	return info, ok
}

// Count returns the number of registered rules.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}

// Clear removes all registered rules.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories = make(map[string]Factory)
	r.infos = make(map[string]core.RuleInfo)
}

// Register adds a rule factory to the global registry.
// Call this from init() functions in rule packages.
func Register(f Factory) {
	globalRegistry.Register(f)
}

// AllRules returns metadata for all registered rules, sorted by ID.
func AllRules() []core.RuleInfo {
	return globalRegistry.Infos()
}

// GetByID returns a rule's metadata by its ID.
func GetByID(id string) (core.RuleInfo, bool) {
	return globalRegistry.Info(id)
}

// GetByGroup returns all rules in a specific group.
func GetByGroup(group string) []core.RuleInfo {
	var rules []core.RuleInfo
	for _, info := range globalRegistry.Infos() {
		if info.Group == group {
			rules = append(rules, info)
		}
	}
	return rules
}

// Count returns the number of registered rules.
func Count() int {
	return globalRegistry.Count()
}

// Clear removes all registered rules. Used for testing.
func Clear() {
	globalRegistry.Clear()
}
