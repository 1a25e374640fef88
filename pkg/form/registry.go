package form

import (
	"maps"
	"slices"
	"sync"
)

// TestFunc reports whether field satisfies a rule. The error return is reserved for
// schema authoring faults such as a cross-field rule naming a missing sibling;
// an invalid input is always (false, nil).
//
// Test functions must be deterministic and must not mutate any field. They run while
// the form is locked, so they read siblings through form.Field and never call
// locking Form methods.
type TestFunc func(field *Field, args []string, form *Form) (bool, error)

// MessageFunc renders the error message for a failed rule.
type MessageFunc func(field *Field, args []string, form *Form) string

// Rule is a named, pure predicate and message pair.
type Rule struct {
	Test    TestFunc
	Message MessageFunc
}

// Registry is an immutable catalogue of rules addressed by name.
type Registry struct {
	rules map[string]Rule
}

// NewRegistry builds a registry from rules. The map is copied.
func NewRegistry(rules map[string]Rule) *Registry {
	return &Registry{rules: maps.Clone(rules)}
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return NewRegistry(builtinRules())
})

// DefaultRegistry returns the registry holding every builtin rule.
func DefaultRegistry() *Registry {
	return defaultRegistry()
}

// Lookup returns the rule registered under name.
func (r *Registry) Lookup(name string) (Rule, error) {
	rule, ok := r.rules[name]
	if !ok {
		return Rule{}, &UnknownRuleError{Name: name}
	}
	return rule, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.rules[name]
	return ok
}

// Names returns the registered rule names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.rules))
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return len(r.rules)
}

// Extend returns a new registry containing r's rules plus custom ones.
// Custom rules replace builtins with the same name. r is left untouched.
func (r *Registry) Extend(custom map[string]Rule) *Registry {
	merged := maps.Clone(r.rules)
	maps.Copy(merged, custom)
	return &Registry{rules: merged}
}
