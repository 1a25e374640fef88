package form

import (
	"strconv"
	"strings"
)

// RuleSpec is one entry of a field's rule list: either a reference to a registry
// rule with its arguments, or an inline rule supplied by the field owner.
type RuleSpec struct {
	name   string
	args   []string
	inline *Rule
}

// Named references a registry rule.
func Named(name string, args ...string) RuleSpec {
	return RuleSpec{name: name, args: args}
}

// Inline wraps a rule that bypasses the registry.
func Inline(rule Rule) RuleSpec {
	return RuleSpec{inline: &rule}
}

// InlineFunc builds an inline rule from a value predicate and a fixed message.
func InlineFunc(test func(value any) bool, message string) RuleSpec {
	return Inline(Rule{
		Test: func(field *Field, _ []string, _ *Form) (bool, error) {
			return test(field.Value), nil
		},
		Message: func(*Field, []string, *Form) string { return message },
	})
}

// ParseSpec parses "name" or "name:arg1,arg2". The name ends at the first colon.
// Arguments cannot contain commas.
func ParseSpec(tag string) RuleSpec {
	name, rawArgs, found := strings.Cut(tag, ":")
	if !found {
		return RuleSpec{name: name}
	}
	return RuleSpec{name: name, args: strings.Split(rawArgs, ",")}
}

// Specs parses several string tags at once.
func Specs(tags ...string) []RuleSpec {
	specs := make([]RuleSpec, len(tags))
	for i, tag := range tags {
		specs[i] = ParseSpec(tag)
	}
	return specs
}

// Name returns the registry name, or "" for inline rules.
func (s RuleSpec) Name() string { return s.name }

// Args returns a copy of the parsed arguments.
func (s RuleSpec) Args() []string {
	return append([]string(nil), s.args...)
}

// IsInline reports whether s carries its own rule.
func (s RuleSpec) IsInline() bool { return s.inline != nil }

// String renders s back to its tag form. Inline rules render as "<inline>".
func (s RuleSpec) String() string {
	if s.inline != nil {
		return "<inline>"
	}
	if s.args == nil {
		return s.name
	}
	return s.name + ":" + strings.Join(s.args, ",")
}

// resolvedRule is a spec bound to its rule, arguments and error key.
type resolvedRule struct {
	Rule
	args []string
	key  string
}

// resolve binds a spec to a rule from the registry. index is the spec's position in
// the field's rule list and keys inline rules, which have no name.
func (r *Registry) resolve(spec RuleSpec, index int) (resolvedRule, error) {
	if spec.inline != nil {
		return resolvedRule{Rule: *spec.inline, args: []string{}, key: strconv.Itoa(index)}, nil
	}

	rule, err := r.Lookup(spec.name)
	if err != nil {
		return resolvedRule{}, err
	}

	args := spec.args
	if args == nil {
		args = []string{}
	}
	return resolvedRule{Rule: rule, args: args, key: spec.name}, nil
}
