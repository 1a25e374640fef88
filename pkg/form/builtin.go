package form

import (
	"maps"
	"math"
	"strings"
)

// builtinRules assembles the default rule catalogue from the per-family tables.
func builtinRules() map[string]Rule {
	rules := make(map[string]Rule, 64)
	for _, family := range []map[string]Rule{
		presenceRules(),
		characterRules(),
		formatRules(),
		comparisonRules(),
		crossFieldRules(),
		typeRules(),
		membershipRules(),
		dateRules(),
	} {
		maps.Copy(rules, family)
	}
	return rules
}

// valueRule builds a rule whose predicate only looks at the field's own value.
func valueRule(test func(value any, args []string) bool, message func(args []string) string) Rule {
	return Rule{
		Test: func(field *Field, args []string, _ *Form) (bool, error) {
			return test(field.Value, args), nil
		},
		Message: func(_ *Field, args []string, _ *Form) string {
			return message(args)
		},
	}
}

// fixed returns a message func ignoring its arguments.
func fixed(message string) func([]string) string {
	return func([]string) string { return message }
}

// arg returns the i-th argument or "" when absent.
func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// argNumber coerces the i-th argument; a missing argument is NaN.
func argNumber(args []string, i int) float64 {
	if i >= len(args) {
		return math.NaN()
	}
	return toNumber(args[i])
}

func joinArgs(args []string) string {
	return strings.Join(args, ", ")
}
