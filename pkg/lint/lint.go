// Package lint provides static analysis for form schemas.
// It detects authoring mistakes without running any rule against a value.
package lint

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dlovans/formcheck/pkg/form"
)

// Issue represents a problem found during static analysis.
type Issue struct {
	Severity string `json:"severity"` // "error", "warning"
	Field    string `json:"field,omitempty"`
	Rule     string `json:"rule,omitempty"`
	Message  string `json:"message"`
}

// Result contains all issues found by the linter.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues"`
}

// arity bounds the argument count of parameterized builtins. max < 0 is unbounded.
type arity struct{ min, max int }

var arities = map[string]arity{
	"stringMin":          {1, 1},
	"stringMax":          {1, 1},
	"stringLength":       {1, 1},
	"numberMin":          {1, 1},
	"numberMax":          {1, 1},
	"numberExact":        {1, 1},
	"numberBetween":      {2, 2},
	"filesLength":        {1, 1},
	"filesMin":           {1, 1},
	"filesMax":           {1, 1},
	"exact":              {1, 1},
	"different":          {1, 1},
	"arrayContains":      {1, -1},
	"arrayDoesntContain": {1, -1},
	"dateAfter":          {1, 1},
	"dateBefore":         {1, 1},
	"dateExact":          {1, 1},
	"dateBetween":        {2, 2},
	"dateFormat":         {1, 1},
}

var (
	numericArgs = map[string]bool{
		"stringMin": true, "stringMax": true, "stringLength": true,
		"numberMin": true, "numberMax": true, "numberExact": true, "numberBetween": true,
		"filesLength": true, "filesMin": true, "filesMax": true,
	}
	dateArgs = map[string]bool{
		"dateAfter": true, "dateBefore": true, "dateExact": true, "dateBetween": true,
	}
	siblingArgs = map[string]bool{"exact": true, "different": true}
)

// Run parses a JSON or YAML schema document and lints it against the builtin rules.
func Run(text string) (*Result, error) {
	doc, err := form.ParseDocument([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return Check(doc.Schema, form.DefaultRegistry()), nil
}

// Check lints schema against registry. Rules the registry has but the linter has
// no argument table for are only checked for existence.
func Check(schema form.Schema, registry *form.Registry) *Result {
	result := &Result{
		Valid:  true,
		Issues: make([]Issue, 0),
	}

	defined := make(map[string]bool, len(schema))
	for _, def := range schema {
		if defined[def.Name] {
			result.addError(def.Name, "", fmt.Sprintf("field '%s' is declared more than once", def.Name))
		}
		defined[def.Name] = true
	}

	for _, def := range schema {
		seen := make(map[string]bool)
		for i, spec := range def.Rules {
			if spec.IsInline() {
				continue
			}
			name := spec.Name()

			// Check 1: unknown rules fail every validation of the field
			if !registry.Has(name) {
				result.addError(def.Name, name, fmt.Sprintf("unknown rule '%s'", name))
				continue
			}

			// Check 2: a repeated rule overwrites the earlier message
			if seen[name] {
				result.addWarning(def.Name, name, fmt.Sprintf(
					"rule '%s' appears more than once (position %d); only the last failure is reported", name, i))
			}
			seen[name] = true

			result.checkArgs(def.Name, spec, defined)
		}
	}

	return result
}

func (r *Result) checkArgs(field string, spec form.RuleSpec, defined map[string]bool) {
	name := spec.Name()
	args := spec.Args()

	// Check 3: argument count
	if a, ok := arities[name]; ok {
		if len(args) < a.min {
			r.addError(field, name, fmt.Sprintf("rule '%s' needs %d argument(s), got %d", name, a.min, len(args)))
			return
		}
		if a.max >= 0 && len(args) > a.max {
			r.addWarning(field, name, fmt.Sprintf("rule '%s' takes %d argument(s), extra ones are ignored", name, a.max))
		}
	} else if len(args) > 0 {
		r.addWarning(field, name, fmt.Sprintf("rule '%s' takes no arguments", name))
	}

	// Check 4: argument shape
	switch {
	case numericArgs[name]:
		for _, a := range args {
			if !isNumber(a) {
				r.addError(field, name, fmt.Sprintf("argument '%s' of rule '%s' is not a number", a, name))
			}
		}
		if name == "numberBetween" && len(args) == 2 && isNumber(args[0]) && isNumber(args[1]) {
			lo, _ := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
			hi, _ := strconv.ParseFloat(strings.TrimSpace(args[1]), 64)
			if lo > hi {
				r.addWarning(field, name, fmt.Sprintf("range %s..%s is empty", args[0], args[1]))
			}
		}

	case dateArgs[name]:
		for _, a := range args {
			if _, ok := form.ParseDate(a); !ok {
				r.addError(field, name, fmt.Sprintf("argument '%s' of rule '%s' is not a date", a, name))
			}
		}

	// Check 5: cross-field references
	case siblingArgs[name]:
		sibling := args[0]
		switch {
		case !defined[sibling]:
			r.addError(field, name, fmt.Sprintf("rule '%s' references undefined field '%s'", name, sibling))
		case sibling == field:
			r.addWarning(field, name, fmt.Sprintf("rule '%s' compares field '%s' with itself", name, field))
		}
	}
}

func isNumber(s string) bool {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil && !math.IsNaN(n)
}

func (r *Result) addError(field, rule, message string) {
	r.Valid = false
	r.Issues = append(r.Issues, Issue{
		Severity: "error",
		Field:    field,
		Rule:     rule,
		Message:  message,
	})
}

func (r *Result) addWarning(field, rule, message string) {
	r.Issues = append(r.Issues, Issue{
		Severity: "warning",
		Field:    field,
		Rule:     rule,
		Message:  message,
	})
}
