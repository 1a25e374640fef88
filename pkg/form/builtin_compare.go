package form

import (
	"fmt"
	"unicode/utf8"
)

// textLength counts characters of the value's text form. nil has length 0.
func textLength(value any) int {
	text, _ := toText(value)
	return utf8.RuneCountInString(text)
}

// countCompare applies cmp to the element count of a collection value.
// An unset field ("" or nil) counts as zero files; other non-collections fail.
func countCompare(cmp func(n int, want float64) bool) func(any, []string) bool {
	return func(value any, args []string) bool {
		if value == nil || value == "" {
			return cmp(0, argNumber(args, 0))
		}
		n, ok := collectionLen(value)
		return ok && cmp(n, argNumber(args, 0))
	}
}

// comparisonRules hold the parameterized length and numeric rules. All bounds are inclusive.
func comparisonRules() map[string]Rule {
	return map[string]Rule{
		"stringMin": valueRule(func(value any, args []string) bool {
			return float64(textLength(value)) >= argNumber(args, 0)
		}, func(args []string) string {
			return fmt.Sprintf("this field has to contain at least %s characters.", arg(args, 0))
		}),
		"stringMax": valueRule(func(value any, args []string) bool {
			return float64(textLength(value)) <= argNumber(args, 0)
		}, func(args []string) string {
			return fmt.Sprintf("this field has to contain less than %s characters.", arg(args, 0))
		}),
		"stringLength": valueRule(func(value any, args []string) bool {
			text, ok := toText(value)
			return ok && float64(utf8.RuneCountInString(text)) == argNumber(args, 0)
		}, func(args []string) string {
			return fmt.Sprintf("this field has to be exactly %s characters.", arg(args, 0))
		}),

		"numberMin": valueRule(func(value any, args []string) bool {
			return toNumber(value) >= argNumber(args, 0)
		}, func(args []string) string {
			return fmt.Sprintf("this field has to contain at least %s.", arg(args, 0))
		}),
		"numberMax": valueRule(func(value any, args []string) bool {
			return toNumber(value) <= argNumber(args, 0)
		}, func(args []string) string {
			return fmt.Sprintf("this field has to contain less than %s.", arg(args, 0))
		}),
		"numberBetween": valueRule(func(value any, args []string) bool {
			n := toNumber(value)
			return n >= argNumber(args, 0) && n <= argNumber(args, 1)
		}, func(args []string) string {
			return fmt.Sprintf("this field must be between %s and %s.", arg(args, 0), arg(args, 1))
		}),
		"numberExact": valueRule(func(value any, args []string) bool {
			return toNumber(value) == argNumber(args, 0)
		}, func(args []string) string {
			return fmt.Sprintf("this field has to be exactly %s.", arg(args, 0))
		}),

		"filesLength": valueRule(countCompare(func(n int, want float64) bool {
			return float64(n) == want
		}), func(args []string) string {
			return fmt.Sprintf("this field should contain exactly %s files.", arg(args, 0))
		}),
		"filesMin": valueRule(countCompare(func(n int, want float64) bool {
			return float64(n) >= want
		}), func(args []string) string {
			return fmt.Sprintf("this field should contain at least %s files.", arg(args, 0))
		}),
		"filesMax": valueRule(countCompare(func(n int, want float64) bool {
			return float64(n) <= want
		}), func(args []string) string {
			return fmt.Sprintf("this field should contain less than %s files.", arg(args, 0))
		}),
	}
}

// siblingRule builds a cross-field rule comparing the field's value with the value
// of the sibling named by the first argument. The field's own value must be present.
func siblingRule(cmp func(value, other any) bool, message string) Rule {
	return Rule{
		Test: func(field *Field, args []string, form *Form) (bool, error) {
			name := arg(args, 0)
			sibling := form.lookup(name)
			if sibling == nil {
				return false, &MissingSiblingFieldError{Field: field.Name, Sibling: name}
			}
			return isTruthy(field.Value) && cmp(field.Value, sibling.Value), nil
		},
		Message: func(_ *Field, args []string, _ *Form) string {
			return fmt.Sprintf(message, arg(args, 0))
		},
	}
}

func crossFieldRules() map[string]Rule {
	return map[string]Rule{
		"exact": siblingRule(strictEqual, "this field should be the same as the %s field."),
		"different": siblingRule(func(value, other any) bool {
			return !strictEqual(value, other)
		}, "this field should be the different from the %s field."),
	}
}
