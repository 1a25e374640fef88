package form

import (
	"fmt"
	"mime/multipart"
	"reflect"
	"slices"
	"time"
)

func typeRules() map[string]Rule {
	return map[string]Rule{
		"boolean": valueRule(func(value any, _ []string) bool {
			_, ok := value.(bool)
			return ok
		}, fixed("this field has to be a boolean.")),
		"array": valueRule(func(value any, _ []string) bool {
			if value == nil {
				return false
			}
			kind := reflect.TypeOf(value).Kind()
			return kind == reflect.Slice || kind == reflect.Array
		}, fixed("this field has to be an array.")),
		"true": valueRule(func(value any, _ []string) bool {
			return value == true
		}, fixed("this field has to be true.")),
		"false": valueRule(func(value any, _ []string) bool {
			return value == false
		}, fixed("this field has to be false.")),
		"file": valueRule(func(value any, _ []string) bool {
			fh, ok := value.(*multipart.FileHeader)
			return ok && fh != nil
		}, fixed("a file has to be chosen for this field.")),
		"files": valueRule(func(value any, _ []string) bool {
			_, ok := value.([]*multipart.FileHeader)
			return ok
		}, fixed("this field should contain at least one file.")),
	}
}

// scalarText is the text form of strings, numbers and booleans. Other values
// never match a membership list.
func scalarText(value any) (string, bool) {
	switch value.(type) {
	case string, bool:
		return toText(value)
	}
	if _, ok := toFloat(value); ok {
		return toText(value)
	}
	return "", false
}

func contains(value any, list []string) bool {
	text, ok := scalarText(value)
	return ok && slices.Contains(list, text)
}

func membershipRules() map[string]Rule {
	return map[string]Rule{
		"arrayContains": valueRule(func(value any, args []string) bool {
			return contains(value, args)
		}, func(args []string) string {
			return fmt.Sprintf("this field has to contain any of these %s.", joinArgs(args))
		}),
		"arrayDoesntContain": valueRule(func(value any, args []string) bool {
			return !contains(value, args)
		}, func(args []string) string {
			return fmt.Sprintf("this field cannot contain any of these %s.", joinArgs(args))
		}),
	}
}

// dateCompare parses the value and the first n arguments as dates and applies cmp.
// Any unparseable operand fails the rule.
func dateCompare(n int, cmp func(value time.Time, bounds []time.Time) bool) func(any, []string) bool {
	return func(value any, args []string) bool {
		v, ok := parseDate(value)
		if !ok || len(args) < n {
			return false
		}
		bounds := make([]time.Time, n)
		for i := range bounds {
			if bounds[i], ok = parseDate(args[i]); !ok {
				return false
			}
		}
		return cmp(v, bounds)
	}
}

// dateRules include the bounded date checks. dateBetween is inclusive;
// dateFormat takes a Go reference layout such as 2006-01-02.
func dateRules() map[string]Rule {
	return map[string]Rule{
		"date": valueRule(func(value any, _ []string) bool {
			_, ok := parseDate(value)
			return ok
		}, fixed("this field has to be a valid date.")),
		"dateAfter": valueRule(dateCompare(1, func(v time.Time, b []time.Time) bool {
			return v.After(b[0])
		}), func(args []string) string {
			return fmt.Sprintf("this field has to be a date after %s.", arg(args, 0))
		}),
		"dateBefore": valueRule(dateCompare(1, func(v time.Time, b []time.Time) bool {
			return v.Before(b[0])
		}), func(args []string) string {
			return fmt.Sprintf("this field has to be a date before %s.", arg(args, 0))
		}),
		"dateBetween": valueRule(dateCompare(2, func(v time.Time, b []time.Time) bool {
			return !v.Before(b[0]) && !v.After(b[1])
		}), func(args []string) string {
			return fmt.Sprintf("this field has to be a date between %s and %s.", arg(args, 0), arg(args, 1))
		}),
		"dateExact": valueRule(dateCompare(1, func(v time.Time, b []time.Time) bool {
			return v.Equal(b[0])
		}), func(args []string) string {
			return fmt.Sprintf("this field has to be exactly %s.", arg(args, 0))
		}),
		"dateFormat": valueRule(func(value any, args []string) bool {
			text, ok := value.(string)
			if !ok || len(args) == 0 || args[0] == "" {
				return false
			}
			_, err := time.Parse(args[0], text)
			return err == nil
		}, func(args []string) string {
			return fmt.Sprintf("this field has to be a date in the format %s.", arg(args, 0))
		}),
	}
}
