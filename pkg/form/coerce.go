package form

import (
	"math"
	"mime/multipart"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// isTruthy determines if a value counts as present.
// nil, false, 0, NaN, "" and empty collections are falsy. Everything else is truthy.
func isTruthy(value any) bool {
	if value == nil {
		return false
	}

	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0 && !math.IsNaN(v)
	case float32:
		return v != 0 && !math.IsNaN(float64(v))
	case time.Time:
		return !v.IsZero()
	case *multipart.FileHeader:
		return v != nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}

// toNumber coerces a value to float64. Unconvertible values yield NaN, which
// makes every ordered comparison false.
func toNumber(value any) float64 {
	switch v := value.(type) {
	case nil:
		return math.NaN()
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		if isLooseInfinity(s) {
			return math.NaN()
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return n
	}

	if n, ok := toFloat(value); ok {
		return n
	}
	return math.NaN()
}

// isLooseInfinity reports spellings of infinity ParseFloat accepts but a form
// number does not. Only "Infinity", "+Infinity" and "-Infinity" are numbers.
func isLooseInfinity(s string) bool {
	if !strings.Contains(strings.ToLower(s), "inf") {
		return false
	}
	switch s {
	case "Infinity", "+Infinity", "-Infinity":
		return false
	}
	return true
}

// toFloat converts numeric kinds to float64. Strings are not converted.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// toText renders a value the way a form input would display it.
// ok is false for nil, which no text rule accepts.
func toText(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case time.Time:
		return v.Format(time.RFC3339), true
	case *multipart.FileHeader:
		if v == nil {
			return "", false
		}
		return v.Filename, true
	}

	if n, ok := toFloat(value); ok {
		return strconv.FormatFloat(n, 'f', -1, 64), true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i], _ = toText(rv.Index(i).Interface())
		}
		return strings.Join(parts, ","), true
	case reflect.Pointer:
		if rv.IsNil() {
			return "", false
		}
		return toText(rv.Elem().Interface())
	}

	if s, ok := value.(interface{ String() string }); ok {
		return s.String(), true
	}
	return "", false
}

// strictEqual compares two field values without string coercion.
// Numbers of different Go types compare by value.
func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	aNum, aOk := toFloat(a)
	bNum, bOk := toFloat(b)
	if aOk && bOk {
		return aNum == bNum
	}
	if aOk != bOk {
		return false
	}

	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		return ok && at.Equal(bt)
	}

	return reflect.DeepEqual(a, b)
}

// collectionLen returns the element count of slice and array values.
func collectionLen(value any) (int, bool) {
	if value == nil {
		return 0, false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len(), true
	default:
		return 0, false
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	time.RFC1123,
	time.RFC1123Z,
}

// ParseDate parses a date value the way the date rules do: a non-zero time.Time,
// or a string in one of the accepted layouts.
func ParseDate(v any) (time.Time, bool) {
	return parseDate(v)
}

func parseDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		return d, !d.IsZero()
	case *time.Time:
		if d == nil {
			return time.Time{}, false
		}
		return *d, !d.IsZero()
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
