package formdata

import (
	"fmt"
	"reflect"
	"strings"
)

var truthyTokens = map[string]struct{}{
	"1":    {},
	"t":    {},
	"true": {},
	"y":    {},
	"yes":  {},
	"on":   {},
}

// Truthy reports whether s is one of 1, t, true, y, yes, on (any case).
func Truthy(s string) bool {
	_, ok := truthyTokens[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// Strings flattens a submitted value into its string forms. Slices and arrays
// contribute one entry per element; nil contributes none.
func Strings(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return []string{val}
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, Scalar(item))
		}
		return out
	case fmt.Stringer:
		return []string{val.String()}
	}

	rv := reflect.ValueOf(v)
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out = append(out, Scalar(rv.Index(i).Interface()))
		}
		return out
	}
	return []string{Scalar(v)}
}

// First returns the first string form of v, or "" when v holds nothing.
func First(v any) string {
	values := Strings(v)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Scalar formats a single value for an attribute. Nil becomes "".
func Scalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// Contains reports whether any submitted string equals want.
func Contains(submitted []string, want string) bool {
	for _, s := range submitted {
		if s == want {
			return true
		}
	}
	return false
}

// Checked decides a checkbox state: a submitted value matches the declared one
// exactly, or both are truthy tokens.
func Checked(declared string, submitted []string) bool {
	for _, s := range submitted {
		if s == declared {
			return true
		}
		if Truthy(s) && Truthy(declared) {
			return true
		}
	}
	return false
}
