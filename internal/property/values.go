package property

import (
	"fmt"
	"slices"
)

// Values is a resolved (or partially supplied) data set keyed by property
// name.
type Values map[string]any

// Has reports whether name is set.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// String returns the named value as a string. Non-string scalars are
// formatted; unset values yield "".
func (v Values) String(name string) string {
	switch s := v[name].(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

// Bool returns the named value as a bool.
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// Strings returns the named list value.
func (v Values) Strings(name string) []string {
	s, _ := v[name].([]string)
	return s
}

// Mapping returns the named mapping value.
func (v Values) Mapping(name string) map[string]any {
	m, _ := v[name].(map[string]any)
	return m
}

// Nested returns the named list of mappings.
func (v Values) Nested(name string) []map[string]any {
	n, _ := v[name].([]map[string]any)
	return n
}

// Clone returns a copy of v. Lists are copied; mappings are shared.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		switch t := val.(type) {
		case []string:
			out[k] = slices.Clone(t)
		case []map[string]any:
			out[k] = slices.Clone(t)
		case []any:
			out[k] = slices.Clone(t)
		default:
			out[k] = val
		}
	}
	return out
}
