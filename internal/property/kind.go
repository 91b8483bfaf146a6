package property

import (
	"fmt"
	"sort"
)

// Kind is the value type of a property.
type Kind int

// Property kinds.
const (
	KindScalar  Kind = iota // string, bool, int or float
	KindBoolean             // bool
	KindString              // string
	KindStrings             // array of scalars, normalized to []string
	KindMapping             // map[string]any
	KindNested              // []map[string]any handed to child components
)

var kindNames = map[Kind]string{
	KindScalar:  "scalar",
	KindBoolean: "boolean",
	KindString:  "string",
	KindStrings: "array",
	KindMapping: "mapping",
	KindNested:  "nested",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsArray reports whether values of this kind are lists.
func (k Kind) IsArray() bool {
	return k == KindStrings || k == KindNested
}

// normalize converts v into the canonical Go representation for k. The
// returned message is empty on success.
func normalize(k Kind, v any) (any, string) {
	switch k {
	case KindScalar:
		switch s := v.(type) {
		case string, bool, int, int64, float64:
			return s, ""
		case int32:
			return int(s), ""
		case uint64:
			return int(s), ""
		}
		return nil, fmt.Sprintf("expected a scalar, got %T", v)

	case KindBoolean:
		if b, ok := v.(bool); ok {
			return b, ""
		}
		return nil, fmt.Sprintf("expected a boolean, got %T", v)

	case KindString:
		if s, ok := v.(string); ok {
			return s, ""
		}
		return nil, fmt.Sprintf("expected a string, got %T", v)

	case KindStrings:
		switch list := v.(type) {
		case []string:
			out := make([]string, len(list))
			copy(out, list)
			return out, ""
		case []any:
			out := make([]string, 0, len(list))
			for i, item := range list {
				switch s := item.(type) {
				case string:
					out = append(out, s)
				case bool, int, int64, float64:
					out = append(out, fmt.Sprint(s))
				default:
					return nil, fmt.Sprintf("item %d: expected a scalar, got %T", i, item)
				}
			}
			return out, ""
		case string:
			// A single scalar is accepted as a one-item list.
			return []string{list}, ""
		}
		return nil, fmt.Sprintf("expected a list, got %T", v)

	case KindMapping:
		if m, ok := v.(map[string]any); ok {
			return m, ""
		}
		return nil, fmt.Sprintf("expected a mapping, got %T", v)

	case KindNested:
		switch list := v.(type) {
		case []map[string]any:
			out := make([]map[string]any, len(list))
			copy(out, list)
			return out, ""
		case []any:
			out := make([]map[string]any, 0, len(list))
			for i, item := range list {
				m, ok := item.(map[string]any)
				if !ok {
					return nil, fmt.Sprintf("item %d: expected a mapping, got %T", i, item)
				}
				out = append(out, m)
			}
			return out, ""
		}
		return nil, fmt.Sprintf("expected a list of mappings, got %T", v)
	}
	return nil, fmt.Sprintf("unknown kind %s", k)
}

// sortedKeys returns the keys of m in lexical order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
