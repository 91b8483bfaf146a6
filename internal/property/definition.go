// Package property describes component configuration: the schema of each
// configurable value and the resolver that fills in defaults in dependency
// order.
package property

import (
	"regexp"
	"strings"

	"github.com/agentx-labs/codebuilder/internal/builderr"
	"github.com/agentx-labs/codebuilder/internal/lookup"
)

// Definition describes one configurable value of a component.
type Definition struct {
	Name     string
	Label    string
	Kind     Kind
	Required bool

	// Internal properties are computed or set by requesting components and
	// are never accepted from human input.
	Internal bool

	// Primary properties make up the identity of a component instance.
	Primary bool

	Default    *Default
	Options    OptionsFunc
	Validator  *Validator
	Processing *Processing
}

// DisplayLabel returns the label, falling back to the name.
func (d *Definition) DisplayLabel() string {
	if d.Label != "" {
		return d.Label
	}
	return d.Name
}

// DefaultFunc computes a default value from already resolved properties.
// Returning nil leaves the property unset.
type DefaultFunc func(s *Scope) (any, error)

// Default is either a literal value or a function of other properties.
type Default struct {
	literal any
	fn      DefaultFunc
	deps    []string
}

// Literal returns a Default that always yields v.
func Literal(v any) *Default {
	return &Default{literal: v}
}

// Computed returns a Default evaluated by fn. deps lists every property path
// fn reads; see Scope.Get for the path grammar.
func Computed(fn DefaultFunc, deps ...string) *Default {
	return &Default{fn: fn, deps: deps}
}

// Dependencies returns the property paths the default reads.
func (d *Default) Dependencies() []string {
	return d.deps
}

// OptionsFunc lists the allowed values of a property, in display order.
type OptionsFunc func(svc lookup.Service) ([]lookup.Option, error)

// CatalogOptions returns an OptionsFunc that lists the ids of a lookup kind.
func CatalogOptions(kind lookup.Kind) OptionsFunc {
	return func(svc lookup.Service) ([]lookup.Option, error) {
		if svc == nil {
			return nil, nil
		}
		return svc.TypeOptions(kind)
	}
}

// Validator checks a resolved value. Message may contain "@label", which is
// replaced with the property label.
type Validator struct {
	Check   func(v any) bool
	Message string
}

// Pattern returns a Validator that matches string values against re.
func Pattern(re *regexp.Regexp, message string) *Validator {
	return &Validator{
		Check: func(v any) bool {
			s, ok := v.(string)
			return ok && re.MatchString(s)
		},
		Message: message,
	}
}

func (v *Validator) message(d *Definition) string {
	return strings.ReplaceAll(v.Message, "@label", d.DisplayLabel())
}

// ProcessFunc runs once a property's value is known. It may overwrite the
// property itself or any property listed in Processing.Writes via s.Set.
type ProcessFunc func(s *Scope, value any) error

// Processing is a post-resolution hook scoped to an explicit set of
// writable sibling properties.
type Processing struct {
	Writes []string
	Fn     ProcessFunc
}

// Schema is the ordered collection of definitions of one component type.
type Schema struct {
	defs  []*Definition
	index map[string]int
}

// NewSchema builds a schema. Later definitions with a name already present
// replace the earlier one in place.
func NewSchema(defs ...*Definition) *Schema {
	s := &Schema{index: make(map[string]int, len(defs))}
	for _, d := range defs {
		s.put(d)
	}
	return s
}

func (s *Schema) put(d *Definition) {
	if i, ok := s.index[d.Name]; ok {
		s.defs[i] = d
		return
	}
	s.index[d.Name] = len(s.defs)
	s.defs = append(s.defs, d)
}

// Extend returns a copy of s with defs added or replaced.
func (s *Schema) Extend(defs ...*Definition) *Schema {
	out := NewSchema(s.defs...)
	for _, d := range defs {
		out.put(d)
	}
	return out
}

// Override returns a copy of s where the named definition is copied and
// passed to fn for modification. Unknown names are ignored.
func (s *Schema) Override(name string, fn func(d *Definition)) *Schema {
	out := NewSchema(s.defs...)
	if i, ok := out.index[name]; ok {
		cp := *out.defs[i]
		fn(&cp)
		out.defs[i] = &cp
	}
	return out
}

// Definitions returns the definitions in declaration order.
func (s *Schema) Definitions() []*Definition {
	return s.defs
}

// Get returns the named definition.
func (s *Schema) Get(name string) (*Definition, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.defs[i], true
}

// Primary returns the names of the primary properties in declaration order.
func (s *Schema) Primary() []string {
	var names []string
	for _, d := range s.defs {
		if d.Primary {
			names = append(names, d.Name)
		}
	}
	return names
}

// check verifies the schema is well formed: dependency paths parse and name
// known properties, and no two processing hooks write the same target.
func (s *Schema) check() error {
	writers := make(map[string]string)
	for _, d := range s.defs {
		if d.Name == "" {
			return builderr.Definitionf("property with empty name")
		}
		if d.Default != nil {
			for _, dep := range d.Default.deps {
				ref, err := parsePath(dep)
				if err != nil {
					return builderr.Definitionf("property %q: %v", d.Name, err)
				}
				if ref.local() {
					if _, ok := s.index[ref.name]; !ok {
						return builderr.Definitionf("property %q depends on unknown property %q", d.Name, ref.name)
					}
				}
			}
		}
		if d.Processing == nil {
			continue
		}
		for _, target := range d.Processing.Writes {
			if _, ok := s.index[target]; !ok {
				return builderr.Definitionf("property %q processing writes unknown property %q", d.Name, target)
			}
			if other, ok := writers[target]; ok {
				return builderr.Definitionf("processing of %q and %q both write %q", other, d.Name, target)
			}
			writers[target] = d.Name
		}
	}
	return nil
}
