package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/agentx-labs/codebuilder/internal/builderr"
)

// Registry holds the component variants known to a build.
type Registry struct {
	variants map[string][]*Variant
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{variants: make(map[string][]*Variant)}
}

// Register adds a variant. Variants of one type are tried in registration
// order.
func (r *Registry) Register(v Variant) error {
	if v.Type == "" {
		return fmt.Errorf("registering variant: empty type")
	}
	if v.Component == nil {
		return fmt.Errorf("registering %s: nil component", v.Type)
	}
	if v.Constraint != "" {
		c, err := semver.NewConstraint(v.Constraint)
		if err != nil {
			return fmt.Errorf("registering %s: parsing constraint %q: %w", v.Type, v.Constraint, err)
		}
		v.constraint = c
	}
	r.variants[v.Type] = append(r.variants[v.Type], &v)
	return nil
}

// MustRegister is like Register but panics on error. Meant for static tables.
func (r *Registry) MustRegister(vs ...Variant) {
	for _, v := range vs {
		if err := r.Register(v); err != nil {
			panic(err)
		}
	}
}

// Resolve returns the variant of typ for coreVersion. An empty coreVersion
// selects the first variant. Unknown types and versions no variant accepts
// are user input errors.
func (r *Registry) Resolve(typ, coreVersion string) (*Variant, error) {
	variants, ok := r.variants[typ]
	if !ok {
		return nil, &builderr.InvalidInputError{Subject: "component type", Value: typ, Message: "not registered"}
	}
	if coreVersion == "" {
		return variants[0], nil
	}

	ver, err := ParseCoreVersion(coreVersion)
	if err != nil {
		return nil, &builderr.InvalidInputError{Subject: "core version", Value: coreVersion, Message: err.Error()}
	}
	for _, v := range variants {
		if v.constraint == nil || v.constraint.Check(ver) {
			return v, nil
		}
	}
	return nil, &builderr.InvalidInputError{
		Subject: "component type",
		Value:   typ,
		Message: fmt.Sprintf("no variant for core version %s", coreVersion),
	}
}

// Types returns the registered type names in lexical order.
func (r *Registry) Types() []string {
	names := make([]string, 0, len(r.variants))
	for name := range r.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Summaries describes every registered type, sorted by name.
func (r *Registry) Summaries() []TypeSummary {
	var out []TypeSummary
	for _, name := range r.Types() {
		variants := r.variants[name]
		first := variants[0]
		s := TypeSummary{
			Type:     name,
			Handling: first.Handling.String(),
			Assembly: first.Assembly(),
		}
		for _, v := range variants {
			if v.Constraint != "" {
				s.Constraints = append(s.Constraints, v.Constraint)
			}
		}
		for _, d := range first.Component.Schema().Definitions() {
			if !d.Internal {
				s.Properties = append(s.Properties, d.Name)
			}
		}
		out = append(out, s)
	}
	return out
}

// ParseCoreVersion parses a target core version such as "7.x", "8.x" or
// "10.2". Wildcard components are dropped before parsing.
func ParseCoreVersion(s string) (*semver.Version, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	parts := strings.Split(s, ".")
	for len(parts) > 1 && (parts[len(parts)-1] == "x" || parts[len(parts)-1] == "*") {
		parts = parts[:len(parts)-1]
	}
	return semver.NewVersion(strings.Join(parts, "."))
}

// MajorVersion returns the major version of a core version string, or 0 if
// it does not parse.
func MajorVersion(s string) int {
	v, err := ParseCoreVersion(s)
	if err != nil {
		return 0
	}
	return int(v.Major())
}
