package registry

import (
	"errors"
	"testing"

	"github.com/agentx-labs/codebuilder/internal/builderr"
	"github.com/agentx-labs/codebuilder/internal/component"
	"github.com/agentx-labs/codebuilder/internal/property"
)

type stub struct {
	component.Base
	name string
}

func (s stub) Schema() *property.Schema {
	return property.NewSchema(
		&property.Definition{Name: "filename", Kind: property.KindString, Primary: true},
		&property.Definition{Name: "hidden", Kind: property.KindString, Internal: true},
	)
}

type stubFile struct{ stub }

func (stubFile) Assemble(property.Values, []component.Fragment) ([]component.Artifact, error) {
	return nil, nil
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r := New()
	r.MustRegister(
		Variant{Type: "Info", Constraint: "< 8", Component: stubFile{stub{name: "info7"}}},
		Variant{Type: "Info", Constraint: ">= 8", Component: stubFile{stub{name: "info8"}}},
		Variant{Type: "Plugin", Handling: component.Repeatable, Component: stub{name: "plugin"}},
	)
	return r
}

func TestResolveSelectsVariantByCoreVersion(t *testing.T) {
	r := testRegistry(t)

	tests := []struct {
		version string
		want    string
	}{
		{"7.x", "info7"},
		{"6.x", "info7"},
		{"8.x", "info8"},
		{"10.2", "info8"},
		{"", "info7"},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			v, err := r.Resolve("Info", tt.version)
			if err != nil {
				t.Fatalf("Resolve(Info, %q): %v", tt.version, err)
			}
			if got := v.Component.(stubFile).name; got != tt.want {
				t.Errorf("Resolve(Info, %q) = %s, want %s", tt.version, got, tt.want)
			}
		})
	}
}

func TestResolveUnknownType(t *testing.T) {
	r := testRegistry(t)

	_, err := r.Resolve("Widget", "8.x")
	var inv *builderr.InvalidInputError
	if !errors.As(err, &inv) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}
	if inv.Value != "Widget" {
		t.Errorf("Value = %q, want Widget", inv.Value)
	}
}

func TestResolveBadCoreVersion(t *testing.T) {
	r := testRegistry(t)
	if _, err := r.Resolve("Info", "latest"); !builderr.IsUserInput(err) {
		t.Errorf("expected user input error, got %v", err)
	}
}

func TestResolveNoMatchingVariant(t *testing.T) {
	r := New()
	r.MustRegister(Variant{Type: "RouterItem", Constraint: "< 8", Component: stub{}})

	if _, err := r.Resolve("RouterItem", "9.x"); !builderr.IsUserInput(err) {
		t.Errorf("expected user input error, got %v", err)
	}
}

func TestRegisterRejectsBadConstraint(t *testing.T) {
	r := New()
	if err := r.Register(Variant{Type: "Info", Constraint: "not a constraint", Component: stub{}}); err == nil {
		t.Error("expected error for invalid constraint")
	}
	if err := r.Register(Variant{Type: "Info"}); err == nil {
		t.Error("expected error for nil component")
	}
}

func TestSummaries(t *testing.T) {
	r := testRegistry(t)
	sums := r.Summaries()

	if len(sums) != 2 {
		t.Fatalf("got %d summaries, want 2", len(sums))
	}
	info := sums[0]
	if info.Type != "Info" || !info.Assembly || info.Handling != "singleton" {
		t.Errorf("Info summary = %+v", info)
	}
	if len(info.Constraints) != 2 {
		t.Errorf("Info constraints = %v", info.Constraints)
	}
	if len(info.Properties) != 1 || info.Properties[0] != "filename" {
		t.Errorf("Info properties = %v, want only public ones", info.Properties)
	}
	if sums[1].Handling != "repeatable" || sums[1].Assembly {
		t.Errorf("Plugin summary = %+v", sums[1])
	}
}

func TestMajorVersion(t *testing.T) {
	for in, want := range map[string]int{"7.x": 7, "8.x": 8, "v10.1": 10, "junk": 0} {
		if got := MajorVersion(in); got != want {
			t.Errorf("MajorVersion(%q) = %d, want %d", in, got, want)
		}
	}
}
