package registry

import (
	"github.com/Masterminds/semver/v3"

	"github.com/agentx-labs/codebuilder/internal/component"
)

// Variant is one registered implementation of a component type.
type Variant struct {
	Type string
	// Constraint limits the variant to matching core versions, e.g. "< 8".
	// Empty means any version.
	Constraint string
	Handling   component.Handling
	Component  component.Component

	constraint *semver.Constraints
}

// Assembly reports whether the variant produces output artifacts.
func (v *Variant) Assembly() bool {
	_, ok := v.Component.(component.Assembler)
	return ok
}

// TypeSummary describes a registered type for listings.
type TypeSummary struct {
	Type        string   `json:"type"`
	Handling    string   `json:"handling"`
	Assembly    bool     `json:"assembly"`
	Constraints []string `json:"constraints,omitempty"`
	Properties  []string `json:"properties"`
}
