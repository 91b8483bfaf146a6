package generators

import (
	"fmt"

	"github.com/agentx-labs/codebuilder/internal/component"
	"github.com/agentx-labs/codebuilder/internal/lookup"
	"github.com/agentx-labs/codebuilder/internal/property"
	"github.com/agentx-labs/codebuilder/internal/registry"
)

// DefaultCoreVersion is used when a request names no core version.
const DefaultCoreVersion = "8.x"

var moduleSchema = property.NewSchema(
	&property.Definition{
		Name:      "root_name",
		Label:     "Module machine name",
		Kind:      property.KindString,
		Required:  true,
		Primary:   true,
		Validator: property.Pattern(machineNameRe, "The @label must contain only lowercase letters, digits and underscores, starting with a letter."),
	},
	&property.Definition{
		Name:     "readable_name",
		Label:    "Module readable name",
		Kind:     property.KindString,
		Required: true,
		Default: property.Computed(func(s *property.Scope) (any, error) {
			return MachineToLabel(s.String("root_name")), nil
		}, "root_name"),
	},
	&property.Definition{
		Name:     "short_description",
		Label:    "Module short description",
		Kind:     property.KindString,
		Required: true,
		Default:  property.Literal("TODO: Description of module"),
	},
	&property.Definition{
		Name:     "core_version",
		Label:    "Core version",
		Kind:     property.KindString,
		Required: true,
		Default:  property.Literal(DefaultCoreVersion),
		Validator: &property.Validator{
			Check: func(v any) bool {
				s, _ := v.(string)
				_, err := registry.ParseCoreVersion(s)
				return err == nil
			},
			Message: "The @label must be a version such as 7.x or 8.x.",
		},
	},
	&property.Definition{
		Name:     "camel_case_name",
		Kind:     property.KindString,
		Internal: true,
		Default: property.Computed(func(s *property.Scope) (any, error) {
			return ClassName(s.String("root_name")), nil
		}, "root_name"),
	},
	&property.Definition{Name: "permissions", Label: "Permissions", Kind: property.KindNested},
	&property.Definition{Name: "router_items", Label: "Router paths", Kind: property.KindStrings},
	&property.Definition{Name: "plugins", Label: "Plugins", Kind: property.KindNested},
	&property.Definition{
		Name:    "hooks",
		Label:   "Hook implementations",
		Kind:    property.KindStrings,
		Options: property.CatalogOptions(lookup.KindHook),
	},
)

// Module is the root component. It requests the info file and one child per
// permission, router item, plugin and hook listed in its data.
type Module struct {
	component.Base
}

// Schema implements component.Component.
func (Module) Schema() *property.Schema { return moduleSchema }

// RequiredChildren implements component.Component.
func (Module) RequiredChildren(data property.Values) ([]component.ChildSpec, error) {
	specs := []component.ChildSpec{{Key: "info", Type: "Info"}}

	if hooks := data.Strings("hooks"); len(hooks) > 0 {
		specs = append(specs, component.ChildSpec{
			Key:  "hooks",
			Type: "Hooks",
			Data: property.Values{"hooks": hooks},
		})
	}
	for i, p := range data.Nested("permissions") {
		specs = append(specs, component.ChildSpec{
			Key:  fmt.Sprintf("permission_%d", i+1),
			Type: "Permission",
			Data: property.Values(p),
		})
	}
	for i, path := range data.Strings("router_items") {
		specs = append(specs, component.ChildSpec{
			Key:  fmt.Sprintf("router_item_%d", i+1),
			Type: "RouterItem",
			Data: property.Values{"path": path},
		})
	}
	for i, p := range data.Nested("plugins") {
		specs = append(specs, component.ChildSpec{
			Key:  fmt.Sprintf("plugin_%d", i+1),
			Type: "Plugin",
			Data: property.Values(p),
		})
	}
	return specs, nil
}
