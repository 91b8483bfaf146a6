package generators

import (
	"github.com/agentx-labs/codebuilder/internal/component"
	"github.com/agentx-labs/codebuilder/internal/registry"
)

// RootType is the component type a module request starts from.
const RootType = "Module"

// Register adds every component type of this package to reg.
func Register(reg *registry.Registry) {
	reg.MustRegister(
		registry.Variant{Type: RootType, Component: Module{}},
		registry.Variant{Type: "Info", Constraint: "< 8", Component: Info7{}},
		registry.Variant{Type: "Info", Constraint: ">= 8", Component: Info{}},
		registry.Variant{Type: "Permission", Component: Permission{}},
		registry.Variant{Type: "YMLFile", Component: YMLFile{}},
		registry.Variant{Type: "Hooks", Component: Hooks{}},
		registry.Variant{Type: "HookImplementation", Component: HookImplementation{}},
		registry.Variant{Type: "HookMenu", Component: HookMenu{}},
		registry.Variant{Type: "ModuleFile", Component: ModuleFile{}},
		registry.Variant{Type: "RouterItem", Constraint: "< 8", Component: RouterItem7{}},
		registry.Variant{Type: "RouterItem", Constraint: ">= 8", Component: RouterItem{}},
		registry.Variant{Type: "Plugin", Handling: component.Repeatable, Component: Plugin{}},
		registry.Variant{Type: "PluginTest", Handling: component.Repeatable, Component: PluginTest{}},
		registry.Variant{Type: "InjectedService", Handling: component.Repeatable, Component: InjectedService{}},
	)
}

// NewRegistry returns a registry holding every component type of this
// package.
func NewRegistry() *registry.Registry {
	reg := registry.New()
	Register(reg)
	return reg
}
