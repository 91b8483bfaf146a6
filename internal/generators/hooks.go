package generators

import (
	"strings"

	"github.com/agentx-labs/codebuilder/internal/component"
	"github.com/agentx-labs/codebuilder/internal/lookup"
	"github.com/agentx-labs/codebuilder/internal/property"
)

const (
	moduleFile = "%module.module"
	hookMenu   = "hook_menu"
)

var hooksSchema = property.NewSchema(
	&property.Definition{
		Name:    "hooks",
		Label:   "Hook implementations",
		Kind:    property.KindStrings,
		Options: property.CatalogOptions(lookup.KindHook),
	},
)

// Hooks collects the hook implementations of the module. Repeated requests
// merge their hook lists.
type Hooks struct {
	component.Base
}

// Schema implements component.Component.
func (Hooks) Schema() *property.Schema { return hooksSchema }

// RequiredChildren implements component.Component.
func (Hooks) RequiredChildren(data property.Values) ([]component.ChildSpec, error) {
	var specs []component.ChildSpec
	for _, h := range data.Strings("hooks") {
		typ := "HookImplementation"
		if h == hookMenu {
			typ = "HookMenu"
		}
		specs = append(specs, component.ChildSpec{
			Key:  h,
			Type: typ,
			Data: property.Values{"hook_name": h},
		})
	}
	return specs, nil
}

var hookImplementationSchema = property.NewSchema(
	&property.Definition{
		Name:     "hook_name",
		Label:    "Hook",
		Kind:     property.KindString,
		Required: true,
		Primary:  true,
		Options:  property.CatalogOptions(lookup.KindHook),
	},
	&property.Definition{Name: "module_name", Kind: property.KindString, Internal: true, Default: rootValue("root_name")},
	&property.Definition{
		Name:     "signature",
		Kind:     property.KindString,
		Internal: true,
		Required: true,
		Default: property.Computed(func(s *property.Scope) (any, error) {
			h, err := lookup.Hook(s.Lookup(), s.String("hook_name"))
			if err != nil {
				return nil, err
			}
			return h.Signature, nil
		}, "hook_name"),
	},
	&property.Definition{
		Name:     "body",
		Kind:     property.KindStrings,
		Internal: true,
		Default: property.Computed(func(s *property.Scope) (any, error) {
			h, err := lookup.Hook(s.Lookup(), s.String("hook_name"))
			if err != nil {
				return nil, err
			}
			return h.Body, nil
		}, "hook_name"),
	},
)

// HookImplementation is one function in the .module file.
type HookImplementation struct {
	component.Base
}

// Schema implements component.Component.
func (HookImplementation) Schema() *property.Schema { return hookImplementationSchema }

// RequiredChildren implements component.Component.
func (HookImplementation) RequiredChildren(property.Values) ([]component.ChildSpec, error) {
	return []component.ChildSpec{{
		Key:  moduleFile,
		Type: "ModuleFile",
		Data: property.Values{"filename": moduleFile},
	}}, nil
}

// AttachmentAddress implements component.Component.
func (HookImplementation) AttachmentAddress(property.Values) string {
	return component.Self + ":" + moduleFile
}

// ProduceContent implements component.Component.
func (HookImplementation) ProduceContent(data property.Values, _ []component.Fragment) ([]component.Fragment, error) {
	return []component.Fragment{hookFunction(data, data.Strings("body"))}, nil
}

// hookFunction renders the implementation of a hook with the given body.
func hookFunction(data property.Values, body []string) component.Fragment {
	hook := data.String("hook_name")
	sig := strings.Replace(data.String("signature"), "function hook_", "function "+data.String("module_name")+"_", 1)

	lines := docBlock("Implements " + hook + "().")
	lines = append(lines, sig+" {")
	lines = append(lines, indent(body, "  ")...)
	lines = append(lines, "}")
	return component.Fragment{Name: hook, Role: roleFunction, Payload: lines}
}

var hookMenuSchema = hookImplementationSchema.Override("hook_name", func(d *property.Definition) {
	d.Default = property.Literal(hookMenu)
})

// HookMenu is the hook_menu() implementation. Router items attach to it and
// their item definitions become the body of the function.
type HookMenu struct {
	HookImplementation
}

// Schema implements component.Component.
func (HookMenu) Schema() *property.Schema { return hookMenuSchema }

// ProduceContent implements component.Component.
func (h HookMenu) ProduceContent(data property.Values, children []component.Fragment) ([]component.Fragment, error) {
	items := component.Payloads[[]string](component.SelectRole(children, roleItem))
	if len(items) == 0 {
		return h.HookImplementation.ProduceContent(data, children)
	}
	body := []string{"$items = array();"}
	for _, item := range items {
		body = append(body, item...)
	}
	body = append(body, "", "return $items;")
	return []component.Fragment{hookFunction(data, body)}, nil
}

var moduleFileSchema = property.NewSchema(
	&property.Definition{Name: "filename", Kind: property.KindString, Required: true, Primary: true},
	&property.Definition{Name: "readable_name", Kind: property.KindString, Internal: true, Default: rootValue("readable_name")},
)

// ModuleFile writes the .module file holding the hook implementations.
type ModuleFile struct {
	component.Base
}

// Schema implements component.Component.
func (ModuleFile) Schema() *property.Schema { return moduleFileSchema }

// Assemble implements component.Assembler.
func (ModuleFile) Assemble(data property.Values, children []component.Fragment) ([]component.Artifact, error) {
	body := phpFileHeader("")
	body = append(body, docBlock("@file", "Contains hook implementations for the "+data.String("readable_name")+" module.")...)
	for _, fn := range component.Payloads[[]string](component.SelectRole(children, roleFunction)) {
		body = append(body, "")
		body = append(body, fn...)
	}
	body = append(body, "")
	return []component.Artifact{{Filename: data.String("filename"), Body: body, Join: component.JoinNewline}}, nil
}
