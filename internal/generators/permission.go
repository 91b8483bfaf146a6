package generators

import (
	"github.com/agentx-labs/codebuilder/internal/component"
	"github.com/agentx-labs/codebuilder/internal/property"
)

const permissionsFile = "%module.permissions.yml"

var permissionSchema = property.NewSchema(
	&property.Definition{
		Name:     "permission",
		Label:    "Permission machine name",
		Kind:     property.KindString,
		Required: true,
		Primary:  true,
		Default: property.Computed(func(s *property.Scope) (any, error) {
			return "access " + s.String("%root:root_name"), nil
		}, "%root:root_name"),
	},
	&property.Definition{
		Name:     "title",
		Label:    "Permission title",
		Kind:     property.KindString,
		Required: true,
		Default: property.Computed(func(s *property.Scope) (any, error) {
			return MachineToLabel(s.String("permission")), nil
		}, "permission"),
	},
	&property.Definition{
		Name:     "description",
		Label:    "Permission description",
		Kind:     property.KindString,
		Required: true,
		Default: property.Computed(func(s *property.Scope) (any, error) {
			return s.Get("title"), nil
		}, "title"),
	},
	&property.Definition{
		Name:    "restrict_access",
		Label:   "Restrict access",
		Kind:    property.KindBoolean,
		Default: property.Literal(false),
	},
)

// Permission declares one permission in the module's permissions file.
type Permission struct {
	component.Base
}

// Schema implements component.Component.
func (Permission) Schema() *property.Schema { return permissionSchema }

// RequiredChildren implements component.Component.
func (Permission) RequiredChildren(property.Values) ([]component.ChildSpec, error) {
	return []component.ChildSpec{{
		Key:  permissionsFile,
		Type: "YMLFile",
		Data: property.Values{"filename": permissionsFile},
	}}, nil
}

// AttachmentAddress implements component.Component.
func (Permission) AttachmentAddress(property.Values) string {
	return component.Self + ":" + permissionsFile
}

// ProduceContent implements component.Component.
func (Permission) ProduceContent(data property.Values, _ []component.Fragment) ([]component.Fragment, error) {
	entry := mappingNode(
		"title", data.String("title"),
		"description", data.String("description"),
	)
	if data.Bool("restrict_access") {
		entry.Content = append(entry.Content, scalarNode("restrict access"), valueNode(true))
	}
	name := data.String("permission")
	return []component.Fragment{{
		Name:    name,
		Role:    roleYAML,
		Payload: mappingNode(name, entry),
	}}, nil
}
