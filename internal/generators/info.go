package generators

import (
	"fmt"

	"github.com/agentx-labs/codebuilder/internal/component"
	"github.com/agentx-labs/codebuilder/internal/property"
	"github.com/agentx-labs/codebuilder/internal/registry"
)

// rootValue returns a default that copies a property of the root component.
func rootValue(name string) *property.Default {
	path := "%root:" + name
	return property.Computed(func(s *property.Scope) (any, error) {
		return s.Get(path), nil
	}, path)
}

var infoSchema = property.NewSchema(
	&property.Definition{Name: "readable_name", Kind: property.KindString, Internal: true, Default: rootValue("readable_name")},
	&property.Definition{Name: "short_description", Kind: property.KindString, Internal: true, Default: rootValue("short_description")},
	&property.Definition{Name: "core_version", Kind: property.KindString, Internal: true, Default: rootValue("core_version")},
)

// Info7 writes the INI style .info file of 7.x modules.
type Info7 struct {
	component.Base
}

// Schema implements component.Component.
func (Info7) Schema() *property.Schema { return infoSchema }

// Assemble implements component.Assembler.
func (Info7) Assemble(data property.Values, _ []component.Fragment) ([]component.Artifact, error) {
	body := []string{
		"name = " + data.String("readable_name"),
		"description = " + data.String("short_description"),
		"core = " + data.String("core_version"),
		"",
	}
	return []component.Artifact{{Filename: "%module.info", Body: body, Join: component.JoinNewline}}, nil
}

// Info writes the .info.yml file of 8.x and later modules.
type Info struct {
	component.Base
}

// Schema implements component.Component.
func (Info) Schema() *property.Schema { return infoSchema }

// Assemble implements component.Assembler.
func (Info) Assemble(data property.Values, _ []component.Fragment) ([]component.Artifact, error) {
	doc := mappingNode(
		"name", data.String("readable_name"),
		"type", "module",
		"description", data.String("short_description"),
	)
	cv := data.String("core_version")
	if major := registry.MajorVersion(cv); major > 8 {
		doc.Content = append(doc.Content, scalarNode("core_version_requirement"), scalarNode(fmt.Sprintf("^%d", major)))
	} else {
		doc.Content = append(doc.Content, scalarNode("core"), scalarNode(cv))
	}
	out, err := encodeYAML(doc)
	if err != nil {
		return nil, err
	}
	return []component.Artifact{{Filename: "%module.info.yml", Body: []string{out}, Join: component.JoinNone}}, nil
}
