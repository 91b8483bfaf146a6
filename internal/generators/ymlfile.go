package generators

import (
	"go.yaml.in/yaml/v3"

	"github.com/agentx-labs/codebuilder/internal/component"
	"github.com/agentx-labs/codebuilder/internal/property"
)

var ymlFileSchema = property.NewSchema(
	&property.Definition{Name: "filename", Kind: property.KindString, Required: true, Primary: true},
	&property.Definition{Name: "path", Kind: property.KindString},
)

// YMLFile merges the YAML mappings of its attached nodes into one file.
// Later keys replace earlier ones.
type YMLFile struct {
	component.Base
}

// Schema implements component.Component.
func (YMLFile) Schema() *property.Schema { return ymlFileSchema }

// Assemble implements component.Assembler.
func (YMLFile) Assemble(data property.Values, children []component.Fragment) ([]component.Artifact, error) {
	doc := mappingNode()
	for _, m := range component.Payloads[*yaml.Node](component.SelectRole(children, roleYAML)) {
		mergeMapping(doc, m)
	}
	out, err := encodeYAML(doc)
	if err != nil {
		return nil, err
	}
	return []component.Artifact{{
		Path:     data.String("path"),
		Filename: data.String("filename"),
		Body:     []string{out},
		Join:     component.JoinNone,
	}}, nil
}
