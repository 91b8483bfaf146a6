package generators

import (
	"fmt"
	"strings"

	"github.com/agentx-labs/codebuilder/internal/component"
	"github.com/agentx-labs/codebuilder/internal/lookup"
	"github.com/agentx-labs/codebuilder/internal/manifest"
	"github.com/agentx-labs/codebuilder/internal/property"
)

const translationPlaceholder = `@Translation("TODO: replace this with a value")`

var pluginSchema = property.NewSchema(
	&property.Definition{
		Name:     "plugin_type",
		Label:    "Plugin type",
		Kind:     property.KindString,
		Required: true,
		Options:  property.CatalogOptions(lookup.KindPlugin),
		Processing: &property.Processing{
			Writes: []string{"plugin_type_data"},
			Fn: func(s *property.Scope, v any) error {
				pt, err := lookup.PluginType(s.Lookup(), v.(string))
				if err != nil {
					return err
				}
				s.Set("plugin_type_data", pluginTypeData(pt))
				return nil
			},
		},
	},
	&property.Definition{
		Name:     "plugin_name",
		Label:    "Plugin ID",
		Kind:     property.KindString,
		Required: true,
		Default: property.Computed(func(s *property.Scope) (any, error) {
			typ := strings.ReplaceAll(s.String("plugin_type"), ".", "_")
			if n := s.Next("plugin:" + typ); n > 1 {
				return fmt.Sprintf("%s_%d", typ, n), nil
			}
			return typ, nil
		}, "plugin_type"),
		Processing: &property.Processing{
			Fn: func(s *property.Scope, v any) error {
				prefix := s.String("%root:root_name") + "_"
				if name := v.(string); !strings.HasPrefix(name, prefix) {
					s.Set("plugin_name", prefix+name)
				}
				return nil
			},
		},
	},
	&property.Definition{
		Name:     "class_name",
		Label:    "Plugin class name",
		Kind:     property.KindString,
		Required: true,
		Default: property.Computed(func(s *property.Scope) (any, error) {
			return ClassName(s.String("plugin_name")), nil
		}, "plugin_name"),
		Validator: property.Pattern(pascalCaseRe, "The @label must be a PHP class name in PascalCase format."),
	},
	&property.Definition{Name: "plugin_type_data", Kind: property.KindMapping, Internal: true},
	&property.Definition{
		Name:     "path",
		Kind:     property.KindString,
		Internal: true,
		Default: property.Computed(func(s *property.Scope) (any, error) {
			return "src/" + pluginTypeFrom(s.Get("plugin_type_data")).Subdir, nil
		}, "plugin_type_data"),
	},
	&property.Definition{
		Name:     "namespace",
		Kind:     property.KindString,
		Internal: true,
		Default: property.Computed(func(s *property.Scope) (any, error) {
			pt := pluginTypeFrom(s.Get("plugin_type_data"))
			return `Drupal\` + s.String("%root:root_name") + `\` + namespaceFromPath(pt.Subdir), nil
		}, "plugin_type_data", "%root:root_name"),
	},
	&property.Definition{
		Name:    "injected_services",
		Label:   "Injected services",
		Kind:    property.KindStrings,
		Options: property.CatalogOptions(lookup.KindService),
	},
	&property.Definition{Name: "test", Label: "Generate a test", Kind: property.KindBoolean, Default: property.Literal(false)},
)

// pluginTypeData stores a plugin type in a mapping property.
func pluginTypeData(pt *manifest.PluginType) map[string]any {
	return map[string]any{"definition": pt}
}

func pluginTypeFrom(v any) *manifest.PluginType {
	m, _ := v.(map[string]any)
	if pt, ok := m["definition"].(*manifest.PluginType); ok {
		return pt
	}
	return &manifest.PluginType{}
}

// Plugin writes a plugin class. Its injected services attach to it and
// supply the dependency injection code.
type Plugin struct {
	component.Base
}

// Schema implements component.Component.
func (Plugin) Schema() *property.Schema { return pluginSchema }

// RequiredChildren implements component.Component.
func (Plugin) RequiredChildren(data property.Values) ([]component.ChildSpec, error) {
	services := data.Strings("injected_services")
	specs := make([]component.ChildSpec, 0, len(services)+1)
	for _, id := range services {
		specs = append(specs, component.ChildSpec{
			Key:  childKey("service_", id),
			Type: "InjectedService",
			Data: property.Values{"service_id": id},
		})
	}
	if data.Bool("test") {
		specs = append(specs, component.ChildSpec{
			Key:  "test",
			Type: "PluginTest",
			Data: property.Values{
				"plugin_name":        data.String("plugin_name"),
				"plugin_class":       data.String("class_name"),
				"plugin_namespace":   data.String("namespace"),
				"container_services": services,
				"mock_services":      services,
			},
		})
	}
	return specs, nil
}

// Assemble implements component.Assembler.
func (Plugin) Assemble(data property.Values, children []component.Fragment) ([]component.Artifact, error) {
	pt := pluginTypeFrom(data["plugin_type_data"])
	class := data.String("class_name")
	services := component.Payloads[ServiceInfo](component.SelectRole(children, roleService))

	body := phpFileHeader(data.String("namespace"))
	if len(services) > 0 {
		body = append(body,
			`use Drupal\Core\Plugin\ContainerFactoryPluginInterface;`,
			`use Symfony\Component\DependencyInjection\ContainerInterface;`,
			"",
		)
	}

	body = append(body, pluginAnnotation(pt, data.String("plugin_name"))...)
	decl := "class " + class
	if len(services) > 0 {
		decl += " implements ContainerFactoryPluginInterface"
	}
	body = append(body, decl+" {", "")

	var members [][]string
	for _, p := range component.Payloads[ServiceProperty](component.SelectRole(children, roleServiceProperty)) {
		members = append(members, serviceProperty(p))
	}
	if len(services) > 0 {
		members = append(members,
			pluginConstructor(class, children),
			pluginCreate(children),
		)
	}
	for _, m := range pt.Methods {
		members = append(members, methodStub(m))
	}
	for _, m := range members {
		body = append(body, indent(m, "  ")...)
		body = append(body, "")
	}
	body = append(body, "}", "")

	return []component.Artifact{{
		Path:     data.String("path"),
		Filename: class + ".php",
		Body:     body,
		Join:     component.JoinNewline,
	}}, nil
}

func pluginAnnotation(pt *manifest.PluginType, id string) []string {
	lines := []string{"/**", " * @" + shortClass(pt.Annotation) + "("}
	for _, p := range pt.Properties {
		var value string
		switch {
		case p.Name == "id":
			value = `"` + id + `"`
		case shortClass(p.Type) == "Translation":
			value = translationPlaceholder
		case p.Type == "array":
			value = "{}"
		case p.Type == "bool" || p.Type == "boolean":
			value = "FALSE"
		default:
			value = `""`
		}
		lines = append(lines, fmt.Sprintf(" *   %s = %s,", p.Name, value))
	}
	return append(lines, " * )", " */")
}

func serviceProperty(p ServiceProperty) []string {
	lines := docBlock(p.Description, "", "@var "+p.Typehint)
	return append(lines, "protected $"+p.PropertyName+";")
}

func pluginConstructor(class string, children []component.Fragment) []string {
	params := component.Payloads[ConstructorParam](component.SelectRole(children, roleConstructorParam))

	doc := []string{
		"Creates a " + class + " instance.",
		"",
		"@param array $configuration",
		"  A configuration array containing information about the plugin instance.",
		"@param string $plugin_id",
		"  The plugin_id for the plugin instance.",
		"@param mixed $plugin_definition",
		"  The plugin implementation definition.",
	}
	sig := []string{"array $configuration", "$plugin_id", "$plugin_definition"}
	for _, p := range params {
		doc = append(doc, "@param "+p.Typehint+" $"+p.Name, "  "+p.Description)
		sig = append(sig, p.Typehint+" $"+p.Name)
	}

	lines := docBlock(doc...)
	lines = append(lines, "public function __construct("+strings.Join(sig, ", ")+") {")
	for _, a := range component.Payloads[PropertyAssignment](component.SelectRole(children, rolePropertyAssignment)) {
		lines = append(lines, fmt.Sprintf("  $this->%s = $%s;", a.PropertyName, a.VariableName))
	}
	return append(lines, "}")
}

func pluginCreate(children []component.Fragment) []string {
	lines := docBlock("{@inheritdoc}")
	lines = append(lines,
		"public static function create(ContainerInterface $container, array $configuration, $plugin_id, $plugin_definition) {",
		"  return new static(",
		"    $configuration,",
		"    $plugin_id,",
		"    $plugin_definition,",
	)
	for _, e := range component.Payloads[string](component.SelectRole(children, roleContainerExtraction)) {
		lines = append(lines, "    "+e)
	}
	return append(lines, "  );", "}")
}

func methodStub(m manifest.InterfaceMethod) []string {
	lines := docBlock("{@inheritdoc}")
	lines = append(lines, trimDeclaration(m.Declaration)+" {")
	if m.Description != "" {
		lines = append(lines, "  // "+m.Description)
	}
	return append(lines, "}")
}
