package generators

import (
	"github.com/agentx-labs/codebuilder/internal/component"
	"github.com/agentx-labs/codebuilder/internal/lookup"
	"github.com/agentx-labs/codebuilder/internal/property"
)

var pluginTestSchema = property.NewSchema(
	&property.Definition{Name: "plugin_name", Kind: property.KindString, Required: true},
	&property.Definition{Name: "plugin_class", Kind: property.KindString, Required: true},
	&property.Definition{Name: "plugin_namespace", Kind: property.KindString},
	&property.Definition{Name: "module_name", Kind: property.KindString, Internal: true, Default: rootValue("root_name")},
	&property.Definition{
		Name: "test_class",
		Kind: property.KindString,
		Default: property.Computed(func(s *property.Scope) (any, error) {
			return s.String("plugin_class") + "Test", nil
		}, "plugin_class"),
	},
	&property.Definition{
		Name: "test_namespace",
		Kind: property.KindString,
		Default: property.Computed(func(s *property.Scope) (any, error) {
			return `Drupal\Tests\` + s.String("module_name") + `\Kernel`, nil
		}, "module_name"),
	},
	// Fetched from the container in setUp().
	&property.Definition{Name: "container_services", Kind: property.KindStrings, Options: property.CatalogOptions(lookup.KindService)},
	// Replaced by prophecies inside the test method.
	&property.Definition{Name: "mock_services", Kind: property.KindStrings, Options: property.CatalogOptions(lookup.KindService)},
)

// PluginTest writes a kernel test for a plugin class.
type PluginTest struct {
	component.Base
}

// Schema implements component.Component.
func (PluginTest) Schema() *property.Schema { return pluginTestSchema }

// RequiredChildren implements component.Component.
func (PluginTest) RequiredChildren(data property.Values) ([]component.ChildSpec, error) {
	var specs []component.ChildSpec
	for _, id := range data.Strings("container_services") {
		specs = append(specs, component.ChildSpec{
			Key:  childKey("container_", id),
			Type: "InjectedService",
			Data: property.Values{"service_id": id},
		})
	}
	for _, id := range data.Strings("mock_services") {
		specs = append(specs, component.ChildSpec{
			Key:        childKey("mock_", id),
			Type:       "InjectedService",
			Data:       property.Values{"service_id": id},
			RoleSuffix: testSuffix,
		})
	}
	return specs, nil
}

// Assemble implements component.Assembler.
func (PluginTest) Assemble(data property.Values, children []component.Fragment) ([]component.Artifact, error) {
	module := data.String("module_name")
	class := data.String("test_class")

	body := phpFileHeader(data.String("test_namespace"))
	body = append(body, `use Drupal\KernelTests\KernelTestBase;`)
	if ns := data.String("plugin_namespace"); ns != "" {
		body = append(body, "use "+ns+`\`+data.String("plugin_class")+";")
	}
	body = append(body, "")
	body = append(body, docBlock("Tests the "+data.String("plugin_name")+" plugin.", "", "@group "+module)...)
	body = append(body, "class "+class+" extends KernelTestBase {", "")

	var members [][]string
	members = append(members, append(
		docBlock("The modules to enable for this test.", "", "@var string[]"),
		"protected static $modules = ['"+module+"'];",
	))
	for _, p := range component.Payloads[ServiceProperty](component.SelectRole(children, roleServiceProperty)) {
		members = append(members, serviceProperty(p))
	}

	fetched := component.Payloads[ServiceInfo](component.SelectRole(children, roleService))
	if len(fetched) > 0 {
		setUp := docBlock("{@inheritdoc}")
		setUp = append(setUp, "protected function setUp(): void {", "  parent::setUp();", "")
		for _, si := range fetched {
			setUp = append(setUp, "  $this->"+si.PropertyName+" = "+si.Extraction("$this->container")+";")
		}
		members = append(members, append(setUp, "}"))
	}

	test := docBlock("Tests the " + data.String("plugin_class") + " plugin.")
	test = append(test, "public function testPlugin() {")
	for _, si := range component.Payloads[ServiceInfo](component.SelectRole(children, roleService+testSuffix)) {
		test = append(test, "  $"+si.VariableName+" = $this->prophesize("+si.Typehint+"::class);")
	}
	test = append(test, "}")
	members = append(members, test)

	for _, m := range members {
		body = append(body, indent(m, "  ")...)
		body = append(body, "")
	}
	body = append(body, "}", "")

	return []component.Artifact{{
		Path:     "tests/src/Kernel",
		Filename: class + ".php",
		Body:     body,
		Join:     component.JoinNewline,
	}}, nil
}
