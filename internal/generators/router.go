package generators

import (
	"fmt"
	"strings"

	"github.com/agentx-labs/codebuilder/internal/component"
	"github.com/agentx-labs/codebuilder/internal/property"
)

const routingFile = "%module.routing.yml"

// menuItemKeys lists the optional hook_menu() item keys in output order.
// Quoted keys hold string literals; the others hold PHP expressions.
var menuItemKeys = []struct {
	name   string
	quoted bool
}{
	{"description", true},
	{"page callback", true},
	{"page arguments", false},
	{"access arguments", false},
	{"file", true},
	{"type", false},
}

var routerItem7Schema = property.NewSchema(
	&property.Definition{Name: "path", Label: "Router path", Kind: property.KindString, Required: true, Primary: true},
	&property.Definition{Name: "title", Kind: property.KindString, Internal: true, Default: property.Literal("myPage")},
	&property.Definition{Name: "description", Kind: property.KindString, Internal: true},
	&property.Definition{Name: "page callback", Kind: property.KindString, Internal: true, Default: property.Literal("example_page")},
	&property.Definition{Name: "page arguments", Kind: property.KindString, Internal: true, Default: property.Literal("array()")},
	&property.Definition{Name: "access arguments", Kind: property.KindString, Internal: true, Default: property.Literal("array('access content')")},
	&property.Definition{Name: "file", Kind: property.KindString, Internal: true},
	&property.Definition{Name: "type", Kind: property.KindString, Internal: true},
)

// RouterItem7 is one hook_menu() item of a 7.x module.
type RouterItem7 struct {
	component.Base
}

// Schema implements component.Component.
func (RouterItem7) Schema() *property.Schema { return routerItem7Schema }

// RequiredChildren implements component.Component.
func (RouterItem7) RequiredChildren(property.Values) ([]component.ChildSpec, error) {
	return []component.ChildSpec{{
		Key:  "hooks",
		Type: "Hooks",
		Data: property.Values{"hooks": []string{hookMenu}},
	}}, nil
}

// AttachmentAddress implements component.Component.
func (RouterItem7) AttachmentAddress(property.Values) string {
	return component.Self + ":hooks:" + hookMenu
}

// ProduceContent implements component.Component.
func (RouterItem7) ProduceContent(data property.Values, _ []component.Fragment) ([]component.Fragment, error) {
	path := data.String("path")
	lines := []string{
		fmt.Sprintf("$items['%s'] = array(", path),
		fmt.Sprintf("  'title' => '%s',", data.String("title")),
	}
	for _, key := range menuItemKeys {
		v := data.String(key.name)
		if v == "" {
			continue
		}
		if key.quoted {
			v = "'" + v + "'"
		}
		lines = append(lines, fmt.Sprintf("  '%s' => %s,", key.name, v))
	}
	lines = append(lines, ");")
	return []component.Fragment{{Name: path, Role: roleItem, Payload: lines}}, nil
}

var routerItemSchema = property.NewSchema(
	&property.Definition{Name: "path", Label: "Route path", Kind: property.KindString, Required: true, Primary: true},
	&property.Definition{
		Name:     "route_name",
		Kind:     property.KindString,
		Internal: true,
		Default: property.Computed(func(s *property.Scope) (any, error) {
			name := strings.NewReplacer("/", "_", "-", "_", "{", "", "}", "").Replace(strings.Trim(s.String("path"), "/"))
			return s.String("%root:root_name") + "." + name, nil
		}, "path", "%root:root_name"),
	},
	&property.Definition{Name: "title", Kind: property.KindString, Internal: true, Default: property.Literal("myPage")},
	&property.Definition{
		Name:     "controller",
		Kind:     property.KindString,
		Internal: true,
		Default: property.Computed(func(s *property.Scope) (any, error) {
			return fmt.Sprintf(`\Drupal\%s\Controller\%sController::content`, s.String("%root:root_name"), s.String("%root:camel_case_name")), nil
		}, "%root:root_name", "%root:camel_case_name"),
	},
	&property.Definition{Name: "permission", Kind: property.KindString, Internal: true, Default: property.Literal("access content")},
)

// RouterItem is one route of an 8.x or later module's routing file.
type RouterItem struct {
	component.Base
}

// Schema implements component.Component.
func (RouterItem) Schema() *property.Schema { return routerItemSchema }

// RequiredChildren implements component.Component.
func (RouterItem) RequiredChildren(property.Values) ([]component.ChildSpec, error) {
	return []component.ChildSpec{{
		Key:  routingFile,
		Type: "YMLFile",
		Data: property.Values{"filename": routingFile},
	}}, nil
}

// AttachmentAddress implements component.Component.
func (RouterItem) AttachmentAddress(property.Values) string {
	return component.Self + ":" + routingFile
}

// ProduceContent implements component.Component.
func (RouterItem) ProduceContent(data property.Values, _ []component.Fragment) ([]component.Fragment, error) {
	name := data.String("route_name")
	route := mappingNode(
		"path", "/"+strings.TrimPrefix(data.String("path"), "/"),
		"defaults", mappingNode(
			"_controller", data.String("controller"),
			"_title", data.String("title"),
		),
		"requirements", mappingNode("_permission", data.String("permission")),
	)
	return []component.Fragment{{Name: name, Role: roleYAML, Payload: mappingNode(name, route)}}, nil
}
