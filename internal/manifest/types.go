package manifest

// BaseManifest contains fields shared by all manifest kinds.
type BaseManifest struct {
	Kind        string `yaml:"kind" json:"kind"`
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	Version     string `yaml:"version,omitempty" json:"version,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// RequestManifest asks for a component tree rooted at Component.
type RequestManifest struct {
	BaseManifest `yaml:",inline"`
	Component    string         `yaml:"component" json:"component"`
	CoreVersion  string         `yaml:"core_version,omitempty" json:"core_version,omitempty"`
	Data         map[string]any `yaml:"data" json:"data"`
}

// CatalogManifest supplies lookup entries.
type CatalogManifest struct {
	BaseManifest `yaml:",inline"`
	Plugins      []PluginType `yaml:"plugins,omitempty" json:"plugins,omitempty"`
	Services     []Service    `yaml:"services,omitempty" json:"services,omitempty"`
	Hooks        []Hook       `yaml:"hooks,omitempty" json:"hooks,omitempty"`
}

// PluginType describes a plugin type that can be generated.
type PluginType struct {
	ID          string `yaml:"id" json:"id"`
	Label       string `yaml:"label,omitempty" json:"label,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Subdir is the plugin directory below src/, e.g. "Plugin/Block".
	Subdir string `yaml:"subdir" json:"subdir"`
	// Annotation is the fully qualified annotation class.
	Annotation string              `yaml:"annotation" json:"annotation"`
	Properties []AnnotationProperty `yaml:"properties,omitempty" json:"properties,omitempty"`
	Methods    []InterfaceMethod    `yaml:"methods,omitempty" json:"methods,omitempty"`
}

// AnnotationProperty is one property of a plugin annotation.
type AnnotationProperty struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type,omitempty" json:"type,omitempty"`
}

// InterfaceMethod is a method a plugin class must implement.
type InterfaceMethod struct {
	Name        string `yaml:"name" json:"name"`
	Declaration string `yaml:"declaration" json:"declaration"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Service describes an injectable service. Pseudoservices have an id of the
// form "type:variant" and are obtained from RealService via ServiceMethod.
type Service struct {
	ID            string `yaml:"id" json:"id"`
	Label         string `yaml:"label,omitempty" json:"label,omitempty"`
	Description   string `yaml:"description,omitempty" json:"description,omitempty"`
	VariableName  string `yaml:"variable_name" json:"variable_name"`
	Interface     string `yaml:"interface,omitempty" json:"interface,omitempty"`
	Class         string `yaml:"class,omitempty" json:"class,omitempty"`
	RealService   string `yaml:"real_service,omitempty" json:"real_service,omitempty"`
	ServiceMethod string `yaml:"service_method,omitempty" json:"service_method,omitempty"`
}

// Hook describes a hook that can be implemented.
type Hook struct {
	ID          string   `yaml:"id" json:"id"`
	Label       string   `yaml:"label,omitempty" json:"label,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Signature   string   `yaml:"signature" json:"signature"`
	Body        []string `yaml:"body,omitempty" json:"body,omitempty"`
}

// Manifest kind constants for the kind discriminator field.
const (
	KindRequest = "request"
	KindCatalog = "catalog"
)

// ValidKinds contains all valid manifest kind values.
var ValidKinds = []string{
	KindRequest,
	KindCatalog,
}
