package generators

// Fragment roles exchanged between the components of this package.
const (
	roleYAML                = "yaml"
	roleFunction            = "function"
	roleItem                = "item"
	roleService             = "service"
	roleServiceProperty     = "service_property"
	roleConstructorParam    = "constructor_param"
	roleContainerExtraction = "container_extraction"
	rolePropertyAssignment  = "property_assignment"

	// testSuffix marks the services a test mocks instead of fetching.
	testSuffix = "_test"
)
