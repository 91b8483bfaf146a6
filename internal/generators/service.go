package generators

import (
	"fmt"
	"strings"

	"github.com/agentx-labs/codebuilder/internal/component"
	"github.com/agentx-labs/codebuilder/internal/lookup"
	"github.com/agentx-labs/codebuilder/internal/property"
)

// ServiceInfo is the payload of "service" fragments: everything a consumer
// needs to inject one service.
type ServiceInfo struct {
	ID           string
	Label        string
	Description  string
	VariableName string
	PropertyName string
	Typehint     string

	// Set for pseudoservices, which are obtained from a real service.
	Variant                 string
	RealService             string
	ServiceMethod           string
	RealServiceVariableName string
}

// Pseudo reports whether the service is obtained from another service.
func (si ServiceInfo) Pseudo() bool {
	return si.RealService != ""
}

// Extraction returns the expression that fetches the service from container.
func (si ServiceInfo) Extraction(container string) string {
	if si.Pseudo() {
		return fmt.Sprintf("%s->get('%s')->%s('%s')", container, si.RealService, si.ServiceMethod, si.Variant)
	}
	return fmt.Sprintf("%s->get('%s')", container, si.ID)
}

// ServiceProperty is the payload of "service_property" fragments.
type ServiceProperty struct {
	PropertyName string
	Typehint     string
	Description  string
}

// ConstructorParam is the payload of "constructor_param" fragments.
type ConstructorParam struct {
	Name        string
	Typehint    string
	Description string
}

// PropertyAssignment is the payload of "property_assignment" fragments.
type PropertyAssignment struct {
	PropertyName string
	VariableName string
}

var injectedServiceSchema = property.NewSchema(
	&property.Definition{
		Name:     "service_id",
		Label:    "Injected service",
		Kind:     property.KindString,
		Required: true,
		Primary:  true,
		Options:  property.CatalogOptions(lookup.KindService),
	},
	&property.Definition{
		Name:     "service_info",
		Kind:     property.KindMapping,
		Internal: true,
		Required: true,
		Default: property.Computed(func(s *property.Scope) (any, error) {
			return serviceInfoDefault(s.Lookup(), s.String("service_id"))
		}, "service_id"),
	},
)

func serviceInfoDefault(svc lookup.Service, id string) (map[string]any, error) {
	info, err := lookup.ServiceInfo(svc, id)
	if err != nil {
		return nil, err
	}
	typehint := info.Interface
	if typehint == "" {
		typehint = info.Class
	}
	m := map[string]any{
		"id":            info.ID,
		"label":         info.Label,
		"description":   info.Description,
		"variable_name": info.VariableName,
		"property_name": PropertyName(info.VariableName),
		"typehint":      typehint,
	}
	if info.RealService != "" {
		realSvc, err := lookup.ServiceInfo(svc, info.RealService)
		if err != nil {
			return nil, fmt.Errorf("service %q: %w", id, err)
		}
		_, variant, _ := strings.Cut(info.ID, ":")
		m["variant"] = variant
		m["real_service"] = info.RealService
		m["service_method"] = info.ServiceMethod
		m["real_service_variable_name"] = realSvc.VariableName
	}
	return m, nil
}

func serviceInfoFrom(m map[string]any) ServiceInfo {
	v := property.Values(m)
	return ServiceInfo{
		ID:                      v.String("id"),
		Label:                   v.String("label"),
		Description:             v.String("description"),
		VariableName:            v.String("variable_name"),
		PropertyName:            v.String("property_name"),
		Typehint:                v.String("typehint"),
		Variant:                 v.String("variant"),
		RealService:             v.String("real_service"),
		ServiceMethod:           v.String("service_method"),
		RealServiceVariableName: v.String("real_service_variable_name"),
	}
}

// InjectedService contributes the pieces of dependency injection for one
// service to the class that requested it.
type InjectedService struct {
	component.Base
}

// Schema implements component.Component.
func (InjectedService) Schema() *property.Schema { return injectedServiceSchema }

// ProduceContent implements component.Component.
func (InjectedService) ProduceContent(data property.Values, _ []component.Fragment) ([]component.Fragment, error) {
	si := serviceInfoFrom(data.Mapping("service_info"))
	desc := si.Description
	if desc != "" && !strings.HasSuffix(desc, ".") {
		desc += "."
	}
	return []component.Fragment{
		{Name: si.ID, Role: roleService, Payload: si},
		{Name: si.ID, Role: roleServiceProperty, Payload: ServiceProperty{
			PropertyName: si.PropertyName,
			Typehint:     si.Typehint,
			Description:  desc,
		}},
		{Name: si.ID, Role: roleContainerExtraction, Payload: si.Extraction("$container") + ","},
		{Name: si.ID, Role: roleConstructorParam, Payload: ConstructorParam{
			Name:        si.VariableName,
			Typehint:    si.Typehint,
			Description: desc,
		}},
		{Name: si.ID, Role: rolePropertyAssignment, Payload: PropertyAssignment{
			PropertyName: si.PropertyName,
			VariableName: si.VariableName,
		}},
	}, nil
}
