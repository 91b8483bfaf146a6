// Package lookup supplies the read-only catalogs of plugin types, injectable
// services and hooks that component schemas query for options and defaults.
package lookup

import (
	"fmt"

	"github.com/agentx-labs/codebuilder/internal/builderr"
	"github.com/agentx-labs/codebuilder/internal/manifest"
)

// Kind names a catalog.
type Kind string

// Catalog kinds.
const (
	KindPlugin  Kind = "plugin"
	KindService Kind = "service"
	KindHook    Kind = "hook"
)

// Kinds lists every catalog kind in display order.
var Kinds = []Kind{KindPlugin, KindService, KindHook}

// ParseKind converts a user supplied name, singular or plural, to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if s == string(k) || s == string(k)+"s" {
			return k, nil
		}
	}
	return "", &builderr.InvalidInputError{Subject: "catalog kind", Value: s, Message: "unknown catalog kind"}
}

// Option is one selectable value of a property.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Descriptor describes one catalog entry. Data holds the typed manifest
// entry: *manifest.PluginType, *manifest.Service or *manifest.Hook.
type Descriptor struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Data        any    `json:"data,omitempty"`
}

// Service is the lookup surface consumed by property schemas and components.
// Implementations must be safe to query repeatedly and must not change
// during a build.
type Service interface {
	// TypeCatalog returns every entry of kind keyed by id.
	TypeCatalog(kind Kind) (map[string]Descriptor, error)
	// TypeOptions returns the id/label pairs of kind in catalog order.
	TypeOptions(kind Kind) ([]Option, error)
}

// PluginType returns the plugin type with the given id.
func PluginType(svc Service, id string) (*manifest.PluginType, error) {
	return typed[manifest.PluginType](svc, KindPlugin, id)
}

// ServiceInfo returns the injectable service with the given id.
func ServiceInfo(svc Service, id string) (*manifest.Service, error) {
	return typed[manifest.Service](svc, KindService, id)
}

// Hook returns the hook with the given id.
func Hook(svc Service, id string) (*manifest.Hook, error) {
	return typed[manifest.Hook](svc, KindHook, id)
}

func typed[T any](svc Service, kind Kind, id string) (*T, error) {
	if svc == nil {
		return nil, fmt.Errorf("no lookup service for %s %q", kind, id)
	}
	entries, err := svc.TypeCatalog(kind)
	if err != nil {
		return nil, err
	}
	d, ok := entries[id]
	if !ok {
		return nil, &builderr.InvalidInputError{Subject: string(kind), Value: id, Message: "not found in catalog"}
	}
	v, ok := d.Data.(*T)
	if !ok {
		return nil, fmt.Errorf("%s %q: unexpected catalog data %T", kind, id, d.Data)
	}
	return v, nil
}
