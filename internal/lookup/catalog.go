package lookup

import (
	"github.com/agentx-labs/codebuilder/internal/builderr"
	"github.com/agentx-labs/codebuilder/internal/manifest"
)

// Catalog is a static in-process Service. The first entry added for an id
// wins; later duplicates are ignored.
type Catalog struct {
	entries map[Kind]map[string]Descriptor
	order   map[Kind][]string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	c := &Catalog{
		entries: make(map[Kind]map[string]Descriptor, len(Kinds)),
		order:   make(map[Kind][]string, len(Kinds)),
	}
	for _, k := range Kinds {
		c.entries[k] = make(map[string]Descriptor)
	}
	return c
}

// Add registers d under kind. It reports false if the id was already taken.
func (c *Catalog) Add(kind Kind, d Descriptor) bool {
	m, ok := c.entries[kind]
	if !ok {
		m = make(map[string]Descriptor)
		c.entries[kind] = m
	}
	if _, dup := m[d.ID]; dup {
		return false
	}
	if d.Label == "" {
		d.Label = d.ID
	}
	m[d.ID] = d
	c.order[kind] = append(c.order[kind], d.ID)
	return true
}

// Get returns a single entry.
func (c *Catalog) Get(kind Kind, id string) (Descriptor, bool) {
	d, ok := c.entries[kind][id]
	return d, ok
}

// AddManifest registers every entry of a catalog manifest.
func (c *Catalog) AddManifest(m *manifest.CatalogManifest) {
	for i := range m.Plugins {
		p := &m.Plugins[i]
		c.Add(KindPlugin, Descriptor{ID: p.ID, Label: p.Label, Description: p.Description, Data: p})
	}
	for i := range m.Services {
		s := &m.Services[i]
		c.Add(KindService, Descriptor{ID: s.ID, Label: s.Label, Description: s.Description, Data: s})
	}
	for i := range m.Hooks {
		h := &m.Hooks[i]
		c.Add(KindHook, Descriptor{ID: h.ID, Label: h.Label, Description: h.Description, Data: h})
	}
}

// TypeCatalog implements Service. The returned map is a copy.
func (c *Catalog) TypeCatalog(kind Kind) (map[string]Descriptor, error) {
	m, ok := c.entries[kind]
	if !ok {
		return nil, &builderr.InvalidInputError{Subject: "catalog kind", Value: string(kind), Message: "unknown catalog kind"}
	}
	out := make(map[string]Descriptor, len(m))
	for id, d := range m {
		out[id] = d
	}
	return out, nil
}

// TypeOptions implements Service.
func (c *Catalog) TypeOptions(kind Kind) ([]Option, error) {
	m, ok := c.entries[kind]
	if !ok {
		return nil, &builderr.InvalidInputError{Subject: "catalog kind", Value: string(kind), Message: "unknown catalog kind"}
	}
	opts := make([]Option, 0, len(c.order[kind]))
	for _, id := range c.order[kind] {
		opts = append(opts, Option{ID: id, Label: m[id].Label})
	}
	return opts, nil
}

var _ Service = (*Catalog)(nil)
