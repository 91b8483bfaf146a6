// Package tree expands a root request into the component tree: it resolves
// each node's data as the node is created, asks it for its children, folds
// repeated singleton requests into one node and finally resolves every
// node's attachment address.
package tree

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentx-labs/codebuilder/internal/builderr"
	"github.com/agentx-labs/codebuilder/internal/component"
	"github.com/agentx-labs/codebuilder/internal/lookup"
	"github.com/agentx-labs/codebuilder/internal/property"
	"github.com/agentx-labs/codebuilder/internal/registry"
)

// DefaultMaxDepth bounds the nesting of the tree.
const DefaultMaxDepth = 64

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for debug tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// WithCoreVersion sets the target core version used to pick component
// variants. It is also supplied as the root's core_version property when
// the root schema has one and the request leaves it unset; a core_version
// resolved on the root takes precedence for the rest of the build.
func WithCoreVersion(v string) Option {
	return func(b *Builder) { b.coreVersion = v }
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(d int) Option {
	return func(b *Builder) {
		if d > 0 {
			b.maxDepth = d
		}
	}
}

// Builder builds component trees. It is safe to reuse; each Build call is an
// independent run with its own counters.
type Builder struct {
	reg         *registry.Registry
	lookup      lookup.Service
	logger      zerolog.Logger
	coreVersion string
	maxDepth    int
}

// New returns a Builder over the given registry and lookup service.
func New(reg *registry.Registry, svc lookup.Service, opts ...Option) *Builder {
	b := &Builder{
		reg:      reg,
		lookup:   svc,
		logger:   zerolog.Nop(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type run struct {
	b           *Builder
	tree        *Tree
	counters    *property.Counters
	coreVersion string
	byIdentity  map[string]*Node
	errs        []error
}

// Build expands rootType with rootData into a complete tree. rootData is
// treated as human input: internal properties are rejected.
//
// User input errors in independent branches are collected and returned
// joined. Structural errors abort immediately.
func (b *Builder) Build(rootType string, rootData property.Values) (*Tree, error) {
	r := &run{
		b:           b,
		tree:        &Tree{},
		counters:    property.NewCounters(),
		coreVersion: b.coreVersion,
		byIdentity:  make(map[string]*Node),
	}

	root, err := r.newRoot(rootType, rootData)
	if err != nil {
		return nil, builderr.Wrap("", rootType, err)
	}
	if cv := root.Data.String("core_version"); cv != "" {
		r.coreVersion = cv
	}

	if err := r.expand(root, 1); err != nil {
		return nil, err
	}
	if len(r.errs) > 0 {
		return nil, errors.Join(r.errs...)
	}
	if err := r.attach(); err != nil {
		return nil, err
	}

	b.logger.Debug().
		Int("nodes", len(r.tree.nodes)).
		Str("core_version", r.coreVersion).
		Msg("component tree built")
	return r.tree, nil
}

func (r *run) newRoot(typ string, data property.Values) (*Node, error) {
	v, err := r.b.reg.Resolve(typ, r.coreVersion)
	if err != nil {
		return nil, err
	}
	schema := v.Component.Schema()
	if _, ok := schema.Get("core_version"); ok && r.b.coreVersion != "" && !data.Has("core_version") {
		data = data.Clone()
		data["core_version"] = r.b.coreVersion
	}
	resolved, err := property.Resolve(schema, data, &property.Context{
		Lookup:   r.b.lookup,
		Counters: r.counters,
		External: true,
	})
	if err != nil {
		return nil, err
	}
	root := r.add(nil, component.ChildSpec{Type: typ}, v, resolved)
	r.tree.Root = root
	return root, nil
}

// add creates a node and registers it with the tree.
func (r *run) add(parent *Node, spec component.ChildSpec, v *registry.Variant, data property.Values) *Node {
	n := &Node{
		ID:         len(r.tree.nodes),
		Key:        spec.Key,
		Type:       spec.Type,
		Data:       data,
		Parent:     parent,
		Requested:  make(map[string]*Node),
		RoleSuffix: spec.RoleSuffix,
		variant:    v,
		identity:   identityOf(spec.Type, v.Component.Schema(), data),
	}
	switch {
	case parent == nil || v.Assembly():
		// Root and assembly nodes attach nowhere.
	case spec.Address != "":
		n.Address = spec.Address
		n.addressFromSpec = true
	default:
		n.Address = v.Component.AttachmentAddress(data)
		if n.Address == "" {
			n.Address = component.Requester
		}
	}

	r.tree.nodes = append(r.tree.nodes, n)
	if v.Handling == component.Singleton {
		r.byIdentity[n.identity] = n
	}
	if parent != nil {
		parent.Children = append(parent.Children, n)
	}

	r.b.logger.Debug().
		Int("id", n.ID).
		Str("path", n.Path()).
		Str("type", n.Type).
		Str("identity", n.identity).
		Msg("component created")
	return n
}

// expand requests the children of n. Keys n already issued are skipped, so
// expand can be called again after a merge changed n's data.
func (r *run) expand(n *Node, depth int) error {
	if depth > r.b.maxDepth {
		return builderr.Wrap(n.Path(), n.Type, builderr.Definitionf("component tree exceeds maximum depth %d", r.b.maxDepth))
	}
	specs, err := n.Component().RequiredChildren(n.Data)
	if err != nil {
		return builderr.Wrap(n.Path(), n.Type, err)
	}

	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if spec.Key == "" || strings.Contains(spec.Key, ":") {
			return builderr.Wrap(n.Path(), n.Type, builderr.Definitionf("invalid child key %q", spec.Key))
		}
		if seen[spec.Key] {
			return builderr.Wrap(n.Path(), n.Type, builderr.Definitionf("duplicate child key %q", spec.Key))
		}
		seen[spec.Key] = true
		if _, done := n.Requested[spec.Key]; done {
			continue
		}

		if err := r.request(n, spec, depth); err != nil {
			path := joinPath(n.Path(), spec.Key)
			err = builderr.Wrap(path, spec.Type, err)
			if builderr.IsUserInput(err) && !builderr.IsStructural(err) {
				r.errs = append(r.errs, err)
				continue
			}
			return err
		}
	}
	return nil
}

// request satisfies one child spec of parent, by creating a node or by
// merging into an existing singleton.
func (r *run) request(parent *Node, spec component.ChildSpec, depth int) error {
	v, err := r.b.reg.Resolve(spec.Type, r.coreVersion)
	if err != nil {
		return err
	}
	data, err := property.Resolve(v.Component.Schema(), spec.Data, &property.Context{
		Lookup:   r.b.lookup,
		Counters: r.counters,
		Parents:  parent.ancestors(),
		Root:     r.tree.Root.Data,
	})
	if err != nil {
		return err
	}

	if v.Handling == component.Singleton {
		id := identityOf(spec.Type, v.Component.Schema(), data)
		if existing, ok := r.byIdentity[id]; ok {
			parent.request(spec.Key, existing)
			return r.mergeInto(existing, spec, data)
		}
	}

	n := r.add(parent, spec, v, data)
	parent.request(spec.Key, n)
	return r.expand(n, depth+1)
}

func (r *run) mergeInto(existing *Node, spec component.ChildSpec, incoming property.Values) error {
	if spec.RoleSuffix != existing.RoleSuffix {
		return builderr.Definitionf("request for %s conflicts with existing role suffix %q", existing.identity, existing.RoleSuffix)
	}

	var (
		merged  property.Values
		changed bool
	)
	if m, ok := existing.Component().(component.Merger); ok {
		var err error
		merged, changed, err = m.Merge(existing.Data, incoming)
		if err != nil {
			return err
		}
	} else {
		merged, changed = unionArrays(existing.Component().Schema(), existing.Data, incoming)
	}

	r.b.logger.Debug().
		Int("id", existing.ID).
		Str("identity", existing.identity).
		Bool("changed", changed).
		Msg("component merged")

	if !changed {
		return nil
	}
	existing.Data = merged
	return r.expand(existing, existing.depth())
}

// unionArrays merges the list properties of incoming into existing, keeping
// order and dropping duplicates. Other properties keep the existing value.
func unionArrays(schema *property.Schema, existing, incoming property.Values) (property.Values, bool) {
	out := existing.Clone()
	changed := false
	for _, d := range schema.Definitions() {
		switch d.Kind {
		case property.KindStrings:
			cur := out.Strings(d.Name)
			for _, s := range incoming.Strings(d.Name) {
				if !slices.Contains(cur, s) {
					cur = append(cur, s)
					changed = true
				}
			}
			if cur != nil {
				out[d.Name] = cur
			}
		case property.KindNested:
			cur := out.Nested(d.Name)
			for _, item := range incoming.Nested(d.Name) {
				if !slices.ContainsFunc(cur, func(m map[string]any) bool { return reflect.DeepEqual(m, item) }) {
					cur = append(cur, item)
					changed = true
				}
			}
			if cur != nil {
				out[d.Name] = cur
			}
		}
	}
	return out, changed
}

// attach resolves every attachment address once the tree is complete and
// rejects cycles in the resulting attachment graph.
func (r *run) attach() error {
	root := r.tree.Root
	for _, n := range r.tree.nodes {
		if n.Address == "" {
			continue
		}
		self := n
		if n.addressFromSpec {
			self = n.Parent
		}
		target, err := resolveAddress(n.Address, self, n.Parent, root)
		if err != nil {
			return builderr.Wrap(n.Path(), n.Type, err)
		}
		n.Target = target
	}

	for _, n := range r.tree.nodes {
		seen := make(map[*Node]bool)
		for cur := n; cur != nil; cur = cur.Target {
			if seen[cur] {
				return builderr.Wrap(n.Path(), n.Type, &builderr.UnresolvedAttachmentError{
					Address: n.Address,
					Message: fmt.Sprintf("attachment cycle through %s", describe(cur)),
				})
			}
			seen[cur] = true
		}
	}
	return nil
}

func (n *Node) depth() int {
	d := 0
	for cur := n; cur != nil; cur = cur.Parent {
		d++
	}
	return d
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + ":" + key
}
