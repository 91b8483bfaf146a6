// Package compose walks a built component tree bottom-up along attachment
// edges and collects the artifacts emitted by assembly nodes.
package compose

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentx-labs/codebuilder/internal/builderr"
	"github.com/agentx-labs/codebuilder/internal/component"
	"github.com/agentx-labs/codebuilder/internal/tree"
)

// ModuleToken in an artifact path, filename or body is replaced with the
// root component's root_name.
const ModuleToken = "%module"

// Option configures a Composer.
type Option func(*Composer)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Composer) { c.logger = l }
}

// Composer turns a tree into artifacts.
type Composer struct {
	logger zerolog.Logger
}

// New returns a Composer.
func New(opts ...Option) *Composer {
	c := &Composer{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type walk struct {
	attached map[*tree.Node][]*tree.Node
	out      map[*tree.Node][]component.Fragment
}

// Compose produces the artifacts of every assembly node in creation order.
//
// Each node's ProduceContent receives the fragments of all nodes attached to
// it, in creation order, after those nodes have produced their own. The
// fragments of a node whose request carried a role suffix have the suffix
// appended. Fragments that reach a node with no target that is not an
// assembly node (the root) are logged and dropped.
func (c *Composer) Compose(t *tree.Tree) ([]component.Artifact, error) {
	if t == nil || t.Root == nil {
		return nil, errors.New("compose: empty tree")
	}

	w := &walk{
		attached: make(map[*tree.Node][]*tree.Node),
		out:      make(map[*tree.Node][]component.Fragment),
	}
	for _, n := range t.Nodes() {
		if n.Target != nil {
			w.attached[n.Target] = append(w.attached[n.Target], n)
		}
	}

	moduleName := t.Root.Data.String("root_name")
	var artifacts []component.Artifact

	for _, n := range t.Nodes() {
		if n.Target != nil {
			continue
		}
		frags, err := w.collect(n)
		if err != nil {
			return nil, err
		}

		if asm, ok := n.Component().(component.Assembler); ok {
			arts, err := asm.Assemble(n.Data, frags)
			if err != nil {
				return nil, builderr.Wrap(n.Path(), n.Type, err)
			}
			for _, a := range arts {
				a = substituteModule(a, moduleName)
				c.logger.Debug().
					Str("path", a.RelPath()).
					Str("component", n.Type).
					Int("pieces", len(a.Body)).
					Msg("artifact assembled")
				artifacts = append(artifacts, a)
			}
			continue
		}

		own, err := n.Component().ProduceContent(n.Data, frags)
		if err != nil {
			return nil, builderr.Wrap(n.Path(), n.Type, err)
		}
		for _, f := range own {
			c.logger.Warn().
				Str("component", n.Type).
				Str("fragment", f.Name).
				Str("role", f.Role).
				Msg("fragment has no assembly target; dropped")
		}
	}
	return artifacts, nil
}

// collect returns the output of every node attached to n, in creation order.
func (w *walk) collect(n *tree.Node) ([]component.Fragment, error) {
	var frags []component.Fragment
	for _, child := range w.attached[n] {
		out, err := w.output(child)
		if err != nil {
			return nil, err
		}
		frags = append(frags, out...)
	}
	return frags, nil
}

// output returns the fragments n passes to its target. Each node produces
// content once.
func (w *walk) output(n *tree.Node) ([]component.Fragment, error) {
	if out, ok := w.out[n]; ok {
		return out, nil
	}
	frags, err := w.collect(n)
	if err != nil {
		return nil, err
	}
	own, err := n.Component().ProduceContent(n.Data, frags)
	if err != nil {
		return nil, builderr.Wrap(n.Path(), n.Type, err)
	}
	own = component.WithSuffix(own, n.RoleSuffix)
	if own == nil {
		own = []component.Fragment{}
	}
	w.out[n] = own
	return own, nil
}

func substituteModule(a component.Artifact, name string) component.Artifact {
	if name == "" {
		return a
	}
	a.Path = strings.ReplaceAll(a.Path, ModuleToken, name)
	a.Filename = strings.ReplaceAll(a.Filename, ModuleToken, name)
	body := make([]string, len(a.Body))
	for i, piece := range a.Body {
		body[i] = strings.ReplaceAll(piece, ModuleToken, name)
	}
	a.Body = body
	return a
}
