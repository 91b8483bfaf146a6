package tree

import (
	"strings"

	"github.com/agentx-labs/codebuilder/internal/component"
	"github.com/agentx-labs/codebuilder/internal/property"
	"github.com/agentx-labs/codebuilder/internal/registry"
)

// Node is one component instance in the tree.
type Node struct {
	// ID is the creation index; it orders fragments and artifacts.
	ID   int
	Key  string // request key under Parent; empty for the root
	Type string
	Data property.Values

	Parent   *Node
	Children []*Node

	// Requested maps every key this node issued to the node that satisfies
	// it, including nodes owned elsewhere that a singleton request merged
	// into.
	Requested map[string]*Node

	// Target receives this node's fragments. Nil for the root and for
	// assembly nodes.
	Target *Node
	// Address is the attachment address Target was resolved from.
	Address string
	// RoleSuffix is appended to the role of every emitted fragment.
	RoleSuffix string

	variant  *registry.Variant
	identity string

	// addressFromSpec marks an address supplied by the requester, where
	// %self refers to the requester.
	addressFromSpec bool
	// requestOrder lists Requested keys in the order they were issued.
	requestOrder []string
}

// Component returns the implementation backing the node.
func (n *Node) Component() component.Component {
	return n.variant.Component
}

// Handling returns whether the node's type is singleton or repeatable.
func (n *Node) Handling() component.Handling {
	return n.variant.Handling
}

// Assembly reports whether the node emits artifacts.
func (n *Node) Assembly() bool {
	return n.variant.Assembly()
}

// Path returns the colon separated request keys from the root.
func (n *Node) Path() string {
	var keys []string
	for cur := n; cur != nil && cur.Parent != nil; cur = cur.Parent {
		keys = append(keys, cur.Key)
	}
	for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
		keys[i], keys[j] = keys[j], keys[i]
	}
	return strings.Join(keys, ":")
}

// Identity returns the dedup identity: type and primary values.
func (n *Node) Identity() string {
	return n.identity
}

// RequestedKeys returns the keys of Requested in issue order.
func (n *Node) RequestedKeys() []string {
	return n.requestOrder
}

func (n *Node) request(key string, child *Node) {
	if _, ok := n.Requested[key]; !ok {
		n.requestOrder = append(n.requestOrder, key)
	}
	n.Requested[key] = child
}

// ancestors returns the data of the requesting chain, nearest first.
func (n *Node) ancestors() []property.Values {
	var out []property.Values
	for cur := n; cur != nil; cur = cur.Parent {
		out = append(out, cur.Data)
	}
	return out
}

func identityOf(typ string, schema *property.Schema, data property.Values) string {
	parts := []string{typ}
	for _, name := range schema.Primary() {
		parts = append(parts, data.String(name))
	}
	return strings.Join(parts, "|")
}
