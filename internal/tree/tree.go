package tree

import (
	"fmt"
	"io"
	"strings"
)

// Tree is a built component tree.
type Tree struct {
	Root  *Node
	nodes []*Node
}

// Nodes returns every node in creation order.
func (t *Tree) Nodes() []*Node {
	return t.nodes
}

// Walk calls fn for every node in creation order, stopping at the first
// error.
func (t *Tree) Walk(fn func(n *Node) error) error {
	for _, n := range t.nodes {
		if err := fn(n); err != nil {
			return err
		}
	}
	return nil
}

// Find returns the node reached by following request keys from the root,
// e.g. "hooks:hook_menu". The empty path is the root.
func (t *Tree) Find(path string) (*Node, bool) {
	cur := t.Root
	if path == "" {
		return cur, cur != nil
	}
	for _, key := range strings.Split(path, ":") {
		next, ok := cur.Requested[key]
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Print writes the ownership tree with box-drawing characters. Requests
// satisfied by a node owned elsewhere are listed as shared leaves;
// redirected attachments are shown with an arrow.
func (t *Tree) Print(w io.Writer) {
	if t.Root == nil {
		return
	}
	fmt.Fprintf(w, "  %s\n", t.Root.Type)
	printChildren(w, t.Root, "")
}

func printChildren(w io.Writer, n *Node, prefix string) {
	keys := n.RequestedKeys()
	for i, key := range keys {
		child := n.Requested[key]
		isLast := i == len(keys)-1

		connector := "├── "
		childPrefix := prefix + "│   "
		if isLast {
			connector = "└── "
			childPrefix = prefix + "    "
		}

		if child.Parent != n || child.Key != key {
			fmt.Fprintf(w, "  %s%s%s: %s (shared)\n", prefix, connector, key, child.Type)
			continue
		}
		fmt.Fprintf(w, "  %s%s%s\n", prefix, connector, nodeLabel(child))
		printChildren(w, child, childPrefix)
	}
}

func nodeLabel(n *Node) string {
	label := fmt.Sprintf("%s: %s", n.Key, n.Type)
	switch {
	case n.Assembly():
		label += " [file]"
	case n.Target != nil && n.Target != n.Parent:
		label += " -> " + displayPath(n.Target)
	}
	return label
}

func displayPath(n *Node) string {
	if p := n.Path(); p != "" {
		return p
	}
	return n.Type
}
