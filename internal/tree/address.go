package tree

import (
	"fmt"
	"strings"

	"github.com/agentx-labs/codebuilder/internal/builderr"
	"github.com/agentx-labs/codebuilder/internal/component"
)

// resolveAddress interprets an attachment address left to right. %self and
// %requester jump to the given nodes; any other token looks up a key the
// current node requested. A leading plain token starts at root.
func resolveAddress(addr string, self, requester, root *Node) (*Node, error) {
	if addr == "" {
		return nil, &builderr.UnresolvedAttachmentError{Message: "empty address"}
	}

	var cur *Node
	for _, tok := range strings.Split(addr, ":") {
		switch tok {
		case component.Self:
			cur = self
		case component.Requester:
			if requester == nil {
				return nil, &builderr.UnresolvedAttachmentError{Address: addr, Token: tok, Message: "the root has no requester"}
			}
			cur = requester
		case "":
			return nil, &builderr.UnresolvedAttachmentError{Address: addr, Message: "empty token"}
		default:
			if cur == nil {
				cur = root
			}
			next, ok := cur.Requested[tok]
			if !ok {
				return nil, &builderr.UnresolvedAttachmentError{
					Address: addr,
					Token:   tok,
					Message: fmt.Sprintf("%s requested no such child", describe(cur)),
				}
			}
			cur = next
		}
	}
	return cur, nil
}

func describe(n *Node) string {
	if n.Parent == nil {
		return n.Type + " (root)"
	}
	return fmt.Sprintf("%s %q", n.Type, n.Path())
}
