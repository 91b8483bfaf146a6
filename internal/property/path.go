package property

import (
	"fmt"
	"strings"
)

// pathRef is a parsed property path.
//
// Grammar, tokens separated by ':':
//
//	name            property of the same data set
//	..:name         property of the requesting component
//	..:..:name      one more level up per ".."
//	%root:name      property of the root component
type pathRef struct {
	up   int  // number of ".." tokens
	root bool // starts at the root component
	name string
}

func (r pathRef) local() bool {
	return r.up == 0 && !r.root
}

func parsePath(p string) (pathRef, error) {
	tokens := strings.Split(p, ":")
	var ref pathRef
	for i, tok := range tokens {
		last := i == len(tokens)-1
		switch {
		case tok == "..":
			if last || ref.root {
				return ref, fmt.Errorf("invalid property path %q", p)
			}
			ref.up++
		case tok == "%root":
			if last || i != 0 {
				return ref, fmt.Errorf("invalid property path %q", p)
			}
			ref.root = true
		case tok == "":
			return ref, fmt.Errorf("empty token in property path %q", p)
		default:
			if !last {
				return ref, fmt.Errorf("property path %q: %q must be the last token", p, tok)
			}
			ref.name = tok
		}
	}
	return ref, nil
}
