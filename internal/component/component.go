// Package component defines the contract every generator type implements and
// the values that flow between the tree builder and the composer.
package component

import (
	"github.com/agentx-labs/codebuilder/internal/property"
)

// Address tokens understood by the tree builder. Any other token is a child
// key looked up on the node resolved so far; a leading plain token starts at
// the root.
const (
	Self      = "%self"
	Requester = "%requester"
)

// Handling says what happens when a second request arrives for a component
// that already exists with the same identity.
type Handling int

const (
	// Singleton requests share one node; the later request is merged in.
	Singleton Handling = iota
	// Repeatable requests always create a new node.
	Repeatable
)

func (h Handling) String() string {
	if h == Repeatable {
		return "repeatable"
	}
	return "singleton"
}

// Component is a generator type. Implementations hold no per-node state:
// everything a node knows lives in its resolved data.
type Component interface {
	// Schema describes the component's data.
	Schema() *property.Schema
	// RequiredChildren lists the child components this node needs.
	RequiredChildren(data property.Values) ([]ChildSpec, error)
	// AttachmentAddress names the node that receives this node's fragments.
	AttachmentAddress(data property.Values) string
	// ProduceContent turns the fragments of attached nodes into this node's
	// own fragments.
	ProduceContent(data property.Values, children []Fragment) ([]Fragment, error)
}

// Assembler is implemented by assembly components. Their nodes emit output
// artifacts instead of fragments and attach nowhere.
type Assembler interface {
	Assemble(data property.Values, children []Fragment) ([]Artifact, error)
}

// Merger is implemented by singleton components that need control over how a
// repeated request folds into the existing node. It returns the merged data
// and whether anything changed.
type Merger interface {
	Merge(existing, incoming property.Values) (property.Values, bool, error)
}

// ChildSpec is one entry of a RequiredChildren result.
type ChildSpec struct {
	// Key is unique among the specs of one requester. It must not contain ':'.
	Key  string
	Type string
	Data property.Values

	// Address overrides the child's own attachment address. %self and
	// %requester both refer to the requesting node.
	Address string

	// RoleSuffix is appended to the role of every fragment the child emits.
	RoleSuffix string
}

// Fragment is a unit of content tagged with a role. Payload is a contract
// between producer and consumer.
type Fragment struct {
	Name    string
	Role    string
	Payload any
}

// JoinPolicy controls how artifact body pieces are concatenated.
type JoinPolicy int

const (
	// JoinNewline joins pieces with "\n".
	JoinNewline JoinPolicy = iota
	// JoinNone concatenates pieces that carry their own line endings.
	JoinNone
)

func (j JoinPolicy) String() string {
	if j == JoinNone {
		return "none"
	}
	return "newline"
}

// Separator returns the string placed between body pieces.
func (j JoinPolicy) Separator() string {
	if j == JoinNone {
		return ""
	}
	return "\n"
}

// Artifact is a finished output file.
type Artifact struct {
	Path     string // directory relative to the module root; "" for the root
	Filename string
	Body     []string
	Join     JoinPolicy
}

// RelPath returns the artifact path joined with its filename using '/'.
func (a Artifact) RelPath() string {
	if a.Path == "" {
		return a.Filename
	}
	return a.Path + "/" + a.Filename
}

// Base provides the defaults of the contract: no children, attachment to the
// requester and no content. Concrete components embed it.
type Base struct{}

// RequiredChildren returns no children.
func (Base) RequiredChildren(property.Values) ([]ChildSpec, error) { return nil, nil }

// AttachmentAddress returns %requester.
func (Base) AttachmentAddress(property.Values) string { return Requester }

// ProduceContent passes nothing on.
func (Base) ProduceContent(property.Values, []Fragment) ([]Fragment, error) { return nil, nil }
