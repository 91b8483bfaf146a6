package compose

import (
	"strings"

	"github.com/agentx-labs/codebuilder/internal/component"
)

// Render returns the file text of an artifact: the body joined per its join
// policy.
func Render(a component.Artifact) string {
	return strings.Join(a.Body, a.Join.Separator())
}
