// Package builderr defines the error taxonomy shared by the resolver, the
// tree builder and the composer. Every error belongs to one of two classes:
// user input problems (ErrUserInput) that a person can fix by editing the
// request, and structural problems (ErrStructural) that point at a broken
// component definition.
package builderr

import (
	"errors"
	"fmt"
	"strings"
)

// Class sentinels. Use errors.Is to classify any error returned by the engine.
var (
	// ErrUserInput marks errors caused by the request data.
	ErrUserInput = errors.New("codebuilder: invalid request")
	// ErrStructural marks errors caused by a malformed component definition.
	ErrStructural = errors.New("codebuilder: malformed component definition")
)

// MissingRequiredValueError reports a required property that has neither a
// supplied value nor a default.
type MissingRequiredValueError struct {
	Property string
}

func (e *MissingRequiredValueError) Error() string {
	return fmt.Sprintf("missing required value for %q", e.Property)
}

// Is reports whether target is the user input class sentinel.
func (e *MissingRequiredValueError) Is(target error) bool {
	return target == ErrUserInput
}

// CyclicDefaultError reports a cycle among default dependencies.
type CyclicDefaultError struct {
	Cycle []string
}

func (e *CyclicDefaultError) Error() string {
	return "cyclic default dependencies: " + strings.Join(e.Cycle, " -> ")
}

// Is reports whether target is the structural class sentinel.
func (e *CyclicDefaultError) Is(target error) bool {
	return target == ErrStructural
}

// ValidationError reports a property value rejected by its validator or by
// its kind.
type ValidationError struct {
	Property string
	Message  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %q: %s", e.Property, e.Message)
}

// Is reports whether target is the user input class sentinel.
func (e *ValidationError) Is(target error) bool {
	return target == ErrUserInput
}

// InvalidInputError reports an unknown identifier supplied by the user, such
// as an unknown component type, plugin type or service id.
type InvalidInputError struct {
	Subject string // what was looked up, e.g. "plugin type"
	Value   string
	Message string
}

func (e *InvalidInputError) Error() string {
	var b strings.Builder
	b.WriteString("invalid input")
	if e.Subject != "" {
		b.WriteString(" for ")
		b.WriteString(e.Subject)
	}
	if e.Value != "" {
		b.WriteString(" ")
		b.WriteString(fmt.Sprintf("%q", e.Value))
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether target is the user input class sentinel.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrUserInput
}

// UnresolvedAttachmentError reports an attachment address that does not
// name a node present in the finished tree.
type UnresolvedAttachmentError struct {
	Address string
	Token   string
	Message string
}

func (e *UnresolvedAttachmentError) Error() string {
	msg := fmt.Sprintf("unresolved attachment %q", e.Address)
	if e.Token != "" {
		msg += fmt.Sprintf(" at token %q", e.Token)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target is the structural class sentinel.
func (e *UnresolvedAttachmentError) Is(target error) bool {
	return target == ErrStructural
}

// DefinitionError reports any other contract violation by a component type:
// overlapping processing targets, undeclared dependency reads, bad child
// keys and the like.
type DefinitionError struct {
	Message string
	Cause   error
}

func (e *DefinitionError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DefinitionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the structural class sentinel.
func (e *DefinitionError) Is(target error) bool {
	return target == ErrStructural
}

// Definitionf builds a DefinitionError from a format string.
func Definitionf(format string, args ...any) *DefinitionError {
	return &DefinitionError{Message: fmt.Sprintf(format, args...)}
}

// BuildError attaches a component path and type to an error raised while
// building or composing that component.
type BuildError struct {
	Path string // colon-separated request keys from the root
	Type string // component type
	Err  error
}

func (e *BuildError) Error() string {
	var b strings.Builder
	b.WriteString("component")
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.Type != "" {
		b.WriteString(" (")
		b.WriteString(e.Type)
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

// Unwrap returns the wrapped error.
func (e *BuildError) Unwrap() error {
	return e.Err
}

// Wrap returns err wrapped in a BuildError, or nil when err is nil. An error
// that already carries a path is returned unchanged so the innermost path
// wins.
func Wrap(path, typ string, err error) error {
	if err == nil {
		return nil
	}
	var be *BuildError
	if errors.As(err, &be) {
		return err
	}
	return &BuildError{Path: path, Type: typ, Err: err}
}

// IsUserInput reports whether err belongs to the user input class.
func IsUserInput(err error) bool {
	return errors.Is(err, ErrUserInput)
}

// IsStructural reports whether err belongs to the structural class.
func IsStructural(err error) bool {
	return errors.Is(err, ErrStructural)
}
