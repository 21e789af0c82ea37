// Package gerrors defines the runtime error type shared by every component
// of the interpreter core.
package gerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind categorizes a runtime error the way spec §7 lays out the error
// surface. It exists so callers embedding the interpreter (a REPL, a test
// harness) can branch on category without parsing Message.
type Kind string

const (
	TypeMismatch     Kind = "TypeMismatch"
	ArityMismatch    Kind = "ArityMismatch"
	NameError        Kind = "NameError"
	RangeError       Kind = "RangeError"
	StructuralError  Kind = "StructuralError"
	LoaderError      Kind = "LoaderError"
	HostError        Kind = "HostError"
)

// ScriptError is the single error type that ever crosses the Execute
// boundary. All errors are runtime (spec: "no type checking ... all errors
// are runtime"); there is no separate compile-error variant here because
// the parser that would produce one is out of scope.
type ScriptError struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *ScriptError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap lets errors.Is/errors.As see through to the wrapped cause.
func (e *ScriptError) Unwrap() error { return e.cause }

// New builds a ScriptError with no wrapped cause.
func New(kind Kind, format string, args ...interface{}) *ScriptError {
	return &ScriptError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches cause to a new ScriptError via github.com/pkg/errors, which
// preserves cause's stack trace for diagnostics while giving the caller a
// ScriptError to branch on.
func Wrap(cause error, kind Kind, format string, args ...interface{}) *ScriptError {
	return &ScriptError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		cause:   errors.WithStack(cause),
	}
}

// Cause returns the deepest wrapped error, or nil if there is none.
func Cause(err error) error {
	if se, ok := err.(*ScriptError); ok && se.cause != nil {
		return errors.Cause(se.cause)
	}
	return nil
}
