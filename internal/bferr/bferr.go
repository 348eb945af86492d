// Package bferr defines BAF's closed error taxonomy (spec.md §7) and the
// breadcrumb trail attached to every error as it propagates out of the
// datum tree.
package bferr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the closed set of error categories BAF can raise.
type Kind string

const (
	KindParseError          Kind = "ParseError"
	KindMissingField        Kind = "MissingField"
	KindTypeMismatch        Kind = "TypeMismatch"
	KindValidationError     Kind = "ValidationError"
	KindArrayLengthMismatch Kind = "ArrayLengthMismatch"
	KindCyclicDependency    Kind = "CyclicDependency"
	KindFileNotFound        Kind = "FileNotFound"
	KindIOError             Kind = "IOError"
	KindSetterError         Kind = "SetterError"
)

// Error is BAF's structured error type: a kind, a message, a breadcrumb
// trail (outermost first), and an optional wrapped cause.
type Error struct {
	Kind       Kind
	Message    string
	Breadcrumb []string
	Cause      error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if len(e.Breadcrumb) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(e.Breadcrumb, " -> "))
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is allows errors.Is(err, bferr.New(KindX, "")) to match on Kind alone.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// New creates a bare Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error of the given kind that preserves cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// WithBreadcrumb returns a copy of err (if it is a *Error, otherwise a new
// SetterError wrapping it) with one more breadcrumb segment prepended at
// the front — the scheduler calls this once per field boundary as the
// error re-raises up the pass, per spec.md §4.6 step 3c.
func WithBreadcrumb(err error, segment string) error {
	var be *Error
	if !errors.As(err, &be) {
		be = &Error{Kind: KindSetterError, Message: err.Error(), Cause: err}
	} else {
		cp := *be
		cp.Breadcrumb = append([]string{segment}, be.Breadcrumb...)
		return &cp
	}
	be.Breadcrumb = []string{segment}
	return be
}

// BlockFieldCrumb formats the breadcrumb segment for a named block field,
// per spec.md §6: `"<BlockTypeName> -> <field_name>: <FieldTypeName>"`.
func BlockFieldCrumb(blockType, fieldName, fieldType string) string {
	return fmt.Sprintf("%s -> %s: %s", blockType, fieldName, fieldType)
}

// ArrayElementCrumb formats the breadcrumb segment for an array element,
// per spec.md §6: `"Array[<ElementTypeName>] -> (element <index>)"`.
func ArrayElementCrumb(elementType string, index int) string {
	return fmt.Sprintf("Array[%s] -> (element %d)", elementType, index)
}
