package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the fragment lifecycle the error occurred
type Phase string

const (
	PhaseBootstrap Phase = "bootstrap" // host bootstrap hook
	PhaseMount     Phase = "mount"     // host mount hook
	PhaseUpdate    Phase = "update"    // host update hook
	PhaseUnmount   Phase = "unmount"   // host unmount hook
	PhaseGeometry  Phase = "geometry"  // container height sync
	PhaseModule    Phase = "module"    // embedded module invocation
	PhaseLoad      Phase = "load"      // module compile/instantiate
	PhaseConfig    Phase = "config"    // configuration
	PhaseHost      Phase = "host"      // host orchestrator registry
)

// Kind categorizes the error
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindInvalidInput      Kind = "invalid_input"
	KindFieldMissing      Kind = "field_missing"
	KindInvalidState      Kind = "invalid_state"
	KindModuleFault       Kind = "module_fault"
	KindInstantiation     Kind = "instantiation"
	KindSignatureMismatch Kind = "signature_mismatch"
)

// ErrElementNotFound matches any error raised when the container locator
// resolves to nothing in the host page.
var ErrElementNotFound = &Error{Phase: PhaseGeometry, Kind: KindNotFound}

// Error is the structured error type used throughout the adapter
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// ElementNotFound creates the geometry error for a locator that matched nothing
func ElementNotFound(locator string) *Error {
	return &Error{
		Phase:  PhaseGeometry,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("no element matches %q", locator),
		Value:  locator,
	}
}

// InvalidHeight creates an invalid input error for a height that cannot be applied
func InvalidHeight(phase Phase, value any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Path:   []string{"height"},
		Detail: fmt.Sprintf("height must be a finite non-negative number, got %v", value),
		Value:  value,
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   []string{fieldName},
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// InvalidTransition creates an invalid state error for a lifecycle call
// the current state does not accept
func InvalidTransition(phase Phase, from fmt.Stringer) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidState,
		Detail: fmt.Sprintf("%s not allowed in state %s", phase, from),
		Value:  from,
	}
}

// ModuleFault wraps a fault raised inside the embedded module
func ModuleFault(entry string, cause error) *Error {
	return &Error{
		Phase:  PhaseModule,
		Kind:   KindModuleFault,
		Path:   []string{entry},
		Detail: "entry point failed",
		Cause:  cause,
	}
}

// SignatureMismatch creates an error for an import or export whose core
// signature differs from the declared one
func SignatureMismatch(name, want, got string) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindSignatureMismatch,
		Path:   []string{name},
		Detail: fmt.Sprintf("want %s, got %s", want, got),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Instantiation creates an instantiation error
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInstantiation,
		Detail: "instantiate module",
		Cause:  cause,
	}
}

// Load creates a module loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
