package runtime

import "fmt"

// ErrorKind enumerates the run-time failure taxonomy.
type ErrorKind string

const (
	ErrUndefinedVariable     ErrorKind = "UndefinedVariable"
	ErrDuplicateDefinition   ErrorKind = "DuplicateDefinition"
	ErrImmutableReassignment ErrorKind = "ImmutableReassignment"
	ErrArityMismatch         ErrorKind = "ArityMismatch"
	ErrTypeMismatch          ErrorKind = "TypeMismatch"
	ErrNotCallable           ErrorKind = "NotCallable"
	ErrNoMatch               ErrorKind = "NoMatchError"
	ErrIndexOutOfRange       ErrorKind = "IndexOutOfRange"
	ErrKeyNotFound           ErrorKind = "KeyNotFound"
	ErrDivisionByZero        ErrorKind = "DivisionByZero"
	ErrStrandPropagated      ErrorKind = "StrandPropagatedError"
)

// Error is the structured failure surfaced by evaluation. Line/Column are
// zero when the AST carried no position.
type Error struct {
	Kind    ErrorKind
	Message string
	Line    int
	Column  int
	Cause   *Error
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d, column %d)", e.Kind, e.Message, e.Line, e.Column)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// At stamps a source position onto the error unless one is already set.
func (e *Error) At(line, column int) *Error {
	if e.Line == 0 && line > 0 {
		e.Line = line
		e.Column = column
	}
	return e
}

// WrapStrand marks an error as having crossed a strand boundary.
func WrapStrand(cause *Error) *Error {
	return &Error{
		Kind:    ErrStrandPropagated,
		Message: fmt.Sprintf("strand failed: %s", cause.Message),
		Line:    cause.Line,
		Column:  cause.Column,
		Cause:   cause,
	}
}
