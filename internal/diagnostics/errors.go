package diagnostics

import (
	"fmt"

	"github.com/funvibe/regionck/internal/token"
)

type ErrorCode string

const (
	ErrR001 ErrorCode = "R001" // region mismatch
	ErrR002 ErrorCode = "R002" // region not allowed here
	ErrR003 ErrorCode = "R003" // definition scope-escape
	ErrR004 ErrorCode = "R004" // handler scope-escape
	ErrR005 ErrorCode = "R005" // internal invariant violation
)

func (c ErrorCode) Description() string {
	switch c {
	case ErrR001:
		return "region mismatch"
	case ErrR002:
		return "region not allowed here"
	case ErrR003:
		return "value leaves the scope of its definition"
	case ErrR004:
		return "capability leaves the scope of its handler"
	case ErrR005:
		return "internal region checker error"
	default:
		return string(c)
	}
}

// DiagnosticError is the single fatal diagnostic of a failed region check.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	Message string
	Trace   Trace // optional provenance trace
	Err     error // underlying cause, if any
}

func NewError(code ErrorCode, tok token.Token, format string, args ...any) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches the underlying cause.
func (e *DiagnosticError) Wrap(err error) *DiagnosticError {
	e.Err = err
	return e
}

// WithTrace attaches a provenance trace. An empty trace leaves the bare message.
func (e *DiagnosticError) WithTrace(t Trace) *DiagnosticError {
	e.Trace = t
	return e
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Token.Position(), e.Code, e.Message)
}

func (e *DiagnosticError) Unwrap() error {
	return e.Err
}
