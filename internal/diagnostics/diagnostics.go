// Package diagnostics defines the positioned errors reported by the
// lexer, parser, loader and rewriter. Every error carries a stable code
// so callers and tests can match on the failure kind rather than the
// message text.
package diagnostics

import (
	"fmt"

	"github.com/modfuse/modfuse/internal/token"
)

type Code string

const (
	// Parse errors
	ErrP001 Code = "P001" // unexpected token
	ErrP002 Code = "P002" // no parse rule for token

	// Load errors
	ErrL001 Code = "L001" // module source not found
	ErrL002 Code = "L002" // unresolved import/export origin

	// Rewrite errors
	ErrR001 Code = "R001" // imported binding reassigned (user-facing, static)
	ErrR002 Code = "R002" // scope resolution inconsistency (defensive)
)

var messages = map[Code]string{
	ErrP001: "unexpected token %q, expected %s",
	ErrP002: "unexpected token %q in expression",
	ErrL001: "cannot load module %q: %s",
	ErrL002: "cannot resolve %q imported from %q",
	ErrR001: "cannot reassign imported binding %q",
	ErrR002: "expected exactly one declaration for %q, found %d",
}

// DiagnosticError is a positioned, coded error.
type DiagnosticError struct {
	Code    Code
	Message string
	File    string
	Line    int
	Column  int
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: [%s] %s", e.File, e.Line, e.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("%d:%d: [%s] %s", e.Line, e.Column, e.Code, e.Message)
}

// NewError builds a DiagnosticError positioned at tok. args fill the
// code's message template.
func NewError(code Code, tok token.Token, args ...interface{}) *DiagnosticError {
	tmpl, ok := messages[code]
	msg := ""
	if ok {
		msg = fmt.Sprintf(tmpl, args...)
	} else {
		msg = fmt.Sprint(args...)
	}
	return &DiagnosticError{
		Code:    code,
		Message: msg,
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

// WithFile returns e with the source file path attached.
func (e *DiagnosticError) WithFile(file string) *DiagnosticError {
	e.File = file
	return e
}

// IsUserFacing reports whether the error describes a problem in the
// input sources, as opposed to a defensive internal-consistency check.
func (e *DiagnosticError) IsUserFacing() bool {
	return e.Code != ErrR002
}
