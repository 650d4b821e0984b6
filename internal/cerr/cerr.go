// Package cerr defines the compiler's error taxonomy. The parser (including
// the lexical errors it receives from the lexer), the semantic passes and the
// driver report failures as a *cerr.Error so the driver can print one
// diagnostic line and exit, per the "first error aborts the compilation"
// model: there is no error recovery anywhere in this pipeline. The passes
// after semantic analysis (TAC generation through emission) return no error;
// a violated invariant there, such as a pseudo reaching the emitter, is a
// panic rather than an Internal *cerr.Error.
package cerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Kind classifies a compiler error. The driver uses Kind to decide whether to
// print a user-facing diagnostic or an "internal error" line.
type Kind int

const (
	Lexical Kind = iota
	Syntactic
	DuplicateDeclaration
	UndeclaredIdentifier
	InvalidLvalue
	NestedFunctionDefinition
	MisplacedBreak
	MisplacedContinue
	IncompatibleDeclaration
	Redefinition
	Internal
	IO
	ExternalTool
)

// kindNames gives a print friendly label for each Kind.
var kindNames = [...]string{
	"lexical error",
	"syntax error",
	"duplicate declaration",
	"undeclared identifier",
	"invalid lvalue",
	"nested function definition",
	"misplaced break",
	"misplaced continue",
	"incompatible declaration",
	"redefinition",
	"internal error",
	"I/O error",
	"external tool error",
}

// Pos is a source position, duplicated here (rather than imported from
// frontend) so cerr has no dependency on any pass; every pass depends on
// cerr, not the other way around.
type Pos struct {
	Line int
	Col  int
}

// Error is the concrete error type produced by every pass. It wraps an
// optional underlying cause with github.com/pkg/errors so internal callers
// can recover a stack trace (via errors.Cause / %+v) for verbose
// diagnostics, while the driver prints just Error()'s single line.
type Error struct {
	Kind Kind
	Pos  Pos // zero value if the error has no associated source position.
	Msg  string
	Hint string
	err  error // underlying cause, wrapped with errors.WithStack; nil if none.
}

// ---------------------
// ----- Functions -----
// ---------------------

// New creates an Error with no source position, e.g. for driver/IO failures.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// At creates an Error anchored to a source position.
func At(kind Kind, pos Pos, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error that carries cause as its underlying error, so
// errors.Cause(e) recovers the original failure (e.g. an *os.PathError).
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), err: errors.WithStack(cause)}
}

// Error implements the error interface with the single line the driver
// prints to stderr.
func (e *Error) Error() string {
	if e.Pos.Line > 0 {
		if e.Hint != "" {
			return fmt.Sprintf("%s: line %d:%d: %s (%s)", kindNames[e.Kind], e.Pos.Line, e.Pos.Col, e.Msg, e.Hint)
		}
		return fmt.Sprintf("%s: line %d:%d: %s", kindNames[e.Kind], e.Pos.Line, e.Pos.Col, e.Msg)
	}
	return fmt.Sprintf("%s: %s", kindNames[e.Kind], e.Msg)
}

// Unwrap exposes the underlying cause, if any, to errors.As/errors.Is and to
// github.com/pkg/errors' Cause.
func (e *Error) Unwrap() error {
	return e.err
}

// Cause implements the interface github.com/pkg/errors.Cause recognizes.
func (e *Error) Cause() error {
	return e.err
}

// IsInternal reports whether err represents a violated compiler invariant
// rather than a user-facing diagnostic, so the driver can exit with a
// distinct status code for it (cmd/cc/main.go).
func IsInternal(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == Internal
	}
	return false
}
