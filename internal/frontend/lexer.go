package frontend

import (
	"fmt"
	"unicode/utf8"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// stateFunc defines a state of the lexer. Each stateFunc scans some part of the
// input and returns the stateFunc that should run next, or nil to stop the scan.
type stateFunc func(*lexer) stateFunc

// lexer traverses a source stream rune by rune and produces tokens.
// Unlike the concurrent, channel-based scanner it is modeled on, this lexer
// runs synchronously: the parser pulls tokens one at a time via Next, matching
// the single-threaded, no-task-scheduling shape of this compiler.
type lexer struct {
	input       string // Source stream of characters to scan.
	start       int    // Start position of the token being scanned.
	pos         int    // Current scan position.
	width       int    // Width in bytes of the last rune returned by next.
	line        int    // Current line, not zero indexed.
	startOnLine int    // Column of the token start on the current line, not zero indexed.
	state       stateFunc
	pending     []token // Tokens produced but not yet consumed by Next.
	err         error   // First lexical error encountered, if any.
}

// ---------------------
// ----- Functions -----
// ---------------------

// newLexer creates a lexer ready to scan src.
func newLexer(src string) *lexer {
	return &lexer{
		input:       src,
		line:        1,
		startOnLine: 1,
		state:       lexGlobal,
	}
}

// Next returns the next token in the input, running the state machine until
// one is produced. Once a lexical error has been emitted the state machine
// has stopped, so every subsequent call returns tokEOF: callers are expected
// to stop scanning as soon as they see a tokError, per the "first error
// aborts" model (spec.md §5).
func (l *lexer) Next() token {
	for len(l.pending) == 0 {
		if l.state == nil {
			return token{typ: tokEOF, line: l.line, col: l.startOnLine}
		}
		l.state = l.state(l)
	}
	t := l.pending[0]
	l.pending = l.pending[1:]
	return t
}

// emit appends a token of type typ spanning the text scanned since the last
// emit or ignore call.
func (l *lexer) emit(typ tokenType) {
	l.pending = append(l.pending, token{
		typ:  typ,
		val:  l.input[l.start:l.pos],
		line: l.line,
		col:  l.startOnLine,
	})
	l.startOnLine += l.pos - l.start
	l.start = l.pos
}

// next returns the next rune in the input, advancing the scan position.
// Using runes keeps the lexer UTF-8 aware even though the grammar itself
// only recognizes ASCII lexemes.
func (l *lexer) next() (r rune) {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += l.width
	return r
}

// ignore skips over the pending input before this point.
func (l *lexer) ignore() {
	l.startOnLine += l.pos - l.start
	l.start = l.pos
}

// backup steps back one rune. Must only be called once per call to next.
func (l *lexer) backup() {
	if l.pos > l.start {
		l.pos -= l.width
	}
}

// peek returns, without consuming, the next rune in the input.
func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// errorf records a lexical error and stops the state machine.
func (l *lexer) errorf(format string, args ...interface{}) stateFunc {
	l.pending = append(l.pending, token{
		typ:  tokError,
		val:  fmt.Sprintf(format, args...),
		line: l.line,
		col:  l.startOnLine,
	})
	return nil
}
