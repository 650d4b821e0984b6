// Package frontend lexes and parses the C subset into the syntax tree consumed
// by the rest of the pipeline. The lexer follows Rob Pike's concurrent-state-function
// design (https://talks.golang.org/2011/lex.slide), adapted here to run synchronously
// since the rest of this compiler is single-threaded by design.
package frontend

import "fmt"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// tokenType differentiates the lexemes scanned by the lexer.
type tokenType int

// token is a single lexeme with its source position.
type token struct {
	typ  tokenType
	val  string
	line int
	col  int
}

// ---------------------
// ----- Constants -----
// ---------------------

const eof = 0

const (
	tokEOF tokenType = iota
	tokError

	tokIdent
	tokInt

	// Keywords.
	tokKwInt
	tokKwReturn
	tokKwVoid
	tokKwIf
	tokKwElse
	tokKwWhile
	tokKwDo
	tokKwFor
	tokKwBreak
	tokKwContinue

	// Punctuation and operators.
	tokLParen
	tokRParen
	tokLBrace
	tokRBrace
	tokSemi
	tokComma
	tokQuestion
	tokColon

	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPercent
	tokTilde
	tokBang

	tokAndAnd
	tokOrOr
	tokEqEq
	tokNotEq
	tokLt
	tokLe
	tokGt
	tokGe
	tokAssign
)

// keywords maps reserved identifiers to their token type.
var keywords = map[string]tokenType{
	"int":      tokKwInt,
	"return":   tokKwReturn,
	"void":     tokKwVoid,
	"if":       tokKwIf,
	"else":     tokKwElse,
	"while":    tokKwWhile,
	"do":       tokKwDo,
	"for":      tokKwFor,
	"break":    tokKwBreak,
	"continue": tokKwContinue,
}

// tokNames gives a print-friendly name for every tokenType, used in parser diagnostics.
var tokNames = map[tokenType]string{
	tokEOF:        "EOF",
	tokError:      "error",
	tokIdent:      "identifier",
	tokInt:        "integer literal",
	tokKwInt:      "'int'",
	tokKwReturn:   "'return'",
	tokKwVoid:     "'void'",
	tokKwIf:       "'if'",
	tokKwElse:     "'else'",
	tokKwWhile:    "'while'",
	tokKwDo:       "'do'",
	tokKwFor:      "'for'",
	tokKwBreak:    "'break'",
	tokKwContinue: "'continue'",
	tokLParen:     "'('",
	tokRParen:     "')'",
	tokLBrace:     "'{'",
	tokRBrace:     "'}'",
	tokSemi:       "';'",
	tokComma:      "','",
	tokQuestion:   "'?'",
	tokColon:      "':'",
	tokPlus:       "'+'",
	tokMinus:      "'-'",
	tokStar:       "'*'",
	tokSlash:      "'/'",
	tokPercent:    "'%'",
	tokTilde:      "'~'",
	tokBang:       "'!'",
	tokAndAnd:     "'&&'",
	tokOrOr:       "'||'",
	tokEqEq:       "'=='",
	tokNotEq:      "'!='",
	tokLt:         "'<'",
	tokLe:         "'<='",
	tokGt:         "'>'",
	tokGe:         "'>='",
	tokAssign:     "'='",
}

// String returns a print friendly representation of the token. Parser diagnostics
// use describe and --lex uses tokValue instead.
func (t token) String() string {
	switch t.typ {
	case tokEOF:
		return "EOF"
	case tokError:
		return fmt.Sprintf("%s [ERROR]", t.val)
	case tokIdent, tokInt:
		return fmt.Sprintf("%q (line %d:%d)", t.val, t.line, t.col)
	default:
		return fmt.Sprintf("%s (line %d:%d)", tokNames[t.typ], t.line, t.col)
	}
}
