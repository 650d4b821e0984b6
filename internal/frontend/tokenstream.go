package frontend

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// TokenStream lexes src and renders every token as a tab-aligned
// Value/Type/Position table, for the driver's `--lex` stage-stop flag
// (spec.md §6). Unlike Parse, this does not return a lexical error: it is
// rendered as the last row of the table, after every token preceding it,
// and scanning stops there. Grounded on the teacher's
// `frontend.TokenStream` (src/frontend/tree.go), which renders the same
// three columns through a `text/tabwriter.Writer`.
func TokenStream(src string) string {
	lex := newLexer(src)
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 10, 20, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Value\tType\tPosition\n")
	for {
		tok := lex.Next()
		_, _ = fmt.Fprintf(tw, "%s\t%s\tline %d:%d\n", tokValue(tok), tokNames[tok.typ], tok.line, tok.col)
		if tok.typ == tokEOF || tok.typ == tokError {
			break
		}
	}
	_ = tw.Flush()
	return b.String()
}

// tokValue gives the column text for a token's Value field: the literal
// text for identifiers/integers/errors, or its type name otherwise (EOF and
// punctuation carry no separate literal worth printing twice).
func tokValue(t token) string {
	switch t.typ {
	case tokIdent, tokInt, tokError:
		return fmt.Sprintf("%q", t.val)
	default:
		return tokNames[t.typ]
	}
}
