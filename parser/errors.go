package parser

import (
	"fmt"
	"strings"

	"github.com/slntools/solv/ast"
)

// ParseFailure is implemented by the errors a parse can fail with:
// *LexicalError when the raw text is malformed, *ParseError when the token
// stream does not match the grammar. Both are fatal for the file being
// parsed; no partial tree is produced.
type ParseFailure interface {
	error

	// Position reports where in the source the failure occurred.
	Position() ast.SourcePos

	failure()
}

var (
	_ ParseFailure = (*LexicalError)(nil)
	_ ParseFailure = (*ParseError)(nil)
)

// LexicalError reports malformed raw text: an unterminated quoted string, a
// brace-delimited literal that is not a well-formed GUID, a malformed
// version literal, or a character the format has no use for.
type LexicalError struct {
	Pos    ast.SourcePos
	Reason string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Reason)
}

// Position implements ParseFailure.
func (e *LexicalError) Position() ast.SourcePos { return e.Pos }

func (e *LexicalError) failure() {}

// ParseError reports the first token that does not fit the grammar, along
// with the set of tokens that would have been acceptable in its place.
type ParseError struct {
	Pos        ast.SourcePos
	Unexpected Token
	Expected   []string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: syntax error: unexpected %s", e.Pos, e.Unexpected.describe())
	switch len(e.Expected) {
	case 0:
	case 1:
		fmt.Fprintf(&b, ", expecting %s", e.Expected[0])
	default:
		fmt.Fprintf(&b, ", expecting %s or %s",
			strings.Join(e.Expected[:len(e.Expected)-1], ", "),
			e.Expected[len(e.Expected)-1])
	}
	return b.String()
}

// Position implements ParseFailure.
func (e *ParseError) Position() ast.SourcePos { return e.Pos }

func (e *ParseError) failure() {}
