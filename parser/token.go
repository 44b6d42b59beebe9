package parser

import (
	"fmt"

	"github.com/slntools/solv/ast"
)

// TokenKind identifies the type of a lexed token.
type TokenKind int

const (
	// EOF is returned forever once the input is exhausted.
	EOF TokenKind = iota
	// Comment is a whole '#' comment line, '#' included.
	Comment
	// String is the body of a quoted string, quotes excluded.
	String
	// Guid is a {8-4-4-4-12} literal, braces included.
	Guid
	// Ident is a bare identifier such as "Global" or "VisualStudioVersion".
	Ident
	// DigitsAndDots is a version literal such as "12.00" or "15.0.26403.0".
	DigitsAndDots
	// SectionKey is the opaque text left of '=' on a section body line.
	SectionKey
	// SectionValue is the opaque text right of '=' on a section body line.
	SectionValue
	// Comma is the ',' punctuation token.
	Comma
	// Eq is the '=' punctuation token outside section bodies.
	Eq
	// OpenElement carries the keyword opening a block, e.g. "Project" or
	// "GlobalSection"; the '(' that follows is consumed with it.
	OpenElement
	// CloseElement carries the keyword closing a block, e.g. "EndProject".
	CloseElement
)

// String returns the name used for the kind in diagnostics.
func (k TokenKind) String() string {
	switch k {
	case EOF:
		return "end of file"
	case Comment:
		return "comment"
	case String:
		return "string literal"
	case Guid:
		return "guid"
	case Ident:
		return "identifier"
	case DigitsAndDots:
		return "version literal"
	case SectionKey:
		return "section key"
	case SectionValue:
		return "section value"
	case Comma:
		return "','"
	case Eq:
		return "'='"
	case OpenElement:
		return "open element"
	case CloseElement:
		return "close element"
	default:
		return fmt.Sprintf("token(%d)", int(k))
	}
}

// Token is a single lexeme with its source position. Text preserves the raw
// literal: GUID tokens keep their braces, comments keep the leading '#',
// open and close elements carry the element name.
type Token struct {
	Kind TokenKind
	Text string
	Pos  ast.SourcePos
}

// describe renders a token for an error message: the kind name, plus the
// literal where the literal disambiguates.
func (t Token) describe() string {
	switch t.Kind {
	case Ident, OpenElement, CloseElement, DigitsAndDots, Guid, String, SectionKey:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	default:
		return t.Kind.String()
	}
}
