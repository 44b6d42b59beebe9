package parser

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/slntools/solv/ast"
)

// lexContext tracks where in the file the lexer is. Section bodies lex by
// line (opaque key/value pairs) rather than by word, so the lexer has to
// know when it is inside one.
type lexContext int

const (
	// ctxDefault scans word by word.
	ctxDefault lexContext = iota
	// ctxSectionHeader is armed when an open element whose name ends in
	// "Section" is produced. The rest of the header line still lexes word
	// by word; crossing the line boundary promotes to ctxSectionBody.
	ctxSectionHeader
	// ctxSectionBody lexes each line as a key/value pair until a line whose
	// first word starts with "End".
	ctxSectionBody
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// lexer is a single-pass, forward-only scanner over one solution file.
type lexer struct {
	info *ast.FileInfo
	data string
	pos  int

	ctx lexContext
	// lineStart is set whenever a line boundary has been crossed since the
	// last token, which is when section context transitions take effect.
	lineStart bool
}

// newLexer creates a lexer for the given contents. A leading UTF-8 byte
// order mark is discarded; positions are relative to what follows it.
func newLexer(filename string, contents []byte) *lexer {
	contents = bytes.TrimPrefix(contents, utf8BOM)
	return &lexer{
		info:      ast.NewFileInfo(filename, contents),
		data:      string(contents),
		lineStart: true,
	}
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.data)
}

// peek returns the next rune without consuming it, or -1 at end of input.
func (l *lexer) peek() rune {
	if l.eof() {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(l.data[l.pos:])
	return r
}

// pop consumes the next rune. All consumption funnels through here so that
// line bookkeeping stays correct no matter which scanning mode consumed the
// newline.
func (l *lexer) pop() rune {
	r, n := utf8.DecodeRuneInString(l.data[l.pos:])
	l.pos += n
	switch r {
	case '\n':
		l.info.AddLine(l.pos)
		l.lineStart = true
	case '\r':
		l.lineStart = true
	}
	return r
}

// takeWhile consumes runes while f holds and returns the consumed text.
func (l *lexer) takeWhile(f func(rune) bool) string {
	start := l.pos
	for !l.eof() && f(l.peek()) {
		l.pop()
	}
	return l.data[start:l.pos]
}

func (l *lexer) position(offset int) ast.SourcePos {
	return l.info.SourcePos(offset)
}

func (l *lexer) token(kind TokenKind, text string, offset int) Token {
	return Token{Kind: kind, Text: text, Pos: l.position(offset)}
}

func (l *lexer) errorf(offset int, format string, args ...any) *LexicalError {
	return &LexicalError{Pos: l.position(offset), Reason: fmt.Sprintf(format, args...)}
}

// Next returns the next token. Once the input is exhausted it returns EOF
// tokens forever. The returned error is always a *LexicalError.
func (l *lexer) Next() (Token, error) {
	for {
		l.skipSpace()
		if l.ctx != ctxDefault && l.lineStart {
			return l.sectionLine()
		}
		if l.eof() {
			return l.token(EOF, "", len(l.data)), nil
		}
		l.lineStart = false

		switch r := l.peek(); {
		case r == '#':
			return l.comment(), nil
		case r == '"':
			return l.quoted()
		case r == '{':
			return l.guid()
		case r == '=':
			if l.ctx == ctxSectionBody {
				return l.sectionValue(), nil
			}
			start := l.pos
			l.pop()
			return l.token(Eq, "=", start), nil
		case r == ',':
			start := l.pos
			l.pop()
			return l.token(Comma, ",", start), nil
		case r == ')':
			// Closes the payload opened by an open element; structural
			// noise by the time it is reached.
			l.pop()
			continue
		case isDigit(r):
			return l.versionLiteral()
		case isIdentStart(r):
			return l.identifier(), nil
		default:
			err := l.errorf(l.pos, "unrecognized character %q", r)
			l.pop()
			return Token{}, err
		}
	}
}

func (l *lexer) skipSpace() {
	for {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.pop()
		default:
			return
		}
	}
}

// comment consumes a '#' line; the token text includes the '#'.
func (l *lexer) comment() Token {
	start := l.pos
	text := l.takeWhile(func(r rune) bool { return r != '\n' && r != '\r' })
	return l.token(Comment, text, start)
}

// quoted consumes a double-quoted string. No escape processing is done:
// solution paths routinely end in a backslash right before the closing
// quote. A body that starts with '{' must be a well-formed GUID.
func (l *lexer) quoted() (Token, error) {
	start := l.pos
	l.pop() // opening quote
	bodyStart := l.pos
	for {
		if l.eof() {
			return Token{}, l.errorf(len(l.data), "unterminated quoted string")
		}
		if l.pop() == '"' {
			break
		}
	}
	body := l.data[bodyStart : l.pos-1]
	if strings.HasPrefix(body, "{") {
		if !wellFormedGUID(body) {
			return Token{}, l.errorf(start, "malformed GUID %q", body)
		}
		return l.token(Guid, body, start), nil
	}
	return l.token(String, body, start), nil
}

// guid consumes a bare brace-delimited literal.
func (l *lexer) guid() (Token, error) {
	start := l.pos
	l.pop() // '{'
	for !l.eof() {
		r := l.peek()
		if r == '\n' || r == '\r' {
			break
		}
		l.pop()
		if r == '}' {
			text := l.data[start:l.pos]
			if !wellFormedGUID(text) {
				return Token{}, l.errorf(start, "malformed GUID %q", text)
			}
			return l.token(Guid, text, start), nil
		}
	}
	return Token{}, l.errorf(start, "malformed GUID %q", l.data[start:l.pos])
}

// versionLiteral consumes a run of digits and dots, e.g. "15.0.26403.0".
func (l *lexer) versionLiteral() (Token, error) {
	start := l.pos
	text := l.takeWhile(func(r rune) bool { return isDigit(r) || r == '.' })
	if strings.HasSuffix(text, ".") || strings.Contains(text, "..") {
		return Token{}, l.errorf(start, "malformed version literal %q", text)
	}
	return l.token(DigitsAndDots, text, start), nil
}

// identifier consumes a word and classifies it: a close element if it
// starts with "End", an open element if a '(' follows (arming section
// context when the element name ends in "Section"), a plain identifier
// otherwise.
func (l *lexer) identifier() Token {
	start := l.pos
	word := l.takeWhile(isIdentPart)
	if strings.HasPrefix(word, "End") {
		l.ctx = ctxDefault
		return l.token(CloseElement, word, start)
	}
	if l.peek() == '(' {
		l.pop()
		if strings.HasSuffix(word, "Section") {
			l.ctx = ctxSectionHeader
		}
		return l.token(OpenElement, word, start)
	}
	return l.token(Ident, word, start)
}

// sectionLine lexes the start of a line inside a section: either the close
// element ending the section, or an opaque key running up to the first '='.
// The '=' itself is left for Next, which hands the rest of the line to
// sectionValue.
func (l *lexer) sectionLine() (Token, error) {
	l.ctx = ctxSectionBody
	l.lineStart = false
	if l.eof() {
		return l.token(EOF, "", len(l.data)), nil
	}
	if strings.HasPrefix(l.data[l.pos:], "End") {
		start := l.pos
		word := l.takeWhile(isIdentPart)
		l.ctx = ctxDefault
		return l.token(CloseElement, word, start), nil
	}
	start := l.pos
	key := l.takeWhile(func(r rune) bool {
		return r != '=' && r != '\n' && r != '\r'
	})
	return l.token(SectionKey, strings.TrimSpace(key), start), nil
}

// sectionValue consumes '=' and the rest of the line as one opaque value.
func (l *lexer) sectionValue() Token {
	l.pop() // '='
	l.takeWhile(func(r rune) bool { return r == ' ' || r == '\t' })
	start := l.pos
	value := l.takeWhile(func(r rune) bool { return r != '\n' && r != '\r' })
	return l.token(SectionValue, strings.TrimRight(value, " \t"), start)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// wellFormedGUID reports whether s is a braced {8-4-4-4-12} hex literal.
func wellFormedGUID(s string) bool {
	if len(s) != 38 || s[0] != '{' || s[len(s)-1] != '}' {
		return false
	}
	for i, r := range s[1 : len(s)-1] {
		switch i {
		case 8, 13, 18, 23:
			if r != '-' {
				return false
			}
		default:
			if !isHex(r) {
				return false
			}
		}
	}
	return true
}

func isHex(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	}
	return false
}
