// Package parser lexes and parses Visual Studio solution files into the
// syntax tree defined by the ast package.
//
// The grammar is deterministic with a single token of lookahead; solution
// files are machine-generated and near-regular, so no recovery is attempted:
// the first unexpected token aborts the parse and no partial tree is
// returned.
package parser

import (
	"fmt"

	"github.com/slntools/solv/ast"
)

// Parse parses one solution file. filename is used for positions only and
// may be empty; contents is the raw file text. On failure the error is a
// ParseFailure: a *LexicalError or a *ParseError.
func Parse(filename string, contents []byte) (*ast.Solution, error) {
	p := &parser{lx: newLexer(filename, contents)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.parseSolution()
}

type parser struct {
	lx  *lexer
	tok Token
}

func (p *parser) advance() error {
	tok, err := p.lx.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// expect consumes a token of the given kind, failing with the given
// expected-set description otherwise.
func (p *parser) expect(kind TokenKind, expected ...string) (Token, error) {
	if p.tok.Kind != kind {
		if len(expected) == 0 {
			expected = []string{kind.String()}
		}
		return Token{}, p.unexpected(expected...)
	}
	tok := p.tok
	if err := p.advance(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

func (p *parser) unexpected(expected ...string) *ParseError {
	return &ParseError{Pos: p.tok.Pos, Unexpected: p.tok, Expected: expected}
}

func (p *parser) parseSolution() (*ast.Solution, error) {
	first, err := p.parseFirstLine()
	if err != nil {
		return nil, err
	}
	sol := &ast.Solution{First: first}
	for p.tok.Kind != EOF {
		var line ast.Node
		switch {
		case p.tok.Kind == Comment:
			line = ast.NewComment(p.tok.Text, p.tok.Pos)
			if err := p.advance(); err != nil {
				return nil, err
			}
		case p.tok.Kind == OpenElement && p.tok.Text == "Project":
			line, err = p.parseProject()
			if err != nil {
				return nil, err
			}
		case p.tok.Kind == Ident && p.tok.Text == "Global":
			line, err = p.parseGlobal()
			if err != nil {
				return nil, err
			}
		case p.tok.Kind == Ident:
			line, err = p.parseVersion()
			if err != nil {
				return nil, err
			}
		default:
			return nil, p.unexpected("comment", `"Project"`, `"Global"`, "identifier")
		}
		sol.Lines = append(sol.Lines, line)
	}
	return sol, nil
}

// parseFirstLine parses the banner: one or more identifiers, a comma, zero
// or more identifiers, and the trailing format version literal. Extra
// vendor identifiers around the comma are tolerated by design.
func (p *parser) parseFirstLine() (*ast.FirstLine, error) {
	first, err := p.expect(Ident)
	if err != nil {
		return nil, err
	}
	words := []string{first.Text}
	for p.tok.Kind == Ident {
		words = append(words, p.tok.Text)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(Comma, "identifier", "','"); err != nil {
		return nil, err
	}
	for p.tok.Kind == Ident {
		words = append(words, p.tok.Text)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	format, err := p.expect(DigitsAndDots, "identifier", "version literal")
	if err != nil {
		return nil, err
	}
	return ast.NewFirstLine(words, format.Text, first.Pos), nil
}

// parseVersion parses a version line: identifier '=' version literal.
func (p *parser) parseVersion() (*ast.Version, error) {
	name := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	if _, err := p.expect(Eq); err != nil {
		return nil, err
	}
	ver, err := p.expect(DigitsAndDots)
	if err != nil {
		return nil, err
	}
	return ast.NewVersion(name.Text, ver.Text, name.Pos), nil
}

// parseProject parses a project block from its open element through the
// matching "EndProject".
func (p *parser) parseProject() (*ast.Project, error) {
	open := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	typeID, err := p.expect(Guid)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Eq); err != nil {
		return nil, err
	}
	name, err := p.expect(String)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Comma); err != nil {
		return nil, err
	}
	path, err := p.expect(String)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Comma); err != nil {
		return nil, err
	}
	id, err := p.expect(Guid)
	if err != nil {
		return nil, err
	}
	prj := &ast.Project{
		Begin: ast.NewProjectBegin(typeID.Text, name.Text, path.Text, id.Text, open.Pos),
	}
	for {
		switch {
		case p.tok.Kind == OpenElement && p.tok.Text == "ProjectSection":
			section, err := p.parseSection("EndProjectSection")
			if err != nil {
				return nil, err
			}
			prj.Sections = append(prj.Sections, section)
		case p.tok.Kind == CloseElement && p.tok.Text == "EndProject":
			if err := p.advance(); err != nil {
				return nil, err
			}
			return prj, nil
		default:
			return nil, p.unexpected(`"ProjectSection"`, `"EndProject"`)
		}
	}
}

// parseGlobal parses the Global block from its "Global" identifier through
// the matching "EndGlobal".
func (p *parser) parseGlobal() (*ast.Global, error) {
	open := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	var sections []*ast.Section
	for {
		switch {
		case p.tok.Kind == OpenElement && p.tok.Text == "GlobalSection":
			section, err := p.parseSection("EndGlobalSection")
			if err != nil {
				return nil, err
			}
			sections = append(sections, section)
		case p.tok.Kind == CloseElement && p.tok.Text == "EndGlobal":
			if err := p.advance(); err != nil {
				return nil, err
			}
			return ast.NewGlobal(sections, open.Pos), nil
		default:
			return nil, p.unexpected(`"GlobalSection"`, `"EndGlobal"`)
		}
	}
}

// parseSection parses one section: its header (name list and stage) and its
// key/value body, through the given closer.
func (p *parser) parseSection(closer string) (*ast.Section, error) {
	open := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	first, err := p.expect(Ident)
	if err != nil {
		return nil, err
	}
	names := []string{first.Text}
	for p.tok.Kind == Ident {
		names = append(names, p.tok.Text)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(Eq, "identifier", "'='"); err != nil {
		return nil, err
	}
	stage, err := p.expect(Ident)
	if err != nil {
		return nil, err
	}
	section := &ast.Section{
		Begin: ast.NewSectionBegin(open.Text, names, stage.Text, open.Pos),
	}
	for {
		switch {
		case p.tok.Kind == SectionKey:
			key := p.tok
			if err := p.advance(); err != nil {
				return nil, err
			}
			value, err := p.expect(SectionValue)
			if err != nil {
				return nil, err
			}
			section.Content = append(section.Content,
				ast.NewSectionContent(key.Text, value.Text, key.Pos))
		case p.tok.Kind == CloseElement && p.tok.Text == closer:
			if err := p.advance(); err != nil {
				return nil, err
			}
			return section, nil
		case p.tok.Kind == CloseElement:
			return nil, p.unexpected(fmt.Sprintf("%q", closer))
		default:
			return nil, p.unexpected("section key", fmt.Sprintf("%q", closer))
		}
	}
}
