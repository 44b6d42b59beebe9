// Package ast defines the syntax tree produced by parsing a Visual Studio
// solution file, along with the source position bookkeeping shared with the
// lexer.
//
// The node set is closed: every node type is defined here and consumers
// dispatch over the Node interface with exhaustive type switches. Nodes are
// never shared or mutated after the parse that built them returns, and the
// order of children always reflects source order.
package ast

// Node is implemented by every syntax tree node.
type Node interface {
	// Pos returns the position where the node begins.
	Pos() SourcePos

	node()
}

// Solution is the root of a parsed solution file: the format banner followed
// by the remaining top-level lines in source order. Lines holds *Comment,
// *Version, *Project and *Global nodes.
type Solution struct {
	First *FirstLine
	Lines []Node
}

func (s *Solution) Pos() SourcePos { return s.First.Pos() }

// FirstLine is the banner line, e.g.
//
//	Microsoft Visual Studio Solution File, Format Version 12.00
//
// Words collects the identifiers around the comma; Format is the trailing
// version literal.
type FirstLine struct {
	Words  []string
	Format string

	pos SourcePos
}

func (f *FirstLine) Pos() SourcePos { return f.pos }

// Version is a name/value version line, e.g.
//
//	VisualStudioVersion = 15.0.26403.0
type Version struct {
	Name string
	Ver  string

	pos SourcePos
}

func (v *Version) Pos() SourcePos { return v.pos }

// Comment is a whole comment line; Text includes the leading '#'.
type Comment struct {
	Text string

	pos SourcePos
}

func (c *Comment) Pos() SourcePos { return c.pos }

// Project is a project block: the header line and any project sections.
type Project struct {
	Begin    *ProjectBegin
	Sections []*Section
}

func (p *Project) Pos() SourcePos { return p.Begin.Pos() }

// ProjectBegin is the header of a project block:
//
//	Project("{type GUID}") = "name", "path or URI", "{project GUID}"
//
// GUID text keeps its braces.
type ProjectBegin struct {
	TypeID string
	Name   string
	Path   string
	ID     string

	pos SourcePos
}

func (p *ProjectBegin) Pos() SourcePos { return p.pos }

// Global is the solution-wide block holding global sections.
type Global struct {
	Sections []*Section

	pos SourcePos
}

func (g *Global) Pos() SourcePos { return g.pos }

// Section is a project or global section: its begin line and its key/value
// content in source order.
type Section struct {
	Begin   *SectionBegin
	Content []*SectionContent
}

func (s *Section) Pos() SourcePos { return s.Begin.Pos() }

// SectionBegin is a section header, e.g.
//
//	GlobalSection(SolutionConfigurationPlatforms) = preSolution
//
// Element is the opening keyword ("GlobalSection" or "ProjectSection"),
// Names the parenthesized identifiers, Stage the trailing identifier
// ("preSolution", "postProject", ...).
type SectionBegin struct {
	Element string
	Names   []string
	Stage   string

	pos SourcePos
}

func (s *SectionBegin) Pos() SourcePos { return s.pos }

// Is reports whether the section was declared with the given name.
func (s *SectionBegin) Is(name string) bool {
	for _, n := range s.Names {
		if n == name {
			return true
		}
	}
	return false
}

// SectionContent is one key/value line of a section body. Key and Value are
// opaque trimmed text; values may contain '=', '{', ',' and '|'.
type SectionContent struct {
	Key   string
	Value string

	pos SourcePos
}

func (s *SectionContent) Pos() SourcePos { return s.pos }

// NewFirstLine returns a FirstLine node positioned at pos.
func NewFirstLine(words []string, format string, pos SourcePos) *FirstLine {
	return &FirstLine{Words: words, Format: format, pos: pos}
}

// NewVersion returns a Version node positioned at pos.
func NewVersion(name, ver string, pos SourcePos) *Version {
	return &Version{Name: name, Ver: ver, pos: pos}
}

// NewComment returns a Comment node positioned at pos.
func NewComment(text string, pos SourcePos) *Comment {
	return &Comment{Text: text, pos: pos}
}

// NewProjectBegin returns a ProjectBegin node positioned at pos.
func NewProjectBegin(typeID, name, path, id string, pos SourcePos) *ProjectBegin {
	return &ProjectBegin{TypeID: typeID, Name: name, Path: path, ID: id, pos: pos}
}

// NewGlobal returns a Global node positioned at pos.
func NewGlobal(sections []*Section, pos SourcePos) *Global {
	return &Global{Sections: sections, pos: pos}
}

// NewSectionBegin returns a SectionBegin node positioned at pos.
func NewSectionBegin(element string, names []string, stage string, pos SourcePos) *SectionBegin {
	return &SectionBegin{Element: element, Names: names, Stage: stage, pos: pos}
}

// NewSectionContent returns a SectionContent node positioned at pos.
func NewSectionContent(key, value string, pos SourcePos) *SectionContent {
	return &SectionContent{Key: key, Value: value, pos: pos}
}

func (*Solution) node()       {}
func (*FirstLine) node()      {}
func (*Version) node()        {}
func (*Comment) node()        {}
func (*Project) node()        {}
func (*ProjectBegin) node()   {}
func (*Global) node()         {}
func (*Section) node()        {}
func (*SectionBegin) node()   {}
func (*SectionContent) node() {}
