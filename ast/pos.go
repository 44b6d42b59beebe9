package ast

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// SourcePos identifies a location in a solution file.
type SourcePos struct {
	Filename string
	// Offset is the byte offset into the file, zero-based.
	Offset int
	// Line and Col are one-based. Columns count runes, not bytes.
	Line, Col int
}

func (p SourcePos) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Col)
}

// FileInfo records the line structure of a solution file as it is scanned,
// so that byte offsets can later be resolved to line and column positions.
type FileInfo struct {
	name string
	data []byte
	// Byte offsets of the start of each line. There is always at least one
	// entry, for line 1 at offset zero.
	lines []int
}

// NewFileInfo creates an empty FileInfo for the given file contents.
func NewFileInfo(filename string, contents []byte) *FileInfo {
	return &FileInfo{name: filename, data: contents, lines: []int{0}}
}

// Name returns the file name given to NewFileInfo.
func (f *FileInfo) Name() string {
	return f.name
}

// AddLine records that a new line starts at the given byte offset. Offsets
// must be recorded in strictly increasing order; the scanner drives this as
// it consumes newlines.
func (f *FileInfo) AddLine(offset int) {
	if last := f.lines[len(f.lines)-1]; offset <= last {
		panic(fmt.Sprintf("ast: line offset %d added after %d", offset, last))
	}
	if offset > len(f.data) {
		panic(fmt.Sprintf("ast: line offset %d beyond EOF %d", offset, len(f.data)))
	}
	f.lines = append(f.lines, offset)
}

// SourcePos resolves a byte offset to a position. The offset may be
// len(data), denoting end of input.
func (f *FileInfo) SourcePos(offset int) SourcePos {
	// Find the latest recorded line that starts at or before offset.
	line := sort.Search(len(f.lines), func(n int) bool {
		return f.lines[n] > offset
	}) - 1
	return SourcePos{
		Filename: f.name,
		Offset:   offset,
		Line:     line + 1,
		Col:      utf8.RuneCount(f.data[f.lines[line]:offset]) + 1,
	}
}
