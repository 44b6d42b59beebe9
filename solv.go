// Package solv parses Microsoft Visual Studio solution files into a typed
// model and validates that model against structural consistency rules:
// dangling project references, broken or cyclic folder nesting, missing
// configuration mappings, duplicated project identities.
//
// The pipeline is strictly staged: raw text is lexed into tokens, tokens are
// parsed into the syntax tree of the ast package, the tree is materialized
// into a Solution, and Validate reports Findings over it. Any stage may fail
// for a file (a *parser.LexicalError, *parser.ParseError or *ModelError);
// findings never do. Scanner fans the same pipeline out over every solution
// file under a directory.
package solv

import (
	"os"

	"github.com/slntools/solv/parser"
)

// Parse parses solution file contents held in memory. The returned model has
// an empty Path. On failure the error is a parser.ParseFailure.
func Parse(text string) (*Solution, error) {
	root, err := parser.Parse("", []byte(text))
	if err != nil {
		return nil, err
	}
	return build("", root)
}

// ParseFile reads and parses the solution file at path. On failure the error
// is the read error or a parser.ParseFailure.
func ParseFile(path string) (*Solution, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	root, err := parser.Parse(path, data)
	if err != nil {
		return nil, err
	}
	return build(path, root)
}
