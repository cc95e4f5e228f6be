// Package importer reads plain-text outline files into the workspace.
//
// The format is small and line oriented:
//
//	# comment
//	project "The Long Night" {
//	  chapter "Arrival" [draft] {
//	    scene "Dock" [in-progress] "Mara steps off the ferry."
//	    scene "Inn"
//	  }
//	}
//
// Status tags are optional and default to draft. A scene may carry a quoted synopsis.
package importer

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	outlineLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "Comment", Pattern: `(?:#|//)[^\n]*`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[{}\[\]]`},
	})

	outlineParser = participle.MustBuild[Document](
		participle.Lexer(outlineLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.Unquote("String"),
	)
)

// Document is the root of an outline file.
type Document struct {
	Projects []*Project `parser:"Newline* ( @@ Newline* )*"`
}

type Project struct {
	Pos      lexer.Position `parser:""`
	Title    string         `parser:"'project' @String"`
	Chapters []*Chapter     `parser:"'{' Newline* ( @@ Newline* )* '}'"`
}

type Chapter struct {
	Pos    lexer.Position `parser:""`
	Title  string         `parser:"'chapter' @String"`
	Status string         `parser:"( '[' @Ident ']' )?"`
	Scenes []*Scene       `parser:"( '{' Newline* ( @@ Newline* )* '}' )?"`
}

type Scene struct {
	Pos      lexer.Position `parser:""`
	Title    string         `parser:"'scene' @String"`
	Status   string         `parser:"( '[' @Ident ']' )?"`
	Synopsis string         `parser:"@String?"`
}

// Parse reads an outline document. filename is only used in error positions.
func Parse(filename string, r io.Reader) (*Document, error) {
	doc, err := outlineParser.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse outline: %w", err)
	}
	return doc, nil
}

// ParseString is Parse for in-memory input.
func ParseString(filename, src string) (*Document, error) {
	doc, err := outlineParser.ParseString(filename, src)
	if err != nil {
		return nil, fmt.Errorf("parse outline: %w", err)
	}
	return doc, nil
}
