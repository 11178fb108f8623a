// Package outline derives a section outline from generated Markdown.
package outline

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Section is one heading in the document outline, with any deeper
// headings nested beneath it.
type Section struct {
	Title    string     `json:"title"`
	Level    int        `json:"level"`
	Children []*Section `json:"children,omitempty"`
}

// FromMarkdown parses md and returns its heading hierarchy. Headings nest
// by level using a stack walk; content between headings is ignored.
func FromMarkdown(md string) []*Section {
	src := []byte(md)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	type stackEntry struct {
		section *Section
		level   int
	}

	// Root is level 0 so every heading nests under it.
	root := &Section{}
	stack := []stackEntry{{section: root, level: 0}}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		heading, ok := n.(*ast.Heading)
		if !ok {
			continue
		}

		sec := &Section{
			Title: string(heading.Text(src)),
			Level: heading.Level,
		}

		// Pop until the top of the stack can parent this heading.
		for len(stack) > 1 && stack[len(stack)-1].level >= heading.Level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].section
		parent.Children = append(parent.Children, sec)
		stack = append(stack, stackEntry{section: sec, level: heading.Level})
	}

	return root.Children
}
