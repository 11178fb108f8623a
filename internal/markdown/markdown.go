// Package markdown renders a cleaned HTML content subtree as Markdown.
//
// The converter is a recursive descent over html.Node with a closed set of
// node categories. Block children of the content root are rendered
// independently and joined with blank lines; inside a block, nested markup
// is flattened to its text. Malformed structure never fails: every
// category has a plain-text fallback.
package markdown

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// kind classifies a node into exactly one conversion rule.
type kind int

const (
	kindText kind = iota
	kindHeading
	kindBlock
	kindList
	kindListItem
	kindImage
	kindLink
	kindTable
	kindOther
)

// classify applies the rules in precedence order.
func classify(n *html.Node) kind {
	if n.Type == html.TextNode {
		return kindText
	}
	if n.Type != html.ElementNode {
		return kindOther
	}
	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return kindHeading
	case "p", "div":
		return kindBlock
	case "ul", "ol":
		return kindList
	case "li":
		return kindListItem
	case "img":
		return kindImage
	case "a":
		return kindLink
	case "table":
		return kindTable
	}
	return kindOther
}

// Convert renders the direct children of root independently, drops empty
// results, and joins the rest with blank lines.
func Convert(root *html.Node) string {
	if root == nil {
		return ""
	}
	var parts []string
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if part := convertNode(c); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "\n\n")
}

func convertNode(n *html.Node) string {
	switch classify(n) {
	case kindText:
		return strings.TrimSpace(n.Data)
	case kindHeading:
		return strings.Repeat("#", headingLevel(n.Data)) + " " + Flatten(n)
	case kindBlock:
		return Flatten(n)
	case kindList:
		return convertList(n, n.Data == "ol")
	case kindListItem:
		return "- " + Flatten(n)
	case kindImage:
		return fmt.Sprintf("![%s](%s)", attrValue(n, "alt"), attrValue(n, "src"))
	case kindLink:
		href, ok := lookupAttr(n, "href")
		if !ok {
			href = "#"
		}
		return fmt.Sprintf("[%s](%s)", Flatten(n), href)
	case kindTable:
		return convertTable(n)
	}
	return Flatten(n)
}

// convertList renders the direct li children of a list. Nested sub-lists
// are flattened into their item's text rather than re-indented.
func convertList(n *html.Node, ordered bool) string {
	var lines []string
	idx := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		idx++
		prefix := "- "
		if ordered {
			prefix = fmt.Sprintf("%d. ", idx)
		}
		lines = append(lines, prefix+Flatten(c))
	}
	return strings.Join(lines, "\n")
}

// convertTable treats the first row as header. Short rows stay short: cell
// counts are not reconciled across rows.
func convertTable(n *html.Node) string {
	rows := findAll(n, "tr")
	if len(rows) == 0 {
		return ""
	}

	headerCells := cellTexts(rows[0])
	lines := []string{
		"| " + strings.Join(headerCells, " | ") + " |",
		"| " + strings.Join(repeat("---", len(headerCells)), " | ") + " |",
	}
	for _, row := range rows[1:] {
		lines = append(lines, "| "+strings.Join(cellTexts(row), " | ")+" |")
	}
	return strings.Join(lines, "\n")
}

func cellTexts(row *html.Node) []string {
	var texts []string
	for _, cell := range findAll(row, "th", "td") {
		texts = append(texts, Flatten(cell))
	}
	return texts
}

// Flatten reduces a subtree to its concatenated text: each text segment is
// trimmed and the non-empty segments are joined with single spaces,
// discarding all nested markup.
func Flatten(n *html.Node) string {
	var segs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				segs = append(segs, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(segs, " ")
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

// findAll collects descendants matching any of the tags, in document order.
func findAll(n *html.Node, tags ...string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, tag := range tags {
				if n.Data == tag {
					found = append(found, n)
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return found
}

func attrValue(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}
