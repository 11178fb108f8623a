// Package clean strips non-content markup from a parsed HTML document.
package clean

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// unwantedSelector matches structural elements that never carry article
// content and are removed wholesale.
const unwantedSelector = "header, footer, nav, aside, script, style, noscript, iframe, form"

var whitespaceRE = regexp.MustCompile(`\s+`)

// Text collapses runs of whitespace into a single space and trims the ends.
func Text(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

// Document removes unwanted markup from doc in place: denylisted
// structural elements, comment nodes, elements left with no text (images
// exempt), and finally normalizes whitespace in the surviving text nodes.
//
// Denylist and comment removal run before the empty-element pass because
// dropping a script or comment can turn a container empty. The empty pass
// is bottom-up so that removing an empty leaf can cascade to its ancestors
// in the same sweep.
func Document(doc *goquery.Document) {
	doc.Find(unwantedSelector).Remove()

	root := doc.Get(0)
	removeComments(root)

	// Empty-element pruning only applies below <body>; head-level markup
	// (meta, title) carries no text but is needed for metadata extraction.
	if body := findElement(root, "body"); body != nil {
		for c := body.FirstChild; c != nil; {
			next := c.NextSibling
			pruneEmpty(c)
			c = next
		}
	}

	normalizeText(root)
}

func removeComments(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			removeComments(c)
		}
		c = next
	}
}

// pruneEmpty removes n if, after pruning its own subtree, it renders no
// text. Images are kept despite being textless; everything else, including
// a container whose only content was an image, goes.
func pruneEmpty(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		pruneEmpty(c)
		c = next
	}

	switch n.Type {
	case html.ElementNode:
		if n.Data == "img" {
			return
		}
		if Text(textContent(n)) == "" && n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" && n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

func normalizeText(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			c.Data = Text(c.Data)
			continue
		}
		normalizeText(c)
	}
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
