// Package detect locates the subtree most likely to hold the article body.
package detect

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// MainContent returns the element deemed to be the article body of a
// cleaned document. It never returns nil: an <article> wins outright,
// otherwise the <div> or <section> with the most rendered text (first in
// document order on ties), otherwise <body>, otherwise the document root.
func MainContent(doc *goquery.Document) *html.Node {
	if sel := doc.Find("article").First(); sel.Length() > 0 {
		return sel.Get(0)
	}

	var best *html.Node
	bestLen := -1
	doc.Find("div, section").Each(func(_ int, s *goquery.Selection) {
		// Strictly greater keeps the first candidate on ties.
		if n := len(strings.TrimSpace(s.Text())); n > bestLen {
			best = s.Get(0)
			bestLen = n
		}
	})
	if best != nil {
		return best
	}

	if sel := doc.Find("body").First(); sel.Length() > 0 {
		return sel.Get(0)
	}
	return doc.Get(0)
}
