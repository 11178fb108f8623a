// Package meta extracts bibliographic metadata from article markup.
//
// Scientific publishers embed Highwire Press citation_* meta tags in the
// document head; each field is read independently and an absent tag simply
// leaves the field empty.
package meta

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"sciparse/internal/article"
)

// Extract reads bibliographic fields from the full document. The content
// root and source URL play no part in the current heuristics; sourceURL is
// accepted for callers that want to thread it through.
func Extract(doc *goquery.Document, sourceURL string) article.Metadata {
	m := article.Metadata{
		Title:           metaContent(doc, "citation_title"),
		PublicationDate: metaContent(doc, "citation_publication_date"),
		Journal:         metaContent(doc, "citation_journal_title"),
		DOI:             metaContent(doc, "citation_doi"),
		Abstract:        metaContent(doc, "description"),
	}

	if m.Title == "" {
		m.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	doc.Find(`meta[name="citation_author"]`).Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr("content"); ok && strings.TrimSpace(v) != "" {
			m.Authors = append(m.Authors, strings.TrimSpace(v))
		}
	})

	// Keywords: no reliable source tag across publishers; reserved.

	return m
}

func metaContent(doc *goquery.Document, name string) string {
	v, _ := doc.Find(`meta[name="` + name + `"]`).First().Attr("content")
	return strings.TrimSpace(v)
}
