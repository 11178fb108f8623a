// Package parse orchestrates the HTML-to-Markdown pipeline: parse, clean,
// detect the content root, extract metadata, convert.
package parse

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"sciparse/internal/article"
	"sciparse/internal/clean"
	"sciparse/internal/detect"
	"sciparse/internal/markdown"
	"sciparse/internal/meta"
)

// Service converts raw article HTML into Markdown plus metadata.
type Service struct {
	log *slog.Logger
}

func NewService(log *slog.Logger) *Service {
	return &Service{log: log}
}

// Parse runs the full pipeline over rawHTML. The only failure mode is an
// unparseable document; once a tree exists, cleaning, detection,
// extraction and conversion are best-effort and cannot fail.
func (s *Service) Parse(rawHTML, sourceURL string) (string, article.Metadata, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", article.Metadata{}, fmt.Errorf("parse html: %w", err)
	}

	clean.Document(doc)

	root := detect.MainContent(doc)
	s.log.Debug("content root detected", "tag", root.Data)

	// Extraction and conversion are both read-only over the cleaned tree;
	// their order is immaterial.
	md := markdown.Convert(root)
	m := meta.Extract(doc, sourceURL)
	s.log.Debug("parse complete", "markdown_len", len(md), "title", m.Title)

	return md, m, nil
}
