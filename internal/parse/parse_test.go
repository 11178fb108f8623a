package parse

import (
	"io"
	"log/slog"
	"strings"
	"testing"
)

func newService() *Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestParse_SimpleParagraph(t *testing.T) {
	md, meta, err := newService().Parse("<html><body><article><p>Hello world.</p></article></body></html>", "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !strings.Contains(md, "Hello world.") {
		t.Errorf("expected markdown to contain paragraph text, got %q", md)
	}
	if meta.Title != "" {
		t.Errorf("expected no title, got %q", meta.Title)
	}
}

func TestParse_FullArticle(t *testing.T) {
	raw := `<html>
	<head>
		<meta name="citation_title" content="A Study of Things">
		<meta name="citation_author" content="Doe, Jane">
		<meta name="citation_journal_title" content="Journal of Things">
		<title>A Study of Things | Journal of Things</title>
	</head>
	<body>
		<nav><a href="/home">Home</a></nav>
		<article>
			<h1>A Study of Things</h1>
			<p>We studied   some things.</p>
			<h2>Methods</h2>
			<ol><li>Collect</li><li>Analyze</li></ol>
		</article>
		<footer>All rights reserved</footer>
	</body>
	</html>`

	md, meta, err := newService().Parse(raw, "https://example.org/paper")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if !strings.Contains(md, "# A Study of Things") {
		t.Errorf("expected h1 heading in markdown, got %q", md)
	}
	if !strings.Contains(md, "We studied some things.") {
		t.Errorf("expected normalized paragraph, got %q", md)
	}
	if !strings.Contains(md, "1. Collect\n2. Analyze") {
		t.Errorf("expected ordered list, got %q", md)
	}
	if strings.Contains(md, "Home") || strings.Contains(md, "All rights reserved") {
		t.Errorf("expected nav/footer stripped, got %q", md)
	}

	if meta.Title != "A Study of Things" {
		t.Errorf("title: got %q", meta.Title)
	}
	if len(meta.Authors) != 1 || meta.Authors[0] != "Doe, Jane" {
		t.Errorf("authors: got %v", meta.Authors)
	}
	if meta.Journal != "Journal of Things" {
		t.Errorf("journal: got %q", meta.Journal)
	}
}

func TestParse_ArticleWinsOverLongerDiv(t *testing.T) {
	raw := `<html><body>
		<div>` + strings.Repeat("sidebar filler text ", 100) + `</div>
		<article><p>The actual article.</p></article>
	</body></html>`

	md, _, err := newService().Parse(raw, "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !strings.Contains(md, "The actual article.") {
		t.Errorf("expected article content, got %q", md)
	}
	if strings.Contains(md, "sidebar filler") {
		t.Errorf("expected div content excluded, got %q", md)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	md, meta, err := newService().Parse("", "")
	if err != nil {
		t.Fatalf("expected best-effort success on empty input, got %v", err)
	}
	if md != "" {
		t.Errorf("expected empty markdown, got %q", md)
	}
	if !meta.IsZero() {
		t.Errorf("expected zero metadata, got %+v", meta)
	}
}

func TestParse_ConcurrentCalls(t *testing.T) {
	// Each call owns its own tree; concurrent parses must not interfere.
	svc := newService()
	raw := "<html><body><article><h1>Title</h1><p>body text</p></article></body></html>"

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			md, _, err := svc.Parse(raw, "")
			if err == nil && !strings.Contains(md, "# Title") {
				err = io.ErrUnexpectedEOF
			}
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Errorf("concurrent parse failed: %v", err)
		}
	}
}
