package frontmatter

import (
	"strings"
	"testing"

	"sciparse/internal/article"
)

func TestCompose_PrependsBlock(t *testing.T) {
	m := article.Metadata{
		Title:           "A Study of Things",
		Authors:         []string{"Doe, Jane", "Roe, Richard"},
		PublicationDate: "2021/03/15",
		Journal:         "Journal of Things",
		DOI:             "10.1000/jot.2021.42",
	}

	out, err := Compose(m, "# A Study of Things\n\nBody.")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	if !strings.HasPrefix(out, "---\n") {
		t.Errorf("expected front-matter delimiter, got %q", out)
	}
	for _, want := range []string{"title: A Study of Things", "- Doe, Jane", "doi: 10.1000/jot.2021.42"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in front matter, got %q", want, out)
		}
	}
	if !strings.HasSuffix(out, "# A Study of Things\n\nBody.") {
		t.Errorf("expected body after front matter, got %q", out)
	}
}

func TestCompose_ZeroMetadataLeavesBodyUntouched(t *testing.T) {
	out, err := Compose(article.Metadata{}, "plain body")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if out != "plain body" {
		t.Errorf("expected untouched body, got %q", out)
	}
}

func TestSplit_RoundTrip(t *testing.T) {
	m := article.Metadata{
		Title:   "Roundtrip",
		Authors: []string{"One", "Two"},
		Journal: "J",
	}
	doc, err := Compose(m, "body text")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	block, body := Split(doc)
	if body != "body text" {
		t.Errorf("body: got %q", body)
	}

	got, err := Metadata(block)
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if got.Title != m.Title || got.Journal != m.Journal {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
	if len(got.Authors) != 2 || got.Authors[0] != "One" {
		t.Errorf("authors roundtrip mismatch: %v", got.Authors)
	}
}

func TestSplit_NoFrontMatter(t *testing.T) {
	block, body := Split("# Heading\n\ntext")
	if block != "" {
		t.Errorf("expected empty block, got %q", block)
	}
	if body != "# Heading\n\ntext" {
		t.Errorf("expected document unchanged, got %q", body)
	}
}

func TestSplit_UnterminatedBlock(t *testing.T) {
	in := "---\ntitle: dangling\nno closing delimiter"
	block, body := Split(in)
	if block != "" || body != in {
		t.Errorf("expected unterminated block treated as body, got block %q body %q", block, body)
	}
}
