// Package frontmatter composes and splits YAML front-matter blocks for
// Markdown documents handed to downstream workflow tools.
package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"sciparse/internal/article"
)

const delimiter = "---"

// fields is the YAML shape of the front-matter block.
type fields struct {
	Title    string   `yaml:"title,omitempty"`
	Authors  []string `yaml:"authors,omitempty"`
	Date     string   `yaml:"date,omitempty"`
	Journal  string   `yaml:"journal,omitempty"`
	DOI      string   `yaml:"doi,omitempty"`
	Keywords []string `yaml:"keywords,omitempty"`
	Abstract string   `yaml:"abstract,omitempty"`
}

// Compose prepends a YAML front-matter block built from m to body. A zero
// metadata record leaves the body untouched.
func Compose(m article.Metadata, body string) (string, error) {
	if m.IsZero() {
		return body, nil
	}

	out, err := yaml.Marshal(fields{
		Title:    m.Title,
		Authors:  m.Authors,
		Date:     m.PublicationDate,
		Journal:  m.Journal,
		DOI:      m.DOI,
		Keywords: m.Keywords,
		Abstract: m.Abstract,
	})
	if err != nil {
		return "", fmt.Errorf("marshal front matter: %w", err)
	}

	return delimiter + "\n" + string(out) + delimiter + "\n\n" + body, nil
}

// Split separates a front-mattered document into its raw YAML block and
// the Markdown body. A document without front matter comes back unchanged
// with an empty block.
func Split(doc string) (yamlBlock, body string) {
	if !strings.HasPrefix(doc, delimiter+"\n") {
		return "", doc
	}
	rest := doc[len(delimiter)+1:]
	end := strings.Index(rest, "\n"+delimiter)
	if end < 0 {
		return "", doc
	}
	yamlBlock = rest[:end]
	body = rest[end+len(delimiter)+1:]
	// The closing delimiter line may end with a newline or EOF.
	body = strings.TrimPrefix(body, "\n")
	body = strings.TrimPrefix(body, "\n")
	return yamlBlock, body
}

// Metadata decodes a front-matter YAML block back into a metadata record.
func Metadata(yamlBlock string) (article.Metadata, error) {
	var f fields
	if err := yaml.Unmarshal([]byte(yamlBlock), &f); err != nil {
		return article.Metadata{}, fmt.Errorf("unmarshal front matter: %w", err)
	}
	return article.Metadata{
		Title:           f.Title,
		Authors:         f.Authors,
		PublicationDate: f.Date,
		Journal:         f.Journal,
		DOI:             f.DOI,
		Keywords:        f.Keywords,
		Abstract:        f.Abstract,
	}, nil
}
