// Package article defines the data model shared across the parse pipeline.
package article

// Metadata holds bibliographic fields read from article markup.
// Every field is independently optional: an absent source tag leaves the
// field zero and it is omitted from JSON output.
type Metadata struct {
	Title           string   `json:"title,omitempty"`
	Authors         []string `json:"authors,omitempty"`
	PublicationDate string   `json:"publication_date,omitempty"`
	Journal         string   `json:"journal,omitempty"`
	DOI             string   `json:"doi,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
	Abstract        string   `json:"abstract,omitempty"`
}

// IsZero reports whether no field was populated.
func (m Metadata) IsZero() bool {
	return m.Title == "" &&
		len(m.Authors) == 0 &&
		m.PublicationDate == "" &&
		m.Journal == "" &&
		m.DOI == "" &&
		len(m.Keywords) == 0 &&
		m.Abstract == ""
}
