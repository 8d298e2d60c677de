// Package comment renders the published summary comment from a template.
package comment

import (
	"fmt"
	"os"
	"strings"
)

// Fields carries everything substituted into the comment template.
type Fields struct {
	Title     string
	URL       string
	Reduction int
	Date      string
	Sentences []string
	Words     []string
}

// Renderer builds comment bodies from a fixed template with five positional
// verbs: title, url, reduction, date, quoted body. Title and URL are trusted
// as returned by the scraper; the template does no escaping of its own.
type Renderer struct {
	template string
}

// LoadRenderer reads the template file at path.
func LoadRenderer(path string) (*Renderer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read comment template: %w", err)
	}
	return NewRenderer(string(data)), nil
}

// NewRenderer wraps a template string.
func NewRenderer(template string) *Renderer {
	return &Renderer{template: template}
}

// Render substitutes the fields into the template and appends the ranked
// word list as a footer when words are present.
func (r *Renderer) Render(f Fields) string {
	body := fmt.Sprintf(r.template, f.Title, f.URL, f.Reduction, f.Date, QuoteSentences(f.Sentences))
	if len(f.Words) > 0 {
		body += "\n\n" + RankWords(f.Words)
	}
	return body
}

// QuoteSentences puts each sentence on its own block-quoted line, joined by
// blank lines.
func QuoteSentences(sentences []string) string {
	quoted := make([]string, 0, len(sentences))
	for _, s := range sentences {
		quoted = append(quoted, "> "+s)
	}
	return strings.Join(quoted, "\n\n")
}

// RankWords renders each word suffixed with its 1-based rank marker,
// concatenated with single spaces: "foo^#1 bar^#2 ".
func RankWords(words []string) string {
	var b strings.Builder
	for i, w := range words {
		fmt.Fprintf(&b, "%s^#%d ", w, i+1)
	}
	return b.String()
}
