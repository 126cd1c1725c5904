package cleaner

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TextCleaner reduces an HTML fragment to its text nodes.
type TextCleaner struct{}

// NewText creates a plain-text cleaner.
func NewText() *TextCleaner {
	return &TextCleaner{}
}

// Clean returns the trimmed text content of html.
func (c *TextCleaner) Clean(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(doc.Text()), nil
}

// Name returns the cleaner type.
func (c *TextCleaner) Name() string {
	return "text"
}
