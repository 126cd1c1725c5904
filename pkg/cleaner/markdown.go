package cleaner

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// MarkdownCleaner converts HTML to Markdown using html-to-markdown.
// Headings, lists, code blocks and links of the documentation survive the
// conversion.
type MarkdownCleaner struct{}

// NewMarkdown creates a new Markdown cleaner.
func NewMarkdown() *MarkdownCleaner {
	return &MarkdownCleaner{}
}

// Clean converts HTML to Markdown.
func (c *MarkdownCleaner) Clean(html string) (string, error) {
	markdown, err := md.ConvertString(html)
	if err != nil {
		return "", err
	}

	return cleanWhitespace(markdown), nil
}

// Name returns the cleaner type.
func (c *MarkdownCleaner) Name() string {
	return "markdown"
}

// cleanWhitespace collapses runs of blank lines to one and trims the result.
func cleanWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	var result []string
	blankCount := 0

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blankCount++
			if blankCount <= 1 {
				result = append(result, "")
			}
			continue
		}
		blankCount = 0
		result = append(result, line)
	}

	return strings.TrimSpace(strings.Join(result, "\n"))
}
