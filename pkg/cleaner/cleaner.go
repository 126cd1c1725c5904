// Package cleaner renders an HTML fragment, such as a documentation page's
// main content, into the text form requested by the user.
package cleaner

import "fmt"

// Cleaner transforms HTML content into another representation.
type Cleaner interface {
	// Clean transforms the input HTML into a cleaned format.
	// The output format depends on the implementation (markdown, plain text, etc.).
	Clean(html string) (string, error)

	// Name returns the cleaner type for logging/debugging.
	Name() string
}

// Content formats accepted by ForFormat.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// ForFormat returns the cleaner for a content format name.
func ForFormat(format string) (Cleaner, error) {
	switch format {
	case FormatText, "":
		return NewText(), nil
	case FormatMarkdown, "md":
		return NewMarkdown(), nil
	case FormatHTML:
		return NewNoop(), nil
	default:
		return nil, fmt.Errorf("unsupported content format: %s (use text, markdown or html)", format)
	}
}
