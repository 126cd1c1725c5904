// Package output handles output formatting and writing.
//
// Every format is a view over the same records; no writer changes what was
// extracted.
package output

import (
	"fmt"
	"io"
	"strings"
)

// Format represents output format types.
type Format string

const (
	FormatJSON     Format = "json"
	FormatJSONL    Format = "jsonl"
	FormatYAML     Format = "yaml"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

// Formats lists the supported formats in help-text order.
var Formats = []Format{FormatJSON, FormatJSONL, FormatYAML, FormatText, FormatMarkdown}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "md" {
		return FormatMarkdown, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported output format: %s", s)
}

// Texter is implemented by records with a line-oriented text view.
type Texter interface {
	Text() string
}

// Markdowner is implemented by records with a standalone markdown view.
type Markdowner interface {
	Markdown() string
}

// Tabular is implemented by records that render as markdown table rows.
type Tabular interface {
	TableHeader() []any
	TableRow() []any
}

// Writer handles output serialization.
type Writer interface {
	// Write outputs a single result.
	Write(data any) error

	// WriteAll outputs multiple results.
	WriteAll(data []any) error

	// Flush ensures all data is written.
	Flush() error

	// Close releases resources.
	Close() error
}

// WriterOption configures a writer.
type WriterOption func(*writerConfig)

type writerConfig struct {
	pretty bool
	indent string
	array  bool
}

// WithPretty enables pretty-printing.
func WithPretty(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.pretty = enabled
	}
}

// WithIndent sets the indentation string.
func WithIndent(indent string) WriterOption {
	return func(c *writerConfig) {
		c.indent = indent
	}
}

// WithArray makes JSON and YAML always emit a list, even for zero or one item.
func WithArray(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.array = enabled
	}
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...WriterOption) (Writer, error) {
	cfg := &writerConfig{
		indent: "  ",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatJSON:
		return NewJSONWriter(w, cfg.pretty, cfg.indent, cfg.array), nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w, cfg.array), nil
	case FormatText:
		return NewTextWriter(w), nil
	case FormatMarkdown:
		return NewMarkdownWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
