package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// MarkdownWriter renders buffered items as markdown. When every item is
// Tabular they form one table; otherwise each item is rendered on its own.
type MarkdownWriter struct {
	w     *bufio.Writer
	items []any
	done  bool
}

// NewMarkdownWriter creates a markdown writer.
func NewMarkdownWriter(w io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		w:     bufio.NewWriter(w),
		items: make([]any, 0),
	}
}

// Write buffers a single item.
func (w *MarkdownWriter) Write(data any) error {
	w.items = append(w.items, data)
	return nil
}

// WriteAll buffers multiple items.
func (w *MarkdownWriter) WriteAll(data []any) error {
	w.items = append(w.items, data...)
	return nil
}

// Flush renders the buffered items.
func (w *MarkdownWriter) Flush() error {
	items := w.items
	w.items = make([]any, 0)
	w.done = true

	var out string
	switch {
	case len(items) == 0:
		out = "_No results._"
	case allTabular(items):
		out = renderTable(items)
	default:
		blocks := make([]string, 0, len(items))
		for _, item := range items {
			blocks = append(blocks, strings.TrimSpace(markdownBlock(item)))
		}
		out = strings.Join(blocks, "\n\n---\n\n")
	}

	if _, err := w.w.WriteString(out + "\n"); err != nil {
		return err
	}
	return w.w.Flush()
}

// Close flushes the writer unless Flush was already called.
func (w *MarkdownWriter) Close() error {
	if w.done && len(w.items) == 0 {
		return nil
	}
	return w.Flush()
}

func allTabular(items []any) bool {
	for _, item := range items {
		if _, ok := item.(Tabular); !ok {
			return false
		}
	}
	return true
}

func renderTable(items []any) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row(items[0].(Tabular).TableHeader()))
	for _, item := range items {
		t.AppendRow(table.Row(item.(Tabular).TableRow()))
	}
	return t.RenderMarkdown()
}

func markdownBlock(item any) string {
	switch v := item.(type) {
	case Markdowner:
		return v.Markdown()
	case Texter:
		return "```\n" + strings.TrimRight(v.Text(), "\n") + "\n```"
	default:
		return fmt.Sprintf("%v", v)
	}
}
