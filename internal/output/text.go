package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// TextWriter writes one line-oriented block per item, separated by a blank line.
type TextWriter struct {
	w     *bufio.Writer
	count int
}

// NewTextWriter creates a text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// Write writes a single item. Items that are not a Texter are printed with %v.
func (w *TextWriter) Write(data any) error {
	var text string
	if t, ok := data.(Texter); ok {
		text = t.Text()
	} else {
		text = fmt.Sprintf("%v", data)
	}

	if w.count > 0 {
		if _, err := w.w.WriteString("\n"); err != nil {
			return err
		}
	}
	w.count++

	if _, err := w.w.WriteString(strings.TrimRight(text, "\n") + "\n"); err != nil {
		return err
	}
	return nil
}

// WriteAll writes multiple items.
func (w *TextWriter) WriteAll(data []any) error {
	for _, item := range data {
		if err := w.Write(item); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer.
func (w *TextWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *TextWriter) Close() error {
	return w.Flush()
}
