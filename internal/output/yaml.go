package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLWriter writes YAML output.
type YAMLWriter struct {
	w     *bufio.Writer
	array bool
	items []any
	done  bool
}

// NewYAMLWriter creates a YAML writer. With array set, the output is always a
// YAML sequence.
func NewYAMLWriter(w io.Writer, array bool) *YAMLWriter {
	return &YAMLWriter{
		w:     bufio.NewWriter(w),
		array: array,
		items: make([]any, 0),
	}
}

// Write buffers a single item.
func (w *YAMLWriter) Write(data any) error {
	w.items = append(w.items, data)
	return nil
}

// WriteAll buffers multiple items.
func (w *YAMLWriter) WriteAll(data []any) error {
	w.items = append(w.items, data...)
	return nil
}

// Flush writes the buffered items as YAML.
func (w *YAMLWriter) Flush() error {
	encoder := yaml.NewEncoder(w.w)
	encoder.SetIndent(2)

	var value any = w.items
	if len(w.items) == 1 && !w.array {
		value = w.items[0]
	}
	w.done = true

	if err := encoder.Encode(value); err != nil {
		return err
	}
	w.items = w.items[:0]

	if err := encoder.Close(); err != nil {
		return err
	}

	return w.w.Flush()
}

// Close flushes the writer unless Flush was already called.
func (w *YAMLWriter) Close() error {
	if w.done && len(w.items) == 0 {
		return nil
	}
	return w.Flush()
}
