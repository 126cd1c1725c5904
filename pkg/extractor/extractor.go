// Package extractor turns catalog HTML pages into typed records.
//
// Extraction never fails on a per-field basis: missing elements degrade to
// the documented defaults, and repeating blocks without their identifying
// link are skipped. Only an unreadable document is an error.
package extractor

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// NewDocument decodes body to UTF-8, using the charset declared in
// contentType or sniffed from the markup, and parses it.
func NewDocument(body []byte, contentType string) (*goquery.Document, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		// Unknown charset label: parse the bytes as they are.
		return goquery.NewDocumentFromReader(bytes.NewReader(body))
	}
	return goquery.NewDocumentFromReader(r)
}

// NewDocumentFromString parses an HTML string that is already UTF-8.
func NewDocumentFromString(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// trimmedText returns the trimmed text of the first node in sel.
func trimmedText(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.First().Text())
}

// optionalText is trimmedText normalized to nil when empty.
func optionalText(sel *goquery.Selection) *string {
	if sel.Length() == 0 {
		return nil
	}
	text := trimmedText(sel)
	if text == "" {
		return nil
	}
	return &text
}

// optionalAttr returns the attribute of the first node in sel, or nil when
// there is no node or no such attribute.
func optionalAttr(sel *goquery.Selection, name string) *string {
	val, ok := sel.First().Attr(name)
	if !ok {
		return nil
	}
	return &val
}
