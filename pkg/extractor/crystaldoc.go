package extractor

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jmylchreest/shardscout/internal/logger"
	"github.com/jmylchreest/shardscout/pkg/cleaner"
	"github.com/jmylchreest/shardscout/pkg/records"
)

const (
	// CatalogPrefix is the path prefix of shard documentation links.
	CatalogPrefix = "/github/"

	// SourceHostPrefix replaces CatalogPrefix to form a shard's source URL.
	SourceHostPrefix = "https://github.com/"

	starGlyph = "★"
)

// Selectors for crystaldoc.info pages.
const (
	catalogItemSelector  = "li"
	catalogBadgeSelector = ".badge"
	typesItemSelector    = ".types-list li"
	mainContentSelector  = ".main-content"
	descriptionSelector  = `meta[name="description"]`
)

// titlePattern matches "<name> v<version>" with a greedy name and a dotted
// numeric version.
var titlePattern = regexp.MustCompile(`^(.+) v(\d+(?:\.\d+)*)`)

// ParseCatalog extracts a CatalogEntry from every list item whose first link
// points below CatalogPrefix. Other items are skipped, so the result can be
// shorter than the number of list items. Items nested inside an item that
// already produced an entry belong to that entry and are skipped too.
func ParseCatalog(doc *goquery.Document, origin string) []records.CatalogEntry {
	results := make([]records.CatalogEntry, 0)
	matched := make(map[*html.Node]struct{})

	doc.Find(catalogItemSelector).Each(func(_ int, item *goquery.Selection) {
		if insideMatched(item, matched) {
			return
		}

		link := item.Find("a").First()
		href, ok := link.Attr("href")
		if !ok || !strings.HasPrefix(href, CatalogPrefix) {
			return
		}

		entry := records.CatalogEntry{
			Name:      strings.TrimSpace(link.Text()),
			SourceURL: SourceHostPrefix + strings.TrimPrefix(href, CatalogPrefix),
			DocURL:    strings.TrimRight(origin, "/") + href,
		}

		item.Find(catalogBadgeSelector).EachWithBreak(func(_ int, badge *goquery.Selection) bool {
			text := badge.Text()
			if !strings.Contains(text, starGlyph) {
				return true
			}
			entry.Stars = ParseCount(text)
			return false
		})

		matched[item.Get(0)] = struct{}{}
		results = append(results, entry)
	})

	return results
}

func insideMatched(item *goquery.Selection, matched map[*html.Node]struct{}) bool {
	for _, parent := range item.ParentsFiltered(catalogItemSelector).Nodes {
		if _, ok := matched[parent]; ok {
			return true
		}
	}
	return false
}

// ParseTitle splits a documentation page title into shard name and version.
// Titles that do not match "<name> v<version>" yield records.Unknown for both.
func ParseTitle(title string) (name, version string) {
	m := titlePattern.FindStringSubmatch(strings.TrimSpace(title))
	if m == nil {
		return records.Unknown, records.Unknown
	}
	return strings.TrimSpace(m[1]), m[2]
}

// ParseDocPage extracts a DocumentationPage. pageURL is the address the page
// was fetched from and is used to absolutize type links; it may be empty.
// The main content is rendered by clean, or as trimmed plain text when clean
// is nil.
func ParseDocPage(doc *goquery.Document, pageURL string, clean cleaner.Cleaner) records.DocumentationPage {
	name, version := ParseTitle(doc.Find("title").First().Text())

	page := records.DocumentationPage{
		ShardName:   name,
		Version:     version,
		Description: optionalAttr(doc.Find(descriptionSelector), "content"),
		Types:       parseTypes(doc, pageURL),
		Content:     renderContent(doc.Find(mainContentSelector).First(), clean),
		URL:         pageURL,
	}

	return page
}

func parseTypes(doc *goquery.Document, pageURL string) []records.TypeEntry {
	base, err := url.Parse(pageURL)
	if err != nil || pageURL == "" {
		base = nil
	}

	types := make([]records.TypeEntry, 0)
	doc.Find(typesItemSelector).Each(func(_ int, item *goquery.Selection) {
		// Parent items nest their children's lists, so prefer the item's own link.
		link := item.ChildrenFiltered("a").First()
		if link.Length() == 0 {
			link = item.Find("a").First()
		}

		entry := records.TypeEntry{
			ID:       item.AttrOr("data-id", ""),
			IsParent: item.HasClass("parent"),
		}

		if name, ok := item.Attr("data-name"); ok {
			entry.Name = name
		} else {
			entry.Name = strings.TrimSpace(link.Text())
		}

		if href, ok := link.Attr("href"); ok {
			entry.URL = resolveRef(base, href)
		}

		types = append(types, entry)
	})

	return types
}

func resolveRef(base *url.URL, href string) string {
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func renderContent(sel *goquery.Selection, clean cleaner.Cleaner) string {
	if sel.Length() == 0 {
		return ""
	}
	if clean == nil {
		return strings.TrimSpace(sel.Text())
	}

	fragment, err := sel.Html()
	if err == nil {
		var out string
		out, err = clean.Clean(fragment)
		if err == nil {
			return strings.TrimSpace(out)
		}
	}

	logger.Warn("content cleaner failed, using plain text", "cleaner", clean.Name(), "error", err)
	return strings.TrimSpace(sel.Text())
}
