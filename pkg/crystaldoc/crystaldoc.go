// Package crystaldoc searches crystaldoc.info and fetches shard API
// documentation pages from it.
package crystaldoc

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jmylchreest/shardscout/internal/logger"
	"github.com/jmylchreest/shardscout/pkg/cleaner"
	"github.com/jmylchreest/shardscout/pkg/extractor"
	"github.com/jmylchreest/shardscout/pkg/fetcher"
	"github.com/jmylchreest/shardscout/pkg/records"
)

// DefaultOrigin is the public crystaldoc.info site.
const DefaultOrigin = "https://crystaldoc.info"

var (
	// ErrEmptyQuery is returned when a query or identifier is blank.
	ErrEmptyQuery = errors.New("query is required")

	// ErrNotFound is returned when a bare shard name matches no search result.
	ErrNotFound = errors.New("no shard found")
)

// Client talks to a crystaldoc.info origin.
type Client struct {
	fetcher *fetcher.Client
	origin  string
	content cleaner.Cleaner
}

// Option configures a Client.
type Option func(*Client)

// WithOrigin overrides the site origin, e.g. for a mirror or a test server.
func WithOrigin(origin string) Option {
	return func(c *Client) {
		if origin != "" {
			c.origin = strings.TrimRight(origin, "/")
		}
	}
}

// WithContentCleaner sets how a page's main content is rendered. The
// default is trimmed plain text.
func WithContentCleaner(cl cleaner.Cleaner) Option {
	return func(c *Client) {
		c.content = cl
	}
}

// New creates a Client that retrieves pages through f.
func New(f *fetcher.Client, opts ...Option) *Client {
	c := &Client{
		fetcher: f,
		origin:  DefaultOrigin,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search submits query to the site's search form and extracts the listed
// shards. A page without results yields an empty slice.
func (c *Client) Search(ctx context.Context, query string) ([]records.CatalogEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	form := url.Values{}
	form.Set("q", query)
	target := c.origin + "/search"
	logger.Debug("searching crystaldoc", "query", query, "url", target)

	resp, err := c.fetcher.PostForm(ctx, target, form.Encode())
	if err != nil {
		return nil, fmt.Errorf("crystaldoc search: %w", err)
	}

	doc, err := extractor.NewDocument(resp.Body, resp.ContentType())
	if err != nil {
		return nil, fmt.Errorf("parsing crystaldoc search page: %w", err)
	}

	results := extractor.ParseCatalog(doc, c.origin)
	logger.Debug("crystaldoc search complete", "query", query, "results", len(results))
	return results, nil
}

// Resolve turns an identifier into a documentation URL. Absolute http(s)
// URLs are returned unchanged, "owner/name" slugs are expanded below the
// catalog path, and bare names are looked up with Search, taking the first
// result.
func (c *Client) Resolve(ctx context.Context, identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	switch {
	case identifier == "":
		return "", ErrEmptyQuery
	case isAbsoluteURL(identifier):
		return identifier, nil
	case strings.Contains(identifier, "/"):
		return c.origin + extractor.CatalogPrefix + strings.Trim(identifier, "/"), nil
	}

	results, err := c.Search(ctx, identifier)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, identifier)
	}

	logger.Debug("resolved shard name", "name", identifier, "url", results[0].DocURL)
	return results[0].DocURL, nil
}

// Fetch resolves identifier and extracts the documentation page it points to.
func (c *Client) Fetch(ctx context.Context, identifier string) (records.DocumentationPage, error) {
	target, err := c.Resolve(ctx, identifier)
	if err != nil {
		return records.DocumentationPage{}, err
	}

	resp, err := c.fetcher.Get(ctx, target)
	if err != nil {
		return records.DocumentationPage{}, fmt.Errorf("crystaldoc fetch: %w", err)
	}

	doc, err := extractor.NewDocument(resp.Body, resp.ContentType())
	if err != nil {
		return records.DocumentationPage{}, fmt.Errorf("parsing documentation page: %w", err)
	}

	return extractor.ParseDocPage(doc, resp.URL, c.content), nil
}

func isAbsoluteURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
