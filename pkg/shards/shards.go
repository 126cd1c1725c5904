// Package shards searches the shards.info package catalog.
package shards

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jmylchreest/shardscout/internal/logger"
	"github.com/jmylchreest/shardscout/pkg/extractor"
	"github.com/jmylchreest/shardscout/pkg/fetcher"
	"github.com/jmylchreest/shardscout/pkg/records"
)

// DefaultOrigin is the public shards.info site.
const DefaultOrigin = "https://shards.info"

// ErrEmptyQuery is returned when the search query is blank.
var ErrEmptyQuery = errors.New("search query is required")

// Client runs searches against a shards.info origin.
type Client struct {
	fetcher *fetcher.Client
	origin  string
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

// SearchURL returns the results page URL for query.
func (c *Client) SearchURL(query string) string {
	return c.origin + "/search?query=" + url.QueryEscape(query)
}

// Search fetches the results page for query and extracts its records.
// A page without results yields an empty slice.
func (c *Client) Search(ctx context.Context, query string) ([]records.SearchRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	target := c.SearchURL(query)
	logger.Debug("searching shards", "query", query, "url", target)

	resp, err := c.fetcher.Get(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("shards search: %w", err)
	}

	doc, err := extractor.NewDocument(resp.Body, resp.ContentType())
	if err != nil {
		return nil, fmt.Errorf("parsing shards search page: %w", err)
	}

	results := extractor.ParseShardSearch(doc, c.origin)
	logger.Debug("shards search complete", "query", query, "results", len(results))
	return results, nil
}
