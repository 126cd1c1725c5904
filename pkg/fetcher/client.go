package fetcher

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gocolly/colly/v2"

	"github.com/jmylchreest/shardscout/internal/logger"
)

// Client performs redirect-following GET and form POST requests.
// It holds no per-request state and is safe to reuse across calls.
type Client struct {
	config Config
}

// New creates a client. Zero fields fall back to DefaultConfig; a negative
// MaxRedirects disables redirect following entirely.
func New(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxRedirects == 0 {
		cfg.MaxRedirects = def.MaxRedirects
	}
	if cfg.MaxRedirects < 0 {
		cfg.MaxRedirects = 0
	}
	if cfg.MaxBodySize < 0 {
		cfg.MaxBodySize = 0
	}
	return &Client{config: cfg}
}

// Config returns the effective client configuration.
func (c *Client) Config() Config {
	return c.config
}

// Get fetches rawURL and returns the final body. A final status outside 2xx
// is reported as a *StatusError.
func (c *Client) Get(ctx context.Context, rawURL string) (Response, error) {
	resp, err := c.Do(ctx, Request{Method: http.MethodGet, URL: rawURL})
	if err != nil {
		return resp, err
	}
	if !resp.OK() {
		return resp, &StatusError{URL: resp.URL, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

// PostForm submits an already URL-encoded form body to rawURL.
func (c *Client) PostForm(ctx context.Context, rawURL, encoded string) (Response, error) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.Do(ctx, Request{Method: http.MethodPost, URL: rawURL, Headers: hdr, Body: encoded})
	if err != nil {
		return resp, err
	}
	if !resp.OK() {
		return resp, &StatusError{URL: resp.URL, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

// Do runs req and follows redirects until a non-redirect response, an
// already visited URL, or the redirect budget is exhausted.
//
// Do panics if req.Method is neither GET nor POST.
func (c *Client) Do(ctx context.Context, req Request) (Response, error) {
	switch req.Method {
	case http.MethodGet, http.MethodPost:
	default:
		panic(fmt.Sprintf("fetcher: unsupported method %q", req.Method))
	}

	hdr := c.headers(req.Headers)
	visited := map[string]struct{}{}
	remaining := c.config.MaxRedirects
	current := req.URL

	for {
		visited[current] = struct{}{}

		resp, err := c.hop(ctx, req.Method, current, hdr, req.Body)
		if err != nil {
			return resp, err
		}

		location := resp.Header.Get("Location")
		if resp.StatusCode < 300 || resp.StatusCode >= 400 || location == "" {
			return resp, nil
		}

		next, err := ResolveLocation(current, location)
		if err != nil {
			return resp, fmt.Errorf("invalid redirect location %q: %w", location, err)
		}
		if _, seen := visited[next]; seen {
			logger.Debug("redirect loop detected, returning last response", "url", current, "location", next)
			return resp, nil
		}
		if remaining <= 0 {
			return resp, fmt.Errorf("%w: %s", ErrTooManyRedirects, req.URL)
		}
		remaining--

		logger.Debug("following redirect", "from", current, "to", next, "status", resp.StatusCode, "remaining", remaining)
		current = next
	}
}

// headers merges caller headers with the identifying defaults.
func (c *Client) headers(in http.Header) http.Header {
	hdr := http.Header{}
	for k, v := range in {
		hdr[k] = append([]string(nil), v...)
	}
	if hdr.Get("User-Agent") == "" {
		hdr.Set("User-Agent", c.config.UserAgent)
	}
	if hdr.Get("Accept") == "" {
		hdr.Set("Accept", "text/html")
	}
	return hdr
}

// hop performs a single request without following redirects.
func (c *Client) hop(ctx context.Context, method, target string, hdr http.Header, body string) (Response, error) {
	logger.Debug("fetch hop starting", "method", method, "url", target)

	result := Response{URL: target, Header: http.Header{}}

	// A fresh collector per hop keeps no visited or cookie state between calls.
	col := colly.NewCollector(
		colly.UserAgent(hdr.Get("User-Agent")),
		colly.AllowURLRevisit(),
		colly.StdlibContext(ctx),
	)
	col.ParseHTTPErrorResponse = true
	col.MaxBodySize = 0
	if c.config.MaxBodySize > 0 {
		// One extra byte tells a body at the limit apart from a truncated one.
		col.MaxBodySize = c.config.MaxBodySize + 1
	}
	col.SetRequestTimeout(c.config.Timeout)
	col.SetRedirectHandler(func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	})

	col.OnResponse(func(r *colly.Response) {
		result.StatusCode = r.StatusCode
		if r.Headers != nil {
			result.Header = r.Headers.Clone()
		}
		markDecoded(result.Header)
		result.Body = r.Body
		logger.Debug("fetch hop response received",
			"status", r.StatusCode,
			"content_type", result.ContentType(),
			"body_size", len(r.Body))
	})

	var reqBody io.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	}

	if err := col.Request(method, target, reqBody, nil, hdr.Clone()); err != nil {
		logger.Debug("fetch hop failed", "url", target, "error", err)
		return result, fmt.Errorf("failed to %s %s: %w", method, target, err)
	}

	if c.config.MaxBodySize > 0 && len(result.Body) > c.config.MaxBodySize {
		return result, fmt.Errorf("%w: %s exceeds %d bytes", ErrBodyTooLarge, target, c.config.MaxBodySize)
	}

	return result, nil
}

// markDecoded rewrites a declared charset to utf-8. colly has already
// converted such bodies, so the header must not trigger a second decode.
func markDecoded(hdr http.Header) {
	ct := hdr.Get("Content-Type")
	if ct == "" {
		return
	}
	mediaType, params, err := mime.ParseMediaType(ct)
	if err != nil || params["charset"] == "" {
		return
	}
	params["charset"] = "utf-8"
	hdr.Set("Content-Type", mime.FormatMediaType(mediaType, params))
}
