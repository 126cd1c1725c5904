// Package fetcher retrieves HTML pages over HTTP.
//
// A Client issues one logical GET or form POST and follows redirects by
// hand, one hop at a time, so that relative Location headers, redirect
// loops and the hop budget are handled the same way for every method.
package fetcher

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmylchreest/shardscout/internal/version"
)

// Request describes one logical request. Redirect hops reuse the method,
// headers and body.
type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Body    string
}

// Response is the last response of a redirect chain.
type Response struct {
	URL        string // URL of the hop that produced this response
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether the status code is 2xx.
func (r Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ContentType returns the response's Content-Type header.
func (r Response) ContentType() string {
	if r.Header == nil {
		return ""
	}
	return r.Header.Get("Content-Type")
}

// Config holds client settings.
type Config struct {
	UserAgent    string
	Timeout      time.Duration // applied to each hop, not to the whole chain
	MaxRedirects int
	MaxBodySize  int // bytes per response; 0 means unlimited
}

// DefaultMaxRedirects is the redirect budget used by DefaultConfig.
const DefaultMaxRedirects = 10

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent:    DefaultUserAgent(),
		Timeout:      30 * time.Second,
		MaxRedirects: DefaultMaxRedirects,
	}
}

// DefaultUserAgent identifies this tool to the catalog sites.
func DefaultUserAgent() string {
	return "shardscout/" + version.String() + " (+https://github.com/jmylchreest/shardscout)"
}

// Error types for distinguishing failure reasons.
var (
	// ErrTooManyRedirects indicates the redirect budget ran out before the
	// chain reached a final response.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge indicates a response body exceeded Config.MaxBodySize.
	ErrBodyTooLarge = errors.New("response body too large")
)

// StatusError is returned by Get and PostForm when the final response is not 2xx.
// Check with errors.As.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP request failed: status %d (%s)", e.StatusCode, e.URL)
}
