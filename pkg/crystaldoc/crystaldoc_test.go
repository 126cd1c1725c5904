package crystaldoc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmylchreest/shardscout/pkg/cleaner"
	"github.com/jmylchreest/shardscout/pkg/fetcher"
)

const searchResults = `<html><body><ul>
  <li><a href="/github/kemalcr/kemal">kemal</a> <span class="badge">★ 3,612</span></li>
  <li><a href="/github/someone/kemal-session">kemal-session</a></li>
</ul></body></html>`

const docPage = `<html><head>
<meta name="description" content="Web framework">
<title>kemal v1.4.0</title>
</head><body>
<div class="types-list"><ul>
  <li class="parent" data-id="github/kemalcr/kemal/Kemal" data-name="kemal"><a href="Kemal.html">Kemal</a></li>
</ul></div>
<div class="main-content"><h2>Getting started</h2><p>Install it.</p></div>
</body></html>`

func newTestFetcher() *fetcher.Client {
	return fetcher.New(fetcher.Config{UserAgent: "crystaldoc-test", Timeout: 5 * time.Second})
}

// newSite serves a search form and a versioned documentation tree that the
// unversioned shard path redirects into.
func newSite(t *testing.T, results string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var searches atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			http.Error(w, "bad content type "+ct, http.StatusBadRequest)
			return
		}
		if err := r.ParseForm(); err != nil || r.PostForm.Get("q") == "" {
			http.Error(w, "missing q", http.StatusBadRequest)
			return
		}
		searches.Add(1)
		fmt.Fprint(w, results)
	})
	mux.HandleFunc("/github/kemalcr/kemal", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "kemal/v1.4.0/index.html")
		w.WriteHeader(http.StatusFound)
	})
	mux.HandleFunc("/github/kemalcr/kemal/v1.4.0/index.html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, docPage)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &searches
}

func TestClient_Search(t *testing.T) {
	srv, _ := newSite(t, searchResults)

	results, err := New(newTestFetcher(), WithOrigin(srv.URL)).Search(context.Background(), "kemal")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Stars != 3612 {
		t.Errorf("Stars = %d, want 3612", results[0].Stars)
	}
	if results[0].DocURL != srv.URL+"/github/kemalcr/kemal" {
		t.Errorf("DocURL = %q", results[0].DocURL)
	}
	if results[1].SourceURL != "https://github.com/someone/kemal-session" {
		t.Errorf("SourceURL = %q", results[1].SourceURL)
	}
}

func TestClient_Search_EmptyQuery(t *testing.T) {
	_, err := New(newTestFetcher()).Search(context.Background(), "")
	if !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestClient_Resolve(t *testing.T) {
	srv, searches := newSite(t, searchResults)
	c := New(newTestFetcher(), WithOrigin(srv.URL))

	tests := []struct {
		name       string
		identifier string
		want       string
	}{
		{"absolute url", "https://crystaldoc.info/github/a/b/v1.0/index.html", "https://crystaldoc.info/github/a/b/v1.0/index.html"},
		{"slug", "kemalcr/kemal", srv.URL + "/github/kemalcr/kemal"},
		{"slug with slashes trimmed", "/kemalcr/kemal/", srv.URL + "/github/kemalcr/kemal"},
		{"bare name", "kemal", srv.URL + "/github/kemalcr/kemal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Resolve(context.Background(), tt.identifier)
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.identifier, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.identifier, got, tt.want)
			}
		})
	}

	if got := searches.Load(); got != 1 {
		t.Errorf("expected exactly one search (for the bare name), got %d", got)
	}
}

func TestClient_Resolve_NotFound(t *testing.T) {
	srv, _ := newSite(t, `<html><body><ul></ul></body></html>`)

	_, err := New(newTestFetcher(), WithOrigin(srv.URL)).Resolve(context.Background(), "nothing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "no shard found") {
		t.Errorf("error = %q", err)
	}
}

func TestClient_Fetch_FollowsRedirectToVersionedPage(t *testing.T) {
	srv, _ := newSite(t, searchResults)

	page, err := New(newTestFetcher(), WithOrigin(srv.URL)).Fetch(context.Background(), "kemalcr/kemal")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if page.ShardName != "kemal" || page.Version != "1.4.0" {
		t.Errorf("title parsed as (%q, %q)", page.ShardName, page.Version)
	}
	if page.URL != srv.URL+"/github/kemalcr/kemal/v1.4.0/index.html" {
		t.Errorf("URL = %q, want final redirect target", page.URL)
	}
	if len(page.Types) != 1 || page.Types[0].URL != srv.URL+"/github/kemalcr/kemal/v1.4.0/Kemal.html" {
		t.Errorf("unexpected types: %+v", page.Types)
	}
	if page.Content != "Getting startedInstall it." {
		t.Errorf("Content = %q", page.Content)
	}
}

func TestClient_Fetch_BareNameWithMarkdownContent(t *testing.T) {
	srv, _ := newSite(t, searchResults)

	c := New(newTestFetcher(), WithOrigin(srv.URL), WithContentCleaner(cleaner.NewMarkdown()))
	page, err := c.Fetch(context.Background(), "kemal")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if !strings.Contains(page.Content, "## Getting started") {
		t.Errorf("expected markdown content, got %q", page.Content)
	}
}

func TestClient_Fetch_NotFoundPage(t *testing.T) {
	srv, _ := newSite(t, searchResults)

	_, err := New(newTestFetcher(), WithOrigin(srv.URL)).Fetch(context.Background(), "nobody/nothing")

	var statusErr *fetcher.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *fetcher.StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", statusErr.StatusCode)
	}
}
