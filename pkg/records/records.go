// Package records defines the typed results produced by the extractor.
//
// Records are plain values built once during extraction and never mutated
// afterwards. Optional fields are pointers and encode as null.
package records

// SearchRecord is one package card from a shards.info search page.
type SearchRecord struct {
	Name         string   `json:"name" yaml:"name"`
	Description  *string  `json:"description" yaml:"description"`
	Stars        int      `json:"stars" yaml:"stars"`
	Forks        int      `json:"forks" yaml:"forks"`
	OpenIssues   int      `json:"open_issues" yaml:"open_issues"`
	UsedBy       int      `json:"used_by" yaml:"used_by"`
	Dependencies int      `json:"dependencies" yaml:"dependencies"`
	LastActivity *string  `json:"last_activity" yaml:"last_activity"`
	Topics       []string `json:"topics" yaml:"topics"`
	URL          string   `json:"url" yaml:"url"`
	AvatarURL    *string  `json:"avatar_url" yaml:"avatar_url"`
	Archived     bool     `json:"archived" yaml:"archived"`
}

// CatalogEntry is one shard listed by a crystaldoc.info search.
type CatalogEntry struct {
	Name      string `json:"name" yaml:"name"`
	Stars     int    `json:"stars" yaml:"stars"`
	SourceURL string `json:"source_url" yaml:"source_url"`
	DocURL    string `json:"doc_url" yaml:"doc_url"`
}

// TypeEntry is one item of a documentation page's types list.
type TypeEntry struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	URL      string `json:"url" yaml:"url"`
	IsParent bool   `json:"is_parent" yaml:"is_parent"`
}

// DocumentationPage is a parsed crystaldoc.info API page.
type DocumentationPage struct {
	ShardName   string      `json:"shard_name" yaml:"shard_name"`
	Version     string      `json:"version" yaml:"version"`
	Description *string     `json:"description" yaml:"description"`
	Types       []TypeEntry `json:"types" yaml:"types"`
	Content     string      `json:"content" yaml:"content"`
	URL         string      `json:"url" yaml:"url"`
}

// Unknown is the placeholder for a shard name or version that could not be
// read from the page title.
const Unknown = "unknown"

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string, or fallback for nil.
func Deref(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
