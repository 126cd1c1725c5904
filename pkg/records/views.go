package records

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Text renders the record as a short line-oriented block.
func (r SearchRecord) Text() string {
	var sb strings.Builder
	sb.WriteString(r.Name)
	if r.Archived {
		sb.WriteString(" [archived]")
	}
	sb.WriteString("\n")
	if r.Description != nil {
		fmt.Fprintf(&sb, "  %s\n", *r.Description)
	}
	fmt.Fprintf(&sb, "  stars: %s  forks: %s  issues: %s  used by: %s  deps: %s\n",
		humanize.Comma(int64(r.Stars)),
		humanize.Comma(int64(r.Forks)),
		humanize.Comma(int64(r.OpenIssues)),
		humanize.Comma(int64(r.UsedBy)),
		humanize.Comma(int64(r.Dependencies)))
	if r.LastActivity != nil {
		fmt.Fprintf(&sb, "  last activity: %s\n", *r.LastActivity)
	}
	if len(r.Topics) > 0 {
		fmt.Fprintf(&sb, "  topics: %s\n", strings.Join(r.Topics, ", "))
	}
	if r.URL != "" {
		fmt.Fprintf(&sb, "  %s\n", r.URL)
	}
	return sb.String()
}

// TableHeader returns the column names used for markdown tables.
func (r SearchRecord) TableHeader() []any {
	return []any{"Name", "Description", "Stars", "Forks", "Issues", "Used by", "Deps", "Last activity"}
}

// TableRow returns the record's markdown table cells.
func (r SearchRecord) TableRow() []any {
	name := r.Name
	if r.URL != "" {
		name = fmt.Sprintf("[%s](%s)", r.Name, r.URL)
	}
	if r.Archived {
		name += " (archived)"
	}
	return []any{
		name,
		Deref(r.Description, ""),
		r.Stars,
		r.Forks,
		r.OpenIssues,
		r.UsedBy,
		r.Dependencies,
		Deref(r.LastActivity, ""),
	}
}

// Text renders the entry as a single line.
func (e CatalogEntry) Text() string {
	return fmt.Sprintf("%s (%s stars)\n  docs:   %s\n  source: %s\n",
		e.Name, humanize.Comma(int64(e.Stars)), e.DocURL, e.SourceURL)
}

// TableHeader returns the column names used for markdown tables.
func (e CatalogEntry) TableHeader() []any {
	return []any{"Name", "Stars", "Docs", "Source"}
}

// TableRow returns the entry's markdown table cells.
func (e CatalogEntry) TableRow() []any {
	return []any{e.Name, e.Stars, e.DocURL, e.SourceURL}
}

// Text renders the page header, its types and the content body.
func (p DocumentationPage) Text() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", p.ShardName, p.Version)
	if p.Description != nil {
		fmt.Fprintf(&sb, "%s\n", *p.Description)
	}
	if len(p.Types) > 0 {
		sb.WriteString("\nTypes:\n")
		for _, t := range p.Types {
			marker := "-"
			if t.IsParent {
				marker = "+"
			}
			fmt.Fprintf(&sb, "  %s %s\n", marker, t.Name)
		}
	}
	if p.Content != "" {
		fmt.Fprintf(&sb, "\n%s\n", p.Content)
	}
	return sb.String()
}

// Markdown renders the page as a markdown document.
func (p DocumentationPage) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s %s\n\n", p.ShardName, p.Version)
	if p.Description != nil {
		fmt.Fprintf(&sb, "%s\n\n", *p.Description)
	}
	if p.URL != "" {
		fmt.Fprintf(&sb, "Source: <%s>\n\n", p.URL)
	}
	if len(p.Types) > 0 {
		sb.WriteString("## Types\n\n")
		for _, t := range p.Types {
			if t.URL != "" {
				fmt.Fprintf(&sb, "- [%s](%s)\n", t.Name, t.URL)
			} else {
				fmt.Fprintf(&sb, "- %s\n", t.Name)
			}
		}
		sb.WriteString("\n")
	}
	if p.Content != "" {
		sb.WriteString("## Content\n\n")
		sb.WriteString(p.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}
