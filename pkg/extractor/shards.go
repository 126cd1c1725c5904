package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jmylchreest/shardscout/internal/logger"
	"github.com/jmylchreest/shardscout/pkg/records"
)

// Selectors for shards.info search result cards.
const (
	shardBlockSelector       = ".shard"
	shardNameSelector        = "h3 a"
	shardDescriptionSelector = ".description"
	shardAvatarSelector      = "img.avatar"
	shardArchivedSelector    = ".archived"
	shardTopicSelector       = ".topics .badge"
	shardStatSelector        = "ul.stats li"
)

// Positions in a card's stats list.
const (
	statStars = iota
	statForks
	statOpenIssues
	statUsedBy
	statDependencies
	statLastActivity
)

// ParseShardSearch extracts one SearchRecord per result card, in document
// order. origin is prefixed to each card's relative link to form its URL.
// A page without cards yields an empty slice.
func ParseShardSearch(doc *goquery.Document, origin string) []records.SearchRecord {
	results := make([]records.SearchRecord, 0)

	doc.Find(shardBlockSelector).Each(func(i int, block *goquery.Selection) {
		rec, ok := parseShardBlock(block, origin)
		if !ok {
			logger.Debug("skipping shard block without name link", "index", i)
			return
		}
		results = append(results, rec)
	})

	return results
}

func parseShardBlock(block *goquery.Selection, origin string) (records.SearchRecord, bool) {
	link := block.Find(shardNameSelector).First()
	if link.Length() == 0 {
		return records.SearchRecord{}, false
	}

	rec := records.SearchRecord{
		Name:        strings.TrimSpace(link.Text()),
		Description: optionalText(block.Find(shardDescriptionSelector)),
		AvatarURL:   optionalAttr(block.Find(shardAvatarSelector), "src"),
		Archived:    block.Find(shardArchivedSelector).Length() > 0,
		Topics:      make([]string, 0),
	}

	if href, ok := link.Attr("href"); ok {
		rec.URL = strings.TrimRight(origin, "/") + href
	}

	block.Find(shardTopicSelector).Each(func(_ int, s *goquery.Selection) {
		if topic := strings.TrimSpace(s.Text()); topic != "" {
			rec.Topics = append(rec.Topics, topic)
		}
	})

	var stats []string
	block.Find(shardStatSelector).Each(func(_ int, s *goquery.Selection) {
		stats = append(stats, strings.TrimSpace(s.Text()))
	})

	rec.Stars = StatAt(stats, statStars)
	rec.Forks = StatAt(stats, statForks)
	rec.OpenIssues = StatAt(stats, statOpenIssues)
	rec.UsedBy = StatAt(stats, statUsedBy)
	rec.Dependencies = StatAt(stats, statDependencies)
	rec.LastActivity = StatTextAt(stats, statLastActivity)

	return rec, true
}
