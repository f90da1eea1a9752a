package rss

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"
)

// Source fetches and parses podcast feeds.
type Source struct {
	parser *gofeed.Parser
}

// NewSource creates a feed source with the given fetch timeout.
func NewSource(timeout time.Duration) *Source {
	parser := gofeed.NewParser()
	parser.UserAgent = "podpull/1.0"
	parser.Client = &http.Client{Timeout: timeout}
	return &Source{parser: parser}
}

// Episodes fetches the feed and returns up to maxEpisodes normalized drafts,
// newest first. A feed that cannot be parsed, or parses to zero items, is a
// feed-parse error.
func (s *Source) Episodes(ctx context.Context, feedName, feedURL string, maxEpisodes int) ([]Draft, error) {
	feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}
	if feed == nil || len(feed.Items) == 0 {
		return nil, fmt.Errorf("parse feed %s: feed contains no items", feedURL)
	}

	items := make([]*gofeed.Item, len(feed.Items))
	copy(items, feed.Items)

	// Stable sort keeps the feed's relative order for equal timestamps.
	sort.SliceStable(items, func(i, j int) bool {
		return entryTimestamp(items[i]).After(entryTimestamp(items[j]))
	})

	if maxEpisodes > 0 && len(items) > maxEpisodes {
		items = items[:maxEpisodes]
	}

	drafts := make([]Draft, 0, len(items))
	for _, item := range items {
		drafts = append(drafts, Normalize(item, feedName, feedURL))
	}
	return drafts, nil
}
