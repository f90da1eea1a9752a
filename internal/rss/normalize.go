package rss

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Draft is a normalized episode candidate without transcript fields.
type Draft struct {
	ID            string
	FeedName      string
	FeedURL       string
	Title         string
	PublishedAt   *string
	AudioURL      *string
	TranscriptURL *string
}

const untitledPlaceholder = "Untitled"

var audioExtensions = []string{".mp3", ".m4a", ".ogg", ".wav"}

// Normalize extracts a fully-typed Draft from one feed item. It never fails;
// malformed items fall back to placeholders and absent fields.
func Normalize(item *gofeed.Item, feedName, feedURL string) Draft {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = untitledPlaceholder
	}

	return Draft{
		ID:            episodeID(item, feedURL, title),
		FeedName:      feedName,
		FeedURL:       feedURL,
		Title:         title,
		PublishedAt:   entryDate(item),
		AudioURL:      audioURL(item),
		TranscriptURL: transcriptURL(item),
	}
}

// episodeID prefers the feed's guid verbatim. Without one it hashes the feed
// URL and title, which is stable across runs but collides for same-titled
// entries in the same feed.
func episodeID(item *gofeed.Item, feedURL, title string) string {
	if guid := strings.TrimSpace(item.GUID); guid != "" {
		return guid
	}
	sum := sha256.Sum256([]byte(feedURL + ":" + title))
	return hex.EncodeToString(sum[:])[:32]
}

// entryTimestamp produces the sort key: published, then updated, then epoch
// zero when the item carries no usable date.
func entryTimestamp(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return time.Time{}
}

// entryDate returns the raw human-readable date string, stored verbatim so the
// export layer can decide how to render it.
func entryDate(item *gofeed.Item) *string {
	for _, raw := range []string{item.Published, item.Updated} {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			return &trimmed
		}
	}
	return nil
}

// audioURL scans enclosures first (purpose-built for podcast audio), then the
// item's plain links. First match wins.
func audioURL(item *gofeed.Item) *string {
	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		if strings.Contains(enc.Type, "audio") || hasAudioExtension(enc.URL) {
			url := enc.URL
			return &url
		}
	}
	for _, link := range item.Links {
		if link != "" && hasAudioExtension(link) {
			url := link
			return &url
		}
	}
	return nil
}

// transcriptURL looks for a Podcast 2.0 transcript declaration
// (<podcast:transcript url="..."/>). First one wins.
func transcriptURL(item *gofeed.Item) *string {
	podcast, ok := item.Extensions["podcast"]
	if !ok {
		return nil
	}
	for _, ext := range podcast["transcript"] {
		if url := strings.TrimSpace(ext.Attrs["url"]); url != "" {
			return &url
		}
	}
	return nil
}

func hasAudioExtension(rawURL string) bool {
	trimmed := strings.ToLower(rawURL)
	if idx := strings.IndexByte(trimmed, '?'); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	for _, ext := range audioExtensions {
		if strings.HasSuffix(trimmed, ext) {
			return true
		}
	}
	return false
}
