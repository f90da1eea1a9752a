package rss

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const sampleFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:podcast="https://podcastindex.org/namespace/1.0">
  <channel>
    <title>Compiler Hour</title>
    <item>
      <title>Oldest Episode</title>
      <guid>ep-1</guid>
      <pubDate>Mon, 02 Feb 2026 08:00:00 +0000</pubDate>
      <enclosure url="https://cdn.example.org/ep1.mp3" type="audio/mpeg" length="100"/>
    </item>
    <item>
      <title>Newest Episode</title>
      <guid>ep-3</guid>
      <pubDate>Mon, 16 Feb 2026 08:00:00 +0000</pubDate>
      <podcast:transcript url="https://example.org/ep3-transcript.txt" type="text/plain"/>
      <enclosure url="https://cdn.example.org/ep3.mp3" type="audio/mpeg" length="100"/>
    </item>
    <item>
      <title>Middle Episode</title>
      <guid>ep-2</guid>
      <pubDate>Mon, 09 Feb 2026 08:00:00 +0000</pubDate>
      <enclosure url="https://cdn.example.org/ep2.mp3" type="audio/mpeg" length="100"/>
    </item>
  </channel>
</rss>`

func serveFeed(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestEpisodesSortsNewestFirstAndTruncates(t *testing.T) {
	server := serveFeed(t, sampleFeedXML)
	source := NewSource(5 * time.Second)

	drafts, err := source.Episodes(context.Background(), "Compiler Hour", server.URL, 2)
	if err != nil {
		t.Fatalf("Episodes: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("expected truncation to 2, got %d", len(drafts))
	}
	if drafts[0].ID != "ep-3" || drafts[1].ID != "ep-2" {
		t.Fatalf("unexpected order: %s, %s", drafts[0].ID, drafts[1].ID)
	}

	newest := drafts[0]
	if newest.TranscriptURL == nil || *newest.TranscriptURL != "https://example.org/ep3-transcript.txt" {
		t.Fatalf("transcript url = %v", newest.TranscriptURL)
	}
	if newest.AudioURL == nil || *newest.AudioURL != "https://cdn.example.org/ep3.mp3" {
		t.Fatalf("audio url = %v", newest.AudioURL)
	}
	if newest.FeedName != "Compiler Hour" || newest.FeedURL != server.URL {
		t.Fatalf("provenance not set: %q %q", newest.FeedName, newest.FeedURL)
	}
}

func TestEpisodesRejectsEmptyFeed(t *testing.T) {
	server := serveFeed(t, `<?xml version="1.0"?><rss version="2.0"><channel><title>Empty</title></channel></rss>`)
	source := NewSource(5 * time.Second)
	if _, err := source.Episodes(context.Background(), "Empty", server.URL, 5); err == nil {
		t.Fatal("expected error for feed with no items")
	}
}

func TestEpisodesRejectsUnparsableFeed(t *testing.T) {
	server := serveFeed(t, "this is not xml")
	source := NewSource(5 * time.Second)
	if _, err := source.Episodes(context.Background(), "Broken", server.URL, 5); err == nil {
		t.Fatal("expected parse error")
	}
}
