package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "podcasts.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func strPtr(v string) *string { return &v }

func sampleEpisode(id string) *Episode {
	return &Episode{
		ID:               id,
		FeedName:         "Compiler Hour",
		FeedURL:          "https://example.org/compiler/rss",
		Title:            "Episode " + id,
		PublishedAt:      strPtr("Mon, 10 Feb 2026 08:00:00 +0000"),
		AudioURL:         strPtr("https://example.org/audio/" + id + ".mp3"),
		Transcript:       "hello from episode " + id,
		TranscriptSource: SourcePublisher,
	}
}

// backdate shifts an episode's scraped_at for window tests.
func backdate(t *testing.T, s *Store, id string, age time.Duration) {
	t.Helper()
	stamp := time.Now().UTC().Add(-age).Format(time.RFC3339Nano)
	if _, err := s.db.Exec("UPDATE episodes SET scraped_at = ? WHERE id = ?", stamp, id); err != nil {
		t.Fatalf("backdate %s: %v", id, err)
	}
}

func TestExistsAndUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ok, err := s.Exists(ctx, "ep-1")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Fatal("unexpected hit for unseen id")
	}

	if err := s.Upsert(ctx, sampleEpisode("ep-1")); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	ok, err = s.Exists(ctx, "ep-1")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !ok {
		t.Fatal("expected stored id to exist")
	}
}

func TestUpsertIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ep := sampleEpisode("ep-1")
	if err := s.Upsert(ctx, ep); err != nil {
		t.Fatalf("first Upsert: %v", err)
	}
	first := ep.ScrapedAt

	again := sampleEpisode("ep-1")
	if err := s.Upsert(ctx, again); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	eps, err := s.ListRecent(ctx, 1, "")
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(eps) != 1 {
		t.Fatalf("expected a single row after re-upsert, got %d", len(eps))
	}
	if eps[0].ScrapedAt.Before(first) {
		t.Fatalf("scraped_at went backwards: %v -> %v", first, eps[0].ScrapedAt)
	}
}

func TestUpsertPreservesFirstSeenMetadata(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	original := sampleEpisode("ep-1")
	if err := s.Upsert(ctx, original); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	update := sampleEpisode("ep-1")
	update.Title = "Renamed Episode"
	update.FeedName = "Hijacked Feed"
	update.PublishedAt = strPtr("2026-03-01")
	update.AudioURL = strPtr("https://elsewhere.example/new.mp3")
	update.Transcript = "a fresh transcript with more words in it"
	update.TranscriptSource = SourceWhisper
	update.AudioPath = strPtr("/tmp/cache/abcd.mp3")
	if err := s.Upsert(ctx, update); err != nil {
		t.Fatalf("Upsert update: %v", err)
	}

	eps, err := s.ListRecent(ctx, 1, "")
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(eps) != 1 {
		t.Fatalf("expected one row, got %d", len(eps))
	}
	got := eps[0]

	if got.Title != original.Title || got.FeedName != original.FeedName {
		t.Fatalf("first-seen metadata changed: %q / %q", got.Title, got.FeedName)
	}
	if got.PublishedAt == nil || *got.PublishedAt != *original.PublishedAt {
		t.Fatalf("published_at changed: %v", got.PublishedAt)
	}
	if got.AudioURL == nil || *got.AudioURL != *original.AudioURL {
		t.Fatalf("audio_url changed: %v", got.AudioURL)
	}

	if got.Transcript != update.Transcript {
		t.Fatalf("transcript not refreshed: %q", got.Transcript)
	}
	if got.TranscriptSource != SourceWhisper {
		t.Fatalf("transcript_source not refreshed: %q", got.TranscriptSource)
	}
	if got.AudioPath == nil || *got.AudioPath != *update.AudioPath {
		t.Fatalf("audio_path not refreshed: %v", got.AudioPath)
	}
	if got.WordCount != CountWords(update.Transcript) {
		t.Fatalf("word_count = %d, want %d", got.WordCount, CountWords(update.Transcript))
	}
}

func TestUpsertRequiresTranscript(t *testing.T) {
	s := openTestStore(t)
	ep := sampleEpisode("ep-1")
	ep.Transcript = "   "
	if err := s.Upsert(context.Background(), ep); err == nil {
		t.Fatal("expected error for blank transcript")
	}
}

func TestListRecentHonorsLookbackWindow(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"fresh", "stale"} {
		if err := s.Upsert(ctx, sampleEpisode(id)); err != nil {
			t.Fatalf("Upsert %s: %v", id, err)
		}
	}
	backdate(t, s, "fresh", time.Hour)
	backdate(t, s, "stale", 200*time.Hour)

	eps, err := s.ListRecent(ctx, 168, "")
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(eps) != 1 || eps[0].ID != "fresh" {
		t.Fatalf("expected only the fresh episode, got %#v", eps)
	}
}

func TestListRecentFeedFilterAndOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a := sampleEpisode("a")
	b := sampleEpisode("b")
	b.FeedName = "Other Feed"
	c := sampleEpisode("c")
	for _, ep := range []*Episode{a, b, c} {
		if err := s.Upsert(ctx, ep); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}
	backdate(t, s, "a", 3*time.Hour)
	backdate(t, s, "b", 2*time.Hour)
	backdate(t, s, "c", time.Hour)

	eps, err := s.ListRecent(ctx, 24, "Compiler Hour")
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(eps) != 2 || eps[0].ID != "c" || eps[1].ID != "a" {
		t.Fatalf("unexpected filtered order: %#v", eps)
	}
}

func TestListByFeeds(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a := sampleEpisode("a")
	b := sampleEpisode("b")
	b.FeedName = "Other Feed"
	c := sampleEpisode("c")
	c.FeedName = "Third Feed"
	for _, ep := range []*Episode{a, b, c} {
		if err := s.Upsert(ctx, ep); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	eps, err := s.ListByFeeds(ctx, []string{"Compiler Hour", "Third Feed"}, 24)
	if err != nil {
		t.Fatalf("ListByFeeds: %v", err)
	}
	if len(eps) != 2 {
		t.Fatalf("expected two rows, got %d", len(eps))
	}
	for _, ep := range eps {
		if ep.FeedName == "Other Feed" {
			t.Fatalf("unexpected feed in results: %s", ep.FeedName)
		}
	}

	empty, err := s.ListByFeeds(ctx, nil, 24)
	if err != nil {
		t.Fatalf("ListByFeeds empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no rows for empty feed set, got %d", len(empty))
	}
}

func TestListSummaryOmitsTranscript(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := s.Upsert(ctx, sampleEpisode(id)); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	summaries, err := s.ListSummary(ctx, 2)
	if err != nil {
		t.Fatalf("ListSummary: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected limit to apply, got %d rows", len(summaries))
	}
	for _, summary := range summaries {
		if summary.WordCount == 0 {
			t.Fatalf("word count missing for %s", summary.ID)
		}
		if summary.ScrapedAt.IsZero() {
			t.Fatalf("scraped_at missing for %s", summary.ID)
		}
	}
}

func TestCountWords(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"one two\tthree\nfour", 4},
	}
	for _, tc := range cases {
		if got := CountWords(tc.text); got != tc.want {
			t.Errorf("CountWords(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}
