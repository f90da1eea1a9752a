package store

import (
	"strings"
	"time"
)

// TranscriptSource records how an episode's transcript was obtained.
type TranscriptSource string

const (
	// SourcePublisher marks a transcript fetched from a Podcast 2.0
	// transcript link advertised by the feed.
	SourcePublisher TranscriptSource = "podcast2.0"
	// SourceWhisper marks a transcript produced by local speech-to-text.
	SourceWhisper TranscriptSource = "whisper"
)

// Episode is one ingested podcast item with its transcript.
//
// PublishedAt holds the feed's raw date string verbatim (ISO-8601 or
// RFC-2822); it is never reformatted on the way in so the export layer can
// decide how to render it. Nil pointers mean the feed did not provide the
// field, which is distinct from providing an empty string.
type Episode struct {
	ID               string
	FeedName         string
	FeedURL          string
	Title            string
	PublishedAt      *string
	AudioURL         *string
	AudioPath        *string
	Transcript       string
	TranscriptSource TranscriptSource
	ScrapedAt        time.Time
	WordCount        int
}

// Summary is a metadata-only view of an episode for listings.
type Summary struct {
	ID               string
	FeedName         string
	Title            string
	PublishedAt      *string
	TranscriptSource TranscriptSource
	ScrapedAt        time.Time
	WordCount        int
}

// CountWords returns the whitespace-token count of text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
