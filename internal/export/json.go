package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"podpull/internal/store"
)

// Payload is the machine-readable export document.
type Payload struct {
	EpisodeCount  int           `json:"episodeCount"`
	FeedCount     int           `json:"feedCount"`
	LookbackHours int           `json:"lookbackHours"`
	GeneratedAt   string        `json:"generatedAt"`
	Episodes      []EpisodeJSON `json:"episodes"`
}

// EpisodeJSON is one episode entry in the JSON export.
type EpisodeJSON struct {
	EpisodeID         string `json:"episodeId"`
	FeedName          string `json:"feedName"`
	Title             string `json:"title"`
	PublishedAt       string `json:"publishedAt"`
	ScrapedAt         string `json:"scrapedAt"`
	WordCount         int    `json:"wordCount"`
	TranscriptExcerpt string `json:"transcriptExcerpt"`
}

// BuildPayload applies the export caps and renders the survivors into
// a Payload. The excerpt budget from opts bounds each transcript.
func BuildPayload(candidates []store.Episode, opts Options) Payload {
	selected := selectEpisodes(candidates, opts)
	feedsSeen := make(map[string]struct{})
	episodes := make([]EpisodeJSON, 0, len(selected))
	for _, ep := range selected {
		feedsSeen[ep.FeedName] = struct{}{}
		episodes = append(episodes, EpisodeJSON{
			EpisodeID:         ep.ID,
			FeedName:          ep.FeedName,
			Title:             ep.Title,
			PublishedAt:       FormatDate(ep.PublishedAt),
			ScrapedAt:         ep.ScrapedAt.UTC().Format(time.RFC3339),
			WordCount:         ep.WordCount,
			TranscriptExcerpt: Excerpt(ep.Transcript, opts.ExcerptChars),
		})
	}
	return Payload{
		EpisodeCount:  len(episodes),
		FeedCount:     len(feedsSeen),
		LookbackHours: opts.LookbackHours,
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		Episodes:      episodes,
	}
}

// WriteJSON renders the payload to outputPath as indented JSON.
func WriteJSON(candidates []store.Episode, outputPath string, opts Options) (Payload, error) {
	payload := BuildPayload(candidates, opts)
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return Payload{}, fmt.Errorf("encode export payload: %w", err)
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Payload{}, fmt.Errorf("create export directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, append(data, '\n'), 0o644); err != nil {
		return Payload{}, fmt.Errorf("write export file: %w", err)
	}
	return payload, nil
}
