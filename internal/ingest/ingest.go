package ingest

import (
	"context"
	"log/slog"
	"strings"

	"podpull/internal/feeds"
	"podpull/internal/logging"
	"podpull/internal/rss"
	"podpull/internal/store"
)

// FeedSource yields normalized episode drafts for a feed URL.
type FeedSource interface {
	Episodes(ctx context.Context, feedName, feedURL string, maxEpisodes int) ([]rss.Draft, error)
}

// TranscriptFetcher retrieves publisher-supplied transcripts.
type TranscriptFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// AudioAcquirer resolves an audio URL to a local file, downloading on miss.
type AudioAcquirer interface {
	Acquire(ctx context.Context, audioURL string) (string, error)
}

// Transcriber produces transcript text from a local audio file.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// EpisodeStore is the slice of store behavior ingestion needs.
type EpisodeStore interface {
	Exists(ctx context.Context, id string) (bool, error)
	Upsert(ctx context.Context, ep *store.Episode) error
}

// Stats summarizes one feed's ingestion run.
type Stats struct {
	New         int // stored with a fresh transcript
	Skipped     int // already in the store
	Unavailable int // no transcript or audio to work with
	Failed      int // abandoned on a hard transcription failure
}

// Add merges other into s.
func (s *Stats) Add(other Stats) {
	s.New += other.New
	s.Skipped += other.Skipped
	s.Unavailable += other.Unavailable
	s.Failed += other.Failed
}

// Ingestor wires the pipeline's collaborators together.
type Ingestor struct {
	Source      FeedSource
	Store       EpisodeStore
	Transcripts TranscriptFetcher
	Audio       AudioAcquirer
	Transcriber Transcriber
	MaxEpisodes int
	Logger      *slog.Logger
}

// IngestFeed processes one configured feed end to end. Feed-parse failures
// are returned tagged ErrFeedParse so callers can skip the feed and continue;
// store failures propagate tagged ErrStore.
func (ing *Ingestor) IngestFeed(ctx context.Context, feed feeds.Feed) (Stats, error) {
	logger := ing.logger().With(logging.String("feed", feed.Name))
	logger.Info("fetching feed", logging.String("url", feed.URL))

	drafts, err := ing.Source.Episodes(ctx, feed.Name, feed.URL, ing.MaxEpisodes)
	if err != nil {
		return Stats{}, Wrap(ErrFeedParse, "ingest", "fetch feed", feed.URL, err)
	}
	logger.Info("feed parsed", logging.Int("episodes", len(drafts)))

	var stats Stats
	for _, draft := range drafts {
		exists, err := ing.Store.Exists(ctx, draft.ID)
		if err != nil {
			return stats, Wrap(ErrStore, "ingest", "dedup check", draft.ID, err)
		}
		if exists {
			logger.Info("already stored", logging.String("title", draft.Title))
			stats.Skipped++
			continue
		}

		logger.Info("new episode", logging.String("title", draft.Title))

		acq, ok, err := ing.acquire(ctx, logger, draft)
		if err != nil {
			// Hard failure: abandon this episode, keep the batch going.
			logger.Warn("episode abandoned",
				logging.String("title", draft.Title),
				logging.Error(err))
			stats.Failed++
			continue
		}
		if !ok {
			logger.Info("no transcript available", logging.String("title", draft.Title))
			stats.Unavailable++
			continue
		}

		ep := &store.Episode{
			ID:               draft.ID,
			FeedName:         draft.FeedName,
			FeedURL:          draft.FeedURL,
			Title:            draft.Title,
			PublishedAt:      draft.PublishedAt,
			AudioURL:         draft.AudioURL,
			AudioPath:        acq.AudioPath,
			Transcript:       acq.Transcript,
			TranscriptSource: acq.Source,
		}
		if err := ing.Store.Upsert(ctx, ep); err != nil {
			return stats, Wrap(ErrStore, "ingest", "store episode", draft.ID, err)
		}
		logger.Info("stored",
			logging.String("title", draft.Title),
			logging.String("source", string(acq.Source)),
			logging.Int("words", ep.WordCount))
		stats.New++
	}

	return stats, nil
}

// acquisition is the outcome of a successful transcript acquisition.
type acquisition struct {
	Transcript string
	Source     store.TranscriptSource
	AudioPath  *string
}

// acquire applies the two-strategy policy. The three outcomes are
// (acq, true, nil) on success, (_, false, nil) when no transcript can be had,
// and a non-nil error for a hard audio-pipeline failure.
func (ing *Ingestor) acquire(ctx context.Context, logger *slog.Logger, draft rss.Draft) (acquisition, bool, error) {
	// Strategy 1: publisher-supplied transcript. Any failure here is soft;
	// a broken transcript link is recoverable by falling back to audio.
	if draft.TranscriptURL != nil {
		logger.Info("fetching publisher transcript", logging.String("url", *draft.TranscriptURL))
		text, err := ing.Transcripts.FetchText(ctx, *draft.TranscriptURL)
		if err != nil {
			logger.Warn("publisher transcript unavailable", logging.Error(err))
		} else if strings.TrimSpace(text) != "" {
			logger.Info("got publisher transcript", logging.Int("words", store.CountWords(text)))
			return acquisition{Transcript: text, Source: store.SourcePublisher}, true, nil
		}
	}

	// Strategy 2: download and transcribe. Failures here are hard; there is
	// no further fallback.
	if draft.AudioURL != nil {
		audioPath, err := ing.Audio.Acquire(ctx, *draft.AudioURL)
		if err != nil {
			return acquisition{}, false, Wrap(ErrTranscription, "ingest", "download audio", *draft.AudioURL, err)
		}
		text, err := ing.Transcriber.Transcribe(ctx, audioPath)
		if err != nil {
			return acquisition{}, false, Wrap(ErrTranscription, "ingest", "transcribe", audioPath, err)
		}
		if strings.TrimSpace(text) == "" {
			return acquisition{}, false, nil
		}
		return acquisition{Transcript: text, Source: store.SourceWhisper, AudioPath: &audioPath}, true, nil
	}

	return acquisition{}, false, nil
}

func (ing *Ingestor) logger() *slog.Logger {
	if ing.Logger == nil {
		return logging.NewNop()
	}
	return ing.Logger
}
