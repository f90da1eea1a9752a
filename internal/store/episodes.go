package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const episodeColumns = `id, feed_name, feed_url, title, published_at,
    audio_url, audio_path, transcript, transcript_source, scraped_at, word_count`

// Exists reports whether an episode with the given id is already stored.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	ctx = ensureContext(ctx)
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM episodes WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check episode %s: %w", id, err)
	}
	return true, nil
}

// Upsert inserts the episode, or refreshes its transcript fields when the id
// already exists. First-seen metadata (feed name/url, title, published date,
// audio url) is never altered on conflict. The word count is recomputed from
// the transcript and ScrapedAt is set to the time of this call.
func (s *Store) Upsert(ctx context.Context, ep *Episode) error {
	if ep == nil {
		return fmt.Errorf("upsert: nil episode")
	}
	if strings.TrimSpace(ep.ID) == "" {
		return fmt.Errorf("upsert: episode id required")
	}
	if strings.TrimSpace(ep.Transcript) == "" {
		return fmt.Errorf("upsert: episode %s has no transcript", ep.ID)
	}

	ep.WordCount = CountWords(ep.Transcript)
	ep.ScrapedAt = time.Now().UTC()

	err := s.execWithRetry(ctx,
		`INSERT INTO episodes (`+episodeColumns+`)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
             transcript = excluded.transcript,
             transcript_source = excluded.transcript_source,
             audio_path = excluded.audio_path,
             scraped_at = excluded.scraped_at,
             word_count = excluded.word_count`,
		ep.ID,
		ep.FeedName,
		ep.FeedURL,
		ep.Title,
		nullableString(ep.PublishedAt),
		nullableString(ep.AudioURL),
		nullableString(ep.AudioPath),
		ep.Transcript,
		string(ep.TranscriptSource),
		ep.ScrapedAt.Format(time.RFC3339Nano),
		ep.WordCount,
	)
	if err != nil {
		return fmt.Errorf("upsert episode %s: %w", ep.ID, err)
	}
	return nil
}

// ListRecent returns episodes scraped within the lookback window, newest
// first. An empty feedName applies no feed filter.
func (s *Store) ListRecent(ctx context.Context, lookbackHours int, feedName string) ([]Episode, error) {
	ctx = ensureContext(ctx)
	cutoff := lookbackCutoff(lookbackHours)

	query := `SELECT ` + episodeColumns + ` FROM episodes WHERE scraped_at >= ?`
	args := []any{cutoff}
	if feedName != "" {
		query += ` AND feed_name = ?`
		args = append(args, feedName)
	}
	query += ` ORDER BY scraped_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recent episodes: %w", err)
	}
	defer rows.Close()

	return collectEpisodes(rows)
}

// ListByFeeds returns episodes from any of the named feeds scraped within the
// lookback window, newest first.
func (s *Store) ListByFeeds(ctx context.Context, feedNames []string, lookbackHours int) ([]Episode, error) {
	ctx = ensureContext(ctx)
	if len(feedNames) == 0 {
		return nil, nil
	}
	cutoff := lookbackCutoff(lookbackHours)

	placeholders := strings.Repeat("?,", len(feedNames))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(feedNames)+1)
	args = append(args, cutoff)
	for _, name := range feedNames {
		args = append(args, name)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+episodeColumns+` FROM episodes
         WHERE scraped_at >= ? AND feed_name IN (`+placeholders+`)
         ORDER BY scraped_at DESC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list episodes by feeds: %w", err)
	}
	defer rows.Close()

	return collectEpisodes(rows)
}

// ListSummary returns metadata-only records for the most recently scraped
// episodes, without transcript bodies.
func (s *Store) ListSummary(ctx context.Context, limit int) ([]Summary, error) {
	ctx = ensureContext(ctx)
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, feed_name, title, published_at, transcript_source, scraped_at, word_count
         FROM episodes
         ORDER BY scraped_at DESC
         LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list episode summaries: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var (
			summary     Summary
			publishedAt sql.NullString
			source      string
			scrapedRaw  string
		)
		if err := rows.Scan(&summary.ID, &summary.FeedName, &summary.Title,
			&publishedAt, &source, &scrapedRaw, &summary.WordCount); err != nil {
			return nil, fmt.Errorf("scan episode summary: %w", err)
		}
		summary.PublishedAt = optionalString(publishedAt)
		summary.TranscriptSource = TranscriptSource(source)
		if scraped, err := parseTimeString(scrapedRaw); err == nil {
			summary.ScrapedAt = scraped
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

func collectEpisodes(rows *sql.Rows) ([]Episode, error) {
	var episodes []Episode
	for rows.Next() {
		ep, err := scanEpisode(rows)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, *ep)
	}
	return episodes, rows.Err()
}

func scanEpisode(scanner interface{ Scan(dest ...any) error }) (*Episode, error) {
	var (
		ep          Episode
		publishedAt sql.NullString
		audioURL    sql.NullString
		audioPath   sql.NullString
		source      string
		scrapedRaw  string
	)
	if err := scanner.Scan(
		&ep.ID, &ep.FeedName, &ep.FeedURL, &ep.Title,
		&publishedAt, &audioURL, &audioPath,
		&ep.Transcript, &source, &scrapedRaw, &ep.WordCount,
	); err != nil {
		return nil, fmt.Errorf("scan episode: %w", err)
	}

	ep.PublishedAt = optionalString(publishedAt)
	ep.AudioURL = optionalString(audioURL)
	ep.AudioPath = optionalString(audioPath)
	ep.TranscriptSource = TranscriptSource(source)
	if scraped, err := parseTimeString(scrapedRaw); err == nil {
		ep.ScrapedAt = scraped
	}
	return &ep, nil
}

func lookbackCutoff(lookbackHours int) string {
	return time.Now().UTC().
		Add(-time.Duration(lookbackHours) * time.Hour).
		Format(time.RFC3339Nano)
}

func nullableString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func optionalString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}

func parseTimeString(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}
