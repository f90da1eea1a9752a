package export

import (
	"strings"

	"podpull/internal/store"
)

// Options bounds a JSON export run. Zero caps mean unlimited.
type Options struct {
	LookbackHours      int
	MaxEpisodesTotal   int
	MaxEpisodesPerFeed int
	ExcerptChars       int
}

// selectEpisodes applies the per-feed and global caps to the already
// window-filtered candidates. Episodes with blank transcripts are
// dropped before any cap is counted so a degenerate row never crowds
// out a real one.
func selectEpisodes(candidates []store.Episode, opts Options) []store.Episode {
	perFeed := make(map[string]int)
	var selected []store.Episode
	for _, ep := range candidates {
		if strings.TrimSpace(ep.Transcript) == "" {
			continue
		}
		if opts.MaxEpisodesPerFeed > 0 && perFeed[ep.FeedName] >= opts.MaxEpisodesPerFeed {
			continue
		}
		if opts.MaxEpisodesTotal > 0 && len(selected) >= opts.MaxEpisodesTotal {
			break
		}
		perFeed[ep.FeedName]++
		selected = append(selected, ep)
	}
	return selected
}
