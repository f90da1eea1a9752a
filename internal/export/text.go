package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"podpull/internal/store"
)

const blockDelimiter = "\n---\n"

// TextResult summarizes a text export.
type TextResult struct {
	EpisodeCount int
	TotalWords   int
	OutputPath   string
}

// WriteText renders the episodes as a plain-text digest at outputPath.
// Each episode becomes a header line followed by its full transcript,
// with records joined by a --- delimiter line. Episodes whose transcript
// is blank are skipped; the caps and excerpting of the JSON form do not
// apply here. When nothing qualifies no file is written and the result
// reports zero episodes.
func WriteText(candidates []store.Episode, outputPath string) (TextResult, error) {
	blocks := make([]string, 0, len(candidates))
	totalWords := 0
	for _, ep := range candidates {
		if strings.TrimSpace(ep.Transcript) == "" {
			continue
		}
		header := fmt.Sprintf("[%s]: %s (%s)", ep.FeedName, ep.Title, FormatDate(ep.PublishedAt))
		blocks = append(blocks, header+"\n"+ep.Transcript)
		totalWords += ep.WordCount
	}
	if len(blocks) == 0 {
		return TextResult{}, nil
	}

	content := strings.Join(blocks, blockDelimiter) + "\n"
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return TextResult{}, fmt.Errorf("create export directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return TextResult{}, fmt.Errorf("write export file: %w", err)
	}
	return TextResult{
		EpisodeCount: len(blocks),
		TotalWords:   totalWords,
		OutputPath:   outputPath,
	}, nil
}
