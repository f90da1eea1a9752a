package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers classifying pipeline failures. Wrap tags errors with one of
// these so callers can decide the blast radius with errors.Is: configuration
// errors abort the operation, feed-parse errors skip the feed, transcription
// errors skip the episode, store errors propagate.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrFeedParse     = errors.New("feed parse error")
	ErrTranscription = errors.New("transcription error")
	ErrStore         = errors.New("store error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrStore
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
