// Package ingest drives the episode pipeline: feed parsing, dedup against the
// store, transcript acquisition, and persistence.
//
// Transcript acquisition is a two-strategy policy with asymmetric failure
// handling. A failed publisher-transcript fetch is a soft failure and falls
// through to audio transcription; a failed audio download or transcription is
// a hard failure that abandons the episode for this run. Episodes that yield
// no transcript at all are skipped without error and never persisted.
package ingest
