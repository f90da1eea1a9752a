// Package store persists podcast episodes and their transcripts in SQLite.
//
// The Store owns the database connection, schema initialization, and every
// query the pipeline needs: an O(1) existence check for dedup, an idempotent
// upsert that refreshes transcript fields while leaving first-seen metadata
// untouched, and the time-windowed listings that feed the export engine.
//
// Upserts are single statements, so concurrent writers for the same id cannot
// interleave partial field updates; the last writer's transcript wins. Bump
// schemaVersion in store.go whenever schema.sql changes.
package store
