// Package export renders stored episodes into digest-ready text and
// JSON documents. The text form carries full transcripts, filtered only
// by the lookback window and feed group. The JSON form additionally
// applies per-feed and global caps and reduces transcripts to bounded
// excerpts so the payload stays a predictable size regardless of
// episode length.
package export
