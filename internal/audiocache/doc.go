// Package audiocache stores downloaded episode audio under deterministic,
// content-addressed paths so repeated runs never re-download the same URL.
//
// The cache key is a truncated hash of the audio URL plus its best-guess file
// extension. A file present at the computed path is a hit with no freshness or
// checksum validation; audio URLs are assumed immutable in content. Downloads
// stream to a temporary file and are renamed into place only on success, so a
// partial write is never mistaken for a valid entry and concurrent acquires
// for the same URL can race safely.
package audiocache
