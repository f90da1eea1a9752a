// Package rss adapts podcast feeds into fully-typed episode drafts.
//
// Parsing is delegated to gofeed; everything downstream of this package only
// sees the Draft type, never the loosely-structured feed item. Normalization
// derives a stable episode identity (the feed's guid, or a hash of feed URL
// plus title when the guid is absent), extracts audio and transcript URLs with
// a documented fallback order, and sorts entries newest first.
//
// Known limitation: the fallback identity collides when a feed republishes two
// different episodes under an identical title with no guid. The collision is
// accepted rather than papered over with extra inputs the feed never promised.
package rss
