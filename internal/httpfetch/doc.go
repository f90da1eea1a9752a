// Package httpfetch provides the HTTP client used for transcript and audio
// retrieval. It sends browser-like headers because several podcast CDNs reject
// requests carrying Go's default user agent.
package httpfetch
