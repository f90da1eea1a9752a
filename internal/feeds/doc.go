// Package feeds loads the feed group configuration and resolves group
// membership for scrape and export operations.
//
// The feeds file is TOML mapping group names to ordered lists of
// {name, feed_url} pairs. Requesting an unknown group is a user error and the
// returned message lists the groups that do exist.
package feeds
