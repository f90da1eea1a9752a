package feeds

import (
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Feed identifies a single configured podcast feed.
type Feed struct {
	Name string `toml:"name"`
	URL  string `toml:"feed_url"`
}

// Groups maps group names to their ordered feed lists.
type Groups map[string][]Feed

type feedsFile struct {
	Groups map[string][]Feed `toml:"groups"`
}

// Load reads the feeds file at path.
func Load(path string) (Groups, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feeds file: %w", err)
	}

	var file feedsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse feeds file %s: %w", path, err)
	}

	groups := Groups(file.Groups)
	for name, list := range groups {
		for i, feed := range list {
			if strings.TrimSpace(feed.Name) == "" {
				return nil, fmt.Errorf("feeds file %s: group %q entry %d is missing a name", path, name, i+1)
			}
			if strings.TrimSpace(feed.URL) == "" {
				return nil, fmt.Errorf("feeds file %s: feed %q has no feed_url", path, feed.Name)
			}
		}
	}
	return groups, nil
}

// Group returns the feed list for the named group, or a user error listing the
// groups that are available.
func (g Groups) Group(name string) ([]Feed, error) {
	if list, ok := g[name]; ok {
		return list, nil
	}
	available := g.Names()
	if len(available) == 0 {
		return nil, fmt.Errorf("group %q not found: no groups are configured", name)
	}
	return nil, fmt.Errorf("group %q not found; available groups: %s", name, strings.Join(available, ", "))
}

// Names returns the configured group names sorted alphabetically.
func (g Groups) Names() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every configured feed across all groups, ordered by group
// name. A feed listed in more than one group appears once.
func (g Groups) All() []Feed {
	seen := make(map[string]struct{})
	var all []Feed
	for _, name := range g.Names() {
		for _, feed := range g[name] {
			if _, ok := seen[feed.URL]; ok {
				continue
			}
			seen[feed.URL] = struct{}{}
			all = append(all, feed)
		}
	}
	return all
}

// FeedNames flattens a group's feed list to its display names, preserving order.
func FeedNames(list []Feed) []string {
	names := make([]string, 0, len(list))
	for _, feed := range list {
		names = append(names, feed.Name)
	}
	return names
}

var hostPrefixes = []string{"www.", "feed.", "feeds.", "rss."}

// InferName derives a readable feed name from a feed URL for ad-hoc scrapes.
func InferName(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return "unknown"
	}

	host := parsed.Hostname()
	for _, prefix := range hostPrefixes {
		if strings.HasPrefix(host, prefix) {
			host = strings.TrimPrefix(host, prefix)
			break
		}
	}

	var segments []string
	for _, part := range strings.Split(strings.Trim(parsed.Path, "/"), "/") {
		switch part {
		case "", "feed", "feed.xml", "rss":
			continue
		}
		segments = append(segments, part)
	}

	if len(segments) == 0 {
		return host
	}

	title := cases.Title(language.Und).String(strings.ReplaceAll(segments[0], "-", " "))
	return fmt.Sprintf("%s (%s)", title, host)
}
