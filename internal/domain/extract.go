package domain

import (
	"regexp"
	"strings"
)

// extractPatterns are tried in order against raw clipboard text; the first
// capture group of the first matching pattern wins. The list covers the
// standard watch URL, the short URL, the embed URL and the legacy /v/ form.
var extractPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)youtube\.com/watch\?(?:[^\s]*&)?v=([A-Za-z0-9_-]+)`),
	regexp.MustCompile(`(?i)youtu\.be/([A-Za-z0-9_-]+)`),
	regexp.MustCompile(`(?i)youtube\.com/embed/([A-Za-z0-9_-]+)`),
	regexp.MustCompile(`(?i)youtube\.com/v/([A-Za-z0-9_-]+)`),
}

// ExtractVideoID scans arbitrary text for a recognizable YouTube video URL
// and returns the embedded video id. It returns "" when the text contains no
// parseable URL; malformed input is never an error.
func ExtractVideoID(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	for _, re := range extractPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// ChannelPathID extracts a channel id from a /channel/UC... URL path.
// Returns "" for every other URL form (handles, custom URLs and usernames
// need an API search to resolve).
func ChannelPathID(rawURL string) string {
	const marker = "/channel/"
	i := strings.Index(rawURL, marker)
	if i < 0 {
		return ""
	}
	rest := rawURL[i+len(marker):]
	if j := strings.IndexAny(rest, "/?#"); j >= 0 {
		rest = rest[:j]
	}
	return rest
}

// ChannelURLQuery extracts the searchable identifier from handle, custom and
// legacy user channel URLs: /@handle, /c/Name and /user/Name forms.
// Returns "" when the URL carries none of these.
func ChannelURLQuery(rawURL string) string {
	clean := rawURL
	if i := strings.IndexAny(clean, "?#"); i >= 0 {
		clean = clean[:i]
	}
	for _, marker := range []string{"/@", "/c/", "/user/"} {
		i := strings.Index(clean, marker)
		if i < 0 {
			continue
		}
		rest := clean[i+len(marker):]
		if j := strings.IndexByte(rest, '/'); j >= 0 {
			rest = rest[:j]
		}
		if rest != "" {
			return rest
		}
	}
	return ""
}
