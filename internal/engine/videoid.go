package engine

import (
	"regexp"
	"strings"
)

// videoIDPatterns are tried in order; the first match wins.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([^&\n?#/]+)`),
	regexp.MustCompile(`youtu\.be/([^&\n?#/]+)`),
	regexp.MustCompile(`youtube\.com/embed/([^&\n?#/]+)`),
	regexp.MustCompile(`youtube\.com/v/([^&\n?#/]+)`),
	regexp.MustCompile(`youtube\.com/shorts/([^&\n?#/]+)`),
	regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`),
}

// ExtractVideoID pulls the video identifier out of a YouTube URL or returns a
// bare 11-character ID unchanged. Character legality is left to the upstreams.
func ExtractVideoID(input string) (string, bool) {
	input = strings.TrimSpace(input)
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(input); len(m) >= 2 {
			return m[1], true
		}
	}
	return "", false
}

// DefaultThumbnail is the static image YouTube serves for every video ID.
func DefaultThumbnail(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/hqdefault.jpg"
}
