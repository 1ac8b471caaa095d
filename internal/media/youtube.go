// Package media parses YouTube links for song entries.
package media

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	linkPattern  = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`)
	queryPattern = regexp.MustCompile(`youtube\.com/.*[?&]v=([^&\n?#]+)`)
	bareID       = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

// ExtractYouTubeID returns the video id from a watch, short or embed URL,
// or from a bare 11 character id. ok is false when nothing matches.
func ExtractYouTubeID(raw string) (id string, ok bool) {
	raw = strings.TrimSpace(raw)
	for _, re := range []*regexp.Regexp{linkPattern, queryPattern} {
		if m := re.FindStringSubmatch(raw); m != nil {
			return m[1], true
		}
	}
	if bareID.MatchString(raw) {
		return raw, true
	}
	return "", false
}

func Thumbnail(id string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", id)
}

func EmbedURL(id string, autoplay bool) string {
	a := 0
	if autoplay {
		a = 1
	}
	return fmt.Sprintf("https://www.youtube.com/embed/%s?enablejsapi=1&autoplay=%d", id, a)
}

// WatchURL is the canonical link stored when only an id was submitted.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}
