// Package video identifies videos from user-supplied links.
package video

import (
	"net/url"
	"regexp"
	"strings"
)

// Reference is a raw link plus the video id derived from it.
// An empty ID is the unidentifiable sentinel.
type Reference struct {
	URL string
	ID  string
}

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Identified reports whether an id could be extracted from the link.
func (r Reference) Identified() bool {
	return r.ID != ""
}

// Parse extracts the video id from raw. It never fails: links of an unknown
// shape, or with an id containing anything but [A-Za-z0-9_-], yield a
// Reference with an empty ID.
func Parse(raw string) Reference {
	raw = strings.TrimSpace(raw)
	ref := Reference{URL: raw}

	u, err := url.Parse(withScheme(raw))
	if err != nil {
		return ref
	}

	host := strings.ToLower(u.Hostname())
	var id string
	switch {
	case host == "youtu.be" || strings.HasSuffix(host, ".youtu.be"):
		// short link: youtu.be/<id>[?t=..]
		id, _, _ = strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	case host == "youtube.com" || strings.HasSuffix(host, ".youtube.com"):
		if strings.TrimSuffix(u.Path, "/") == "/watch" {
			id = u.Query().Get("v")
		}
	}

	if validID.MatchString(id) {
		ref.ID = id
	}
	return ref
}

func withScheme(raw string) string {
	if strings.Contains(raw, "://") {
		return raw
	}
	return "https://" + raw
}

// Detect finds the first token in text that mentions a known video host and
// parses it. ok is false when text has no such token.
func Detect(text string) (ref Reference, ok bool) {
	for _, field := range strings.Fields(text) {
		lower := strings.ToLower(field)
		if strings.Contains(lower, "youtube.com") || strings.Contains(lower, "youtu.be") {
			return Parse(field), true
		}
	}
	return Reference{}, false
}
