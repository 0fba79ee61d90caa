package feed

import (
	"net/url"
	"regexp"
)

// Search-engine image-preview links embed the real image in an imgurl query
// parameter. Users paste these instead of direct links often enough that the
// client unwraps them.
var imgurlRe = regexp.MustCompile(`imgurl=(.*?)&`)

// ExtractImageURL resolves the stored imageUrl to a usable image source.
// An embedded imgurl parameter (percent-decoded) wins; otherwise the stored
// value is used as-is when it parses as an absolute URL. The second return is
// false when no image should be shown.
func ExtractImageURL(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}

	if m := imgurlRe.FindStringSubmatch(raw); m != nil {
		if decoded, err := url.QueryUnescape(m[1]); err == nil {
			return decoded, true
		}
		return m[1], true
	}

	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", false
	}
	return raw, true
}
