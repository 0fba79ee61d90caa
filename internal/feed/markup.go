package feed

import "regexp"

// The supported inline markup subset. Bold is replaced before italic, so a
// double-star pair is consumed first and any single stars left inside the
// span still get the italic pass.
var (
	boldRe      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe    = regexp.MustCompile(`\*(.*?)\*`)
	underlineRe = regexp.MustCompile(`<u>(.*?)</u>`)
)

// previewLimit is how many characters of content a list or admin card shows.
const previewLimit = 200

// RenderMarkup converts the restricted markup subset to display HTML:
// **x** to <strong>, *x* to <em>, <u>x</u> unchanged. The output is for
// display only; the edit form round-trips the raw markup text.
func RenderMarkup(content string) string {
	out := boldRe.ReplaceAllString(content, "<strong>$1</strong>")
	out = italicRe.ReplaceAllString(out, "<em>$1</em>")
	out = underlineRe.ReplaceAllString(out, "<u>$1</u>")
	return out
}

// Preview truncates content to the card preview length, appends an ellipsis,
// and renders it. Truncation happens before rendering, matching the card
// layout where the tail of a long post is simply cut off.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) > previewLimit {
		runes = runes[:previewLimit]
	}
	return RenderMarkup(string(runes) + "...")
}
