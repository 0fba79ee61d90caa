package models

import (
	"encoding/json"
	"errors"
	"strings"
)

// PostContent is the canonical post body: plain text that may carry the
// restricted inline markup subset (**bold**, *italic*, <u>underline</u>).
//
// Historically two client editors wrote posts: one sent the body as a plain
// JSON string, the other as a Draft.js-style structured document. The string
// form is canonical; the structured form is converted at the API edge and is
// never stored as-is.
type PostContent string

// structuredDocument is the accepted shape of the legacy rich-editor payload.
type structuredDocument struct {
	Blocks []struct {
		Text string `json:"text"`
	} `json:"blocks"`
}

// UnmarshalJSON accepts either a JSON string or a structured document with a
// "blocks" array, flattening the latter to newline-joined plain text. Any
// other shape is rejected.
func (c *PostContent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = PostContent(s)
		return nil
	}

	var doc structuredDocument
	if err := json.Unmarshal(data, &doc); err != nil || doc.Blocks == nil {
		return errors.New("content must be a string or a structured document with blocks")
	}

	lines := make([]string, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		lines = append(lines, b.Text)
	}
	*c = PostContent(strings.Join(lines, "\n"))
	return nil
}

// MarshalJSON always emits the plain-text string form.
func (c PostContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(c))
}

func (c PostContent) String() string {
	return string(c)
}
