// Package markup normalizes the rich-text fragments WorkFlowy stores in node
// names and notes into plain text.
package markup

import (
	"regexp"
	"strings"

	goslug "github.com/gosimple/slug"
)

// maxFilenameLength caps generated filename stems, in bytes.
const maxFilenameLength = 100

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// entities are decoded in this order. &amp; goes first, so "&amp;lt;" ends up
// as "<".
var entities = []struct{ from, to string }{
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&#39;", "'"},
	{"&nbsp;", " "},
}

// Strip removes every <...> tag span, decodes the six common HTML entities
// and trims surrounding whitespace. Unknown entities are left as-is.
func Strip(text string) string {
	text = tagPattern.ReplaceAllString(text, "")
	for _, e := range entities {
		text = strings.ReplaceAll(text, e.from, e.to)
	}
	return strings.TrimSpace(text)
}

// Filename converts a node name into a filesystem-safe filename stem.
// Returns "untitled" when nothing usable remains.
func Filename(name string) string {
	stem := goslug.Make(Strip(name))
	if len(stem) > maxFilenameLength {
		stem = strings.Trim(stem[:maxFilenameLength], "-")
	}
	if stem == "" {
		return "untitled"
	}
	return stem
}
