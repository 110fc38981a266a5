package feed

import (
	"github.com/microcosm-cc/bluemonday"
)

// allowedTags is the default allowlist of a typical HTML sanitizer. Feed
// content additionally allows img.
var allowedTags = []string{
	"address", "article", "aside", "footer", "header",
	"h1", "h2", "h3", "h4", "h5", "h6", "hgroup", "main", "nav", "section",
	"blockquote", "dd", "div", "dl", "dt", "figcaption", "figure", "hr",
	"li", "ol", "p", "pre", "ul",
	"a", "abbr", "b", "bdi", "bdo", "br", "cite", "code", "data", "dfn", "em",
	"i", "kbd", "mark", "q", "rb", "rp", "rt", "rtc", "ruby", "s", "samp",
	"small", "span", "strong", "sub", "sup", "time", "u", "var", "wbr",
	"caption", "col", "colgroup", "table", "tbody", "td", "tfoot", "th",
	"thead", "tr",
	"img",
}

// newPolicy builds the sanitizer for feed item content.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(allowedTags...)
	p.AllowAttrs("href", "name", "target").OnElements("a")
	p.AllowAttrs("src", "srcset", "alt", "title", "width", "height", "loading").OnElements("img")
	p.AllowURLSchemes("http", "https", "ftp", "mailto", "tel")
	p.AllowRelativeURLs(true)
	return p
}

// Sanitize strips everything from rendered post HTML that is not on the
// feed allowlist. Disallowed elements such as script are dropped with
// their content.
func Sanitize(rendered []byte) string {
	return string(newPolicy().SanitizeBytes(rendered))
}
