package xhtml

import (
	"github.com/microcosm-cc/bluemonday"
)

// cleanPolicy keeps document structure and drops everything presentational:
// scripting, styling and linking elements go away with their content,
// inline-formatting wrappers are unwrapped to their text, and attributes
// are reduced to the structural set. The canonical asset id annotation on
// images survives so rewritten references stay addressable.
var cleanPolicy = buildCleanPolicy()

func buildCleanPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "div", "section", "blockquote", "pre",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "dl", "dt", "dd",
		"table", "caption", "thead", "tbody", "tfoot", "tr", "td", "th",
		"figure", "figcaption", "br", "hr", "img", "a",
	)

	p.AllowAttrs("id").Globally()
	p.AllowAttrs("src", "alt", "width", "height", AssetIDAttr).OnElements("img")
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")

	p.AllowURLSchemes("data", "http", "https")
	p.AllowRelativeURLs(true)
	p.SkipElementsContent("script", "style")

	return p
}

// Clean strips scripting, styling and linking elements, removes
// presentation-only attributes, and unwraps inline-formatting wrapper
// elements, keeping only document structure and text.
func Clean(body string) string {
	return cleanPolicy.Sanitize(body)
}
