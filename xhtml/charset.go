package xhtml

import (
	"regexp"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// charsetRe finds a declared encoding in an XML declaration or an HTML
// meta tag near the start of a document.
var charsetRe = regexp.MustCompile(`(?i)(?:encoding|charset)\s*=\s*["']?([a-zA-Z0-9_\-]+)`)

// DecodeText converts a content document to UTF-8 based on its declared
// encoding. Documents without a declaration, or with one the encoding
// index does not know, pass through unchanged.
func DecodeText(data []byte) string {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}

	m := charsetRe.FindSubmatch(head)
	if m == nil {
		return string(data)
	}

	name := strings.ToLower(string(m[1]))
	if name == "utf-8" || name == "utf8" {
		return string(data)
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return string(data)
	}

	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(out)
}
