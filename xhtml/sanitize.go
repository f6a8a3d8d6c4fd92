package xhtml

import (
	"regexp"
	"strings"
)

// entityRe matches a recognized entity pattern immediately after an
// ampersand: a named entity ("amp;") or a numeric reference ("#8212;").
var entityRe = regexp.MustCompile(`^&(?:[a-zA-Z][a-zA-Z0-9]*|#[0-9]+);`)

// voidTagRe matches any occurrence of the fixed void-tag set, self-closed
// or not. Attribute values containing ">" are not handled; this mirrors
// the output compatibility contract of earlier exports.
var voidTagRe = regexp.MustCompile(`(?i)<(?:br|hr|img|input|link|meta)\b[^>]*>`)

// Sanitize converts browser-produced HTML into a string safe to embed
// inside an XML document: bare ampersands become "&amp;" and void elements
// are rewritten into self-closed form. Applying it twice yields the same
// result as applying it once.
func Sanitize(s string) string {
	return closeVoidTags(escapeAmpersands(s))
}

// escapeAmpersands escapes any "&" not already followed by a recognized
// entity pattern.
func escapeAmpersands(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '&' && !entityRe.MatchString(s[i:]) {
			b.WriteString("&amp;")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// closeVoidTags rewrites occurrences of the void-tag set into self-closed
// form. Tags that are already self-closed are left unchanged.
func closeVoidTags(s string) string {
	return voidTagRe.ReplaceAllStringFunc(s, func(tag string) string {
		inner := strings.TrimSuffix(tag, ">")
		inner = strings.TrimRight(inner, "/ \t\r\n")
		return inner + "/>"
	})
}

// StripInvalidXML removes characters not allowed in XML 1.0 content.
// Valid XML chars: #x9 | #xA | #xD | [#x20-#xD7FF] | [#xE000-#xFFFD] | [#x10000-#x10FFFF]
func StripInvalidXML(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0x9 || r == 0xA || r == 0xD ||
			(r >= 0x20 && r <= 0xD7FF) ||
			(r >= 0xE000 && r <= 0xFFFD) ||
			(r >= 0x10000 && r <= 0x10FFFF) {
			return r
		}
		return -1 // strip
	}, s)
}
