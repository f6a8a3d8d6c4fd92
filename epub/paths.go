package epub

import (
	"net/url"
	"strings"
)

// ResolvePath normalizes ref against a base directory inside the archive.
// Segments are split on "/"; empty and "." segments are dropped, and each
// ".." pops the last retained segment if one exists. Leading ".." segments
// with nothing left to pop are simply dropped, not an error. The result is
// a canonical forward-slash path with no "." or ".." segments remaining.
//
// No validation against escaping the archive root is performed; callers
// resolving untrusted references inherit that leniency.
func ResolvePath(base, ref string) string {
	var segments []string
	for _, part := range [2]string{base, ref} {
		for _, seg := range strings.Split(part, "/") {
			switch seg {
			case "", ".":
				// drop
			case "..":
				if len(segments) > 0 {
					segments = segments[:len(segments)-1]
				}
			default:
				segments = append(segments, seg)
			}
		}
	}
	return strings.Join(segments, "/")
}

// resolveHref URL-unescapes an href and resolves it against the package
// directory.
func resolveHref(baseDir, href string) string {
	if decoded, err := url.QueryUnescape(href); err == nil {
		href = decoded
	}
	return ResolvePath(baseDir, href)
}

// packageBaseDir returns the directory containing the package document,
// "" when it sits at the archive root.
func packageBaseDir(opfPath string) string {
	if i := strings.LastIndex(opfPath, "/"); i >= 0 {
		return opfPath[:i]
	}
	return ""
}
