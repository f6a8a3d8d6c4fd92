package epub

import (
	"strings"

	"github.com/tsawler/bindery/model"
	"github.com/tsawler/bindery/xhtml"
)

// xmlEscape escapes special XML characters for attribute and text content.
func xmlEscape(s string) string {
	return xmlReplacer.Replace(s)
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// xhtmlDoc wraps body markup in a complete XHTML content document with the
// given stylesheet links (package-relative hrefs).
func xhtmlDoc(title, body string, stylesheets []string) string {
	var sb strings.Builder

	sb.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString(`<html xmlns="http://www.w3.org/1999/xhtml">` + "\n")
	sb.WriteString("<head>\n")
	sb.WriteString("<title>" + xmlEscape(title) + "</title>\n")
	for _, href := range stylesheets {
		sb.WriteString(`<link rel="stylesheet" type="text/css" href="` + xmlEscape(href) + `"/>` + "\n")
	}
	sb.WriteString("</head>\n<body>\n")
	sb.WriteString(body)
	sb.WriteString("\n</body>\n</html>\n")

	return sb.String()
}

// buildChapterDoc renders one chapter as a content document: the body is
// sanitized, embedded-image references are rewritten to canonical archive
// paths, and the global stylesheet plus any active auxiliary stylesheet
// scoped to this chapter are linked.
func buildChapterDoc(p *model.Project, ch *model.Chapter, idx *assetIndex) string {
	body := xhtml.Sanitize(xhtml.StripInvalidXML(ch.Body))

	body = xhtml.RewriteImagesToPaths(body, func(id, name string) (string, bool) {
		img, ok := idx.resolve(id, name)
		if !ok {
			// Dangling references stay as-is in the output.
			return "", false
		}
		return imagePath(img), true
	})

	body = ensureTitleHeading(body, ch)

	links := []string{stylesheetName}
	for _, f := range p.ActiveExtras() {
		if f.Kind == model.ExtraStylesheet && f.AppliesTo(ch.ID) {
			links = append(links, f.Name)
		}
	}

	return xhtmlDoc(ch.Title, body, links)
}

// ensureTitleHeading prepends the chapter title as a heading when the
// body does not already open with it, so an imported archive derives the
// same titles back from the first heading of each document.
func ensureTitleHeading(body string, ch *model.Chapter) string {
	title := strings.TrimSpace(ch.Title)
	if title == "" {
		return body
	}

	if root, err := xhtml.ParseBody(body); err == nil {
		if hs := xhtml.ScanHeadings(root, nil); len(hs) > 0 && hs[0].Text == title {
			return body
		}
	}

	tag := "h1"
	if ch.Level == 2 {
		tag = "h2"
	}
	return "<" + tag + ">" + xmlEscape(title) + "</" + tag + ">\n" + body
}

// buildCoverPage renders the minimal cover content document placed first
// in the spine.
func buildCoverPage(imageHref string) string {
	body := `<div class="cover"><img src="` + xmlEscape(imageHref) + `" alt="cover"/></div>`
	return xhtmlDoc("Cover", body, []string{stylesheetName})
}

// buildNavPage renders the flat navigation-list content page: a plain
// chapter-title list honoring the navigation-excluded flag, without the
// two-level nesting of the NCX document.
func buildNavPage(p *model.Project) string {
	var sb strings.Builder
	sb.WriteString("<h1>" + xmlEscape(navPageTitle(p)) + "</h1>\n<ul>\n")
	for _, ch := range p.Chapters {
		if ch.ExcludeFromNav {
			continue
		}
		sb.WriteString(`<li><a href="` + xmlEscape(chapterFilename(ch.ID)) + `">` +
			xmlEscape(ch.Title) + "</a></li>\n")
	}
	sb.WriteString("</ul>")

	return xhtmlDoc("Contents", sb.String(), []string{stylesheetName})
}

func navPageTitle(p *model.Project) string {
	if p.Metadata.Title != "" {
		return p.Metadata.Title
	}
	return "Contents"
}
