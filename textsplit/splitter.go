// Package textsplit splits plain text into chapters by heading pattern.
//
// A line matching the heading pattern starts a new chapter; the line
// itself becomes the chapter title and the following lines become body
// paragraphs. The built-in default pattern recognizes CJK chapter
// headings ("第一章 ...", "第12回 ...") and English "Chapter N" headings.
package textsplit

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// DefaultPattern is the built-in chapter heading pattern.
const DefaultPattern = `^\s*(第[0-9一二三四五六七八九十百千万零〇两]+[章节回卷部篇集].*|(?i:chapter)\s+[0-9]+.*)\s*$`

var defaultRe = regexp.MustCompile(DefaultPattern)

// Section is one split-out chapter: a title line and a paragraph body.
type Section struct {
	Title string
	Body  string // paragraphs as <p> markup
}

// Compile compiles a user-supplied heading pattern. An empty or invalid
// pattern falls back to the built-in default rather than failing.
func Compile(pattern string) *regexp.Regexp {
	if pattern == "" {
		return defaultRe
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return defaultRe
	}
	return re
}

// Split breaks text into sections at lines matching the heading pattern.
// Text before the first heading (or all of it, when nothing matches)
// becomes a leading "Preface" section.
func Split(text, pattern string) []Section {
	re := Compile(pattern)

	var sections []Section
	var title string
	var paragraphs []string
	started := false

	flush := func() {
		if !started && len(paragraphs) == 0 {
			return
		}
		sections = append(sections, Section{
			Title: title,
			Body:  strings.Join(paragraphs, "\n"),
		})
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)

		if trimmed != "" && re.MatchString(line) {
			flush()
			title = trimmed
			paragraphs = nil
			started = true
			continue
		}

		if trimmed == "" {
			continue
		}
		if !started && title == "" && len(paragraphs) == 0 {
			// Content before the first heading.
			title = "Preface"
		}
		paragraphs = append(paragraphs, "<p>"+html.EscapeString(trimmed)+"</p>")
	}
	flush()

	return sections
}
