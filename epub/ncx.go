package epub

import (
	"fmt"
	"strings"

	"github.com/tsawler/bindery/model"
)

// ncxBuilder emits the legacy navigation document. A monotonically
// increasing play-order counter is shared across the cover entry, the
// navigation-list entry and all chapter entries.
type ncxBuilder struct {
	sb        strings.Builder
	playOrder int
	points    int
	depth     int
}

// open starts a navigation point for the given label and content source.
func (b *ncxBuilder) open(label, src string) {
	b.playOrder++
	b.points++
	indent := strings.Repeat("  ", 2+b.depth)
	fmt.Fprintf(&b.sb, "%s<navPoint id=\"navpoint-%d\" playOrder=\"%d\">\n", indent, b.points, b.playOrder)
	fmt.Fprintf(&b.sb, "%s  <navLabel><text>%s</text></navLabel>\n", indent, xmlEscape(label))
	fmt.Fprintf(&b.sb, "%s  <content src=\"%s\"/>\n", indent, xmlEscape(src))
	b.depth++
}

// close ends the innermost open navigation point.
func (b *ncxBuilder) close() {
	if b.depth == 0 {
		return
	}
	b.depth--
	indent := strings.Repeat("  ", 2+b.depth)
	b.sb.WriteString(indent + "</navPoint>\n")
}

// buildNCX renders the nested two-level navigation document from the flat,
// leveled chapter list.
//
// The nesting state machine tracks currentLevel in {0, 1, 2}. A level-1
// chapter closes whatever is open and starts a new top-level entry; a
// level-2 chapter closes only a sibling level-2 entry and nests inside the
// last-opened top-level entry. A level-2 chapter arriving before any
// level-1 chapter opens a nested entry with no enclosing scope; the
// unbalanced output is kept for compatibility with earlier exports.
func buildNCX(p *model.Project, cover coverPlan) string {
	b := &ncxBuilder{}

	b.sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.sb.WriteString(`<!DOCTYPE ncx PUBLIC "-//NISO//DTD ncx 2005-1//EN" "http://www.daisy.org/z3986/2005/ncx-2005-1.dtd">` + "\n")
	b.sb.WriteString(`<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">` + "\n")
	b.sb.WriteString("  <head>\n")
	b.sb.WriteString(`    <meta name="dtb:depth" content="2"/>` + "\n")
	b.sb.WriteString("  </head>\n")
	b.sb.WriteString("  <docTitle><text>" + xmlEscape(p.Metadata.Title) + "</text></docTitle>\n")
	b.sb.WriteString("  <navMap>\n")

	if cover.present {
		b.open("Cover", coverPageName)
		b.close()
	}
	b.open("Table of Contents", navPageName)
	b.close()

	currentLevel := 0
	for _, ch := range p.Chapters {
		if ch.ExcludeFromNav {
			continue
		}

		if ch.Level != 2 {
			switch currentLevel {
			case 2:
				b.close()
				b.close()
			case 1:
				b.close()
			}
			b.open(ch.Title, chapterFilename(ch.ID))
			currentLevel = 1
			continue
		}

		if currentLevel == 2 {
			b.close()
		}
		b.open(ch.Title, chapterFilename(ch.ID))
		currentLevel = 2
	}

	switch currentLevel {
	case 2:
		b.close()
		b.close()
	case 1:
		b.close()
	}

	b.sb.WriteString("  </navMap>\n")
	b.sb.WriteString("</ncx>\n")
	return b.sb.String()
}
