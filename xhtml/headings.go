package xhtml

import (
	"golang.org/x/net/html"
)

// Heading is a heading element found while scanning a content document.
type Heading struct {
	// Level is the outline level: 1 for h1, 2 for h2 through h6.
	Level int
	Text  string
	ID    string
	Node  *html.Node
}

// ScanHeadings walks a body tree and returns every h1-h6 element in
// document order. Headings without an id attribute are assigned one via
// nextID, and the assignment is written back into the tree so generated
// anchors stay resolvable.
func ScanHeadings(body *html.Node, nextID func() string) []Heading {
	var headings []Heading

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if lvl := headingLevel(n.Data); lvl > 0 {
				id := Attr(n, "id")
				if id == "" && nextID != nil {
					id = nextID()
					SetAttr(n, "id", id)
				}
				headings = append(headings, Heading{
					Level: lvl,
					Text:  Text(n),
					ID:    id,
					Node:  n,
				})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(body)

	return headings
}

// headingLevel maps a tag name to an outline level, or 0 for non-headings.
// Only two levels exist in the project outline: h1 is level 1, everything
// below nests as level 2.
func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2", "h3", "h4", "h5", "h6":
		return 2
	default:
		return 0
	}
}
