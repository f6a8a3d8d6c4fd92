package xhtml

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func TestParseBodyAndInnerXML(t *testing.T) {
	body, err := ParseBody(`<h1 id="a">Title</h1><p>Text<br>more</p>`)
	if err != nil {
		t.Fatal(err)
	}

	out := InnerXML(body)
	if !strings.Contains(out, `<h1 id="a">Title</h1>`) {
		t.Errorf("heading lost in round trip: %q", out)
	}
	if !strings.Contains(out, "<br/>") {
		t.Errorf("void element not self-closed: %q", out)
	}
}

func TestTextAndAttr(t *testing.T) {
	body, err := ParseBody(`<p class="x">Hello <b>world</b></p>`)
	if err != nil {
		t.Fatal(err)
	}

	p := FindElement(body, "p")
	if p == nil {
		t.Fatal("p element not found")
	}
	if got := Text(p); got != "Hello world" {
		t.Errorf("Text() = %q, want %q", got, "Hello world")
	}
	if got := Attr(p, "class"); got != "x" {
		t.Errorf("Attr(class) = %q, want %q", got, "x")
	}
	if got := Attr(p, "missing"); got != "" {
		t.Errorf("Attr(missing) = %q, want empty", got)
	}

	SetAttr(p, "class", "y")
	if got := Attr(p, "class"); got != "y" {
		t.Errorf("SetAttr did not replace: got %q", got)
	}
	SetAttr(p, "id", "p1")
	if got := Attr(p, "id"); got != "p1" {
		t.Errorf("SetAttr did not add: got %q", got)
	}
}

func TestWalkElements(t *testing.T) {
	body, err := ParseBody(`<p><img src="a"/></p><div><img src="b"/></div>`)
	if err != nil {
		t.Fatal(err)
	}

	var srcs []string
	WalkElements(body, "img", func(n *html.Node) {
		srcs = append(srcs, Attr(n, "src"))
	})

	if len(srcs) != 2 || srcs[0] != "a" || srcs[1] != "b" {
		t.Errorf("WalkElements visited %v, want [a b]", srcs)
	}
}

func TestScanHeadings(t *testing.T) {
	body, err := ParseBody(`<h1>One</h1><p>x</p><h2 id="kept">Two</h2><h3>Three</h3>`)
	if err != nil {
		t.Fatal(err)
	}

	n := 0
	hs := ScanHeadings(body, func() string {
		n++
		return "auto_" + string(rune('0'+n))
	})

	if len(hs) != 3 {
		t.Fatalf("expected 3 headings, got %d", len(hs))
	}
	if hs[0].Level != 1 || hs[0].Text != "One" || hs[0].ID != "auto_1" {
		t.Errorf("first heading = %+v", hs[0])
	}
	if hs[1].Level != 2 || hs[1].ID != "kept" {
		t.Errorf("existing id must be preserved, got %+v", hs[1])
	}
	if hs[2].Level != 2 || hs[2].ID != "auto_2" {
		t.Errorf("missing id must be auto-assigned, got %+v", hs[2])
	}

	// The assignments must be written back into the tree.
	out := InnerXML(body)
	if !strings.Contains(out, `<h1 id="auto_1">`) || !strings.Contains(out, `<h3 id="auto_2">`) {
		t.Errorf("auto ids not written back: %q", out)
	}
}

func TestDecodeText(t *testing.T) {
	// ISO-8859-1 encoded "café" with a declared charset.
	latin1 := append([]byte(`<?xml version="1.0" encoding="iso-8859-1"?><p>caf`), 0xE9)
	latin1 = append(latin1, []byte("</p>")...)

	out := DecodeText(latin1)
	if !strings.Contains(out, "café") {
		t.Errorf("expected decoded text to contain %q, got %q", "café", out)
	}

	// No declaration passes through unchanged.
	plain := []byte("<p>hello</p>")
	if got := DecodeText(plain); got != "<p>hello</p>" {
		t.Errorf("undeclared input changed: %q", got)
	}

	// Unknown encodings pass through unchanged.
	odd := []byte(`<?xml encoding="x-no-such-charset"?><p>raw</p>`)
	if got := DecodeText(odd); got != string(odd) {
		t.Errorf("unknown charset input changed: %q", got)
	}
}
