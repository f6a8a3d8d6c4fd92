package textsplit

import (
	"strings"
	"testing"
)

func TestSplitDefaultPattern(t *testing.T) {
	text := "第一章 开始\n正文A\n第二章 继续\n正文B"

	sections := Split(text, "")
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}

	if sections[0].Title != "第一章 开始" {
		t.Errorf("first title = %q, want %q", sections[0].Title, "第一章 开始")
	}
	if !strings.Contains(sections[0].Body, "<p>正文A</p>") {
		t.Errorf("first body = %q, want paragraph 正文A", sections[0].Body)
	}
	if sections[1].Title != "第二章 继续" {
		t.Errorf("second title = %q, want %q", sections[1].Title, "第二章 继续")
	}
	if !strings.Contains(sections[1].Body, "<p>正文B</p>") {
		t.Errorf("second body = %q, want paragraph 正文B", sections[1].Body)
	}
}

func TestSplitEnglishChapters(t *testing.T) {
	text := "Chapter 1 The Start\nbody one\n\nChapter 2\nbody two"

	sections := Split(text, "")
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Title != "Chapter 1 The Start" {
		t.Errorf("first title = %q", sections[0].Title)
	}
	if !strings.Contains(sections[1].Body, "<p>body two</p>") {
		t.Errorf("second body = %q", sections[1].Body)
	}
}

func TestSplitPrefaceBeforeFirstHeading(t *testing.T) {
	text := "intro line\n第一章 开始\n正文"

	sections := Split(text, "")
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Title != "Preface" {
		t.Errorf("preface title = %q", sections[0].Title)
	}
	if !strings.Contains(sections[0].Body, "<p>intro line</p>") {
		t.Errorf("preface body = %q", sections[0].Body)
	}
}

// An invalid user pattern must fall back to the default, not fail.
func TestSplitInvalidPatternFallsBack(t *testing.T) {
	text := "第一章 开始\n正文A"

	sections := Split(text, "([unclosed")
	if len(sections) != 1 {
		t.Fatalf("expected 1 section via fallback pattern, got %d", len(sections))
	}
	if sections[0].Title != "第一章 开始" {
		t.Errorf("title = %q", sections[0].Title)
	}
}

func TestSplitCustomPattern(t *testing.T) {
	text := "== one ==\nalpha\n== two ==\nbeta"

	sections := Split(text, `^== .+ ==$`)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Title != "== one ==" {
		t.Errorf("title = %q", sections[0].Title)
	}
}

func TestSplitEscapesMarkup(t *testing.T) {
	text := "第一章 开始\na < b & c"

	sections := Split(text, "")
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if !strings.Contains(sections[0].Body, "a &lt; b &amp; c") {
		t.Errorf("body not escaped: %q", sections[0].Body)
	}
}
