package bindery

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/bindery/model"
)

func writeTestArchive(t *testing.T, dir, name, title string) string {
	t.Helper()
	p := model.NewProject(title)
	p.AddChapter("One", "<p>Hello.</p>", 1)
	path := filepath.Join(dir, name)
	if err := BuildFile(path, p); err != nil {
		t.Fatalf("BuildFile: %v", err)
	}
	return path
}

func TestOpenProject(t *testing.T) {
	path := writeTestArchive(t, t.TempDir(), "book.epub", "Fluent")

	p, err := Open(path).Project()
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if p.Metadata.Title != "Fluent" {
		t.Errorf("title = %q, want Fluent", p.Metadata.Title)
	}
	if len(p.Chapters) != 1 || p.Chapters[0].Title != "One" {
		t.Errorf("chapters = %+v", p.Chapters)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.epub")).Project(); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFromBytesFallbackTitle(t *testing.T) {
	src := model.NewProject("")
	src.AddChapter("One", "<p>x</p>", 1)
	data, err := Build(src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	p, err := FromBytes(data, "fallback.epub").Project()
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if p.Metadata.Title != "fallback" {
		t.Errorf("fallback title = %q, want fallback", p.Metadata.Title)
	}
}

func TestImporterChainsAreIndependent(t *testing.T) {
	base := Open("book.epub")
	cleaned := base.Clean()

	if base.clean {
		t.Error("Clean mutated the original chain")
	}
	if !cleaned.clean {
		t.Error("Clean did not apply to the new chain")
	}
	if off := base.ImageIDOffset(7); off.idOffset != 7 || base.idOffset != 0 {
		t.Error("ImageIDOffset chain not independent")
	}
}

func TestStripImagesOption(t *testing.T) {
	src := model.NewProject("Pics")
	img := src.AddImage("a.png", "aGk=", "image/png")
	src.AddChapter("One", `<p>x</p><img data-img-id="`+img.ID+`" alt="a.png"/>`, 1)
	data, err := Build(src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	p, err := FromBytes(data, "pics.epub").StripImages().Project()
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if strings.Contains(p.Chapters[0].Body, "<img") {
		t.Errorf("image survived StripImages: %q", p.Chapters[0].Body)
	}
}

func TestMergeFiles(t *testing.T) {
	dir := t.TempDir()
	// Written in reverse name order; the merge sorts by filename.
	writeTestArchive(t, dir, "b.epub", "Second")
	a := writeTestArchive(t, dir, "a.epub", "First")

	p, err := MergeFiles(filepath.Join(dir, "b.epub"), a)
	if err != nil {
		t.Fatalf("MergeFiles: %v", err)
	}
	if p.Metadata.Title != "First" {
		t.Errorf("merged title = %q, want First", p.Metadata.Title)
	}
	if len(p.Chapters) != 2 {
		t.Errorf("merged chapter count = %d, want 2", len(p.Chapters))
	}
}

func TestMergeFilesMissingFile(t *testing.T) {
	if _, err := MergeFiles(filepath.Join(t.TempDir(), "nope.epub")); err == nil {
		t.Error("expected error for missing source file")
	}
}

func TestSplitText(t *testing.T) {
	text := "Intro line.\n\nChapter 1 The Start\nFirst body.\n\nChapter 2 The End\nSecond body."

	p := SplitText("Novel", text, "")
	if p.Metadata.Title != "Novel" {
		t.Errorf("title = %q", p.Metadata.Title)
	}
	if len(p.Chapters) != 3 {
		t.Fatalf("chapter count = %d, want 3", len(p.Chapters))
	}
	if p.Chapters[0].Title != "Preface" {
		t.Errorf("leading section title = %q, want Preface", p.Chapters[0].Title)
	}
	if p.Chapters[1].Title != "Chapter 1 The Start" {
		t.Errorf("chapter title = %q", p.Chapters[1].Title)
	}
	if !strings.Contains(p.Chapters[2].Body, "<p>Second body.</p>") {
		t.Errorf("chapter body = %q", p.Chapters[2].Body)
	}
}

func TestMustPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must did not panic on error")
		}
	}()
	Must(Open(filepath.Join(t.TempDir(), "nope.epub")).Project())
}
