// Package bindery converts between an in-memory book project and the
// standard packaged e-book container.
//
// Basic usage:
//
//	p, err := bindery.Open("book.epub").Project()
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	p, err := bindery.Open("book.epub").
//	    Clean().
//	    StripImages().
//	    Project()
//
// Building an archive back out:
//
//	data, err := bindery.Build(p)
//
// For lower-level control, the epub, model and textsplit packages are
// also available.
package bindery

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/bindery/epub"
	"github.com/tsawler/bindery/model"
	"github.com/tsawler/bindery/textsplit"
)

// Open prepares an Importer for an archive file. The file is not read
// until a terminal operation like Project() runs.
//
// Example:
//
//	p, err := bindery.Open("book.epub").Project()
func Open(filename string) *Importer {
	return &Importer{filename: filename}
}

// FromBytes prepares an Importer for an in-memory archive blob. The
// optional name supplies fallback metadata when the archive omits a
// title.
func FromBytes(data []byte, name string) *Importer {
	return &Importer{data: data, name: name}
}

// Build serializes a project to an archive blob.
func Build(p *model.Project) ([]byte, error) {
	return epub.Build(p)
}

// BuildTo writes the archive for a project to w.
func BuildTo(w io.Writer, p *model.Project) error {
	return epub.BuildTo(w, p)
}

// BuildFile writes the archive for a project to a file.
func BuildFile(filename string, p *model.Project) error {
	data, err := epub.Build(p)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}

// Filename derives the downloadable archive name from the book title.
func Filename(p *model.Project) string {
	return epub.Filename(p)
}

// MergeFiles reads the named archive files and merges them into a single
// project. Sources combine in filename order regardless of argument
// order, and any file that cannot be read or decoded aborts the whole
// merge.
func MergeFiles(filenames ...string) (*model.Project, error) {
	sources := make([]epub.Source, 0, len(filenames))
	for _, fn := range filenames {
		data, err := os.ReadFile(fn)
		if err != nil {
			return nil, err
		}
		sources = append(sources, epub.Source{Name: filepath.Base(fn), Data: data})
	}
	return epub.Merge(sources, epub.DecodeOptions{})
}

// SplitText breaks plain text into chapters at heading lines and returns
// a new project titled title. An empty pattern uses the built-in default,
// which recognizes CJK chapter headings and English "Chapter N" lines.
func SplitText(title, text, pattern string) *model.Project {
	p := model.NewProject(title)
	for _, sec := range textsplit.Split(text, pattern) {
		p.AddChapter(sec.Title, sec.Body, 1)
	}
	return p
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	p := bindery.Must(bindery.Open("book.epub").Project())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// sourceName derives the decoder's fallback-title source from whichever
// of the filename or the explicit name is set.
func (im *Importer) sourceName() string {
	if im.filename != "" {
		return filepath.Base(im.filename)
	}
	return strings.TrimSpace(im.name)
}
