package bindery

import (
	"os"

	"github.com/tsawler/bindery/epub"
	"github.com/tsawler/bindery/model"
)

// Importer provides a fluent interface for decoding an archive into a
// project. Each configuration method returns a new Importer instance,
// making it safe to fork a chain and reuse the prefix.
type Importer struct {
	// Source
	filename string
	data     []byte
	name     string

	// Configuration
	clean       bool
	stripImages bool
	idOffset    int
}

// clone creates a copy of the Importer. Chain methods return a new
// instance rather than mutating the receiver.
func (im *Importer) clone() *Importer {
	cp := *im
	return &cp
}

// Clean strips scripting, styling and linking elements, presentation
// attributes and inline-formatting wrappers from imported chapter bodies.
func (im *Importer) Clean() *Importer {
	cp := im.clone()
	cp.clean = true
	return cp
}

// StripImages removes all image elements from imported chapter bodies.
// Image assets referenced elsewhere are still extracted.
func (im *Importer) StripImages() *Importer {
	cp := im.clone()
	cp.stripImages = true
	return cp
}

// ImageIDOffset continues the image-id sequence from n, for callers
// stitching several imports together by hand. MergeFiles handles this
// automatically.
func (im *Importer) ImageIDOffset(n int) *Importer {
	cp := im.clone()
	cp.idOffset = n
	return cp
}

// Project decodes the archive and returns the project. This is the
// terminal operation of a chain; the source file is read here.
func (im *Importer) Project() (*model.Project, error) {
	data := im.data
	if data == nil {
		var err error
		data, err = os.ReadFile(im.filename)
		if err != nil {
			return nil, err
		}
	}

	return epub.Decode(data, epub.DecodeOptions{
		SourceName:    im.sourceName(),
		Clean:         im.clean,
		StripImages:   im.stripImages,
		ImageIDOffset: im.idOffset,
	})
}
