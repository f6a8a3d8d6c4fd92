package epub

import "errors"

// Codec errors. Decode surfaces the fatal subset; everything else is
// handled leniently.
var (
	ErrInvalidArchive   = errors.New("epub: invalid or corrupted archive")
	ErrNoContainer      = errors.New("epub: missing META-INF/container.xml")
	ErrInvalidContainer = errors.New("epub: invalid container.xml")
	ErrNoRootfile       = errors.New("epub: no rootfile found in container.xml")
	ErrNoPackage        = errors.New("epub: missing package document")
	ErrInvalidPackage   = errors.New("epub: invalid package document")
	ErrNoSources        = errors.New("epub: no sources to merge")
)

// Fixed archive layout.
const (
	mimetypeEPUB  = "application/epub+zip"
	containerPath = "META-INF/container.xml"

	packageDir  = "OEBPS"
	packageName = "content.opf"

	imagesDir      = "images"
	stylesheetName = "style.css"
	ncxName        = "toc.ncx"
	navPageName    = "nav.xhtml"
	coverPageName  = "cover.xhtml"
)

// Manifest item ids for the fixed resources.
const (
	idCoverImage = "cover-image"
	idCoverPage  = "cover"
	idNavPage    = "nav"
	idStylesheet = "css"
	idNCX        = "ncx"
)

// manifestItem is one (id, href, media-type) triple of the package manifest.
type manifestItem struct {
	ID        string
	Href      string
	MediaType string
}

// spineItem references a manifest item in reading order.
type spineItem struct {
	IDRef string
}

// guideRef is one semantic reference of the package guide.
type guideRef struct {
	Type  string
	Title string
	Href  string
}

// chapterFilename derives the archive filename of a chapter document.
func chapterFilename(chapterID string) string {
	return chapterID + ".xhtml"
}
