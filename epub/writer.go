package epub

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"

	"github.com/tsawler/bindery/model"
)

// Build serializes a project to a complete archive blob. The project is
// read-only to the encoder; no cross-reference validation is performed, so
// embedded-image references that do not resolve to a known asset id are
// preserved as-is in the exported markup.
func Build(p *model.Project) ([]byte, error) {
	var buf bytes.Buffer
	if err := BuildTo(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildTo writes the archive to w.
func BuildTo(w io.Writer, p *model.Project) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	// The mimetype must be the first entry and stored uncompressed.
	mw, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return fmt.Errorf("epub: write mimetype: %w", err)
	}
	if _, err := mw.Write([]byte(mimetypeEPUB)); err != nil {
		return fmt.Errorf("epub: write mimetype: %w", err)
	}

	if err := writeEntry(zw, containerPath, []byte(buildContainer())); err != nil {
		return err
	}

	idx := newAssetIndex(p.Images)
	cover := resolveCover(p)

	if err := writeEntry(zw, pkgPath(stylesheetName), []byte(mergedStylesheet(p.Styles))); err != nil {
		return err
	}

	for _, f := range p.ActiveExtras() {
		if err := writeEntry(zw, pkgPath(f.Name), []byte(f.Content)); err != nil {
			return err
		}
	}

	for _, img := range p.Images {
		raw, err := decodePayload(img.Data)
		if err != nil {
			return fmt.Errorf("epub: image %s: %w", img.ID, err)
		}
		if err := writeEntry(zw, pkgPath(imagePath(img)), raw); err != nil {
			return err
		}
	}

	if cover.present {
		if cover.standalone != nil {
			if err := writeEntry(zw, pkgPath(cover.standaloneName), cover.standalone); err != nil {
				return err
			}
		}
		if err := writeEntry(zw, pkgPath(coverPageName), []byte(buildCoverPage(cover.imageHref))); err != nil {
			return err
		}
	}

	for _, ch := range p.Chapters {
		doc := buildChapterDoc(p, ch, idx)
		if err := writeEntry(zw, pkgPath(chapterFilename(ch.ID)), []byte(doc)); err != nil {
			return err
		}
	}

	if err := writeEntry(zw, pkgPath(navPageName), []byte(buildNavPage(p))); err != nil {
		return err
	}
	if err := writeEntry(zw, pkgPath(packageName), []byte(buildPackageDoc(p, cover))); err != nil {
		return err
	}
	if err := writeEntry(zw, pkgPath(ncxName), []byte(buildNCX(p, cover))); err != nil {
		return err
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("epub: close archive: %w", err)
	}
	return nil
}

// Filename derives the downloadable archive name from the book title.
func Filename(p *model.Project) string {
	title := strings.TrimSpace(p.Metadata.Title)
	if title == "" {
		title = "book"
	}
	title = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, title)
	return title + ".epub"
}

// pkgPath prefixes a package-relative path with the package directory.
func pkgPath(name string) string {
	return packageDir + "/" + name
}

// writeEntry creates one compressed archive entry.
func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("epub: write %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("epub: write %s: %w", name, err)
	}
	return nil
}
