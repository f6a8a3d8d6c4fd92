package epub

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/tsawler/bindery/model"
	"github.com/tsawler/bindery/xhtml"
)

// DecodeOptions configures the decoder.
type DecodeOptions struct {
	// SourceName is the archive filename, used to derive fallback
	// metadata when the package document omits fields.
	SourceName string

	// Clean strips scripting, styling and linking elements, presentation
	// attributes and inline-formatting wrappers from chapter bodies.
	Clean bool

	// StripImages removes all image elements from chapter bodies.
	StripImages bool

	// ImageIDOffset continues the image-id sequence from an earlier
	// decode, for batch merges.
	ImageIDOffset int
}

// Decode parses an archive blob into a project.
func Decode(data []byte, opts DecodeOptions) (*model.Project, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, ErrInvalidArchive
	}
	return DecodeReader(zr, opts)
}

// DecodeReader parses an already-opened archive into a project.
//
// A missing or unparsable container document, a missing package-document
// path, or a missing package document abort the decode. Manifest resources
// absent from the archive are skipped, and an unresolvable cover pointer
// yields no cover.
func DecodeReader(zr *zip.Reader, opts DecodeOptions) (*model.Project, error) {
	opfPath, err := parseContainer(zr)
	if err != nil {
		return nil, err
	}

	opfFile := findEntry(zr, opfPath)
	if opfFile == nil {
		return nil, ErrNoPackage
	}
	opfData, err := readEntry(opfFile)
	if err != nil {
		return nil, fmt.Errorf("epub: read package document: %w", err)
	}
	pkg, err := parsePackage(opfData)
	if err != nil {
		return nil, err
	}

	baseDir := packageBaseDir(opfPath)
	p := &model.Project{
		Metadata: convertMetadata(pkg.Metadata, fallbackTitle(opts.SourceName)),
	}

	manifest := make([]manifestItem, 0, len(pkg.Manifest.Items))
	for _, it := range pkg.Manifest.Items {
		manifest = append(manifest, manifestItem{ID: it.ID, Href: it.Href, MediaType: it.MediaType})
	}

	byPath := extractImages(zr, p, manifest, baseDir, opts.ImageIDOffset)
	extractStylesheets(zr, p, manifest, baseDir)

	if err := extractChapters(zr, p, pkg, manifest, baseDir, byPath, opts); err != nil {
		return nil, err
	}

	resolveDecodedCover(p, coverPointer(pkg.Metadata), manifest, baseDir, byPath)

	return p, nil
}

// fallbackTitle derives a book title from the source filename.
func fallbackTitle(name string) string {
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".epub")
	if name == "" {
		return "Untitled"
	}
	return name
}

// displayName is the original display name recorded for an extracted
// image: the base name of its archive path.
func displayName(href string) string {
	if i := strings.LastIndex(href, "/"); i >= 0 {
		return href[i+1:]
	}
	return href
}

// extractImages pulls every manifest image out of the archive and returns
// the path-keyed lookup used for reference rewriting and cover resolution.
//
// Canonical ids are assigned sequentially in manifest order before the
// extractions are dispatched concurrently, so numbering is deterministic
// regardless of completion order. A resource absent from the archive
// produces no asset; its id is consumed and left as a gap.
func extractImages(zr *zip.Reader, p *model.Project, manifest []manifestItem, baseDir string, idOffset int) map[string]*model.ImageAsset {
	type imageJob struct {
		item  manifestItem
		path  string
		id    string
		asset *model.ImageAsset
	}

	var jobs []*imageJob
	for _, it := range manifest {
		if !strings.HasPrefix(it.MediaType, "image/") {
			continue
		}
		jobs = append(jobs, &imageJob{
			item: it,
			path: resolveHref(baseDir, it.Href),
			id:   model.ImageID(idOffset + len(jobs) + 1),
		})
	}

	var wg sync.WaitGroup
	for _, j := range jobs {
		wg.Add(1)
		go func(j *imageJob) {
			defer wg.Done()
			f := findEntry(zr, j.path)
			if f == nil {
				return // lenient: no asset for a missing resource
			}
			raw, err := readEntry(f)
			if err != nil {
				return
			}
			j.asset = newImageAsset(j.id, displayName(j.item.Href), j.item.MediaType, raw)
		}(j)
	}
	wg.Wait()

	byPath := make(map[string]*model.ImageAsset)
	for _, j := range jobs {
		if j.asset == nil {
			continue
		}
		p.Images = append(p.Images, j.asset)
		byPath[j.path] = j.asset
	}
	return byPath
}

// extractStylesheets routes manifest CSS into the merged custom stylesheet
// or the auxiliary file list, and generic XML resources into auxiliary
// files.
func extractStylesheets(zr *zip.Reader, p *model.Project, manifest []manifestItem, baseDir string) {
	var custom []string

	for _, it := range manifest {
		switch it.MediaType {
		case "text/css":
			f := findEntry(zr, resolveHref(baseDir, it.Href))
			if f == nil {
				continue
			}
			data, err := readEntry(f)
			if err != nil {
				continue
			}
			if primaryStylesheet(it.Href) {
				custom = append(custom, strings.TrimSpace(string(data)))
				continue
			}
			p.Extras = append(p.Extras, &model.ExtraFile{
				ID:      it.ID,
				Name:    displayName(it.Href),
				Content: string(data),
				Kind:    model.ExtraStylesheet,
				Active:  true,
			})
		case "application/xml", "text/xml":
			f := findEntry(zr, resolveHref(baseDir, it.Href))
			if f == nil {
				continue
			}
			data, err := readEntry(f)
			if err != nil {
				continue
			}
			p.Extras = append(p.Extras, &model.ExtraFile{
				ID:      it.ID,
				Name:    displayName(it.Href),
				Content: string(data),
				Kind:    model.ExtraXML,
				Active:  true,
			})
		}
	}

	p.Styles.CustomCSS = strings.Join(custom, "\n")
}

// extractChapters walks the spine in order, parsing each content document
// into a chapter. Parses are dispatched concurrently; chapter order in the
// result is preserved by index, not by completion order.
func extractChapters(zr *zip.Reader, p *model.Project, pkg *opfPackage, manifest []manifestItem, baseDir string, byPath map[string]*model.ImageAsset, opts DecodeOptions) error {
	skip := navigationHrefs(pkg, manifest, baseDir)

	type chapterJob struct {
		idx  int
		item manifestItem
		path string
		ch   *model.Chapter
		err  error
	}

	byID := make(map[string]manifestItem, len(manifest))
	for _, it := range manifest {
		byID[it.ID] = it
	}

	var jobs []*chapterJob
	for _, ref := range pkg.Spine.ItemRefs {
		it, ok := byID[ref.IDRef]
		if !ok {
			continue
		}
		if !strings.Contains(it.MediaType, "xhtml") && !strings.Contains(it.MediaType, "html") {
			continue
		}
		path := resolveHref(baseDir, it.Href)
		if skip[path] {
			continue
		}
		jobs = append(jobs, &chapterJob{idx: len(jobs), item: it, path: path})
	}

	var wg sync.WaitGroup
	for _, j := range jobs {
		wg.Add(1)
		go func(j *chapterJob) {
			defer wg.Done()
			f := findEntry(zr, j.path)
			if f == nil {
				return // lenient: skip a missing content document
			}
			raw, err := readEntry(f)
			if err != nil {
				j.err = fmt.Errorf("epub: read %s: %w", j.path, err)
				return
			}
			j.ch, j.err = parseChapter(j.item, j.idx, j.path, raw, byPath, opts)
		}(j)
	}
	wg.Wait()

	for _, j := range jobs {
		if j.err != nil {
			return j.err
		}
		if j.ch != nil {
			p.Chapters = append(p.Chapters, j.ch)
		}
	}
	return nil
}

// navigationHrefs collects archive paths of the cover page, the
// navigation-list page and the nav document, so the spine walk does not
// turn them into chapters.
func navigationHrefs(pkg *opfPackage, manifest []manifestItem, baseDir string) map[string]bool {
	skip := make(map[string]bool)
	for _, ref := range pkg.Guide.References {
		if ref.Type == "cover" || ref.Type == "toc" {
			skip[resolveHref(baseDir, ref.Href)] = true
		}
	}
	for _, it := range manifest {
		if it.MediaType == "application/x-dtbncx+xml" {
			skip[resolveHref(baseDir, it.Href)] = true
		}
	}
	return skip
}

// parseChapter turns one content document into a chapter: image references
// are rewritten to embedded form, the title is derived from the first
// heading (falling back to the document title, then a synthetic
// placeholder), and every subsequent heading becomes a TocItem.
func parseChapter(item manifestItem, idx int, path string, raw []byte, byPath map[string]*model.ImageAsset, opts DecodeOptions) (*model.Chapter, error) {
	content := xhtml.DecodeText(raw)
	docDir := packageBaseDir(path)

	body := xhtml.RewriteImagesToData(content, func(src string) (string, string, bool) {
		if xhtml.DataURIRe.MatchString(src) {
			return "", "", false // already embedded
		}
		img, ok := byPath[resolveHref(docDir, src)]
		if !ok {
			return "", "", false
		}
		return img.ID, "data:" + img.MediaType + ";base64," + img.Data, true
	})

	if opts.StripImages {
		body = xhtml.RemoveImages(body)
	}
	if opts.Clean {
		body = xhtml.Clean(body)
	}

	root, err := xhtml.ParseBody(body)
	if err != nil {
		return nil, fmt.Errorf("epub: parse %s: %w", path, err)
	}

	tocSeq := 0
	headings := xhtml.ScanHeadings(root, func() string {
		tocSeq++
		return fmt.Sprintf("%s_toc_%d", item.ID, tocSeq)
	})

	ch := &model.Chapter{
		ID:    item.ID,
		Level: 1,
	}

	if len(headings) > 0 {
		ch.Title = headings[0].Text
		ch.Level = headings[0].Level
		for _, h := range headings[1:] {
			ch.TocItems = append(ch.TocItems, model.TocItem{
				ID:    h.ID,
				Text:  h.Text,
				Level: h.Level,
			})
		}
	} else {
		ch.Title = documentTitle(content)
	}
	if ch.Title == "" {
		ch.Title = fmt.Sprintf("Chapter %d", idx+1)
	}

	ch.Body = xhtml.InnerXML(root)
	return ch, nil
}

// documentTitle extracts the head title element of a content document.
func documentTitle(content string) string {
	root, err := xhtml.ParseBody(content)
	if err != nil {
		return ""
	}
	// ParseBody returns the body; climb back up to the document for head.
	doc := root
	for doc.Parent != nil {
		doc = doc.Parent
	}
	if title := xhtml.FindElement(doc, "title"); title != nil {
		return xhtml.Text(title)
	}
	return ""
}
