package epub

import (
	"encoding/xml"
	"strings"

	"github.com/google/uuid"

	"github.com/tsawler/bindery/model"
)

// buildManifest assembles the package-document entries in dependency
// order: cover image/page, navigation-list page, stylesheet, NCX, active
// auxiliary files, images, chapter documents.
func buildManifest(p *model.Project, cover coverPlan) []manifestItem {
	var items []manifestItem

	if cover.present {
		if cover.standalone != nil {
			items = append(items, manifestItem{ID: idCoverImage, Href: cover.standaloneName, MediaType: cover.mediaType})
		}
		items = append(items, manifestItem{ID: idCoverPage, Href: coverPageName, MediaType: "application/xhtml+xml"})
	}

	items = append(items,
		manifestItem{ID: idNavPage, Href: navPageName, MediaType: "application/xhtml+xml"},
		manifestItem{ID: idStylesheet, Href: stylesheetName, MediaType: "text/css"},
		manifestItem{ID: idNCX, Href: ncxName, MediaType: "application/x-dtbncx+xml"},
	)

	for _, f := range p.ActiveExtras() {
		mt := "application/xml"
		if f.Kind == model.ExtraStylesheet {
			mt = "text/css"
		}
		items = append(items, manifestItem{ID: f.ID, Href: f.Name, MediaType: mt})
	}

	for _, img := range p.Images {
		items = append(items, manifestItem{ID: "img_" + img.ID, Href: imagePath(img), MediaType: img.MediaType})
	}

	for _, ch := range p.Chapters {
		items = append(items, manifestItem{ID: ch.ID, Href: chapterFilename(ch.ID), MediaType: "application/xhtml+xml"})
	}

	return items
}

// buildSpine lists the reading order: cover page, navigation-list page,
// then chapters in chapter order.
func buildSpine(p *model.Project, cover coverPlan) []spineItem {
	var spine []spineItem
	if cover.present {
		spine = append(spine, spineItem{IDRef: idCoverPage})
	}
	spine = append(spine, spineItem{IDRef: idNavPage})
	for _, ch := range p.Chapters {
		spine = append(spine, spineItem{IDRef: ch.ID})
	}
	return spine
}

// buildGuide lists the semantic references: cover and navigation-list.
func buildGuide(cover coverPlan) []guideRef {
	var guide []guideRef
	if cover.present {
		guide = append(guide, guideRef{Type: "cover", Title: "Cover", Href: coverPageName})
	}
	guide = append(guide, guideRef{Type: "toc", Title: "Table of Contents", Href: navPageName})
	return guide
}

// buildPackageDoc renders the complete package document.
func buildPackageDoc(p *model.Project, cover coverPlan) string {
	m := p.Metadata
	var sb strings.Builder

	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString(`<package xmlns="http://www.idpf.org/2007/opf" version="2.0" unique-identifier="pub-id">` + "\n")

	sb.WriteString(`  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:opf="http://www.idpf.org/2007/opf">` + "\n")
	sb.WriteString(`    <dc:identifier id="pub-id">urn:uuid:` + uuid.NewString() + "</dc:identifier>\n")
	sb.WriteString("    <dc:title>" + xmlEscape(m.Title) + "</dc:title>\n")
	if m.Creator != "" {
		sb.WriteString("    <dc:creator>" + xmlEscape(m.Creator) + "</dc:creator>\n")
	}
	lang := m.Language
	if lang == "" {
		lang = "en"
	}
	sb.WriteString("    <dc:language>" + xmlEscape(lang) + "</dc:language>\n")
	if m.Description != "" {
		sb.WriteString("    <dc:description>" + xmlEscape(m.Description) + "</dc:description>\n")
	}
	if m.Publisher != "" {
		sb.WriteString("    <dc:publisher>" + xmlEscape(m.Publisher) + "</dc:publisher>\n")
	}
	if m.Date != "" {
		sb.WriteString("    <dc:date>" + xmlEscape(m.Date) + "</dc:date>\n")
	}
	for _, subj := range m.Subjects {
		sb.WriteString("    <dc:subject>" + xmlEscape(subj) + "</dc:subject>\n")
	}
	if m.Series != "" {
		sb.WriteString(`    <meta name="calibre:series" content="` + xmlEscape(m.Series) + `"/>` + "\n")
	}
	if cover.present {
		sb.WriteString(`    <meta name="cover" content="` + xmlEscape(cover.itemID) + `"/>` + "\n")
	}
	sb.WriteString("  </metadata>\n")

	sb.WriteString("  <manifest>\n")
	for _, it := range buildManifest(p, cover) {
		sb.WriteString(`    <item id="` + xmlEscape(it.ID) + `" href="` + xmlEscape(it.Href) +
			`" media-type="` + xmlEscape(it.MediaType) + `"/>` + "\n")
	}
	sb.WriteString("  </manifest>\n")

	sb.WriteString(`  <spine toc="` + idNCX + `">` + "\n")
	for _, s := range buildSpine(p, cover) {
		sb.WriteString(`    <itemref idref="` + xmlEscape(s.IDRef) + `"/>` + "\n")
	}
	sb.WriteString("  </spine>\n")

	sb.WriteString("  <guide>\n")
	for _, g := range buildGuide(cover) {
		sb.WriteString(`    <reference type="` + g.Type + `" title="` + xmlEscape(g.Title) +
			`" href="` + xmlEscape(g.Href) + `"/>` + "\n")
	}
	sb.WriteString("  </guide>\n")

	sb.WriteString("</package>\n")
	return sb.String()
}

// opfPackage mirrors the package document structure for decoding.
type opfPackage struct {
	XMLName  xml.Name    `xml:"package"`
	Version  string      `xml:"version,attr"`
	Metadata opfMetadata `xml:"metadata"`
	Manifest opfManifest `xml:"manifest"`
	Spine    opfSpine    `xml:"spine"`
	Guide    opfGuide    `xml:"guide"`
}

type opfMetadata struct {
	Title       []string  `xml:"title"`
	Creator     []string  `xml:"creator"`
	Language    []string  `xml:"language"`
	Description []string  `xml:"description"`
	Publisher   []string  `xml:"publisher"`
	Date        []string  `xml:"date"`
	Subject     []string  `xml:"subject"`
	Meta        []opfMeta `xml:"meta"`
}

type opfMeta struct {
	Name    string `xml:"name,attr"`
	Content string `xml:"content,attr"`
}

type opfManifest struct {
	Items []opfItem `xml:"item"`
}

type opfItem struct {
	ID        string `xml:"id,attr"`
	Href      string `xml:"href,attr"`
	MediaType string `xml:"media-type,attr"`
}

type opfSpine struct {
	Toc      string       `xml:"toc,attr"`
	ItemRefs []opfItemRef `xml:"itemref"`
}

type opfItemRef struct {
	IDRef string `xml:"idref,attr"`
}

type opfGuide struct {
	References []opfReference `xml:"reference"`
}

type opfReference struct {
	Type string `xml:"type,attr"`
	Href string `xml:"href,attr"`
}

// parsePackage decodes a package document. Missing metadata fields fall
// back to caller-supplied defaults later; only structural failure is an
// error here.
func parsePackage(data []byte) (*opfPackage, error) {
	var pkg opfPackage
	if err := xml.Unmarshal(data, &pkg); err != nil {
		return nil, ErrInvalidPackage
	}
	return &pkg, nil
}

// firstOr returns the first trimmed non-empty value, or the fallback.
func firstOr(values []string, fallback string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return fallback
}

// convertMetadata maps parsed package metadata onto the project model,
// falling back to a name derived from the source filename.
func convertMetadata(m opfMetadata, fallbackTitle string) model.Metadata {
	meta := model.Metadata{
		Title:       firstOr(m.Title, fallbackTitle),
		Creator:     firstOr(m.Creator, ""),
		Language:    firstOr(m.Language, "en"),
		Description: firstOr(m.Description, ""),
		Publisher:   firstOr(m.Publisher, ""),
		Date:        firstOr(m.Date, ""),
	}
	for _, s := range m.Subject {
		if s = strings.TrimSpace(s); s != "" {
			meta.Subjects = append(meta.Subjects, s)
		}
	}
	for _, mt := range m.Meta {
		if mt.Name == "calibre:series" && mt.Content != "" {
			meta.Series = mt.Content
		}
	}
	return meta
}

// coverPointer extracts the metadata cover pointer, "" when absent.
func coverPointer(m opfMetadata) string {
	for _, mt := range m.Meta {
		if mt.Name == "cover" {
			return mt.Content
		}
	}
	return ""
}
