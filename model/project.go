package model

import "fmt"

// Project represents a complete book project with metadata, chapters,
// image assets, auxiliary files and cover state.
type Project struct {
	Metadata Metadata
	Chapters []*Chapter
	Images   []*ImageAsset
	Extras   []*ExtraFile

	// Cover is a standalone cover payload, used when the cover is not one
	// of the project's library images.
	Cover *CoverImage

	// CoverImageID references a library image used as the cover. When set,
	// it takes precedence over Cover and no separate cover file is written
	// at export time.
	CoverImageID string

	Styles StyleState
}

// Metadata contains the book-level Dublin Core fields.
type Metadata struct {
	Title       string
	Creator     string
	Language    string
	Description string
	Publisher   string
	Date        string
	Series      string
	Subjects    []string
}

// CoverImage is a standalone cover payload not backed by a library image.
type CoverImage struct {
	Data      string // base64-encoded payload
	MediaType string
}

// StyleState holds the stylesheet configuration for the project.
type StyleState struct {
	// PresetTheme names one of the built-in themes. Empty means no preset.
	PresetTheme string

	// PresetEnabled toggles the preset theme without discarding it.
	PresetEnabled bool

	// CustomCSS is user-supplied CSS appended after the preset theme.
	CustomCSS string
}

// NewProject creates an empty project with the given title and an English
// language default.
func NewProject(title string) *Project {
	return &Project{
		Metadata: Metadata{
			Title:    title,
			Language: "en",
		},
	}
}

// AddChapter appends a new chapter with a freshly assigned id and returns it.
func (p *Project) AddChapter(title, body string, level int) *Chapter {
	ch := &Chapter{
		ID:    p.nextChapterID(),
		Title: title,
		Body:  body,
		Level: level,
	}
	p.Chapters = append(p.Chapters, ch)
	return ch
}

// nextChapterID returns the first unused sequential chapter id.
func (p *Project) nextChapterID() string {
	n := len(p.Chapters) + 1
	for {
		id := fmt.Sprintf("ch_%03d", n)
		if p.FindChapter(id) == nil {
			return id
		}
		n++
	}
}

// FindChapter returns the chapter with the given id, or nil.
func (p *Project) FindChapter(id string) *Chapter {
	for _, ch := range p.Chapters {
		if ch.ID == id {
			return ch
		}
	}
	return nil
}

// FindImage returns the image asset with the given canonical id, or nil.
func (p *Project) FindImage(id string) *ImageAsset {
	for _, img := range p.Images {
		if img.ID == id {
			return img
		}
	}
	return nil
}

// FindImageByName returns the first image asset with the given original
// display name, or nil. Display-name lookup exists for references created
// before canonical ids were assigned.
func (p *Project) FindImageByName(name string) *ImageAsset {
	for _, img := range p.Images {
		if img.Name == name {
			return img
		}
	}
	return nil
}

// CoverAsset returns the library image configured as the cover, or nil when
// the cover is standalone or absent.
func (p *Project) CoverAsset() *ImageAsset {
	if p.CoverImageID == "" {
		return nil
	}
	return p.FindImage(p.CoverImageID)
}

// HasCover reports whether any cover is configured, either as a library
// image reference or as a standalone payload.
func (p *Project) HasCover() bool {
	return p.CoverAsset() != nil || p.Cover != nil
}

// ActiveExtras returns the auxiliary files currently marked active.
func (p *Project) ActiveExtras() []*ExtraFile {
	var active []*ExtraFile
	for _, f := range p.Extras {
		if f.Active {
			active = append(active, f)
		}
	}
	return active
}
