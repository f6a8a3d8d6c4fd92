package model

// Chapter represents one content document of the book.
type Chapter struct {
	// ID is assigned once when the chapter enters the project and is
	// never regenerated.
	ID string

	Title string

	// Body is the chapter markup as produced by the editing surface.
	// Embedded images use data URIs annotated with their canonical asset
	// id; the codec rewrites them to archive paths at export time.
	Body string

	// Level is the outline level, 1 or 2. A level-2 chapter conceptually
	// nests under the nearest preceding level-1 chapter. The model does
	// not enforce this at construction time.
	Level int

	// TocItems are the heading anchors of this chapter, in document order.
	TocItems []TocItem

	// ExcludeFromNav removes the chapter from generated navigation
	// documents without removing it from the reading order.
	ExcludeFromNav bool
}

// TocItem is a single heading anchor within a chapter. Its id backs a
// stable in-document anchor and must be unique within the project.
type TocItem struct {
	ID    string
	Text  string
	Level int // 1 or 2
}

// ExtraFileKind distinguishes the two auxiliary file flavours.
type ExtraFileKind int

const (
	// ExtraStylesheet is an auxiliary CSS file.
	ExtraStylesheet ExtraFileKind = iota
	// ExtraXML is a generic auxiliary XML document.
	ExtraXML
)

// ExtraFile is an auxiliary resource carried alongside the chapters.
type ExtraFile struct {
	ID      string
	Name    string // archive filename
	Content string
	Kind    ExtraFileKind
	Active  bool

	// ChapterIDs scopes a stylesheet to specific chapters. A nil slice
	// means the file applies globally; this is a legacy-compatibility
	// default for files created before scoping existed.
	ChapterIDs []string
}

// AppliesTo reports whether the file applies to the chapter with the given
// id. An unset scope list applies to every chapter.
func (f *ExtraFile) AppliesTo(chapterID string) bool {
	if f.ChapterIDs == nil {
		return true
	}
	for _, id := range f.ChapterIDs {
		if id == chapterID {
			return true
		}
	}
	return false
}
