package epub

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tsawler/bindery/model"
)

// Source is one archive to merge.
type Source struct {
	Name string
	Data []byte
}

// Merge decodes the sources in filename-sorted order and combines them
// into a single project: chapters and auxiliary files accumulate, image
// asset ids are renumbered so they never collide, custom stylesheets are
// concatenated under provenance comments, and the first source's metadata
// and cover become the merged identity.
//
// The merge is all-or-nothing: the first source that fails to decode
// aborts the whole merge with no partial result.
func Merge(sources []Source, opts DecodeOptions) (*model.Project, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	sorted := make([]Source, len(sources))
	copy(sorted, sources)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var merged *model.Project
	var css []string
	chapterIDs := make(map[string]bool)
	extraNames := make(map[string]bool)
	extraIDs := make(map[string]bool)
	offset := 0

	for i, src := range sorted {
		srcOpts := opts
		srcOpts.SourceName = src.Name
		srcOpts.ImageIDOffset = offset

		p, err := Decode(src.Data, srcOpts)
		if err != nil {
			return nil, fmt.Errorf("epub: merge %s: %w", src.Name, err)
		}

		if merged == nil {
			merged = &model.Project{
				Metadata:     p.Metadata,
				Cover:        p.Cover,
				CoverImageID: p.CoverImageID,
			}
		}

		for _, ch := range p.Chapters {
			base := ch.ID
			for n := 2; chapterIDs[ch.ID]; n++ {
				ch.ID = fmt.Sprintf("%s_%d", base, n)
			}
			if ch.ID != base {
				renameTocAnchors(ch, base)
			}
			chapterIDs[ch.ID] = true
			merged.Chapters = append(merged.Chapters, ch)
		}

		for _, img := range p.Images {
			merged.Images = append(merged.Images, img)
			if n := imageSeq(img.ID); n > offset {
				offset = n
			}
		}

		for _, f := range p.Extras {
			if extraNames[f.Name] {
				f.Name = fmt.Sprintf("m%d_%s", i+1, f.Name)
			}
			extraNames[f.Name] = true
			base := f.ID
			for n := 2; extraIDs[f.ID]; n++ {
				f.ID = fmt.Sprintf("%s_%d", base, n)
			}
			extraIDs[f.ID] = true
			merged.Extras = append(merged.Extras, f)
		}

		if s := strings.TrimSpace(p.Styles.CustomCSS); s != "" {
			css = append(css, "/* ==== "+src.Name+" ==== */\n"+s)
		}
	}

	merged.Styles.CustomCSS = strings.Join(css, "\n\n")
	return merged, nil
}

// renameTocAnchors rewrites the generated heading-anchor ids of a renamed
// chapter so they stay unique across the merged project. Anchors carried
// over from the source documents keep their ids.
func renameTocAnchors(ch *model.Chapter, oldID string) {
	oldPrefix := oldID + "_toc_"
	newPrefix := ch.ID + "_toc_"

	for i, it := range ch.TocItems {
		if strings.HasPrefix(it.ID, oldPrefix) {
			ch.TocItems[i].ID = newPrefix + strings.TrimPrefix(it.ID, oldPrefix)
		}
	}
	ch.Body = strings.ReplaceAll(ch.Body, `id="`+oldPrefix, `id="`+newPrefix)
}

// imageSeq parses the numeric sequence of a canonical image id, 0 when it
// is not numeric.
func imageSeq(id string) int {
	var n int
	if _, err := fmt.Sscanf(id, "%d", &n); err != nil {
		return 0
	}
	return n
}
