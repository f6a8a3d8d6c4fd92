package epub

import (
	"github.com/tsawler/bindery/model"
)

// coverPlan is the encode-side cover decision.
type coverPlan struct {
	present bool

	// itemID is the manifest item id the metadata cover pointer references:
	// the canonical item id of a library image, or the standalone entry id.
	itemID string

	// imageHref is the package-relative path of the cover image.
	imageHref string

	// standalone holds the decoded payload of a dedicated cover file;
	// nil when the cover reuses an already-registered library image.
	standalone []byte

	standaloneName string // archive filename of the dedicated cover file
	mediaType      string
}

// resolveCover decides between a referenced-library-image cover and a
// standalone generated cover file. A library reference reuses the image's
// registered archive entry and manifest item id; a standalone payload
// becomes a dedicated top-level file with its own manifest item. A
// dangling library reference with no standalone fallback means no cover.
func resolveCover(p *model.Project) coverPlan {
	if img := p.CoverAsset(); img != nil {
		return coverPlan{
			present:   true,
			itemID:    "img_" + img.ID,
			imageHref: imagePath(img),
			mediaType: img.MediaType,
		}
	}

	if p.Cover != nil {
		raw, err := decodePayload(p.Cover.Data)
		if err != nil {
			return coverPlan{}
		}
		name := "cover." + extensionForMediaType(p.Cover.MediaType)
		return coverPlan{
			present:        true,
			itemID:         idCoverImage,
			imageHref:      name,
			standalone:     raw,
			standaloneName: name,
			mediaType:      p.Cover.MediaType,
		}
	}

	return coverPlan{}
}

// resolveDecodedCover resolves the decode-side cover: the package
// metadata's cover pointer is looked up in the manifest, the item's
// archive path is resolved, and the path-keyed lookup built while
// processing the manifest supplies the extracted image. Any step failing
// yields no cover rather than an error.
func resolveDecodedCover(p *model.Project, coverID string, manifest []manifestItem, baseDir string, byPath map[string]*model.ImageAsset) {
	if coverID == "" {
		return
	}

	var href string
	for _, it := range manifest {
		if it.ID == coverID {
			href = it.Href
			break
		}
	}
	if href == "" {
		return
	}

	img, ok := byPath[resolveHref(baseDir, href)]
	if !ok {
		return
	}
	p.CoverImageID = img.ID
}
