package epub

import (
	"encoding/base64"
	"strings"

	"github.com/tsawler/bindery/format"
	"github.com/tsawler/bindery/model"
)

// extensionForMediaType derives an archive filename extension from a MIME
// type. PNG, GIF and WebP are recognized explicitly; everything else
// defaults to jpg.
func extensionForMediaType(mediaType string) string {
	mt := strings.ToLower(mediaType)
	switch {
	case strings.Contains(mt, "png"):
		return "png"
	case strings.Contains(mt, "gif"):
		return "gif"
	case strings.Contains(mt, "webp"):
		return "webp"
	default:
		return "jpg"
	}
}

// imageFilename derives the canonical archive filename of an image asset:
// img_<id>.<ext>.
func imageFilename(a *model.ImageAsset) string {
	return "img_" + a.ID + "." + extensionForMediaType(a.MediaType)
}

// imagePath is the package-relative archive path of an image asset.
func imagePath(a *model.ImageAsset) string {
	return imagesDir + "/" + imageFilename(a)
}

// base64Size computes the decoded byte size of a base64 payload from its
// encoded length, accounting for padding characters. Raw decoded size is
// not otherwise tracked.
func base64Size(data string) int64 {
	n := int64(len(data))
	if n == 0 {
		return 0
	}
	padding := int64(0)
	if strings.HasSuffix(data, "==") {
		padding = 2
	} else if strings.HasSuffix(data, "=") {
		padding = 1
	}
	return n*3/4 - padding
}

// decodePayload decodes a base64 image payload, tolerating missing padding.
func decodePayload(data string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err == nil {
		return raw, nil
	}
	return base64.RawStdEncoding.DecodeString(data)
}

// assetIndex provides the two image lookup tables built at codec time:
// by canonical id (authoritative) and by original display name (legacy
// compatibility for references created before canonical ids existed).
type assetIndex struct {
	byID   map[string]*model.ImageAsset
	byName map[string]*model.ImageAsset
}

func newAssetIndex(images []*model.ImageAsset) *assetIndex {
	idx := &assetIndex{
		byID:   make(map[string]*model.ImageAsset, len(images)),
		byName: make(map[string]*model.ImageAsset, len(images)),
	}
	for _, img := range images {
		idx.byID[img.ID] = img
		if img.Name != "" {
			if _, taken := idx.byName[img.Name]; !taken {
				idx.byName[img.Name] = img
			}
		}
	}
	return idx
}

// resolve finds an asset by canonical id first, falling back to the legacy
// display-name table.
func (idx *assetIndex) resolve(id, name string) (*model.ImageAsset, bool) {
	if id != "" {
		if img, ok := idx.byID[id]; ok {
			return img, true
		}
	}
	if name != "" {
		if img, ok := idx.byName[name]; ok {
			return img, true
		}
	}
	return nil, false
}

// newImageAsset builds an asset from an extracted payload, probing pixel
// dimensions and sniffing the media type when the manifest did not supply
// one.
func newImageAsset(id, name, mediaType string, raw []byte) *model.ImageAsset {
	if mediaType == "" || !strings.HasPrefix(mediaType, "image/") {
		if f := format.Detect(raw); f != format.Unknown {
			mediaType = f.MediaType()
		}
	}
	w, h := format.Dimensions(raw)

	data := base64.StdEncoding.EncodeToString(raw)
	return &model.ImageAsset{
		ID:        id,
		Name:      name,
		Data:      data,
		MediaType: mediaType,
		Width:     w,
		Height:    h,
		Size:      base64Size(data),
	}
}
