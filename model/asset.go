package model

import "fmt"

// ImageAsset is an embedded image owned by the project.
type ImageAsset struct {
	// ID is the canonical asset id: sequential, zero-padded ("001").
	// Archive filenames are derived from it and never stored.
	ID string

	// Name is the original display name of the imported file.
	Name string

	// Data is the base64-encoded payload.
	Data string

	MediaType string

	// Width and Height are pixel dimensions, zero when unknown.
	Width  int
	Height int

	// Size is the decoded payload size in bytes.
	Size int64
}

// ImageID formats a canonical asset id from a sequence number.
func ImageID(n int) string {
	return fmt.Sprintf("%03d", n)
}

// NextImageID returns the canonical id one past the highest sequence number
// currently in use.
func (p *Project) NextImageID() string {
	max := 0
	for _, img := range p.Images {
		var n int
		if _, err := fmt.Sscanf(img.ID, "%d", &n); err == nil && n > max {
			max = n
		}
	}
	return ImageID(max + 1)
}

// AddImage appends an image asset with a freshly assigned canonical id and
// returns it.
func (p *Project) AddImage(name, data, mediaType string) *ImageAsset {
	img := &ImageAsset{
		ID:        p.NextImageID(),
		Name:      name,
		Data:      data,
		MediaType: mediaType,
	}
	p.Images = append(p.Images, img)
	return img
}
