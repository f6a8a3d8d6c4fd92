// Package format provides image payload format detection for the bindery library.
package format

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/webp"
)

// Format represents a supported image format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PNG indicates a PNG image.
	PNG
	// JPEG indicates a JPEG image.
	JPEG
	// GIF indicates a GIF image.
	GIF
	// WebP indicates a WebP image.
	WebP
	// SVG indicates an SVG document.
	SVG
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case GIF:
		return "GIF"
	case WebP:
		return "WebP"
	case SVG:
		return "SVG"
	default:
		return "Unknown"
	}
}

// MediaType returns the MIME type for the format.
func (f Format) MediaType() string {
	switch f {
	case PNG:
		return "image/png"
	case JPEG:
		return "image/jpeg"
	case GIF:
		return "image/gif"
	case WebP:
		return "image/webp"
	case SVG:
		return "image/svg+xml"
	default:
		return ""
	}
}

// Detect determines the image format from the payload's magic bytes.
func Detect(data []byte) Format {
	switch {
	case len(data) >= 8 && bytes.Equal(data[:8], []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}):
		return PNG
	case len(data) >= 3 && bytes.Equal(data[:3], []byte{0xff, 0xd8, 0xff}):
		return JPEG
	case len(data) >= 6 && (bytes.Equal(data[:6], []byte("GIF87a")) || bytes.Equal(data[:6], []byte("GIF89a"))):
		return GIF
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return WebP
	case looksLikeSVG(data):
		return SVG
	default:
		return Unknown
	}
}

// looksLikeSVG checks for an <svg> root element near the start of the payload.
func looksLikeSVG(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	s := strings.ToLower(string(head))
	return strings.Contains(s, "<svg")
}

// FromMediaType maps a MIME type to a Format.
func FromMediaType(mediaType string) Format {
	mt := strings.ToLower(strings.TrimSpace(mediaType))
	switch {
	case strings.Contains(mt, "png"):
		return PNG
	case strings.Contains(mt, "jpeg"), strings.Contains(mt, "jpg"):
		return JPEG
	case strings.Contains(mt, "gif"):
		return GIF
	case strings.Contains(mt, "webp"):
		return WebP
	case strings.Contains(mt, "svg"):
		return SVG
	default:
		return Unknown
	}
}

// Dimensions probes the pixel dimensions of an image payload. It returns
// zeros when the payload cannot be decoded (SVG has no intrinsic pixel
// dimensions and always returns zeros).
func Dimensions(data []byte) (width, height int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
