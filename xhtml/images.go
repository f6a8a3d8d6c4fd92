package xhtml

import (
	"regexp"

	"golang.org/x/net/html"
)

// AssetIDAttr is the attribute the editing surface stamps on image
// elements to carry the canonical asset id.
const AssetIDAttr = "data-img-id"

// nameAttr carries the original display name of an imported image, for
// references created before canonical ids existed.
const nameAttr = "data-name"

// DataURIRe matches a base64 data URI and captures the MIME type and payload.
var DataURIRe = regexp.MustCompile(`^data:([^;,]+);base64,(.*)$`)

// RewriteImagesToPaths rewrites embedded image references to archive paths.
// For each img element, resolve receives the canonical asset id annotation
// and the legacy display name and returns the archive-relative path to use
// as src. Unresolved references are left untouched; the exported markup
// keeps them as-is.
func RewriteImagesToPaths(body string, resolve func(id, name string) (string, bool)) string {
	root, err := ParseBody(body)
	if err != nil {
		return body
	}

	WalkElements(root, "img", func(img *html.Node) {
		id := Attr(img, AssetIDAttr)
		name := Attr(img, nameAttr)
		if name == "" {
			name = Attr(img, "alt")
		}

		path, ok := resolve(id, name)
		if !ok {
			return
		}
		SetAttr(img, "src", path)
	})

	return InnerXML(root)
}

// RewriteImagesToData rewrites archive-path image references back into
// embedded form. For each img element, resolve receives the raw src value
// and returns the canonical asset id and the data URI to embed. Image
// elements whose src does not resolve are left untouched.
func RewriteImagesToData(body string, resolve func(src string) (id, dataURI string, ok bool)) string {
	root, err := ParseBody(body)
	if err != nil {
		return body
	}

	WalkElements(root, "img", func(img *html.Node) {
		src := Attr(img, "src")
		if src == "" {
			return
		}

		id, dataURI, ok := resolve(src)
		if !ok {
			return
		}
		SetAttr(img, "src", dataURI)
		SetAttr(img, AssetIDAttr, id)
	})

	return InnerXML(root)
}

// RemoveImages strips all image elements from the markup outright.
func RemoveImages(body string) string {
	root, err := ParseBody(body)
	if err != nil {
		return body
	}

	var imgs []*html.Node
	WalkElements(root, "img", func(img *html.Node) {
		imgs = append(imgs, img)
	})
	for _, img := range imgs {
		if img.Parent != nil {
			img.Parent.RemoveChild(img)
		}
	}

	return InnerXML(root)
}
