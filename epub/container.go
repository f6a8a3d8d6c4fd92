package epub

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
)

// containerXML models META-INF/container.xml, the fixed-path pointer
// document locating the package document.
type containerXML struct {
	XMLName   xml.Name  `xml:"container"`
	Version   string    `xml:"version,attr"`
	Rootfiles rootfiles `xml:"rootfiles"`
}

type rootfiles struct {
	Rootfile []rootfile `xml:"rootfile"`
}

type rootfile struct {
	FullPath  string `xml:"full-path,attr"`
	MediaType string `xml:"media-type,attr"`
}

// buildContainer renders the pointer document for the fixed package path.
func buildContainer() string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="` + packageDir + `/` + packageName + `" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`
}

// parseContainer locates and parses the pointer document and returns the
// package document path. A missing or unparsable pointer document is fatal.
func parseContainer(zr *zip.Reader) (string, error) {
	f := findEntry(zr, containerPath)
	if f == nil {
		return "", ErrNoContainer
	}

	data, err := readEntry(f)
	if err != nil {
		return "", fmt.Errorf("epub: read container.xml: %w", err)
	}

	var container containerXML
	if err := xml.Unmarshal(data, &container); err != nil {
		return "", ErrInvalidContainer
	}

	for _, rf := range container.Rootfiles.Rootfile {
		if rf.FullPath == "" {
			continue
		}
		if rf.MediaType == "application/oebps-package+xml" || rf.MediaType == "" {
			return rf.FullPath, nil
		}
	}

	// No media-type match, take the first non-empty path.
	for _, rf := range container.Rootfiles.Rootfile {
		if rf.FullPath != "" {
			return rf.FullPath, nil
		}
	}

	return "", ErrNoRootfile
}

// findEntry looks up a zip entry by exact name.
func findEntry(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// readEntry reads the full contents of a zip entry.
func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
