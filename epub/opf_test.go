package epub

import (
	"strings"
	"testing"

	"github.com/tsawler/bindery/model"
)

func TestBuildManifestLibraryCover(t *testing.T) {
	p := model.NewProject("Book")
	img := p.AddImage("photo.png", "aGk=", "image/png")
	p.CoverImageID = img.ID
	p.AddChapter("One", "<p>x</p>", 1)

	items := buildManifest(p, resolveCover(p))

	byID := make(map[string]manifestItem)
	for _, it := range items {
		if _, dup := byID[it.ID]; dup {
			t.Errorf("duplicate manifest id %q", it.ID)
		}
		byID[it.ID] = it
	}

	// A library-image cover reuses the image entry; no standalone cover
	// file is registered.
	if _, ok := byID[idCoverImage]; ok {
		t.Error("library cover produced a standalone cover-image entry")
	}
	if it, ok := byID["img_"+img.ID]; !ok {
		t.Error("library image missing from manifest")
	} else if it.Href != "images/img_001.png" {
		t.Errorf("image href = %q", it.Href)
	}
	if _, ok := byID[idCoverPage]; !ok {
		t.Error("cover page missing from manifest")
	}
}

func TestBuildManifestStandaloneCover(t *testing.T) {
	p := model.NewProject("Book")
	p.Cover = &model.CoverImage{Data: "aGk=", MediaType: "image/jpeg"}

	cover := resolveCover(p)
	if cover.itemID != idCoverImage {
		t.Fatalf("standalone cover item id = %q, want %q", cover.itemID, idCoverImage)
	}

	items := buildManifest(p, cover)
	if items[0].ID != idCoverImage || items[0].Href != "cover.jpg" {
		t.Errorf("standalone cover entry = %+v", items[0])
	}
}

func TestResolveCoverDanglingReference(t *testing.T) {
	p := model.NewProject("Book")
	p.CoverImageID = "999"

	if cover := resolveCover(p); cover.present {
		t.Error("dangling cover reference should yield no cover")
	}
}

func TestResolveCoverBadStandalonePayload(t *testing.T) {
	p := model.NewProject("Book")
	p.Cover = &model.CoverImage{Data: "not!!base64", MediaType: "image/png"}

	if cover := resolveCover(p); cover.present {
		t.Error("undecodable standalone payload should yield no cover")
	}
}

func TestBuildPackageDocRoundTripsMetadata(t *testing.T) {
	p := model.NewProject("Title & More")
	p.Metadata.Creator = "A. Writer"
	p.Metadata.Language = "fr"
	p.Metadata.Description = "About <things>."
	p.Metadata.Publisher = "Pub"
	p.Metadata.Date = "2024-01-02"
	p.Metadata.Series = "Saga"
	p.Metadata.Subjects = []string{"Fiction", "Travel"}
	p.AddChapter("One", "<p>x</p>", 1)

	pkg, err := parsePackage([]byte(buildPackageDoc(p, coverPlan{})))
	if err != nil {
		t.Fatalf("parsePackage: %v", err)
	}
	got := convertMetadata(pkg.Metadata, "fallback")

	if got.Title != p.Metadata.Title {
		t.Errorf("title = %q, want %q", got.Title, p.Metadata.Title)
	}
	if got.Creator != "A. Writer" || got.Language != "fr" || got.Publisher != "Pub" {
		t.Errorf("metadata fields did not survive: %+v", got)
	}
	if got.Description != "About <things>." {
		t.Errorf("description = %q", got.Description)
	}
	if got.Series != "Saga" {
		t.Errorf("series = %q", got.Series)
	}
	if len(got.Subjects) != 2 || got.Subjects[0] != "Fiction" {
		t.Errorf("subjects = %v", got.Subjects)
	}
	if !strings.Contains(pkg.Spine.Toc, idNCX) {
		t.Errorf("spine toc = %q", pkg.Spine.Toc)
	}
}

func TestConvertMetadataDefaults(t *testing.T) {
	got := convertMetadata(opfMetadata{}, "from-filename")
	if got.Title != "from-filename" {
		t.Errorf("title fallback = %q", got.Title)
	}
	if got.Language != "en" {
		t.Errorf("language fallback = %q", got.Language)
	}
}

func TestCoverPointer(t *testing.T) {
	m := opfMetadata{Meta: []opfMeta{
		{Name: "calibre:series", Content: "x"},
		{Name: "cover", Content: "cover-image"},
	}}
	if got := coverPointer(m); got != "cover-image" {
		t.Errorf("coverPointer = %q", got)
	}
	if got := coverPointer(opfMetadata{}); got != "" {
		t.Errorf("coverPointer on empty metadata = %q", got)
	}
}

func TestBuildSpineOrder(t *testing.T) {
	p := model.NewProject("Book")
	p.AddChapter("One", "", 1)
	p.AddChapter("Two", "", 1)
	p.Cover = &model.CoverImage{Data: "aGk=", MediaType: "image/png"}

	spine := buildSpine(p, resolveCover(p))
	want := []string{idCoverPage, idNavPage, "ch_001", "ch_002"}
	if len(spine) != len(want) {
		t.Fatalf("spine length = %d, want %d", len(spine), len(want))
	}
	for i, s := range spine {
		if s.IDRef != want[i] {
			t.Errorf("spine[%d] = %q, want %q", i, s.IDRef, want[i])
		}
	}
}
