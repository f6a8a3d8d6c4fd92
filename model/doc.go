// Package model provides the in-memory representation of a book project.
//
// This package defines the user-facing data structures that the codec
// produces and consumes. A [Project] is the aggregate root: it owns its
// chapters, image assets, extra files and cover state. Chapters reference
// image assets only by canonical id through inline markup annotations;
// they never own payload data themselves.
//
// # Project Structure
//
// The [Project] type represents a complete book:
//
//	p := model.NewProject("My Book")
//	p.AddChapter("Chapter One", "<p>Body markup.</p>", 1)
//
// Each [Chapter] carries its body markup, an outline level (1 or 2), and
// the [TocItem] anchors derived from its headings. [ImageAsset] holds an
// embedded base64 payload together with its MIME type, pixel dimensions
// and decoded byte size. [ExtraFile] holds auxiliary stylesheets or XML
// documents, optionally scoped to a subset of chapters.
//
// # Identifiers
//
// Image asset ids are sequential and zero-padded ("001", "002", ...);
// archive filenames are derived from them, never stored. Chapter and
// TocItem ids are assigned once and never regenerated, since TocItem ids
// back stable in-document anchors.
package model
