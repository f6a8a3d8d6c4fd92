// Package epub is the archive codec: it turns a book project into an EPUB
// container and an EPUB container back into a book project.
//
// The encoder ([Build]) assembles the OCF layout in memory and serializes
// it to a single archive blob: an uncompressed mimetype entry first, the
// container pointer document, the package document with manifest, spine
// and guide, an NCX navigation document, a flat navigation-list page,
// stylesheet, auxiliary files, images and per-chapter content documents.
//
// The decoder ([Decode]) reverses the process leniently: a missing
// container or package document is fatal, but manifest resources absent
// from the archive are skipped, and an unresolvable cover pointer simply
// yields no cover.
//
// [Merge] combines several decoded archives into one project, renumbering
// image asset ids so they never collide.
package epub
