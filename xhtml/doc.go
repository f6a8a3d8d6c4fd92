// Package xhtml provides the markup layer of the bindery codec.
//
// It converts loosely-valid, browser-produced HTML into strings safe to
// embed inside XML documents, parses content documents into mutable trees,
// serializes trees back to well-formed XHTML, and rewrites embedded image
// references between the two addressing schemes used by the codec
// (data URIs annotated with canonical asset ids, and archive-relative
// paths).
//
// The sanitizer ([Sanitize]) is a pair of regex passes kept deliberately
// compatible with the output of earlier exports: it escapes bare
// ampersands and self-closes void elements, and is idempotent. Everything
// structural goes through the golang.org/x/net/html tree instead.
package xhtml
