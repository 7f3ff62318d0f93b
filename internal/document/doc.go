// Package document provides the immutable rich-text Document that owns the
// canonical Delta of a text buffer.
//
// A Document is a value. Every edit (Insert, Delete, Replace, Format,
// FormatLines) returns a new Document and leaves the receiver untouched, so
// renderers holding a prior snapshot stay valid.
//
// Operations are stored in bounded, immutable chunks. An edit rebuilds only
// the chunks overlapping the edited range; the new Document shares every
// other chunk with its predecessor:
//
//	before: [c0][c1][c2][c3]
//	edit in c2
//	after:  [c0][c1][c2'][c3]   (c0, c1, c3 shared)
//
// Offsets are character offsets into the logical character stream: runes of
// text, with each image counting as one character.
package document
