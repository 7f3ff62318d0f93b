// Package delta provides the rich-text operation log used by the document
// engine.
//
// A Delta is an ordered, immutable-by-convention sequence of insert
// operations. Each operation carries either text or an embedded image plus an
// attribute set. The concatenation of all operations, counting every image as
// a single placeholder character, yields the logical character stream used
// for selection offsets.
//
// # Line Types
//
// Line breaks are represented by a text operation whose content is exactly
// "\n". The line type of a line (normal, quote, list item) is stored on that
// closing newline, not on the first operation of the line:
//
//	Hello⏎{lineType: quote}
//	└─ line content ─┘└─ owns the line type
//
// # Attributes
//
// Attribute maps merge left-biased: keys of the override replace keys of the
// base, and a Clear value removes the key from the result:
//
//	base     := delta.Attributes{"bold": delta.Bool(true), "italic": delta.Bool(true)}
//	override := delta.Attributes{"italic": delta.Clear()}
//	delta.Merge(base, override) // {"bold": true}
//
// # Serialization
//
// The ordered operation sequence is the canonical serializable form. Marshal
// and Unmarshal convert it to and from a JSON object of the shape
//
//	{"ops":[{"insert":"Hello"},{"insert":"\n","attributes":{"lineType":"quote"}},
//	        {"insert":{"image":{"source":"cat.png","width":640,"height":480}}}]}
package delta
