// Package block derives renderable blocks from a document.
//
// Assemble partitions the document's delta into line-delimited segments and
// classifies each one:
//
//   - ImageBlock: the line holds exactly one image operation and no text
//     (the closing newline aside).
//   - TextBlock: every other line. A line mixing images and text is a text
//     block; its operations are preserved as-is.
//
// Blocks are indexed by their position in a single assembly pass. The index
// is not stable across edits that change the block count, so consumers must
// re-key on every reassembly and never hold a Block across passes.
package block
