// Package sheet implements the editing surface of a rich-text document.
//
// A Sheet owns a document and a selection. It listens on the sheet side of a
// bridge.Bridge for formatting and insertion requests issued by external
// controls, applies them to its document, and reports the attributes and
// line type of the selection back through the bridge after every change.
//
// Formatting a collapsed selection does not touch the document. The
// override is kept as pending attributes and applied to the next insertion
// at the caret. Moving the selection discards it.
package sheet
