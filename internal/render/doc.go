// Package render paints documents onto a terminal screen.
//
// A Renderer is bound to one bridge.Bridge for its lifetime and draws with
// the bridge's generation service: text runs are styled through the text
// transform registry and image blocks are resolved through the image
// locator. Each call to Render assembles blocks afresh from the document;
// no block identity survives between calls.
//
// Layout is line-granular. Every block starts on a new row, text wraps at
// the screen width, and a configurable number of blank rows separates a
// block from the next one. Quote and list-item lines carry a prefix that is
// repeated on wrapped rows.
package render
