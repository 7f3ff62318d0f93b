// Package gen bundles the rendering-support capabilities shared by the
// consumers of a bridge: an image locator and a text transform registry.
//
// A Config is partial: nil fields fall back to the defaults when the
// Service is built.
package gen
