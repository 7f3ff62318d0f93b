package gen

import "errors"

// Errors returned by image locators.
var (
	// ErrNoSource indicates an image description without a source.
	ErrNoSource = errors.New("image has no source")

	// ErrImageNotFound indicates a local image source does not exist.
	ErrImageNotFound = errors.New("image not found")
)
