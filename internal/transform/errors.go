package transform

import "errors"

// Errors returned by transforms.
var (
	// ErrScript indicates a Lua script failed to compile or run.
	ErrScript = errors.New("transform script failed")

	// ErrScriptClosed indicates the script's Lua state has been closed.
	ErrScriptClosed = errors.New("transform script closed")

	// ErrInvalidColor indicates a value could not be parsed as a color.
	ErrInvalidColor = errors.New("invalid color")

	// ErrInvalidCase indicates an unknown text case name.
	ErrInvalidCase = errors.New("invalid text case")
)
