package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration loading.
var (
	// ErrUnsupportedFormat indicates a file extension other than .toml, .yaml or .yml.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrMissingAttribute indicates a transform entry without an attribute.
	ErrMissingAttribute = errors.New("transform has no attribute")

	// ErrAmbiguousTransform indicates a transform entry naming both a color
	// target and a script.
	ErrAmbiguousTransform = errors.New("transform sets both color and script")

	// ErrInvalidValue indicates a setting with an out-of-range value.
	ErrInvalidValue = errors.New("invalid value")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// TransformError reports an invalid entry of the transforms list.
type TransformError struct {
	// Index is the entry's position in the list.
	Index int
	// Attribute is the entry's attribute name, if any.
	Attribute string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *TransformError) Error() string {
	if e.Attribute == "" {
		return fmt.Sprintf("transform %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("transform %d (%s): %v", e.Index, e.Attribute, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransformError) Unwrap() error {
	return e.Err
}
