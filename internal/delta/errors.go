package delta

import (
	"errors"
	"fmt"
)

// Errors returned by delta decoding.
var (
	// ErrInvalidJSON is returned when the input is not valid JSON.
	ErrInvalidJSON = errors.New("invalid delta JSON")

	// ErrMissingOps is returned when the input has no "ops" array.
	ErrMissingOps = errors.New("delta has no ops array")

	// ErrUnsupportedInsert is returned for inserts that are neither text nor an image.
	ErrUnsupportedInsert = errors.New("unsupported insert")

	// ErrUnsupportedValue is returned for attribute values that are not primitives.
	ErrUnsupportedValue = errors.New("unsupported attribute value")

	// ErrEmptyText is returned when a text insert has no content.
	ErrEmptyText = errors.New("empty text insert")
)

// DecodeError reports which operation of a serialized delta failed to decode.
type DecodeError struct {
	// Index is the position of the operation in the ops array.
	Index int

	// Err is the underlying error.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding op %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
