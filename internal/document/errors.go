package document

import (
	"errors"
	"fmt"
)

// Errors returned by document edits.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrNoContent        = errors.New("no content to insert")
)

// EditError describes a rejected edit.
type EditError struct {
	Op    string // Operation name (e.g., "insert", "format")
	Start int
	End   int
	Err   error
}

func (e *EditError) Error() string {
	return fmt.Sprintf("%s [%d, %d): %v", e.Op, e.Start, e.End, e.Err)
}

// Unwrap returns the underlying error.
func (e *EditError) Unwrap() error {
	return e.Err
}
