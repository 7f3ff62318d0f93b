package document

// Selection is a range of character offsets. Start is inclusive and End is
// exclusive; a collapsed selection (Start == End) is a caret.
type Selection struct {
	Start int
	End   int
}

// NewSelection returns the selection between a and b in either order.
func NewSelection(a, b int) Selection {
	if b < a {
		a, b = b, a
	}
	return Selection{Start: a, End: b}
}

// Caret returns a collapsed selection at offset.
func Caret(offset int) Selection {
	return Selection{Start: offset, End: offset}
}

// Collapsed reports whether the selection is a caret.
func (s Selection) Collapsed() bool {
	return s.Start == s.End
}

// Len returns the number of selected characters.
func (s Selection) Len() int {
	return s.End - s.Start
}

// Contains reports whether offset lies in [Start, End).
func (s Selection) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Intersects reports whether the character range [start, end) overlaps the
// selection. A caret intersects the range that contains it or ends at it.
func (s Selection) Intersects(start, end int) bool {
	if s.Collapsed() {
		return s.Start >= start && s.Start <= end
	}
	return s.Start < end && s.End > start
}
