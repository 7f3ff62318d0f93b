package document

import "github.com/dshills/richsheet/internal/delta"

// LineInfo locates a line within the document.
type LineInfo struct {
	// Index is the 0-based line number.
	Index int

	// Start is the offset of the line's first character.
	Start int

	// End is the offset just past the line, closing newline included.
	End int

	// LineType is the type carried by the closing newline.
	LineType delta.LineType

	// Terminated reports whether the line ends with a newline.
	Terminated bool
}

// Lines returns the boundaries of every line.
func (d Document) Lines() []LineInfo {
	var lines []LineInfo
	start := 0
	d.each(func(op delta.Op, pos int) bool {
		if op.IsNewline() {
			lines = append(lines, LineInfo{
				Index:      len(lines),
				Start:      start,
				End:        pos + 1,
				LineType:   op.LineType(),
				Terminated: true,
			})
			start = pos + 1
		}
		return true
	})
	if start < d.length || len(lines) == 0 {
		lines = append(lines, LineInfo{
			Index:    len(lines),
			Start:    start,
			End:      d.length,
			LineType: delta.LineTypeNormal,
		})
	}
	return lines
}

// LineCount returns the number of lines. An empty document has one empty line.
func (d Document) LineCount() int {
	return len(d.Lines())
}

// LineAt returns the line containing offset. An offset equal to the document
// length belongs to the trailing line.
func (d Document) LineAt(offset int) LineInfo {
	lines := d.Lines()
	for _, l := range lines {
		if offset < l.End {
			return l
		}
	}
	last := lines[len(lines)-1]
	if last.Terminated {
		return LineInfo{Index: last.Index + 1, Start: d.length, End: d.length, LineType: delta.LineTypeNormal}
	}
	return last
}

// OpAt returns the operation covering the character at offset.
func (d Document) OpAt(offset int) (delta.Op, bool) {
	var (
		found delta.Op
		ok    bool
	)
	d.each(func(op delta.Op, pos int) bool {
		if offset >= pos && offset < pos+op.Len() {
			found, ok = op, true
			return false
		}
		return pos <= offset
	})
	return found, ok
}

// AttributesAt returns the text attributes active at a caret: those of the
// character before the caret, or of the character after it when the caret
// starts a line.
func (d Document) AttributesAt(offset int) delta.Attributes {
	if offset > 0 {
		if op, ok := d.OpAt(offset - 1); ok && !op.IsNewline() {
			return op.Attributes.WithoutLineType().Clone()
		}
	}
	if op, ok := d.OpAt(offset); ok && !op.IsNewline() {
		return op.Attributes.WithoutLineType().Clone()
	}
	return nil
}

// AttributesInRange returns the text attributes common to every character of
// sel. Only pairs shared by all operations intersecting the range are
// reported. Newlines are ignored unless the range holds nothing else.
// A collapsed selection behaves as AttributesAt.
func (d Document) AttributesInRange(sel Selection) delta.Attributes {
	if sel.Collapsed() {
		return d.AttributesAt(sel.Start)
	}

	var (
		result   delta.Attributes
		seen     bool
		newlines []delta.Attributes
	)
	d.each(func(op delta.Op, pos int) bool {
		if pos >= sel.End {
			return false
		}
		if pos+op.Len() <= sel.Start {
			return true
		}
		attrs := op.Attributes.WithoutLineType()
		if op.IsNewline() {
			newlines = append(newlines, attrs)
			return true
		}
		if !seen {
			result, seen = attrs.Clone(), true
		} else {
			result = delta.Intersect(result, attrs)
		}
		return true
	})
	if !seen {
		for i, attrs := range newlines {
			if i == 0 {
				result = attrs.Clone()
				continue
			}
			result = delta.Intersect(result, attrs)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// LineTypeInRange returns the line type shared by every line intersecting
// sel, or LineTypeNormal when they differ. A collapsed selection reports the
// line containing the caret.
func (d Document) LineTypeInRange(sel Selection) delta.LineType {
	if sel.Collapsed() {
		return d.LineAt(sel.Start).LineType
	}
	var (
		common delta.LineType
		seen   bool
	)
	for _, l := range d.Lines() {
		if l.Start >= sel.End || l.End <= sel.Start {
			continue
		}
		if !seen {
			common, seen = l.LineType, true
			continue
		}
		if common != l.LineType {
			return delta.LineTypeNormal
		}
	}
	if !seen {
		return delta.LineTypeNormal
	}
	return common
}
