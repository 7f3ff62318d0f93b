package delta

// Line is a line-delimited segment of a delta.
type Line struct {
	// Ops holds the line's operations, including the closing newline when
	// the line is terminated.
	Ops []Op

	// LineType is taken from the closing newline's attributes.
	// Unterminated lines have LineTypeNormal.
	LineType LineType

	// Terminated reports whether the line ends with a newline operation.
	Terminated bool
}

// Content returns the line's operations without the closing newline.
func (l Line) Content() []Op {
	if l.Terminated {
		return l.Ops[:len(l.Ops)-1]
	}
	return l.Ops
}

// Length returns the number of characters covered by the line, newline included.
func (l Line) Length() int {
	n := 0
	for _, op := range l.Ops {
		n += op.Len()
	}
	return n
}

// SliceByLine partitions the delta into lines, scanning left to right and
// closing a line at each newline operation. Trailing operations lacking a
// terminator form a final unterminated line. An empty delta has no lines.
//
// Concatenating the Ops of every returned line reproduces the delta exactly.
func SliceByLine(d Delta) []Line {
	var lines []Line
	start := 0
	for i, op := range d.ops {
		if !op.IsNewline() {
			continue
		}
		lines = append(lines, Line{
			Ops:        d.ops[start : i+1 : i+1],
			LineType:   op.LineType(),
			Terminated: true,
		})
		start = i + 1
	}
	if start < len(d.ops) {
		lines = append(lines, Line{
			Ops:      d.ops[start:len(d.ops):len(d.ops)],
			LineType: LineTypeNormal,
		})
	}
	return lines
}

// JoinLines concatenates line operations back into a delta without
// renormalizing them.
func JoinLines(lines []Line) Delta {
	n := 0
	for _, l := range lines {
		n += len(l.Ops)
	}
	ops := make([]Op, 0, n)
	for _, l := range lines {
		ops = append(ops, l.Ops...)
	}
	return Delta{ops: ops}
}
