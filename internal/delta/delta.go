package delta

import "strings"

// Delta is an ordered sequence of insert operations representing a whole
// text buffer. A Delta value is never mutated after construction; every
// operation that changes it returns a new Delta.
type Delta struct {
	ops []Op
}

// New builds a normalized delta from ops.
// Text containing newlines is split so that every line break is its own
// operation, empty text is dropped, and adjacent non-newline text runs with
// equal attributes are coalesced.
func New(ops ...Op) Delta {
	var b Builder
	for _, op := range ops {
		b.Push(op)
	}
	return b.Build()
}

// AppendInsert returns a new delta with content appended. The input delta is
// not modified.
func AppendInsert(d Delta, content Content, attrs Attributes) Delta {
	b := Builder{ops: make([]Op, len(d.ops), len(d.ops)+2)}
	copy(b.ops, d.ops)
	b.Push(Op{Content: content, Attributes: attrs})
	return b.Build()
}

// Concat returns the operations of a followed by those of b.
func Concat(a, b Delta) Delta {
	bld := Builder{ops: make([]Op, len(a.ops), len(a.ops)+len(b.ops))}
	copy(bld.ops, a.ops)
	for _, op := range b.ops {
		bld.Push(op)
	}
	return bld.Build()
}

// Ops returns a copy of the operations.
func (d Delta) Ops() []Op {
	if len(d.ops) == 0 {
		return nil
	}
	ops := make([]Op, len(d.ops))
	copy(ops, d.ops)
	return ops
}

// At returns the i-th operation.
func (d Delta) At(i int) Op {
	return d.ops[i]
}

// Len returns the number of operations.
func (d Delta) Len() int {
	return len(d.ops)
}

// IsEmpty returns true if the delta has no operations.
func (d Delta) IsEmpty() bool {
	return len(d.ops) == 0
}

// Length returns the number of characters in the logical character stream.
func (d Delta) Length() int {
	n := 0
	for _, op := range d.ops {
		n += op.Len()
	}
	return n
}

// Text returns the character stream with each image replaced by
// ObjectReplacement.
func (d Delta) Text() string {
	var sb strings.Builder
	for _, op := range d.ops {
		if op.IsImage() {
			sb.WriteRune(ObjectReplacement)
			continue
		}
		sb.WriteString(op.Text())
	}
	return sb.String()
}

// Slice returns the operations covering characters [start, end).
// Operations straddling a boundary are split. Offsets are clamped.
func (d Delta) Slice(start, end int) Delta {
	if start < 0 {
		start = 0
	}
	var b Builder
	pos := 0
	for _, op := range d.ops {
		if pos >= end {
			break
		}
		n := op.Len()
		opEnd := pos + n
		if opEnd <= start {
			pos = opEnd
			continue
		}
		cut := op
		if start > pos {
			_, cut = cut.Split(start - pos)
		}
		if opEnd > end {
			cut, _ = cut.Split(end - max(start, pos))
		}
		b.Push(cut)
		pos = opEnd
	}
	return b.Build()
}

// Equal reports whether two deltas hold equal operations in the same order.
func (d Delta) Equal(other Delta) bool {
	if len(d.ops) != len(other.ops) {
		return false
	}
	for i := range d.ops {
		if !d.ops[i].Equal(other.ops[i]) {
			return false
		}
	}
	return true
}

// Builder accumulates operations into a normalized Delta.
// The zero value is ready to use.
type Builder struct {
	ops []Op
}

// Insert appends text.
func (b *Builder) Insert(text string, attrs Attributes) *Builder {
	b.Push(InsertText(text, attrs))
	return b
}

// InsertNewline appends a line break with line attributes.
func (b *Builder) InsertNewline(attrs Attributes) *Builder {
	b.Push(InsertNewline(attrs))
	return b
}

// InsertLine appends text followed by a newline of the given line type.
func (b *Builder) InsertLine(text string, attrs Attributes, lineType LineType) *Builder {
	b.Insert(text, attrs)
	var lineAttrs Attributes
	if lineType != "" && lineType != LineTypeNormal {
		lineAttrs = Attributes{AttrLineType: String(string(lineType))}
	}
	return b.InsertNewline(lineAttrs)
}

// InsertImage appends an image.
func (b *Builder) InsertImage(img Image, attrs Attributes) *Builder {
	b.Push(InsertImage(img, attrs))
	return b
}

// Push appends an operation, normalizing text as described on New.
func (b *Builder) Push(op Op) {
	switch c := op.Content.(type) {
	case TextContent:
		for _, part := range splitLines(c.Text) {
			b.pushText(part, op.Attributes)
		}
	case ImageContent:
		b.ops = append(b.ops, op)
	}
}

func (b *Builder) pushText(text string, attrs Attributes) {
	if text == "" {
		return
	}
	if text != Newline && len(b.ops) > 0 {
		last := &b.ops[len(b.ops)-1]
		if last.IsText() && !last.IsNewline() && last.Attributes.Equal(attrs) {
			last.Content = TextContent{Text: last.Text() + text}
			return
		}
	}
	b.ops = append(b.ops, InsertText(text, attrs))
}

// Len returns the number of operations accumulated so far.
func (b *Builder) Len() int {
	return len(b.ops)
}

// Build returns the delta. The builder must not be used afterwards.
func (b *Builder) Build() Delta {
	d := Delta{ops: b.ops}
	b.ops = nil
	return d
}
