package document

import "github.com/dshills/richsheet/internal/delta"

// Document owns exactly one Delta. The zero value is an empty document.
type Document struct {
	chunks []*chunk
	length int
}

// New creates a document holding d.
func New(d delta.Delta) Document {
	chunks := buildChunks(d.Ops())
	return Document{chunks: chunks, length: d.Length()}
}

// Empty returns an empty document.
func Empty() Document {
	return Document{}
}

// Delta returns a snapshot of the document's delta.
func (d Document) Delta() delta.Delta {
	var b delta.Builder
	for _, c := range d.chunks {
		for _, op := range c.ops {
			b.Push(op)
		}
	}
	return b.Build()
}

// Length returns the number of characters in the document.
func (d Document) Length() int {
	return d.length
}

// IsEmpty returns true if the document has no content.
func (d Document) IsEmpty() bool {
	return d.length == 0
}

// Text returns the document's character stream.
func (d Document) Text() string {
	return d.Delta().Text()
}

// Equal reports whether two documents hold equal deltas.
func (d Document) Equal(other Document) bool {
	if d.length != other.length {
		return false
	}
	return d.Delta().Equal(other.Delta())
}

// each calls fn for every operation with its starting offset until fn
// returns false.
func (d Document) each(fn func(op delta.Op, start int) bool) {
	pos := 0
	for _, c := range d.chunks {
		for _, op := range c.ops {
			if !fn(op, pos) {
				return
			}
			pos += op.Len()
		}
	}
}

// span returns the chunk indexes covering [start, end) and the offset at
// which the first of them begins. For an empty document last is -1.
func (d Document) span(start, end int) (first, last, base int) {
	if len(d.chunks) == 0 {
		return 0, -1, 0
	}
	first = -1
	pos := 0
	for i, c := range d.chunks {
		isLast := i == len(d.chunks)-1
		if first < 0 && (start < pos+c.length || isLast) {
			first, base = i, pos
		}
		if first >= 0 && (end <= pos+c.length || isLast) {
			return first, i, base
		}
		pos += c.length
	}
	return first, len(d.chunks) - 1, base
}

// edit replaces the operations covering [start, end) with the result of fn.
// Only the chunks overlapping the range are rebuilt.
func (d Document) edit(start, end int, fn func(region []delta.Op) []delta.Op) Document {
	first, last, base := d.span(start, end)

	var region []delta.Op
	for i := first; i <= last; i++ {
		region = append(region, d.chunks[i].ops...)
	}
	local := delta.New(region...)
	regionLen := local.Length()

	var b delta.Builder
	pushAll(&b, local.Slice(0, start-base))
	for _, op := range fn(local.Slice(start-base, end-base).Ops()) {
		b.Push(op)
	}
	pushAll(&b, local.Slice(end-base, regionLen))
	rebuilt := buildChunks(b.Build().Ops())

	chunks := make([]*chunk, 0, len(d.chunks)-(last-first+1)+len(rebuilt))
	chunks = append(chunks, d.chunks[:first]...)
	chunks = append(chunks, rebuilt...)
	if last+1 < len(d.chunks) {
		chunks = append(chunks, d.chunks[last+1:]...)
	}

	length := 0
	for _, c := range chunks {
		length += c.length
	}
	return Document{chunks: chunks, length: length}
}

func pushAll(b *delta.Builder, d delta.Delta) {
	for i := 0; i < d.Len(); i++ {
		b.Push(d.At(i))
	}
}

func (d Document) checkRange(op string, start, end int) error {
	if start > end {
		return &EditError{Op: op, Start: start, End: end, Err: ErrRangeInvalid}
	}
	if start < 0 || end > d.length {
		return &EditError{Op: op, Start: start, End: end, Err: ErrOffsetOutOfRange}
	}
	return nil
}
