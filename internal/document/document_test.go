package document

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/richsheet/internal/delta"
)

var (
	bold   = delta.Attributes{"bold": delta.Bool(true)}
	italic = delta.Attributes{"italic": delta.Bool(true)}
	quote  = delta.Attributes{delta.AttrLineType: delta.String("quote")}
)

func sample() Document {
	var b delta.Builder
	b.Insert("Hello", bold).Insert(" world", nil).InsertNewline(quote).
		InsertImage(delta.Image{Source: "cat.png"}, nil).InsertNewline(nil).
		Insert("tail", italic)
	return New(b.Build())
}

func TestNewDocument(t *testing.T) {
	doc := sample()

	if doc.Length() != 18 {
		t.Errorf("expected length 18, got %d", doc.Length())
	}
	if doc.Text() != "Hello world\n\uFFFC\ntail" {
		t.Errorf("unexpected text %q", doc.Text())
	}
	if Empty().Length() != 0 || !Empty().IsEmpty() {
		t.Error("empty document should have no content")
	}
}

func TestInsert(t *testing.T) {
	doc := sample()

	next, err := doc.Insert(5, delta.TextContent{Text: ","}, bold)
	if err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	if next.Text() != "Hello, world\n\uFFFC\ntail" {
		t.Errorf("unexpected text %q", next.Text())
	}
	if doc.Text() != "Hello world\n\uFFFC\ntail" {
		t.Errorf("original modified: %q", doc.Text())
	}
	if op := next.Delta().At(0); op.Text() != "Hello," {
		t.Errorf("expected coalesced bold run, got %q", op.Text())
	}
}

func TestInsertAtEndAndIntoEmpty(t *testing.T) {
	doc, err := Empty().Insert(0, delta.TextContent{Text: "a\nb"}, nil)
	if err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	if doc.Text() != "a\nb" {
		t.Errorf("unexpected text %q", doc.Text())
	}

	doc, err = doc.Insert(doc.Length(), delta.ImageContent{Image: delta.Image{Source: "x"}}, nil)
	if err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	if doc.Length() != 4 {
		t.Errorf("expected length 4, got %d", doc.Length())
	}
}

func TestInsertErrors(t *testing.T) {
	doc := sample()

	_, err := doc.Insert(-1, delta.TextContent{Text: "x"}, nil)
	if !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}

	_, err = doc.Insert(doc.Length()+1, delta.TextContent{Text: "x"}, nil)
	if !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}

	_, err = doc.Insert(0, delta.TextContent{Text: ""}, nil)
	if !errors.Is(err, ErrNoContent) {
		t.Errorf("expected ErrNoContent, got %v", err)
	}

	var editErr *EditError
	if !errors.As(err, &editErr) || editErr.Op != "insert" {
		t.Errorf("expected insert EditError, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	doc := sample()

	next, err := doc.Delete(3, 14)
	if err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if next.Text() != "Heltail" {
		t.Errorf("unexpected text %q", next.Text())
	}

	if _, err := doc.Delete(5, 2); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}

	same, err := doc.Delete(2, 2)
	if err != nil || !same.Equal(doc) {
		t.Error("empty delete should be a no-op")
	}
}

func TestReplace(t *testing.T) {
	doc := sample()

	next, err := doc.Replace(NewSelection(11, 0), delta.TextContent{Text: "Bye"}, nil)
	if err != nil {
		t.Fatalf("Replace() failed: %v", err)
	}
	if next.Text() != "Bye\n\uFFFC\ntail" {
		t.Errorf("unexpected text %q", next.Text())
	}

	next, err = doc.Replace(Caret(0), delta.ImageContent{Image: delta.Image{Source: "a"}}, nil)
	if err != nil {
		t.Fatalf("Replace() failed: %v", err)
	}
	if next.Length() != doc.Length()+1 {
		t.Errorf("expected length %d, got %d", doc.Length()+1, next.Length())
	}
}

func TestFormat(t *testing.T) {
	doc := sample()

	next, err := doc.Format(3, 8, italic)
	if err != nil {
		t.Fatalf("Format() failed: %v", err)
	}

	both := delta.Merge(bold, italic)
	expected := []delta.Op{
		delta.InsertText("Hel", bold),
		delta.InsertText("lo", both),
		delta.InsertText(" wo", italic),
		delta.InsertText("rld", nil),
		delta.InsertNewline(quote),
		delta.InsertImage(delta.Image{Source: "cat.png"}, nil),
		delta.InsertNewline(nil),
		delta.InsertText("tail", italic),
	}
	if diff := cmp.Diff(expected, next.Delta().Ops()); diff != "" {
		t.Errorf("Format() mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatClearAndSkipNewlines(t *testing.T) {
	doc := sample()

	next, err := doc.Format(0, doc.Length(), delta.Attributes{
		"bold":             delta.Clear(),
		delta.AttrLineType: delta.String("list-item"),
	})
	if err != nil {
		t.Fatalf("Format() failed: %v", err)
	}
	d := next.Delta()
	if d.At(0).Text() != "Hello world" || len(d.At(0).Attributes) != 0 {
		t.Errorf("bold not cleared: %v", d.At(0))
	}
	if d.At(1).LineType() != delta.LineTypeQuote {
		t.Errorf("newline line type changed to %q", d.At(1).LineType())
	}
}

func TestFormatLines(t *testing.T) {
	doc := sample()

	next, err := doc.FormatLines(2, 14, delta.LineTypeListItem)
	if err != nil {
		t.Fatalf("FormatLines() failed: %v", err)
	}
	lines := next.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i := 0; i < 2; i++ {
		if lines[i].LineType != delta.LineTypeListItem {
			t.Errorf("line %d type = %q, expected list-item", i, lines[i].LineType)
		}
	}
	if lines[2].LineType != delta.LineTypeNormal {
		t.Errorf("line 2 type = %q, expected normal", lines[2].LineType)
	}
}

func TestFormatLinesNormalClears(t *testing.T) {
	doc := sample()

	next, err := doc.FormatLines(0, 0, delta.LineTypeNormal)
	if err != nil {
		t.Fatalf("FormatLines() failed: %v", err)
	}
	if _, ok := next.Delta().At(2).Attributes[delta.AttrLineType]; ok {
		t.Error("line type attribute should be removed")
	}
	if next.Length() != doc.Length() {
		t.Error("normal line type must not add content")
	}
}

func TestFormatLinesTerminatesTail(t *testing.T) {
	doc := sample()

	next, err := doc.FormatLines(15, 15, delta.LineTypeQuote)
	if err != nil {
		t.Fatalf("FormatLines() failed: %v", err)
	}
	if next.Length() != doc.Length()+1 {
		t.Fatalf("expected closing newline, length %d", next.Length())
	}
	last := next.Lines()[2]
	if !last.Terminated || last.LineType != delta.LineTypeQuote {
		t.Errorf("unexpected last line %+v", last)
	}
}

func TestLines(t *testing.T) {
	doc := sample()

	expected := []LineInfo{
		{Index: 0, Start: 0, End: 12, LineType: delta.LineTypeQuote, Terminated: true},
		{Index: 1, Start: 12, End: 14, LineType: delta.LineTypeNormal, Terminated: true},
		{Index: 2, Start: 14, End: 18, LineType: delta.LineTypeNormal},
	}
	if diff := cmp.Diff(expected, doc.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}

	if got := doc.LineAt(13).Index; got != 1 {
		t.Errorf("LineAt(13) = %d, expected 1", got)
	}
	if got := doc.LineAt(doc.Length()).Index; got != 2 {
		t.Errorf("LineAt(end) = %d, expected 2", got)
	}
	if got := Empty().LineCount(); got != 1 {
		t.Errorf("empty LineCount() = %d, expected 1", got)
	}
}

func TestAttributesAt(t *testing.T) {
	doc := sample()

	tests := []struct {
		offset   int
		expected delta.Attributes
	}{
		{0, bold},
		{3, bold},
		{5, bold},
		{6, nil},
		{12, nil},
		{14, italic},
		{18, italic},
	}
	for _, tt := range tests {
		got := doc.AttributesAt(tt.offset)
		if !got.Equal(tt.expected) {
			t.Errorf("AttributesAt(%d) = %v, expected %v", tt.offset, got, tt.expected)
		}
	}
}

func TestAttributesInRange(t *testing.T) {
	doc, _ := sample().Format(0, 11, italic)

	tests := []struct {
		sel      Selection
		expected delta.Attributes
	}{
		{NewSelection(0, 5), delta.Merge(bold, italic)},
		{NewSelection(0, 11), italic},
		{NewSelection(0, 12), italic},
		{NewSelection(3, 16), nil},
		{NewSelection(11, 12), nil},
		{Caret(2), delta.Merge(bold, italic)},
	}
	for _, tt := range tests {
		got := doc.AttributesInRange(tt.sel)
		if !got.Equal(tt.expected) {
			t.Errorf("AttributesInRange(%v) = %v, expected %v", tt.sel, got, tt.expected)
		}
	}
}

func TestLineTypeInRange(t *testing.T) {
	doc := sample()

	tests := []struct {
		sel      Selection
		expected delta.LineType
	}{
		{Caret(3), delta.LineTypeQuote},
		{NewSelection(0, 11), delta.LineTypeQuote},
		{NewSelection(0, 13), delta.LineTypeNormal},
		{Caret(12), delta.LineTypeNormal},
	}
	for _, tt := range tests {
		if got := doc.LineTypeInRange(tt.sel); got != tt.expected {
			t.Errorf("LineTypeInRange(%v) = %q, expected %q", tt.sel, got, tt.expected)
		}
	}
}

func TestEditSharesUntouchedChunks(t *testing.T) {
	var b delta.Builder
	for i := 0; i < maxChunkOps*4; i++ {
		b.Insert(fmt.Sprintf("line %d", i), nil).InsertNewline(nil)
	}
	doc := New(b.Build())
	if len(doc.chunks) < 4 {
		t.Fatalf("expected several chunks, got %d", len(doc.chunks))
	}

	next, err := doc.Insert(doc.Length(), delta.TextContent{Text: "end"}, nil)
	if err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	for i := 0; i < len(doc.chunks)-1; i++ {
		if next.chunks[i] != doc.chunks[i] {
			t.Errorf("chunk %d was copied", i)
		}
	}
	if next.Length() != doc.Length()+3 {
		t.Errorf("expected length %d, got %d", doc.Length()+3, next.Length())
	}
}

func TestSelection(t *testing.T) {
	sel := NewSelection(5, 2)
	if sel.Start != 2 || sel.End != 5 {
		t.Errorf("NewSelection did not order bounds: %+v", sel)
	}
	if sel.Collapsed() || sel.Len() != 3 {
		t.Error("unexpected selection shape")
	}
	if !sel.Contains(2) || sel.Contains(5) {
		t.Error("Contains() mismatch")
	}
	if !Caret(4).Intersects(0, 4) || Caret(5).Intersects(0, 4) {
		t.Error("caret Intersects() mismatch")
	}
	if !sel.Intersects(4, 9) || sel.Intersects(5, 9) {
		t.Error("range Intersects() mismatch")
	}
}
