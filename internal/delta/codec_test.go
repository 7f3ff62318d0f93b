package delta

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMarshalUnmarshal(t *testing.T) {
	var b Builder
	b.Insert("Hello", Attributes{"bold": Bool(true), "size": Number(14)}).
		InsertNewline(Attributes{AttrLineType: String("quote")}).
		InsertImage(Image{Source: "cat.png", Width: 640, Height: 480}, nil).
		InsertNewline(nil)
	d := b.Build()

	data, err := Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if diff := cmp.Diff(d.Ops(), got.Ops()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshal(t *testing.T) {
	input := `{"ops":[
		{"insert":"Hi\nthere","attributes":{"bold":true,"color":null}},
		{"insert":{"image":{"source":"a.png","width":3,"height":4}}}
	]}`

	got, err := Unmarshal([]byte(input))
	if err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}

	attrs := Attributes{"bold": Bool(true)}
	expected := []Op{
		InsertText("Hi", attrs),
		InsertNewline(attrs),
		InsertText("there", attrs),
		InsertImage(Image{Source: "a.png", Width: 3, Height: 4}, nil),
	}
	if diff := cmp.Diff(expected, got.Ops()); diff != "" {
		t.Errorf("Unmarshal() mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalDropsNullAttributes(t *testing.T) {
	input := `{"ops":[
		{"insert":"ab","attributes":{"bold":null}},
		{"insert":"cd\n"}
	]}`

	got, err := Unmarshal([]byte(input))
	if err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}

	expected := []Op{InsertText("abcd", nil), InsertNewline(nil)}
	if diff := cmp.Diff(expected, got.Ops()); diff != "" {
		t.Errorf("Unmarshal() mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{"invalid json", `{"ops":[`, ErrInvalidJSON},
		{"missing ops", `{"foo":1}`, ErrMissingOps},
		{"empty text", `{"ops":[{"insert":""}]}`, ErrEmptyText},
		{"unknown embed", `{"ops":[{"insert":{"video":{}}}]}`, ErrUnsupportedInsert},
		{"numeric insert", `{"ops":[{"insert":5}]}`, ErrUnsupportedInsert},
		{"nested attribute", `{"ops":[{"insert":"a","attributes":{"x":{"y":1}}}]}`, ErrUnsupportedValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.input))
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestUnmarshalReportsIndex(t *testing.T) {
	_, err := Unmarshal([]byte(`{"ops":[{"insert":"ok"},{"insert":""}]}`))

	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if decErr.Index != 1 {
		t.Errorf("expected index 1, got %d", decErr.Index)
	}
}

func TestMarshalEmpty(t *testing.T) {
	data, err := Marshal(Delta{})
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if string(data) != `{"ops":[]}` {
		t.Errorf("unexpected output %s", data)
	}
}
