package delta

import (
	"strings"
	"unicode/utf8"
)

// Newline is the content of a line-break operation.
const Newline = "\n"

// ObjectReplacement is the placeholder rune for an image in the character stream.
const ObjectReplacement = '\uFFFC'

// Image describes an embedded image: an opaque source descriptor and
// intrinsic size hints.
type Image struct {
	Source string
	Width  int
	Height int
}

// Content is the payload of an insert operation: TextContent or ImageContent.
type Content interface {
	// Len returns the number of characters the content occupies.
	Len() int
	isContent()
}

// TextContent wraps a non-empty string.
type TextContent struct {
	Text string
}

// Len returns the rune count of the text.
func (c TextContent) Len() int { return utf8.RuneCountInString(c.Text) }

func (TextContent) isContent() {}

// ImageContent wraps an image description. It always occupies one character.
type ImageContent struct {
	Image Image
}

// Len returns 1.
func (ImageContent) Len() int { return 1 }

func (ImageContent) isContent() {}

// Op is a single insert operation.
type Op struct {
	Content    Content
	Attributes Attributes
}

// InsertText returns a text operation.
func InsertText(text string, attrs Attributes) Op {
	return Op{Content: TextContent{Text: text}, Attributes: attrs}
}

// InsertNewline returns a line-break operation carrying the given line attributes.
func InsertNewline(attrs Attributes) Op {
	return Op{Content: TextContent{Text: Newline}, Attributes: attrs}
}

// InsertImage returns an image operation.
func InsertImage(img Image, attrs Attributes) Op {
	return Op{Content: ImageContent{Image: img}, Attributes: attrs}
}

// Len returns the number of characters covered by the operation.
func (o Op) Len() int {
	if o.Content == nil {
		return 0
	}
	return o.Content.Len()
}

// IsText reports whether the operation carries text (newlines included).
func (o Op) IsText() bool {
	_, ok := o.Content.(TextContent)
	return ok
}

// IsImage reports whether the operation carries an image.
func (o Op) IsImage() bool {
	_, ok := o.Content.(ImageContent)
	return ok
}

// IsNewline reports whether the operation is a line break.
func (o Op) IsNewline() bool {
	c, ok := o.Content.(TextContent)
	return ok && c.Text == Newline
}

// Text returns the text of a text operation, or "" for images.
func (o Op) Text() string {
	if c, ok := o.Content.(TextContent); ok {
		return c.Text
	}
	return ""
}

// Image returns the image of an image operation.
func (o Op) Image() (Image, bool) {
	c, ok := o.Content.(ImageContent)
	return c.Image, ok
}

// LineType returns the line type carried by a newline, or LineTypeNormal.
func (o Op) LineType() LineType {
	return o.Attributes.LineType()
}

// Equal reports whether both operations have equal content and attributes.
func (o Op) Equal(other Op) bool {
	if !o.Attributes.Equal(other.Attributes) {
		return false
	}
	switch c := o.Content.(type) {
	case TextContent:
		d, ok := other.Content.(TextContent)
		return ok && c == d
	case ImageContent:
		d, ok := other.Content.(ImageContent)
		return ok && c == d
	default:
		return other.Content == nil
	}
}

// Split divides a text operation at rune offset n. Both halves keep the
// attributes. Images and out-of-range offsets return the operation unchanged
// in the half where it belongs.
func (o Op) Split(n int) (Op, Op) {
	if n <= 0 {
		return Op{}, o
	}
	c, ok := o.Content.(TextContent)
	if !ok || n >= o.Len() {
		return o, Op{}
	}
	i := runeIndex(c.Text, n)
	return InsertText(c.Text[:i], o.Attributes), InsertText(c.Text[i:], o.Attributes)
}

// WithAttributes returns a copy of the operation with attrs replacing its attributes.
func (o Op) WithAttributes(attrs Attributes) Op {
	o.Attributes = attrs
	return o
}

// IsZero reports whether the operation carries no content.
func (o Op) IsZero() bool {
	return o.Content == nil
}

// runeIndex returns the byte index of the n-th rune of s.
func runeIndex(s string, n int) int {
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}

// splitLines breaks text into runs and standalone newlines.
func splitLines(text string) []string {
	if !strings.Contains(text, Newline) || text == Newline {
		return []string{text}
	}
	var parts []string
	for {
		i := strings.Index(text, Newline)
		if i < 0 {
			if text != "" {
				parts = append(parts, text)
			}
			return parts
		}
		if i > 0 {
			parts = append(parts, text[:i])
		}
		parts = append(parts, Newline)
		text = text[i+1:]
	}
}
