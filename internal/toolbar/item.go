package toolbar

import (
	"github.com/dshills/richsheet/internal/delta"
	"github.com/dshills/richsheet/internal/transform"
)

// Item is a toolbar button. An item either toggles an attribute or sets a
// line type.
type Item struct {
	Key       rune
	Label     string
	Attribute string
	Value     delta.Value
	LineType  delta.LineType
}

// IsLineType reports whether the item sets a line type.
func (i Item) IsLineType() bool {
	return i.Attribute == "" && i.LineType != ""
}

// DefaultItems returns the standard buttons.
func DefaultItems() []Item {
	return []Item{
		{Key: 'b', Label: "Bold", Attribute: transform.AttrBold, Value: delta.Bool(true)},
		{Key: 'i', Label: "Italic", Attribute: transform.AttrItalic, Value: delta.Bool(true)},
		{Key: 'u', Label: "Underline", Attribute: transform.AttrTextDecoration, Value: delta.String(transform.DecorationUnderline)},
		{Key: 's', Label: "Strike", Attribute: transform.AttrTextDecoration, Value: delta.String(transform.DecorationStrikethrough)},
		{Key: 'q', Label: "Quote", LineType: delta.LineTypeQuote},
		{Key: 'l', Label: "List", LineType: delta.LineTypeListItem},
	}
}
