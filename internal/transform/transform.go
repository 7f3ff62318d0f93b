package transform

import (
	"fmt"

	"github.com/dshills/richsheet/internal/delta"
)

// Transform maps an attribute value to a style. A zero Style means the
// transform does not apply to the value.
type Transform interface {
	Apply(v delta.Value) (Style, error)
}

// Func adapts a function to a Transform.
type Func func(v delta.Value) (Style, error)

// Apply calls f(v).
func (f Func) Apply(v delta.Value) (Style, error) {
	return f(v)
}

// Spec binds an attribute name to a transform.
type Spec struct {
	AttributeName string
	Transform     Transform
}

// Match applies Style when the attribute value equals Value.
type Match struct {
	Value delta.Value
	Style Style
}

// Apply implements Transform.
func (m Match) Apply(v delta.Value) (Style, error) {
	if !v.Equal(m.Value) {
		return Style{}, nil
	}
	return m.Style, nil
}

// ColorTarget selects the color a ColorValue sets.
type ColorTarget int

// Color targets.
const (
	Foreground ColorTarget = iota
	Background
)

// ParseColorTarget parses "foreground"/"fg" or "background"/"bg".
func ParseColorTarget(s string) (ColorTarget, error) {
	switch s {
	case "foreground", "fg":
		return Foreground, nil
	case "background", "bg":
		return Background, nil
	default:
		return Foreground, fmt.Errorf("unknown color target %q", s)
	}
}

// ColorValue interprets a string attribute value as a hex color.
// Non-string values do not apply.
type ColorValue struct {
	Target ColorTarget
}

// Apply implements Transform.
func (c ColorValue) Apply(v delta.Value) (Style, error) {
	str, ok := v.Str()
	if !ok {
		return Style{}, nil
	}
	color, err := ParseColor(str)
	if err != nil {
		return Style{}, err
	}
	if c.Target == Background {
		return Style{Background: color}, nil
	}
	return Style{Foreground: color}, nil
}

// Attribute names used by the default specs.
const (
	AttrBold           = "bold"
	AttrItalic         = "italic"
	AttrTextDecoration = "textDecoration"
	AttrColor          = "color"
	AttrBackground     = "backgroundColor"
)

// Text decoration values.
const (
	DecorationUnderline     = "underline"
	DecorationStrikethrough = "strikethrough"
)

// DefaultSpecs returns the built-in transform specs: bold, italic,
// underline, strikethrough, and foreground/background colors.
func DefaultSpecs() []Spec {
	return []Spec{
		{AttrBold, Match{Value: delta.Bool(true), Style: Style{Bold: true}}},
		{AttrItalic, Match{Value: delta.Bool(true), Style: Style{Italic: true}}},
		{AttrTextDecoration, Match{Value: delta.String(DecorationUnderline), Style: Style{Underline: true}}},
		{AttrTextDecoration, Match{Value: delta.String(DecorationStrikethrough), Style: Style{StrikeThrough: true}}},
		{AttrColor, ColorValue{Target: Foreground}},
		{AttrBackground, ColorValue{Target: Background}},
	}
}
