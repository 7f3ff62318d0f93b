package transform

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Color is an optional RGB color. The zero Color means "inherit".
type Color struct {
	c   colorful.Color
	set bool
}

// ColorDefault is the inherited color.
var ColorDefault = Color{}

// RGB wraps a colorful color.
func RGB(c colorful.Color) Color {
	return Color{c: c.Clamped(), set: true}
}

// ParseColor parses "#RGB" or "#RRGGBB", with or without the leading '#'.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return RGB(c), nil
}

// IsDefault reports whether c inherits.
func (c Color) IsDefault() bool {
	return !c.set
}

// Colorful returns the underlying color. It is black for the default color.
func (c Color) Colorful() colorful.Color {
	return c.c
}

// RGB255 returns 8-bit components.
func (c Color) RGB255() (r, g, b uint8) {
	return c.c.RGB255()
}

// Blend mixes c toward other in CIE L*a*b* space; t=0 is c, t=1 is other.
// Blending with a default color returns the non-default side.
func (c Color) Blend(other Color, t float64) Color {
	switch {
	case !c.set:
		return other
	case !other.set:
		return c
	}
	return RGB(c.c.BlendLab(other.c, t))
}

// Equal reports whether two colors are the same.
func (c Color) Equal(other Color) bool {
	if c.set != other.set {
		return false
	}
	return !c.set || c.c.Hex() == other.c.Hex()
}

func (c Color) String() string {
	if !c.set {
		return "default"
	}
	return c.c.Hex()
}

// Case is a presentational text case.
type Case int

// Text cases.
const (
	CaseNone Case = iota
	CaseUpper
	CaseLower
	CaseTitle
)

// ParseCase parses "upper", "lower", "title" or "" / "none".
func ParseCase(s string) (Case, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CaseNone, nil
	case "upper":
		return CaseUpper, nil
	case "lower":
		return CaseLower, nil
	case "title":
		return CaseTitle, nil
	default:
		return CaseNone, fmt.Errorf("%w: %q", ErrInvalidCase, s)
	}
}

// Apply converts s to the case. CaseNone returns s unchanged.
func (c Case) Apply(s string) string {
	switch c {
	case CaseUpper:
		return cases.Upper(language.Und).String(s)
	case CaseLower:
		return cases.Lower(language.Und).String(s)
	case CaseTitle:
		return cases.Title(language.Und).String(s)
	default:
		return s
	}
}

func (c Case) String() string {
	switch c {
	case CaseUpper:
		return "upper"
	case CaseLower:
		return "lower"
	case CaseTitle:
		return "title"
	default:
		return "none"
	}
}

// Style is the presentation of a run of text.
type Style struct {
	Bold          bool
	Italic        bool
	Underline     bool
	StrikeThrough bool
	Dim           bool
	Foreground    Color
	Background    Color
	Case          Case
}

// IsZero reports whether s changes nothing.
func (s Style) IsZero() bool {
	return s.Equal(Style{})
}

// Merge layers over on top of s. Flags accumulate; colors and case from
// over win when set.
func (s Style) Merge(over Style) Style {
	s.Bold = s.Bold || over.Bold
	s.Italic = s.Italic || over.Italic
	s.Underline = s.Underline || over.Underline
	s.StrikeThrough = s.StrikeThrough || over.StrikeThrough
	s.Dim = s.Dim || over.Dim
	if !over.Foreground.IsDefault() {
		s.Foreground = over.Foreground
	}
	if !over.Background.IsDefault() {
		s.Background = over.Background
	}
	if over.Case != CaseNone {
		s.Case = over.Case
	}
	return s
}

// Equal reports whether two styles are identical.
func (s Style) Equal(other Style) bool {
	return s.Bold == other.Bold &&
		s.Italic == other.Italic &&
		s.Underline == other.Underline &&
		s.StrikeThrough == other.StrikeThrough &&
		s.Dim == other.Dim &&
		s.Foreground.Equal(other.Foreground) &&
		s.Background.Equal(other.Background) &&
		s.Case == other.Case
}
