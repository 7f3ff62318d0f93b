package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/richsheet/internal/transform"
)

// tcellStyle converts a presentational style to a terminal style.
func tcellStyle(s transform.Style) tcell.Style {
	style := tcell.StyleDefault

	if !s.Foreground.IsDefault() {
		style = style.Foreground(tcellColor(s.Foreground))
	}
	if !s.Background.IsDefault() {
		style = style.Background(tcellColor(s.Background))
	}

	if s.Bold {
		style = style.Bold(true)
	}
	if s.Dim {
		style = style.Dim(true)
	}
	if s.Italic {
		style = style.Italic(true)
	}
	if s.Underline {
		style = style.Underline(true)
	}
	if s.StrikeThrough {
		style = style.StrikeThrough(true)
	}
	return style
}

func tcellColor(c transform.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
