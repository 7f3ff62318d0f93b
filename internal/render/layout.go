package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// cell is one grapheme cluster placed on a row. Wide clusters occupy
// width columns; the columns after the first are left blank.
type cell struct {
	mainc rune
	combc []rune
	width int
	style tcell.Style
}

// row is one screen row of cells.
type row []cell

func (r row) width() int {
	w := 0
	for _, c := range r {
		w += c.width
	}
	return w
}

// String returns the row's text.
func (r row) String() string {
	var buf []rune
	for _, c := range r {
		buf = append(buf, c.mainc)
		buf = append(buf, c.combc...)
	}
	return string(buf)
}

// lineWriter fills rows of a fixed width, wrapping at the right edge and
// repeating a prefix at the start of every row.
type lineWriter struct {
	width  int
	prefix []cell
	rows   []row
	cur    row
	open   bool
}

func newLineWriter(width int, prefix string, style tcell.Style) *lineWriter {
	w := &lineWriter{width: max(width, 1)}
	w.prefix = clusters(prefix, style)
	if row(w.prefix).width() >= w.width {
		w.prefix = nil
	}
	return w
}

func (w *lineWriter) begin() {
	w.cur = append(row(nil), w.prefix...)
	w.open = true
}

// write appends text, wrapping as needed.
func (w *lineWriter) write(text string, style tcell.Style) {
	for _, c := range clusters(text, style) {
		if !w.open {
			w.begin()
		}
		if c.width > 0 && w.cur.width()+c.width > w.width && len(w.cur) > len(w.prefix) {
			w.newline()
			w.begin()
		}
		w.cur = append(w.cur, c)
	}
}

// newline closes the current row. An empty line still produces a row.
func (w *lineWriter) newline() {
	if !w.open {
		w.begin()
	}
	w.rows = append(w.rows, w.cur)
	w.cur = nil
	w.open = false
}

// finish closes the last row and returns the rows written. A line with no
// content still yields its prefix row.
func (w *lineWriter) finish() []row {
	w.newline()
	return w.rows
}

// clusters splits text into grapheme clusters. Control characters are
// dropped.
func clusters(text string, style tcell.Style) []cell {
	var (
		cells []cell
		state = -1
		c     string
		width int
	)
	for text != "" {
		c, text, width, state = uniseg.FirstGraphemeClusterInString(text, state)
		runes := []rune(c)
		if width == 0 && runes[0] < ' ' {
			continue
		}
		cells = append(cells, cell{
			mainc: runes[0],
			combc: runes[1:],
			width: width,
			style: style,
		})
	}
	return cells
}
