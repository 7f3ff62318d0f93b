package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/multierr"

	"github.com/dshills/richsheet/internal/block"
	"github.com/dshills/richsheet/internal/bridge"
	"github.com/dshills/richsheet/internal/delta"
	"github.com/dshills/richsheet/internal/document"
	"github.com/dshills/richsheet/internal/logging"
)

// Defaults for Renderer options.
const (
	DefaultSpacing        = 1
	DefaultMaxMediaWidth  = 40
	DefaultMaxMediaHeight = 8
)

// Line type prefixes.
const (
	QuotePrefix    = "│ "
	ListItemPrefix = "• "
)

// Smallest frame that still has room for a label.
const (
	minMediaWidth  = 3
	minMediaHeight = 3
)

// Stats describes one rendering pass.
type Stats struct {
	Blocks int
	Rows   int
}

// Renderer paints documents onto a tcell screen.
type Renderer struct {
	bridge         *bridge.Bridge
	screen         tcell.Screen
	spacing        int
	maxMediaWidth  int
	maxMediaHeight int
	scroll         int
	logger         *logging.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSpacing sets the number of blank rows between blocks.
func WithSpacing(rows int) Option {
	return func(r *Renderer) {
		r.spacing = max(rows, 0)
	}
}

// WithMaxMediaSize bounds the frame drawn for an image block.
// Non-positive values keep the defaults.
func WithMaxMediaSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.maxMediaWidth = max(width, minMediaWidth)
		}
		if height > 0 {
			r.maxMediaHeight = max(height, minMediaHeight)
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *logging.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a renderer drawing on screen with b's generation service.
// It panics if b or screen is nil.
func New(b *bridge.Bridge, screen tcell.Screen, opts ...Option) *Renderer {
	if b == nil {
		panic("render: nil bridge")
	}
	if screen == nil {
		panic("render: nil screen")
	}
	r := &Renderer{
		bridge:         b,
		screen:         screen,
		spacing:        DefaultSpacing,
		maxMediaWidth:  DefaultMaxMediaWidth,
		maxMediaHeight: DefaultMaxMediaHeight,
		logger:         logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithComponent("render")
	return r
}

// Bridge returns the renderer's bridge.
func (r *Renderer) Bridge() *bridge.Bridge {
	return r.bridge
}

// SetBridge confirms b as the renderer's bridge. A renderer cannot move to
// another bridge: SetBridge panics if b is nil or differs from the bridge
// given to New.
func (r *Renderer) SetBridge(b *bridge.Bridge) {
	if b == nil {
		panic("render: nil bridge")
	}
	if b != r.bridge {
		panic(fmt.Sprintf("render: bridge cannot change from %s to %s", r.bridge.ID(), b.ID()))
	}
}

// Scroll sets the first document row shown at the top of the screen.
func (r *Renderer) Scroll(top int) {
	r.scroll = max(top, 0)
}

// Render clears the screen and paints doc. Rows above the scroll offset and
// below the screen are skipped. Styling and image errors do not stop the
// pass; they are combined into the returned error. The caller shows the
// screen.
func (r *Renderer) Render(doc document.Document) (Stats, error) {
	width, height := r.screen.Size()
	rows, blocks, err := r.layout(doc, width)

	r.screen.Clear()
	for y := 0; y < height && r.scroll+y < len(rows); y++ {
		x := 0
		for _, c := range rows[r.scroll+y] {
			if x >= width {
				break
			}
			r.screen.SetContent(x, y, c.mainc, c.combc, c.style)
			x += max(c.width, 1)
		}
	}

	if err != nil {
		r.logger.Warn("render: %v", err)
	}
	r.logger.Debug("rendered %d blocks in %d rows", blocks, len(rows))
	return Stats{Blocks: blocks, Rows: len(rows)}, err
}

// Rows lays doc out at width and returns the text of each row.
func (r *Renderer) Rows(doc document.Document, width int) ([]string, error) {
	rows, _, err := r.layout(doc, width)
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.String()
	}
	return out, err
}

func (r *Renderer) layout(doc document.Document, width int) ([]row, int, error) {
	var (
		rows []row
		errs error
	)
	blocks := block.Assemble(doc)
	for _, b := range blocks {
		var (
			out []row
			err error
		)
		switch b := b.(type) {
		case *block.TextBlock:
			out, err = r.textRows(b, width)
		case *block.ImageBlock:
			out, err = r.imageRows(b, width)
		}
		errs = multierr.Append(errs, err)
		rows = append(rows, out...)
		if !b.IsLast() {
			for i := 0; i < r.spacing; i++ {
				rows = append(rows, nil)
			}
		}
	}
	return rows, len(blocks), errs
}

func (r *Renderer) textRows(b *block.TextBlock, width int) ([]row, error) {
	var errs error
	w := newLineWriter(width, prefix(b.LineType()), tcell.StyleDefault.Dim(true))
	for _, op := range b.Runs() {
		style, err := r.bridge.GenService().TextTransforms.StyleFor(op.Attributes)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("block %d: %w", b.Index(), err))
		}
		switch {
		case op.IsImage():
			img, _ := op.Image()
			w.write(inlineImageLabel(img), tcellStyle(style).Dim(true))
		default:
			w.write(style.Case.Apply(op.Text()), tcellStyle(style))
		}
	}
	return w.finish(), errs
}

func (r *Renderer) imageRows(b *block.ImageBlock, width int) ([]row, error) {
	img := b.Image()
	label, err := r.locate(img)
	if err != nil {
		err = fmt.Errorf("block %d: %w", b.Index(), err)
	}

	w := img.Width
	if w <= 0 {
		w = r.maxMediaWidth
	}
	h := img.Height
	if h <= 0 {
		h = r.maxMediaHeight
	}
	w = max(min(w, r.maxMediaWidth, width), minMediaWidth)
	h = max(min(h, r.maxMediaHeight), minMediaHeight)
	return frame(w, h, label, tcell.StyleDefault.Dim(true)), err
}

func (r *Renderer) locate(img delta.Image) (string, error) {
	src, err := r.bridge.GenService().ImageLocator.Locate(img)
	if err != nil {
		return "image unavailable", err
	}
	return src.URI, nil
}

// frame draws a w×h box with label centered on the middle row and
// truncated to fit.
func frame(w, h int, label string, style tcell.Style) []row {
	rows := make([]row, h)
	edge := func(left, fill, right rune) row {
		rw := make(row, 0, w)
		rw = append(rw, cell{mainc: left, width: 1, style: style})
		for i := 0; i < w-2; i++ {
			rw = append(rw, cell{mainc: fill, width: 1, style: style})
		}
		return append(rw, cell{mainc: right, width: 1, style: style})
	}
	rows[0] = edge('┌', '─', '┐')
	for i := 1; i < h-1; i++ {
		rows[i] = edge('│', ' ', '│')
	}
	rows[h-1] = edge('└', '─', '┘')

	inner := w - 2
	text := clusters(label, style)
	for row(text).width() > inner && len(text) > 0 {
		text = text[:len(text)-1]
	}
	mid := rows[h/2]
	col := 1 + (inner-row(text).width())/2
	body := append(row(nil), mid[:col]...)
	body = append(body, text...)
	for body.width() < w-1 {
		body = append(body, cell{mainc: ' ', width: 1, style: style})
	}
	rows[h/2] = append(body, mid[w-1])
	return rows
}

func prefix(lt delta.LineType) string {
	switch lt {
	case delta.LineTypeQuote:
		return QuotePrefix
	case delta.LineTypeListItem:
		return ListItemPrefix
	default:
		return ""
	}
}

func inlineImageLabel(img delta.Image) string {
	if img.Source == "" {
		return "[image]"
	}
	return "[image " + img.Source + "]"
}
