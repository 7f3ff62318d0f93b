package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/dshills/richsheet/internal/bridge"
	"github.com/dshills/richsheet/internal/delta"
	"github.com/dshills/richsheet/internal/document"
	"github.com/dshills/richsheet/internal/gen"
	"github.com/dshills/richsheet/internal/transform"
)

var (
	bold  = delta.Attributes{"bold": delta.Bool(true)}
	quote = delta.Attributes{delta.AttrLineType: delta.String("quote")}
	cat   = delta.Image{Source: "image#1", Width: 10, Height: 5}
)

func sample() document.Document {
	var b delta.Builder
	b.Insert("Hello", bold).InsertNewline(quote).
		InsertImage(cat, nil).InsertNewline(nil).
		Insert("tail", nil)
	return document.New(b.Build())
}

func newScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	s.SetSize(width, height)
	t.Cleanup(s.Fini)
	return s
}

func newRenderer(t *testing.T, cfg gen.Config, opts ...Option) *Renderer {
	t.Helper()
	b := bridge.New(cfg)
	t.Cleanup(b.Release)
	return New(b, newScreen(t, 40, 20), opts...)
}

func TestRowsLayout(t *testing.T) {
	r := newRenderer(t, gen.Config{}, WithMaxMediaSize(10, 3))

	rows, err := r.Rows(sample(), 20)
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	expected := []string{
		"│ Hello",
		"",
		"┌────────┐",
		"│image#1 │",
		"└────────┘",
		"",
		"tail",
	}
	if diff := cmp.Diff(expected, rows); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
}

func TestSpacing(t *testing.T) {
	tests := []struct {
		name     string
		spacing  int
		expected int
	}{
		{"none", 0, 5},
		{"default", DefaultSpacing, 7},
		{"double", 2, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRenderer(t, gen.Config{}, WithSpacing(tt.spacing), WithMaxMediaSize(10, 3))
			rows, err := r.Rows(sample(), 20)
			if err != nil {
				t.Fatalf("Rows() error = %v", err)
			}
			if len(rows) != tt.expected {
				t.Errorf("len(Rows()) = %d, expected %d", len(rows), tt.expected)
			}
			if rows[len(rows)-1] != "tail" {
				t.Errorf("last row = %q, expected no spacing after the last block", rows[len(rows)-1])
			}
		})
	}
}

func TestWrapRepeatsPrefix(t *testing.T) {
	r := newRenderer(t, gen.Config{})

	var b delta.Builder
	b.Insert("abcdef", nil).InsertNewline(delta.Attributes{delta.AttrLineType: delta.String("list-item")})
	rows, err := r.Rows(document.New(b.Build()), 4)
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}

	expected := []string{"• ab", "• cd", "• ef"}
	if diff := cmp.Diff(expected, rows); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
}

func TestWideGraphemes(t *testing.T) {
	r := newRenderer(t, gen.Config{})

	var b delta.Builder
	b.Insert("日本", nil)
	rows, err := r.Rows(document.New(b.Build()), 3)
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	if diff := cmp.Diff([]string{"日", "本"}, rows); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyLines(t *testing.T) {
	r := newRenderer(t, gen.Config{}, WithSpacing(0))

	var b delta.Builder
	b.InsertNewline(quote).InsertNewline(nil)
	rows, err := r.Rows(document.New(b.Build()), 10)
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	if diff := cmp.Diff([]string{"│ ", ""}, rows); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyDocument(t *testing.T) {
	r := newRenderer(t, gen.Config{})

	stats, err := r.Render(document.Empty())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if stats != (Stats{}) {
		t.Errorf("Render() = %+v, expected zero stats", stats)
	}
}

func TestRenderPaintsStyledText(t *testing.T) {
	b := bridge.New(gen.Config{})
	defer b.Release()
	screen := newScreen(t, 20, 10)
	r := New(b, screen)

	var db delta.Builder
	db.Insert("Hi", bold).Insert("!", delta.Attributes{"color": delta.String("#ff0000")})
	stats, err := r.Render(document.New(db.Build()))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if stats.Blocks != 1 || stats.Rows != 1 {
		t.Errorf("Render() = %+v, expected 1 block in 1 row", stats)
	}

	mainc, _, style, _ := screen.GetContent(0, 0) //nolint:staticcheck // GetContent is the correct API
	if mainc != 'H' {
		t.Errorf("cell (0,0) = %q, expected 'H'", mainc)
	}
	if _, _, attrs := style.Decompose(); attrs&tcell.AttrBold == 0 {
		t.Error("cell (0,0) should be bold")
	}

	mainc, _, style, _ = screen.GetContent(2, 0) //nolint:staticcheck // GetContent is the correct API
	if mainc != '!' {
		t.Errorf("cell (2,0) = %q, expected '!'", mainc)
	}
	if fg, _, _ := style.Decompose(); fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("cell (2,0) foreground = %v, expected red", fg)
	}
}

func TestRenderAppliesCase(t *testing.T) {
	r := newRenderer(t, gen.Config{TextTransformSpecs: []transform.Spec{
		{AttributeName: "shout", Transform: transform.Match{Value: delta.Bool(true), Style: transform.Style{Case: transform.CaseUpper}}},
	}})

	var b delta.Builder
	b.Insert("hey ", nil).Insert("you", delta.Attributes{"shout": delta.Bool(true)})
	rows, err := r.Rows(document.New(b.Build()), 20)
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	if diff := cmp.Diff([]string{"hey YOU"}, rows); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
}

func TestImageLocatorFailure(t *testing.T) {
	errMissing := errors.New("missing")
	r := newRenderer(t, gen.Config{
		ImageLocatorService: gen.LocatorFunc(func(delta.Image) (gen.Source, error) {
			return gen.Source{}, errMissing
		}),
	}, WithMaxMediaSize(24, 3))

	var b delta.Builder
	b.InsertImage(delta.Image{Source: "gone.png"}, nil).InsertNewline(nil)
	rows, err := r.Rows(document.New(b.Build()), 40)
	if !errors.Is(err, errMissing) {
		t.Errorf("Rows() error = %v, expected %v", err, errMissing)
	}
	if len(rows) != 3 || !strings.Contains(rows[1], "image unavailable") {
		t.Errorf("Rows() = %q, expected a placeholder frame", rows)
	}
}

func TestImageFrameBounds(t *testing.T) {
	r := newRenderer(t, gen.Config{}, WithMaxMediaSize(100, 100))

	var b delta.Builder
	b.InsertImage(delta.Image{Source: "wide.png", Width: 500, Height: 1}, nil)
	rows, err := r.Rows(document.New(b.Build()), 12)
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	if len(rows) != minMediaHeight {
		t.Errorf("frame height = %d, expected %d", len(rows), minMediaHeight)
	}
	for i, row := range rows {
		if n := len([]rune(row)); n != 12 {
			t.Errorf("row %d width = %d, expected 12", i, n)
		}
	}
	if rows[1] != "│ wide.png │" {
		t.Errorf("label row = %q, expected %q", rows[1], "│ wide.png │")
	}
}

func TestScroll(t *testing.T) {
	b := bridge.New(gen.Config{})
	defer b.Release()
	screen := newScreen(t, 20, 10)
	r := New(b, screen, WithSpacing(0), WithMaxMediaSize(10, 3))

	r.Scroll(4)
	if _, err := r.Render(sample()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	mainc, _, _, _ := screen.GetContent(0, 0) //nolint:staticcheck // GetContent is the correct API
	if mainc != 't' {
		t.Errorf("cell (0,0) = %q, expected 't' after scrolling", mainc)
	}
}

func TestNewPanics(t *testing.T) {
	b := bridge.New(gen.Config{})
	defer b.Release()

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil bridge", func() { New(nil, newScreen(t, 10, 10)) }},
		{"nil screen", func() { New(b, nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("%s should panic", tt.name)
				}
			}()
			tt.fn()
		})
	}
}

func TestSetBridge(t *testing.T) {
	b := bridge.New(gen.Config{})
	defer b.Release()
	r := New(b, newScreen(t, 10, 10))

	r.SetBridge(b)
	if r.Bridge() != b {
		t.Error("Bridge() changed after SetBridge with the same bridge")
	}

	other := bridge.New(gen.Config{})
	defer other.Release()
	func() {
		defer func() {
			if recover() == nil {
				t.Error("SetBridge with a different bridge should panic")
			}
		}()
		r.SetBridge(other)
	}()
	func() {
		defer func() {
			if recover() == nil {
				t.Error("SetBridge(nil) should panic")
			}
		}()
		r.SetBridge(nil)
	}()
}
