package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/richsheet/internal/document"
	"github.com/dshills/richsheet/internal/watch"
)

// Run draws the document and processes terminal and file events until the
// user quits or ctx is done. A quit returns nil.
func (app *Application) Run(ctx context.Context) error {
	if app.screen == nil {
		return ErrNoScreen
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	var reloads <-chan watch.Event
	if app.opts.Watch {
		if app.watcher == nil {
			w, err := watch.New(app.opts.DocumentPath, watch.WithLogger(app.logger))
			if err != nil {
				return &InitError{Component: "watcher", Err: err}
			}
			app.watcher = w
		}
		reloads = app.watcher.Events()
	}

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	app.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.handleEvent(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}

		case ev, ok := <-reloads:
			if !ok {
				reloads = nil
				continue
			}
			app.reload(ev)
		}

		if app.dirty.Swap(false) {
			app.draw()
		}
	}
}

// handleEvent processes one terminal event.
// Returns ErrQuit if the application should exit.
func (app *Application) handleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		app.screen.Sync()
		app.markDirty()
	case *tcell.EventKey:
		return app.handleKey(ev)
	}
	return nil
}

// handleKey maps keys to viewer actions.
//
//	q, Esc, Ctrl+C      quit
//	Left/Right          move the caret
//	Shift+Left/Right    extend the selection
//	Home/End            move the caret to the document start or end
//	Up/Down             scroll
//	Alt+<key>           press the toolbar button bound to key
func (app *Application) handleKey(ev *tcell.EventKey) error {
	sel := app.sheet.Selection()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ErrQuit
	case tcell.KeyLeft:
		app.moveCaret(-1, ev.Modifiers()&tcell.ModShift != 0)
	case tcell.KeyRight:
		app.moveCaret(1, ev.Modifiers()&tcell.ModShift != 0)
	case tcell.KeyHome:
		app.sheet.Select(document.Caret(0))
	case tcell.KeyEnd:
		app.sheet.Select(document.Caret(app.Document().Length()))
	case tcell.KeyUp:
		app.scroll(-1)
	case tcell.KeyDown:
		app.scroll(1)
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			if item, ok := app.toolbar.ItemForKey(ev.Rune()); ok {
				app.toolbar.Press(item)
			}
			return nil
		}
		if ev.Rune() == 'q' {
			return ErrQuit
		}
	}
	if app.sheet.Selection() != sel {
		app.markDirty()
	}
	return nil
}

// moveCaret moves the selection head by n characters. When extend is set
// the anchor stays put.
func (app *Application) moveCaret(n int, extend bool) {
	anchor, head := app.anchor, app.head
	head = min(max(head+n, 0), app.Document().Length())
	if !extend {
		anchor = head
	}
	app.anchor, app.head = anchor, head
	app.sheet.Select(document.NewSelection(anchor, head))
}

func (app *Application) scroll(n int) {
	app.top = max(app.top+n, 0)
	app.renderer.Scroll(app.top)
	app.markDirty()
}

// reload replaces the document after its file changed.
func (app *Application) reload(ev watch.Event) {
	if _, err := os.Stat(app.opts.DocumentPath); err != nil {
		app.logger.Warn("%s: %s, keeping the loaded document", ev.Path, ev.Op)
		return
	}
	doc, err := LoadDocument(app.opts.DocumentPath)
	if err != nil {
		app.logger.Warn("reload: %v", err)
		return
	}
	app.logger.Info("reloaded %s (%s)", ev.Path, ev.Op)
	app.sheet.SetDocument(doc)
}

// onChange is called by the sheet after every change.
func (app *Application) onChange(_ document.Document, sel document.Selection) {
	if sel.Collapsed() {
		app.anchor, app.head = sel.Start, sel.Start
	} else if app.head != sel.Start && app.head != sel.End {
		app.anchor, app.head = sel.Start, sel.End
	}
	app.markDirty()
}

func (app *Application) markDirty() {
	app.dirty.Store(true)
}

// draw paints the document and the status line, then shows the screen.
func (app *Application) draw() {
	if app.renderer == nil {
		return
	}
	if _, err := app.renderer.Render(app.Document()); err != nil {
		app.logger.Debug("render: %v", err)
	}
	app.drawStatus()
	app.screen.Show()
}

// drawStatus paints the toolbar state on the bottom row.
func (app *Application) drawStatus() {
	width, height := app.screen.Size()
	if height == 0 {
		return
	}
	y := height - 1
	base := tcell.StyleDefault.Reverse(true)
	for x := 0; x < width; x++ {
		app.screen.SetContent(x, y, ' ', nil, base)
	}

	x := 0
	put := func(s string, style tcell.Style) {
		for _, r := range s {
			if x >= width {
				return
			}
			app.screen.SetContent(x, y, r, nil, style)
			x++
		}
	}
	for _, item := range app.toolbar.Items() {
		style := base
		if app.toolbar.ItemActive(item) {
			style = tcell.StyleDefault.Bold(true)
		}
		put(fmt.Sprintf(" %c:%s ", item.Key, item.Label), style)
	}
	put(" "+statusText(app.sheet.Selection()), base)
}

func statusText(sel document.Selection) string {
	if sel.Collapsed() {
		return fmt.Sprintf("caret %d", sel.Start)
	}
	return fmt.Sprintf("selection [%d, %d)", sel.Start, sel.End)
}
