package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/richsheet/internal/render"
)

// SetScreen attaches the terminal screen and creates the renderer.
// The caller owns the screen and finalizes it.
func (app *Application) SetScreen(screen tcell.Screen) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}

	opts := []render.Option{render.WithLogger(app.logger)}
	if app.file != nil {
		rs := app.file.Render
		if rs.Spacing != nil {
			opts = append(opts, render.WithSpacing(*rs.Spacing))
		}
		var w, h int
		if rs.MaxMediaWidth != nil {
			w = *rs.MaxMediaWidth
		}
		if rs.MaxMediaHeight != nil {
			h = *rs.MaxMediaHeight
		}
		opts = append(opts, render.WithMaxMediaSize(w, h))
	}

	app.screen = screen
	app.renderer = render.New(app.bridge, screen, opts...)
	app.dirty.Store(true)
	return nil
}

// Shutdown releases every component. It is safe to call more than once.
func (app *Application) Shutdown() {
	if !app.closed.CompareAndSwap(false, true) {
		return
	}
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			app.logger.Warn("closing watcher: %v", err)
		}
	}
	if app.toolbar != nil {
		app.toolbar.Close()
	}
	if app.sheet != nil {
		app.sheet.Close()
	}
	if app.bridge != nil {
		app.bridge.Release()
	}
	if app.logger != nil {
		app.logger.Debug("shutdown complete")
		_ = app.logger.Sync()
	}
}
