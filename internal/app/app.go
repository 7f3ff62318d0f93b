// Package app wires the document engine into the richsheet viewer: it loads
// configuration and the document, connects the sheet and toolbar through a
// bridge, and drives the terminal renderer.
package app

import (
	"io"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/richsheet/internal/bridge"
	"github.com/dshills/richsheet/internal/config"
	"github.com/dshills/richsheet/internal/document"
	"github.com/dshills/richsheet/internal/logging"
	"github.com/dshills/richsheet/internal/render"
	"github.com/dshills/richsheet/internal/sheet"
	"github.com/dshills/richsheet/internal/toolbar"
	"github.com/dshills/richsheet/internal/watch"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty uses defaults.
	ConfigPath string

	// DocumentPath is the delta JSON file to open.
	DocumentPath string

	// LogLevel sets the logging verbosity. Empty defers to the
	// configuration file.
	LogLevel string

	// LogOutput receives log entries. Nil discards them.
	LogOutput io.Writer

	// Watch reloads the document when its file changes.
	Watch bool

	// LookupEnv reads configuration overrides from the environment.
	// Nil uses os.LookupEnv.
	LookupEnv config.LookupFunc
}

// Application is the central coordinator of the viewer.
type Application struct {
	opts   Options
	logger *logging.Logger
	file   *config.File

	bridge   *bridge.Bridge
	sheet    *sheet.Sheet
	toolbar  *toolbar.Toolbar
	screen   tcell.Screen
	renderer *render.Renderer
	watcher  *watch.Watcher

	// anchor and head track the selection ends in the order the user
	// made them; the sheet only keeps the normalized range.
	anchor int
	head   int
	top    int

	dirty   atomic.Bool
	running atomic.Bool
	closed  atomic.Bool
}

// New creates an application and loads its configuration and document.
func New(opts Options) (*Application, error) {
	if opts.DocumentPath == "" {
		return nil, ErrNoDocument
	}
	app := &Application{opts: opts}
	if err := app.bootstrap(); err != nil {
		app.Shutdown()
		return nil, err
	}
	return app, nil
}

// Bridge returns the bridge connecting the sheet and the toolbar.
func (app *Application) Bridge() *bridge.Bridge {
	return app.bridge
}

// Sheet returns the editing surface.
func (app *Application) Sheet() *sheet.Sheet {
	return app.sheet
}

// Toolbar returns the formatting control.
func (app *Application) Toolbar() *toolbar.Toolbar {
	return app.toolbar
}

// Document returns the current document.
func (app *Application) Document() document.Document {
	return app.sheet.Document()
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}
