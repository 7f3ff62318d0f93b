package app

import (
	"io"

	"github.com/dshills/richsheet/internal/bridge"
	"github.com/dshills/richsheet/internal/config"
	"github.com/dshills/richsheet/internal/logging"
	"github.com/dshills/richsheet/internal/sheet"
	"github.com/dshills/richsheet/internal/toolbar"
)

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Logging
	out := app.opts.LogOutput
	if out == nil {
		out = io.Discard
	}
	logCfg := logging.DefaultConfig()
	logCfg.Output = out
	logCfg.Level = logging.ParseLogLevel(app.opts.LogLevel)
	app.logger = logging.New(logCfg)

	// 2. Config: file, then environment overrides
	f := &config.File{}
	if app.opts.ConfigPath != "" {
		loaded, err := config.LoadFile(app.opts.ConfigPath, app.logger)
		if err != nil {
			return &InitError{Component: "config", Err: err}
		}
		f = loaded
	}
	env := config.NewEnvLoader()
	if app.opts.LookupEnv != nil {
		env = config.NewEnvLoaderWithLookup(config.EnvPrefix, app.opts.LookupEnv)
	}
	if err := env.Apply(f); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.file = f
	if app.opts.LogLevel == "" && f.LogLevel != "" {
		app.logger.SetLevel(logging.ParseLogLevel(f.LogLevel))
	}
	genCfg, err := f.GenConfig()
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}

	// 3. Document
	doc, err := LoadDocument(app.opts.DocumentPath)
	if err != nil {
		return &InitError{Component: "document", Err: err}
	}

	// 4. Bridge and its consumers
	app.bridge = bridge.New(genCfg, bridge.WithLogger(app.logger))
	app.toolbar = toolbar.New(app.bridge,
		toolbar.WithLogger(app.logger),
		toolbar.WithOnUpdate(app.markDirty),
	)
	app.sheet = sheet.New(app.bridge, doc,
		sheet.WithLogger(app.logger),
		sheet.WithOnChange(app.onChange),
	)

	app.logger.Info("opened %s (%d characters)", app.opts.DocumentPath, doc.Length())
	return nil
}
