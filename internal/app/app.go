package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/stagehandgo/internal/ctxlog"
	"github.com/specialistvlad/stagehandgo/internal/handoff"
	"github.com/specialistvlad/stagehandgo/internal/loader"
	"github.com/specialistvlad/stagehandgo/internal/model"
	"github.com/specialistvlad/stagehandgo/internal/propstore"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle: one App is one configuration run.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	build  *model.Build
	store  *propstore.Store
	gen    *handoff.Generator
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger, a loaded build
// description, and a fresh property registry. A build description that
// cannot be loaded is a fatal startup error and panics; the entrypoint
// recovers it into a clean exit.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	build, err := loader.NewLoader().Load(ctx, cfg.BuildPath)
	if err != nil {
		panic(fmt.Errorf("failed to load build description: %w", err))
	}
	logger.Debug("Build description loaded and translated into the model.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		build:  build,
		store:  propstore.New(),
		gen:    handoff.NewGenerator(),
	}
}

// Store returns the application's property registry. This is primarily for
// testing.
func (a *App) Store() *propstore.Store {
	return a.store
}

// Artifacts returns the handoff files written by the run, in write order.
// This is primarily for testing.
func (a *App) Artifacts() []string {
	return a.gen.Artifacts()
}
