package app

import (
	"context"

	"github.com/dshills/blockpad/internal/command"
	"github.com/dshills/blockpad/internal/config"
	"github.com/dshills/blockpad/internal/logging"
	"github.com/dshills/blockpad/internal/session"
	"github.com/dshills/blockpad/internal/store"
)

// bootstrapper handles component initialization with proper cleanup on failure.
type bootstrapper struct {
	app       *Application
	initOrder []string
}

// newBootstrapper creates a new bootstrapper for the application.
func newBootstrapper(app *Application) *bootstrapper {
	return &bootstrapper{
		app:       app,
		initOrder: make([]string, 0, 4),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap(ctx context.Context) error {
	steps := []struct {
		name string
		init func(context.Context) error
	}{
		{"config", b.initConfig},
		{"logger", b.initLogger},
		{"store", b.initStore},
		{"session", b.initSession},
	}
	for _, step := range steps {
		if err := step.init(ctx); err != nil {
			b.cleanup()
			return &InitError{Component: step.name, Err: err}
		}
		b.initOrder = append(b.initOrder, step.name)
	}
	return nil
}

// initConfig loads the configuration file and applies option overrides.
func (b *bootstrapper) initConfig(_ context.Context) error {
	opts := b.app.opts
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if opts.Backend != "" {
		cfg.Storage.Backend = opts.Backend
		if opts.StorePath == "" {
			cfg.Storage.Path = ""
		}
	}
	if opts.StorePath != "" {
		cfg.Storage.Path = opts.StorePath
	}
	if opts.Key != "" {
		cfg.Storage.Key = opts.Key
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.LogFormat != "" {
		cfg.Log.Format = opts.LogFormat
	}
	if err := config.Normalize(cfg); err != nil {
		return err
	}

	b.app.config = cfg
	return nil
}

// initLogger creates the application logger.
func (b *bootstrapper) initLogger(_ context.Context) error {
	cfg := b.app.config
	b.app.logger = logging.New(cfg.Log.Level, cfg.Log.Format, b.app.opts.logOutput()).
		With("component", "blockpad")
	return nil
}

// initStore opens the configured store backend.
func (b *bootstrapper) initStore(ctx context.Context) error {
	cfg := b.app.config.Storage
	st, err := store.Open(ctx, cfg.Backend, cfg.Path)
	if err != nil {
		return err
	}
	b.app.store = st
	b.app.logger.Debug("store opened", "backend", cfg.Backend, "path", cfg.Path)
	return nil
}

// initSession creates the editing session.
func (b *bootstrapper) initSession(_ context.Context) error {
	cfg := b.app.config
	reg, err := cfg.KeymapRegistry()
	if err != nil {
		return err
	}
	rules, err := cfg.Rules()
	if err != nil {
		return err
	}

	b.app.session = session.New(session.Options{
		Router:     command.NewRouter(reg),
		Rules:      rules,
		Store:      b.app.store,
		Key:        cfg.Storage.Key,
		MaxHistory: cfg.History.MaxEntries,
		Logger:     b.app.logger,
	})
	return nil
}

// cleanup releases initialized components in reverse order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		switch b.initOrder[i] {
		case "store":
			if b.app.store != nil {
				_ = b.app.store.Close() // best-effort during failed startup
				b.app.store = nil
			}
		}
	}
	b.initOrder = b.initOrder[:0]
}
