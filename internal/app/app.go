// Package app wires the blockpad components together: configuration,
// logging, the document store, the editing session and optional live config
// reloading.
package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dshills/blockpad/internal/config"
	"github.com/dshills/blockpad/internal/engine/document"
	"github.com/dshills/blockpad/internal/session"
	"github.com/dshills/blockpad/internal/store"
)

// Application owns the components of one blockpad process.
type Application struct {
	mu sync.Mutex

	config  *config.Config
	logger  *slog.Logger
	store   store.Store
	session *session.Session
	watcher *config.Watcher

	closed atomic.Bool
	opts   Options
}

// Options configures the application. Non-empty fields override the
// configuration file.
type Options struct {
	// ConfigPath is the configuration file. Empty uses config.DefaultPath.
	ConfigPath string

	// Backend, StorePath and Key override the [storage] section.
	Backend   string
	StorePath string
	Key       string

	// LogLevel and LogFormat override the [log] section.
	LogLevel  string
	LogFormat string

	// LogOutput receives log records. Defaults to os.Stderr.
	LogOutput io.Writer
}

// New creates an application. Components are started in dependency order and
// released again if a later one fails.
func New(ctx context.Context, opts Options) (*Application, error) {
	app := &Application{opts: opts}
	b := newBootstrapper(app)
	if err := b.bootstrap(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

// Config returns the effective configuration.
func (app *Application) Config() *config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.config
}

// Logger returns the application logger.
func (app *Application) Logger() *slog.Logger {
	return app.logger
}

// Store returns the document store.
func (app *Application) Store() store.Store {
	return app.store
}

// Session returns the editing session.
func (app *Application) Session() *session.Session {
	return app.session
}

// Load restores the stored document into the session.
func (app *Application) Load(ctx context.Context) (*document.Document, error) {
	if app.closed.Load() {
		return nil, ErrClosed
	}
	st, err := app.session.Load(ctx)
	if err != nil {
		return nil, NewOperationError("load", app.session.Key(), err)
	}
	return st.Document(), nil
}

// Save writes the session document to the store.
func (app *Application) Save(ctx context.Context) error {
	if app.closed.Load() {
		return ErrClosed
	}
	if _, err := app.session.Save(ctx); err != nil {
		return NewOperationError("save", app.session.Key(), err)
	}
	return nil
}

// Clear deletes the stored document.
func (app *Application) Clear(ctx context.Context) error {
	if app.closed.Load() {
		return ErrClosed
	}
	if err := app.session.Clear(ctx); err != nil {
		return NewOperationError("clear", app.session.Key(), err)
	}
	return nil
}

// WatchConfig reloads the configuration file when it changes. Trigger rules
// are applied to the session; onStyles receives the new style map. Without
// a configuration file WatchConfig does nothing.
func (app *Application) WatchConfig(onStyles func(config.StyleMap)) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.closed.Load() {
		return ErrClosed
	}
	if app.watcher != nil || app.config.Path == "" {
		return nil
	}

	w, err := config.NewWatcher(app.config.Path, func(cfg *config.Config) {
		app.applyConfig(cfg, onStyles)
	}, config.WithErrorHandler(func(err error) {
		app.logger.Warn("config reload failed", "path", app.config.Path, "error", err)
	}))
	if err != nil {
		return NewOperationError("watch", app.config.Path, err)
	}
	app.watcher = w
	app.logger.Debug("watching config", "path", w.Path())
	return nil
}

// applyConfig adopts the reloadable parts of cfg.
func (app *Application) applyConfig(cfg *config.Config, onStyles func(config.StyleMap)) {
	rules, err := cfg.Rules()
	if err != nil {
		app.logger.Warn("config reload failed", "path", cfg.Path, "error", err)
		return
	}

	app.mu.Lock()
	app.config.Styles = cfg.Styles
	app.config.Triggers = cfg.Triggers
	app.mu.Unlock()

	app.session.SetRules(rules)
	if onStyles != nil {
		onStyles(cfg.Styles)
	}
	app.logger.Info("config reloaded", "path", cfg.Path, "triggers", len(rules))
}

// Close stops the watcher and closes the store. It is safe to call more
// than once.
func (app *Application) Close() error {
	if app.closed.Swap(true) {
		return nil
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	var errs []error
	if app.watcher != nil {
		errs = append(errs, app.watcher.Close())
	}
	if app.store != nil {
		errs = append(errs, app.store.Close())
	}
	return errors.Join(errs...)
}

func (o Options) logOutput() io.Writer {
	if o.LogOutput != nil {
		return o.LogOutput
	}
	return os.Stderr
}
