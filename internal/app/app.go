// Package app wires configuration, logging, persistence, the task store and
// the due-today notifier into one unit with an ordered shutdown.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tgienger/tasks/internal/boltstore"
	"github.com/tgienger/tasks/internal/config"
	"github.com/tgienger/tasks/internal/db"
	"github.com/tgienger/tasks/internal/lifecycle"
	"github.com/tgienger/tasks/internal/notify"
	"github.com/tgienger/tasks/internal/store"
	"github.com/tgienger/tasks/pkg/logger"
)

// ThemeKey is the settings key holding the color theme.
const ThemeKey = "theme"

const shutdownTimeout = 5 * time.Second

// Backend is a persistence adapter the store can run on.
type Backend interface {
	store.Persister
	store.Settings
	Close() error
}

// App holds the running components.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Store    *store.Store
	Settings store.Settings

	lifecycle *lifecycle.Manager

	mu          sync.Mutex
	onSaveError func(error)
}

// New opens the configured backend and the store on top of it.
func New(cfg *config.Config) (*App, error) {
	log, closeLog, err := logger.New(logger.Config{
		Level:    cfg.Log.Level,
		Encoding: cfg.Log.Encoding,
		Path:     cfg.LogPath(),
	})
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	a := &App{
		Config:    cfg,
		Logger:    log,
		lifecycle: lifecycle.New(shutdownTimeout, log),
	}
	a.lifecycle.Register("logger", func(context.Context) error {
		closeLog()
		return nil
	})

	backend, err := OpenBackend(cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Settings = backend
	a.lifecycle.Register(cfg.Backend, func(context.Context) error {
		return backend.Close()
	})

	st, err := store.Open(backend,
		store.WithSaveDelay(cfg.SaveDelay),
		store.WithLogger(log.Named("store")),
		store.WithSaveErrorHandler(a.saveFailed),
	)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Store = st
	a.lifecycle.Register("store", func(context.Context) error {
		return st.Close()
	})

	log.Info("app started",
		zap.String("backend", cfg.Backend),
		zap.String("path", cfg.StorePath()))
	return a, nil
}

// OpenBackend opens the adapter named by cfg.Backend.
func OpenBackend(cfg *config.Config, log *zap.Logger) (Backend, error) {
	path := cfg.StorePath()
	switch cfg.Backend {
	case config.BackendBolt:
		return boltstore.Open(path, log.Named("bolt"))
	case config.BackendSQLite:
		return db.New(path)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// OnSaveError routes failed coalesced writes to f in addition to the log.
func (a *App) OnSaveError(f func(error)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onSaveError = f
}

func (a *App) saveFailed(err error) {
	a.Logger.Warn("coalesced save failed", zap.Error(err))
	a.mu.Lock()
	f := a.onSaveError
	a.mu.Unlock()
	if f != nil {
		f(err)
	}
}

// StartNotifier begins polling for tasks due today, delivering them to sink
// until the app is closed.
func (a *App) StartNotifier(sink notify.Sink) (*notify.Notifier, error) {
	n, err := notify.New(a.Store, sink, a.Logger.Named("notify"), notify.Config{
		Interval: a.Config.NotifyInterval,
	})
	if err != nil {
		return nil, err
	}
	n.Start()
	a.lifecycle.Register("notifier", n.Stop)
	return n, nil
}

// Theme returns the saved theme name, or "" when none is saved.
func (a *App) Theme() string {
	name, err := a.Settings.GetSetting(ThemeKey)
	if err != nil {
		a.Logger.Warn("read theme setting", zap.Error(err))
		return ""
	}
	return name
}

// SetTheme saves the theme name.
func (a *App) SetTheme(name string) error {
	return a.Settings.SetSetting(ThemeKey, name)
}

// ListenForSignals calls cancel on SIGINT or SIGTERM until the returned
// func is called.
func (a *App) ListenForSignals(cancel context.CancelFunc) func() {
	return a.lifecycle.Listen(cancel)
}

// Close stops the notifier, flushes the store and closes the backend and
// log, in that order. It is safe to call more than once.
func (a *App) Close() error {
	return a.lifecycle.Shutdown(context.Background())
}
