// Package app wires the editor state core to its host services:
// configuration, logging, plugin loading, the session store, the commit
// debouncer and snapshot storage.
package app

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/dshills/edtr/internal/config"
	"github.com/dshills/edtr/internal/logging"
	"github.com/dshills/edtr/internal/plugin"
	"github.com/dshills/edtr/internal/storage"
	"github.com/dshills/edtr/internal/store"
)

// Options configures an Application.
type Options struct {
	// ConfigPath is the TOML config file. Empty uses only defaults and env.
	ConfigPath string
	// LogLevel overrides the configured level when set.
	LogLevel string
	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer
	// Load names a snapshot to restore into the initial state.
	Load string
	// Config, when non-nil, is used instead of loading ConfigPath.
	Config *config.Config
}

// Application is one editing session.
type Application struct {
	config    config.Config
	logger    *logging.Logger
	plugins   plugin.Registry
	snapshots storage.SnapshotStore
	store     *store.Store
	committer *store.Committer

	ctx    context.Context
	cancel context.CancelFunc

	closeOnce sync.Once
	closed    bool
	mu        sync.Mutex
}

// New creates and bootstraps an application.
func New(ctx context.Context, opts Options) (*Application, error) {
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}

	runCtx, cancel := context.WithCancel(ctx)
	a := &Application{ctx: runCtx, cancel: cancel}

	if err := newBootstrapper(a, opts).bootstrap(ctx); err != nil {
		cancel()
		return nil, err
	}
	a.logger.Info("session started with %d plugins", a.plugins.Len())
	return a, nil
}

// Config returns the effective configuration.
func (a *Application) Config() config.Config {
	return a.config
}

// Logger returns the application logger.
func (a *Application) Logger() *logging.Logger {
	return a.logger
}

// Store returns the session store.
func (a *Application) Store() *store.Store {
	return a.store
}

// Committer returns the commit debouncer, or nil when disabled.
func (a *Application) Committer() *store.Committer {
	return a.committer
}

// Close flushes any open history batch and releases storage.
func (a *Application) Close() error {
	var err error
	a.closeOnce.Do(func() {
		a.mu.Lock()
		a.closed = true
		a.mu.Unlock()

		if a.committer != nil {
			if ferr := a.committer.Flush(); ferr != nil {
				a.logger.Warn("final commit: %v", ferr)
			}
			a.committer.Stop()
		}
		a.cancel()
		if a.snapshots != nil {
			err = a.snapshots.Close()
		}
		a.logger.Info("session closed")
	})
	return err
}

func (a *Application) isClosed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}
