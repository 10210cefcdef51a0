package app

import (
	"context"
	"fmt"

	"github.com/dshills/edtr/internal/config"
	"github.com/dshills/edtr/internal/history"
	"github.com/dshills/edtr/internal/logging"
	"github.com/dshills/edtr/internal/plugin/builtin"
	"github.com/dshills/edtr/internal/plugin/lua"
	"github.com/dshills/edtr/internal/state"
	"github.com/dshills/edtr/internal/storage/sqlite"
	"github.com/dshills/edtr/internal/store"
)

// bootstrapper initializes components in dependency order and cleans up
// the ones already started when a later step fails.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

func newBootstrapper(app *Application, opts Options) *bootstrapper {
	return &bootstrapper{app: app, opts: opts}
}

func (b *bootstrapper) bootstrap(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"config", b.initConfig},
		{"logging", b.initLogging},
		{"plugins", b.initPlugins},
		{"storage", b.initStorage},
		{"store", b.initStore},
		{"committer", b.initCommitter},
	}

	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			b.cleanup()
			return &InitError{Component: step.name, Err: err}
		}
		b.initOrder = append(b.initOrder, step.name)
	}
	return nil
}

func (b *bootstrapper) initConfig(context.Context) error {
	if b.opts.Config != nil {
		b.app.config = *b.opts.Config
		return b.app.config.Validate()
	}
	cfg, err := config.Load(b.opts.ConfigPath)
	if err != nil {
		return err
	}
	b.app.config = cfg
	return nil
}

func (b *bootstrapper) initLogging(context.Context) error {
	level := b.app.config.LogLevel()
	if b.opts.LogLevel != "" {
		lvl, ok := logging.ParseLevel(b.opts.LogLevel)
		if !ok {
			return fmt.Errorf("invalid log level %q", b.opts.LogLevel)
		}
		level = lvl
	}

	cfg := logging.DefaultConfig()
	cfg.Level = level
	cfg.Output = b.opts.LogOutput
	b.app.logger = logging.New(cfg)
	return nil
}

// initPlugins builds the registry: builtin plugins, then Lua scripts, then
// the configured default plugin.
func (b *bootstrapper) initPlugins(ctx context.Context) error {
	reg := builtin.Registry()
	log := b.app.logger.WithComponent("plugins")

	if scripts := b.app.config.Plugins.Scripts; len(scripts) > 0 {
		res, err := lua.NewLoader().LoadFiles(ctx, scripts...)
		if err != nil {
			return err
		}
		for _, d := range res.Descriptors {
			if reg, err = reg.Register(d); err != nil {
				return fmt.Errorf("registering %q: %w", d.Name, err)
			}
			log.Debug("registered %s (%s)", d.Name, d.Capability)
		}
		if res.Default != "" {
			if reg, err = reg.WithDefault(res.Default); err != nil {
				return fmt.Errorf("script default plugin: %w", err)
			}
		}
	}

	if name := b.app.config.Editor.DefaultPlugin; name != "" {
		var err error
		if reg, err = reg.WithDefault(name); err != nil {
			return fmt.Errorf("editor.default_plugin: %w", err)
		}
	}

	b.app.plugins = reg
	log.Info("default plugin %q", reg.Default())
	return nil
}

func (b *bootstrapper) initStorage(ctx context.Context) error {
	path := b.app.config.Storage.Path
	if path == "" {
		return nil
	}
	s, err := sqlite.Open(ctx, path)
	if err != nil {
		return err
	}
	b.app.snapshots = s
	return nil
}

func (b *bootstrapper) initStore(ctx context.Context) error {
	opts := state.Options{
		ClipboardLimit: b.app.config.Editor.ClipboardLimit,
		HistoryLimit:   b.app.config.Editor.HistoryLimit,
	}
	initial := state.NewWithPlugins(opts, b.app.plugins)

	if name := b.opts.Load; name != "" {
		if b.app.snapshots == nil {
			return ErrNoStorage
		}
		snap, err := b.app.snapshots.Load(ctx, name)
		if err != nil {
			return fmt.Errorf("loading snapshot %q: %w", name, err)
		}
		initial = state.Restore(opts, b.app.plugins, history.BaseState{Documents: snap.Documents, Focus: snap.Focus})
		b.app.logger.Info("restored snapshot %q with %d documents", name, snap.Documents.Len())
	}

	b.app.store = store.New(initial, store.WithLogger(b.app.logger))
	return nil
}

func (b *bootstrapper) initCommitter(context.Context) error {
	delay := b.app.config.Editor.CommitDebounce.Std()
	if delay <= 0 {
		return nil
	}
	b.app.committer = store.NewCommitter(b.app.store, delay, b.app.logger)
	b.app.committer.Attach(b.app.ctx, b.app.store)
	return nil
}

// cleanup releases started components in reverse order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		switch b.initOrder[i] {
		case "storage":
			if b.app.snapshots != nil {
				_ = b.app.snapshots.Close()
				b.app.snapshots = nil
			}
		case "committer":
			if b.app.committer != nil {
				b.app.committer.Stop()
				b.app.committer = nil
			}
		}
	}
}
