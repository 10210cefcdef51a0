package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/edtr/internal/logging"
)

// Config holds every edtr setting.
type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	Plugins PluginsConfig `toml:"plugins"`
	Logging LoggingConfig `toml:"logging"`
	Storage StorageConfig `toml:"storage"`
}

// EditorConfig configures the state core.
type EditorConfig struct {
	// DefaultPlugin is used for inserts that name no plugin. Empty keeps
	// the registry default.
	DefaultPlugin string `toml:"default_plugin" env:"EDTR_DEFAULT_PLUGIN"`
	// ClipboardLimit bounds the clipboard ring.
	ClipboardLimit int `toml:"clipboard_limit" env:"EDTR_CLIPBOARD_LIMIT"`
	// HistoryLimit bounds the number of undo batches kept.
	HistoryLimit int `toml:"history_limit" env:"EDTR_HISTORY_LIMIT"`
	// CommitDebounce is the idle time after which an open batch is committed.
	// Zero disables the debouncer.
	CommitDebounce Duration `toml:"commit_debounce" env:"EDTR_COMMIT_DEBOUNCE"`
}

// PluginsConfig lists extra plugin sources.
type PluginsConfig struct {
	// Scripts are Lua files or glob patterns that register plugins.
	Scripts []string `toml:"scripts" env:"EDTR_PLUGIN_SCRIPTS" envSeparator:","`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `toml:"level" env:"EDTR_LOG_LEVEL"`
}

// StorageConfig configures snapshot persistence.
type StorageConfig struct {
	// Path is the sqlite database file. Empty disables snapshots.
	Path string `toml:"path" env:"EDTR_STORAGE_PATH"`
}

// Duration is a time.Duration read from strings like "750ms".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			ClipboardLimit: 3,
			HistoryLimit:   1000,
			CommitDebounce: Duration(time.Second),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the user config file location.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "edtr", "config.toml")
	}
	return ""
}

// Load reads path over the defaults and applies environment overrides.
// An empty path or a missing file yields defaults plus overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if cfg, err = Parse(path, data); err != nil {
				return Config{}, err
			}
		}
	}

	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults. source names the data in errors.
func Parse(source string, data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return Config{}, pe
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any EDTR_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if c.Editor.ClipboardLimit < 1 {
		return &FieldError{Field: "editor.clipboard_limit", Value: c.Editor.ClipboardLimit, Reason: "must be at least 1"}
	}
	if c.Editor.HistoryLimit < 0 {
		return &FieldError{Field: "editor.history_limit", Value: c.Editor.HistoryLimit, Reason: "must not be negative"}
	}
	if c.Editor.CommitDebounce < 0 {
		return &FieldError{Field: "editor.commit_debounce", Value: c.Editor.CommitDebounce.Std(), Reason: "must not be negative"}
	}
	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		return &FieldError{Field: "logging.level", Value: c.Logging.Level, Reason: "unknown level"}
	}
	for _, s := range c.Plugins.Scripts {
		if strings.TrimSpace(s) == "" {
			return &FieldError{Field: "plugins.scripts", Value: s, Reason: "empty entry"}
		}
	}
	return nil
}

// LogLevel returns the configured level, falling back to info.
func (c Config) LogLevel() logging.Level {
	if lvl, ok := logging.ParseLevel(c.Logging.Level); ok {
		return lvl
	}
	return logging.LevelInfo
}
