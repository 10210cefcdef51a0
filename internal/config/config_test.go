package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/edtr/internal/logging"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Editor.DefaultPlugin != "" {
		t.Errorf("DefaultPlugin = %q, want empty", cfg.Editor.DefaultPlugin)
	}
	if cfg.Editor.ClipboardLimit != 3 {
		t.Errorf("ClipboardLimit = %d, want 3", cfg.Editor.ClipboardLimit)
	}
	if cfg.Editor.CommitDebounce.Std() != time.Second {
		t.Errorf("CommitDebounce = %v, want 1s", cfg.Editor.CommitDebounce.Std())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
[editor]
default_plugin = "rows"
clipboard_limit = 5
commit_debounce = "250ms"

[plugins]
scripts = ["a.lua", "b.lua"]

[logging]
level = "debug"
`)

	cfg, err := Parse("test.toml", data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Editor.DefaultPlugin != "rows" {
		t.Errorf("DefaultPlugin = %q", cfg.Editor.DefaultPlugin)
	}
	if cfg.Editor.ClipboardLimit != 5 {
		t.Errorf("ClipboardLimit = %d", cfg.Editor.ClipboardLimit)
	}
	if cfg.Editor.HistoryLimit != 1000 {
		t.Errorf("HistoryLimit = %d, want default 1000", cfg.Editor.HistoryLimit)
	}
	if cfg.Editor.CommitDebounce.Std() != 250*time.Millisecond {
		t.Errorf("CommitDebounce = %v", cfg.Editor.CommitDebounce.Std())
	}
	if len(cfg.Plugins.Scripts) != 2 {
		t.Errorf("Scripts = %v", cfg.Plugins.Scripts)
	}
	if cfg.LogLevel() != logging.LevelDebug {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}
}

func TestParseError(t *testing.T) {
	_, err := Parse("bad.toml", []byte("[editor\nclipboard_limit = 1"))

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if pe.Path != "bad.toml" {
		t.Errorf("Path = %q", pe.Path)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.ClipboardLimit != Default().Editor.ClipboardLimit {
		t.Error("expected defaults for a missing file")
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[editor]\nclipboard_limit = 7\nhistory_limit = 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EDTR_HISTORY_LIMIT", "20")
	t.Setenv("EDTR_LOG_LEVEL", "warn")
	t.Setenv("EDTR_COMMIT_DEBOUNCE", "2s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Editor.ClipboardLimit != 7 {
		t.Errorf("ClipboardLimit = %d, want 7 from file", cfg.Editor.ClipboardLimit)
	}
	if cfg.Editor.HistoryLimit != 20 {
		t.Errorf("HistoryLimit = %d, want 20 from env", cfg.Editor.HistoryLimit)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Editor.CommitDebounce.Std() != 2*time.Second {
		t.Errorf("CommitDebounce = %v, want 2s", cfg.Editor.CommitDebounce.Std())
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("EDTR_LOG_LEVEL", "loud")

	_, err := Load("")
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"clipboard", func(c *Config) { c.Editor.ClipboardLimit = 0 }, "editor.clipboard_limit"},
		{"history", func(c *Config) { c.Editor.HistoryLimit = -1 }, "editor.history_limit"},
		{"debounce", func(c *Config) { c.Editor.CommitDebounce = Duration(-time.Second) }, "editor.commit_debounce"},
		{"level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"script", func(c *Config) { c.Plugins.Scripts = []string{" "} }, "plugins.scripts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			var fe *FieldError
			if err := cfg.Validate(); !errors.As(err, &fe) {
				t.Fatalf("expected *FieldError, got %v", err)
			}
			if fe.Field != tt.field {
				t.Errorf("Field = %q, want %q", fe.Field, tt.field)
			}
		})
	}
}
