package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/edtr/internal/action"
	"github.com/dshills/edtr/internal/document"
	"github.com/dshills/edtr/internal/script"
	"github.com/dshills/edtr/internal/state"
	"github.com/dshills/edtr/internal/storage"
)

// Replay runs every command of sc in order. Each command is planned
// against the state left by the one before it. Replay stops at the first
// command that cannot be planned, the first rejected action, or when ctx
// is done.
func (a *Application) Replay(ctx context.Context, sc script.Script) error {
	if a.isClosed() {
		return ErrClosed
	}
	log := a.logger.WithField("script", sc.Name)
	log.Debug("replaying %d steps", len(sc.Commands))

	dispatched, edited := 0, 0
	for i, cmd := range sc.Commands {
		if err := ctx.Err(); err != nil {
			return err
		}
		actions, err := cmd.Plan(a.store.State())
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, cmd.Name(), err)
		}
		for _, act := range actions {
			dispatched++
			if err := a.store.Dispatch(act); err != nil {
				return fmt.Errorf("step %d (%s), action %d (%s): %w", i+1, cmd.Name(), dispatched, act.Type(), err)
			}
			if _, ok := act.(action.Edit); ok {
				edited++
			}
		}
	}
	log.Debug("dispatched %d actions (%d edits)", dispatched, edited)
	return nil
}

// Flush closes the open history batch now instead of waiting for the
// commit debounce.
func (a *Application) Flush() error {
	if a.isClosed() {
		return ErrClosed
	}
	if a.committer != nil {
		return a.committer.Flush()
	}
	return a.store.Dispatch(action.Commit{})
}

// Save writes the current documents and focus as snapshot name.
func (a *Application) Save(ctx context.Context, name string) error {
	if a.isClosed() {
		return ErrClosed
	}
	if a.snapshots == nil {
		return ErrNoStorage
	}
	s := a.store.State()
	if err := a.snapshots.Save(ctx, storage.Snapshot{Name: name, Documents: s.Documents, Focus: s.Focus}); err != nil {
		return err
	}
	a.logger.Info("saved snapshot %q with %d documents", name, s.Documents.Len())
	return nil
}

// Snapshots lists saved snapshot names.
func (a *Application) Snapshots(ctx context.Context) ([]string, error) {
	if a.snapshots == nil {
		return nil, ErrNoStorage
	}
	return a.snapshots.List(ctx)
}

// IsNotFound reports whether err means a snapshot does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}

// Summary is the JSON view of a session state.
type Summary struct {
	Editable      bool                `json:"editable"`
	DefaultPlugin string              `json:"default_plugin,omitempty"`
	Plugins       []string            `json:"plugins"`
	Documents     document.Store      `json:"documents"`
	Focus         string              `json:"focus,omitempty"`
	Clipboard     []document.Document `json:"clipboard"`
	History       HistorySummary      `json:"history"`
}

// HistorySummary reports history depths.
type HistorySummary struct {
	Undo    int `json:"undo"`
	Redo    int `json:"redo"`
	Pending int `json:"pending"`
}

// Summarize builds a Summary of s.
func Summarize(s state.State) Summary {
	focus, _ := state.Focused(s)

	return Summary{
		Editable:      state.IsEditable(s),
		DefaultPlugin: state.DefaultPlugin(s),
		Plugins:       s.Plugins.Names(),
		Documents:     state.Documents(s),
		Focus:         focus,
		Clipboard:     state.Clipboard(s),
		History: HistorySummary{
			Undo:    s.History.UndoCount(),
			Redo:    s.History.RedoCount(),
			Pending: s.History.Pending,
		},
	}
}

// Summary returns the Summary of the current state.
func (a *Application) Summary() Summary {
	return Summarize(a.store.State())
}
