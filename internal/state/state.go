package state

import (
	"github.com/dshills/edtr/internal/document"
	"github.com/dshills/edtr/internal/history"
	"github.com/dshills/edtr/internal/plugin"
)

// DefaultClipboardLimit is the number of clipboard entries kept.
const DefaultClipboardLimit = 3

// Options are fixed for the lifetime of a session.
type Options struct {
	// ClipboardLimit caps the clipboard length.
	ClipboardLimit int
	// HistoryLimit caps the number of undo steps.
	HistoryLimit int
}

// DefaultOptions returns the default session options.
func DefaultOptions() Options {
	return Options{
		ClipboardLimit: DefaultClipboardLimit,
		HistoryLimit:   history.DefaultLimit,
	}
}

// State is one immutable snapshot of the editor.
type State struct {
	Editable  bool
	Plugins   plugin.Registry
	Documents document.Store
	// Focus is the focused document id, "" when nothing has focus.
	Focus     string
	Clipboard []document.Document
	History   history.Buffer

	Options Options
}

// New returns the initial state for a session.
func New(opts Options) State {
	if opts.ClipboardLimit <= 0 {
		opts.ClipboardLimit = DefaultClipboardLimit
	}
	return State{
		Editable:  true,
		Documents: document.Store{},
		History:   history.New(history.BaseState{Documents: document.Store{}}, opts.HistoryLimit),
		Options:   opts,
	}
}

// NewWithPlugins returns the initial state with a preloaded registry.
func NewWithPlugins(opts Options, plugins plugin.Registry) State {
	s := New(opts)
	s.Plugins = plugins
	return s
}

// Base returns the documents and focus of s.
func (s State) Base() history.BaseState {
	return history.BaseState{Documents: s.Documents, Focus: s.Focus}
}

// Restore returns an initial state whose documents and focus come from
// base. The history starts empty with base as its initial state. A focus
// id that is not in base.Documents is dropped.
func Restore(opts Options, plugins plugin.Registry, base history.BaseState) State {
	s := NewWithPlugins(opts, plugins)
	docs := base.Documents
	if docs == nil {
		docs = document.Store{}
	}
	focus := base.Focus
	if !docs.Has(focus) {
		focus = ""
	}
	s.Documents = docs
	s.Focus = focus
	s.History = history.New(history.BaseState{Documents: docs, Focus: focus}, s.Options.HistoryLimit)
	return s
}
