package state

import (
	"reflect"

	"github.com/dshills/edtr/internal/document"
	"github.com/dshills/edtr/internal/plugin"
)

// IsEditable reports whether the editor accepts user edits.
func IsEditable(s State) bool {
	return s.Editable
}

// DefaultPlugin returns the default plugin type, "" when none is set.
func DefaultPlugin(s State) string {
	return s.Plugins.Default()
}

// Plugins returns the registered plugins keyed by type name.
func Plugins(s State) map[string]plugin.Descriptor {
	return s.Plugins.Plugins()
}

// Plugin returns the descriptor registered under name.
func Plugin(s State, name string) (plugin.Descriptor, bool) {
	return s.Plugins.Get(name)
}

// PluginOrDefault resolves name, falling back to the default plugin
// when name is empty.
func PluginOrDefault(s State, name string) (plugin.Descriptor, bool) {
	return s.Plugins.GetOrDefault(name)
}

// Documents returns the document store.
func Documents(s State) document.Store {
	return s.Documents
}

// Document returns the document stored under id.
func Document(s State, id string) (document.Document, bool) {
	return s.Documents.Get(id)
}

// Focused returns the focused document id and whether one is focused.
func Focused(s State) (string, bool) {
	return s.Focus, s.Focus != ""
}

// Clipboard returns the clipboard entries, most recent first.
func Clipboard(s State) []document.Document {
	out := make([]document.Document, len(s.Clipboard))
	copy(out, s.Clipboard)
	return out
}

// CanUndo reports whether an undo step is available.
func CanUndo(s State) bool {
	return s.History.CanUndo()
}

// CanRedo reports whether a redo step is available.
func CanRedo(s State) bool {
	return s.History.CanRedo()
}

// DocumentsChanged reports whether next holds a different document store
// than prev. Reducers return the very same store when an edit has no
// effect, so this is an identity check rather than a deep comparison.
func DocumentsChanged(prev, next State) bool {
	return reflect.ValueOf(prev.Documents).Pointer() != reflect.ValueOf(next.Documents).Pointer()
}
