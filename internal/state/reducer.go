package state

import (
	"github.com/dshills/edtr/internal/action"
	"github.com/dshills/edtr/internal/document"
	"github.com/dshills/edtr/internal/history"
	"github.com/dshills/edtr/internal/plugin"
)

// Reduce returns the state that follows prev after a.
//
// Actions that fail validation are rejected with an
// *action.InvalidActionError and prev is returned unchanged. Edits that
// cannot apply, such as an insert of an unregistered plugin type or a
// change of a missing id or of a stateless document, are not errors: they
// leave the state as it is.
func Reduce(prev State, a action.Action) (State, error) {
	if a == nil {
		return prev, action.Invalid("", "", "action is nil")
	}
	if err := a.Validate(); err != nil {
		return prev, err
	}
	if err := checkPreconditions(prev, a); err != nil {
		return prev, err
	}

	return State{
		Editable:  reduceEditable(prev.Editable, a, prev),
		Plugins:   reducePlugins(prev.Plugins, a, prev),
		Clipboard: reduceClipboard(prev.Clipboard, a, prev),
		Documents: reduceDocuments(prev.Documents, a, prev),
		Focus:     reduceFocus(prev.Focus, a, prev),
		History:   reduceHistory(prev.History, a, prev),
		Options:   prev.Options,
	}, nil
}

// ReduceAll folds actions over s, stopping at the first rejected action.
func ReduceAll(s State, actions ...action.Action) (State, error) {
	for _, a := range actions {
		next, err := Reduce(s, a)
		if err != nil {
			return s, err
		}
		s = next
	}
	return s, nil
}

// checkPreconditions rejects registry actions that would break the
// registry invariants.
func checkPreconditions(s State, a action.Action) error {
	switch a := a.(type) {
	case action.RegisterPlugin:
		if _, err := s.Plugins.Register(a.Descriptor); err != nil {
			return action.Rejected(a.Type(), err)
		}
	case action.SetDefaultPlugin:
		if _, err := s.Plugins.WithDefault(a.Name); err != nil {
			return action.Rejected(a.Type(), err)
		}
	}
	return nil
}

func reduceEditable(prev bool, a action.Action, _ State) bool {
	switch a := a.(type) {
	case action.SetEditable:
		return a.Editable
	default:
		return prev
	}
}

func reducePlugins(prev plugin.Registry, a action.Action, _ State) plugin.Registry {
	switch a := a.(type) {
	case action.RegisterPlugin:
		next, err := prev.Register(a.Descriptor)
		if err != nil {
			return prev
		}
		return next
	case action.SetDefaultPlugin:
		next, err := prev.WithDefault(a.Name)
		if err != nil {
			return prev
		}
		return next
	default:
		return prev
	}
}

func reduceClipboard(prev []document.Document, a action.Action, s State) []document.Document {
	switch a := a.(type) {
	case action.CopyToClipboard:
		d, ok := s.Documents.Get(a.ID)
		if !ok {
			return prev
		}
		limit := s.Options.ClipboardLimit
		if limit <= 0 {
			limit = DefaultClipboardLimit
		}
		next := make([]document.Document, 0, min(len(prev)+1, limit))
		next = append(next, d)
		for _, entry := range prev {
			if len(next) == limit {
				break
			}
			next = append(next, entry)
		}
		return next
	default:
		return prev
	}
}

func reduceDocuments(prev document.Store, a action.Action, s State) document.Store {
	switch a := a.(type) {
	case action.Insert:
		return insertDocument(prev, s.Plugins, a)
	case action.Change:
		if !acceptsState(prev, s.Plugins, a.ID) {
			return prev
		}
		next, _ := prev.Change(a.ID, a.State)
		return next
	case action.Remove:
		return prev.Remove(a.ID)
	case action.Undo:
		batch, ok := s.History.PeekUndo()
		if !ok {
			return prev
		}
		return batch.Revert(prev)
	case action.Redo:
		batch, ok := s.History.PeekRedo()
		if !ok {
			return prev
		}
		return batch.Apply(prev)
	default:
		return prev
	}
}

// insertDocument resolves the plugin of a and stores the new document.
// Unresolved plugin types leave docs unchanged.
func insertDocument(docs document.Store, plugins plugin.Registry, a action.Insert) document.Store {
	d, ok := plugins.GetOrDefault(a.Plugin)
	if !ok {
		return docs
	}
	pluginState := a.State
	if d.IsStateful() && pluginState == nil {
		pluginState = d.NewState()
	}
	return docs.Insert(a.ID, d.Name, d.IsStateful(), pluginState)
}

// acceptsState reports whether the document under id exists and belongs to
// a registered stateful plugin.
func acceptsState(docs document.Store, plugins plugin.Registry, id string) bool {
	doc, ok := docs.Get(id)
	if !ok {
		return false
	}
	d, ok := plugins.Get(doc.Plugin)
	return ok && d.IsStateful()
}

func reduceFocus(prev string, a action.Action, s State) string {
	switch a := a.(type) {
	case action.Focus:
		if a.ID == "" || s.Documents.Has(a.ID) {
			return a.ID
		}
		return prev
	case action.Remove:
		if a.ID == prev {
			return ""
		}
		return prev
	case action.Undo:
		batch, ok := s.History.PeekUndo()
		if !ok {
			return prev
		}
		return restoreFocus(batch.FocusBefore(), batch.Revert(s.Documents))
	case action.Redo:
		batch, ok := s.History.PeekRedo()
		if !ok {
			return prev
		}
		return restoreFocus(batch.FocusAfter(), batch.Apply(s.Documents))
	default:
		return prev
	}
}

// restoreFocus returns recorded if it names a document in docs.
func restoreFocus(recorded string, docs document.Store) string {
	if docs.Has(recorded) {
		return recorded
	}
	return ""
}

func reduceHistory(prev history.Buffer, a action.Action, s State) history.Buffer {
	switch a := a.(type) {
	case action.Insert, action.Change, action.Remove:
		e := a.(action.Edit)
		next := reduceDocuments(s.Documents, a, s)
		u, ok := history.Capture(e, s.Documents, next)
		if !ok {
			return prev
		}
		u.FocusBefore = s.Focus
		u.FocusAfter = reduceFocus(s.Focus, a, s)
		return prev.Record(u)
	case action.Commit:
		return prev.Commit()
	case action.Focus:
		if reduceFocus(s.Focus, a, s) != s.Focus {
			return prev.Commit()
		}
		return prev
	case action.Undo:
		next, _, _ := prev.Undo()
		return next
	case action.Redo:
		next, _, _ := prev.Redo()
		return next
	default:
		return prev
	}
}
