package history

import (
	"github.com/dshills/edtr/internal/action"
	"github.com/dshills/edtr/internal/document"
)

// Kind classifies a recorded edit.
type Kind int

// Edit kinds.
const (
	KindInsert Kind = iota
	KindChange
	KindRemove
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindChange:
		return "change"
	case KindRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// KindOf returns the kind of an edit action.
func KindOf(e action.Edit) Kind {
	switch e.(type) {
	case action.Insert:
		return KindInsert
	case action.Change:
		return KindChange
	default:
		return KindRemove
	}
}

// Undoable is one reversible edit of a single document entry.
type Undoable struct {
	Kind Kind
	ID   string

	// Before is the entry prior to the edit, nil if it did not exist.
	Before *document.Document
	// After is the entry following the edit, nil if it was removed.
	After *document.Document

	// FocusBefore and FocusAfter are the focused ids around the edit.
	FocusBefore string
	FocusAfter  string

	Commit action.CommitMode
}

// Capture builds the undoable for an edit that turned prev into next.
// It returns false if the entry at the edited id did not change.
func Capture(e action.Edit, prev, next document.Store) (Undoable, bool) {
	id := e.DocumentID()
	before, hadBefore := prev.Get(id)
	after, hasAfter := next.Get(id)

	if hadBefore == hasAfter && (!hadBefore || before.Equal(after)) {
		return Undoable{}, false
	}

	u := Undoable{Kind: KindOf(e), ID: id, Commit: e.CommitMode()}
	if hadBefore {
		u.Before = &before
	}
	if hasAfter {
		u.After = &after
	}
	return u, true
}

// Revert undoes the edit on s.
func (u Undoable) Revert(s document.Store) document.Store {
	return s.Restore(u.ID, u.Before)
}

// Apply redoes the edit on s.
func (u Undoable) Apply(s document.Store) document.Store {
	return s.Restore(u.ID, u.After)
}

// Batch is a group of edits undone and redone together.
type Batch []Undoable

// Revert undoes every edit of the batch, most recent first.
func (b Batch) Revert(s document.Store) document.Store {
	for i := len(b) - 1; i >= 0; i-- {
		s = b[i].Revert(s)
	}
	return s
}

// Apply redoes every edit of the batch in recorded order.
func (b Batch) Apply(s document.Store) document.Store {
	for _, u := range b {
		s = u.Apply(s)
	}
	return s
}

// FocusBefore returns the focus that preceded the batch.
func (b Batch) FocusBefore() string {
	if len(b) == 0 {
		return ""
	}
	return b[0].FocusBefore
}

// FocusAfter returns the focus that followed the batch.
func (b Batch) FocusAfter() string {
	if len(b) == 0 {
		return ""
	}
	return b[len(b)-1].FocusAfter
}

// IDs returns the document ids touched by the batch, in first-touch order.
func (b Batch) IDs() []string {
	seen := make(map[string]bool, len(b))
	ids := make([]string, 0, len(b))
	for _, u := range b {
		if !seen[u.ID] {
			seen[u.ID] = true
			ids = append(ids, u.ID)
		}
	}
	return ids
}
