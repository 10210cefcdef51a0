package history

import (
	"github.com/dshills/edtr/internal/action"
	"github.com/dshills/edtr/internal/document"
)

// DefaultLimit is the number of undo steps kept when no limit is given.
const DefaultLimit = 1000

// BaseState is the part of editor state that history replays.
type BaseState struct {
	Documents document.Store
	Focus     string
}

// Buffer is a linear undo/redo log.
type Buffer struct {
	// Initial is the state the first batch in Actions applies to.
	Initial BaseState

	// Actions holds committed batches, most recent last.
	Actions []Batch

	// RedoStack holds batches popped by Undo, most recent last.
	RedoStack []Batch

	// Pending counts edits recorded into the open batch. Zero means no
	// batch is open and the next edit starts a new one.
	Pending int

	// Limit caps len(Actions). Zero or negative disables the cap.
	Limit int
}

// New creates an empty buffer rooted at initial.
func New(initial BaseState, limit int) Buffer {
	return Buffer{Initial: initial, Limit: limit}
}

// Record adds u to the log and clears the redo stack.
//
// Placement follows u.Commit:
//   - ForceCommit starts a new batch.
//   - ForceCombine joins the open batch, or starts one if none is open.
//   - CommitAuto joins the open batch only when both u and the batch's
//     last edit are changes of the same document.
//
// The new or joined batch stays open until Commit, Undo or Redo.
func (b Buffer) Record(u Undoable) Buffer {
	next := b
	next.RedoStack = nil

	if b.joins(u) {
		last := len(b.Actions) - 1
		merged := make(Batch, 0, len(b.Actions[last])+1)
		merged = append(merged, b.Actions[last]...)
		merged = append(merged, u)

		next.Actions = cloneBatches(b.Actions)
		next.Actions[last] = merged
		next.Pending = b.Pending + 1
	} else {
		next.Actions = append(cloneBatches(b.Actions), Batch{u})
		next.Pending = 1
	}

	return next.trim()
}

// joins reports whether u belongs to the open batch.
func (b Buffer) joins(u Undoable) bool {
	if b.Pending == 0 || len(b.Actions) == 0 {
		return false
	}

	switch u.Commit {
	case action.ForceCommit:
		return false
	case action.ForceCombine:
		return true
	}

	open := b.Actions[len(b.Actions)-1]
	prev := open[len(open)-1]
	return prev.Kind == KindChange && u.Kind == KindChange && prev.ID == u.ID
}

// trim folds batches beyond Limit into Initial.
func (b Buffer) trim() Buffer {
	if b.Limit <= 0 || len(b.Actions) <= b.Limit {
		return b
	}

	excess := len(b.Actions) - b.Limit
	docs := b.Initial.Documents
	for _, batch := range b.Actions[:excess] {
		docs = batch.Apply(docs)
	}
	focus := b.Actions[excess-1].FocusAfter()
	if !docs.Has(focus) {
		focus = ""
	}

	b.Initial = BaseState{Documents: docs, Focus: focus}
	b.Actions = cloneBatches(b.Actions[excess:])
	if b.Pending > 0 && len(b.Actions) == 0 {
		b.Pending = 0
	}
	return b
}

// Commit closes the open batch.
func (b Buffer) Commit() Buffer {
	b.Pending = 0
	return b
}

// Undo pops the most recent batch and moves it to the redo stack.
// The returned batch must be reverted against the document store by the
// caller. ok is false when there is nothing to undo.
func (b Buffer) Undo() (next Buffer, batch Batch, ok bool) {
	if len(b.Actions) == 0 {
		return b, nil, false
	}

	last := len(b.Actions) - 1
	batch = b.Actions[last]

	next = b
	next.Actions = cloneBatches(b.Actions[:last])
	next.RedoStack = append(cloneBatches(b.RedoStack), batch)
	next.Pending = 0
	return next, batch, true
}

// Redo pops the most recently undone batch and moves it back onto the
// undo log. The returned batch must be applied to the document store by
// the caller. ok is false when there is nothing to redo.
func (b Buffer) Redo() (next Buffer, batch Batch, ok bool) {
	if len(b.RedoStack) == 0 {
		return b, nil, false
	}

	last := len(b.RedoStack) - 1
	batch = b.RedoStack[last]

	next = b
	next.RedoStack = cloneBatches(b.RedoStack[:last])
	next.Actions = append(cloneBatches(b.Actions), batch)
	next.Pending = 0
	return next.trim(), batch, true
}

// CanUndo returns true if undo is available.
func (b Buffer) CanUndo() bool {
	return len(b.Actions) > 0
}

// CanRedo returns true if redo is available.
func (b Buffer) CanRedo() bool {
	return len(b.RedoStack) > 0
}

// UndoCount returns the number of undo steps available.
func (b Buffer) UndoCount() int {
	return len(b.Actions)
}

// RedoCount returns the number of redo steps available.
func (b Buffer) RedoCount() int {
	return len(b.RedoStack)
}

// PeekUndo returns the batch the next Undo would revert.
func (b Buffer) PeekUndo() (Batch, bool) {
	if len(b.Actions) == 0 {
		return nil, false
	}
	return b.Actions[len(b.Actions)-1], true
}

// PeekRedo returns the batch the next Redo would apply.
func (b Buffer) PeekRedo() (Batch, bool) {
	if len(b.RedoStack) == 0 {
		return nil, false
	}
	return b.RedoStack[len(b.RedoStack)-1], true
}

// Replay applies every batch in Actions to Initial.Documents.
func (b Buffer) Replay() document.Store {
	docs := b.Initial.Documents
	for _, batch := range b.Actions {
		docs = batch.Apply(docs)
	}
	return docs
}

// cloneBatches copies the outer slice with room to append one more
// batch. Batches themselves are never modified after creation.
func cloneBatches(in []Batch) []Batch {
	if len(in) == 0 {
		return nil
	}
	out := make([]Batch, len(in), len(in)+1)
	copy(out, in)
	return out
}
