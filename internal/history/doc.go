// Package history records committed edit batches for undo and redo.
//
// Every effective edit is captured as an Undoable holding the document
// entry before and after the edit. Reverting writes the before value back
// (or deletes the entry when there was none); applying writes the after
// value. Insert, change and remove are all handled by this one rule.
//
// # Batches
//
// Undoables are grouped into batches, one batch per undo step:
//
//	buf = buf.Record(u)  // joins the open batch or starts a new one
//	buf = buf.Commit()   // closes the open batch
//
//	buf, batch, ok := buf.Undo()
//	docs = batch.Revert(docs)
//
// Which batch an edit lands in is decided by its commit mode. See
// Buffer.Record.
//
// # Focus
//
// Each Undoable also carries the focused id before and after its edit.
// Undoing a batch returns focus to Batch.FocusBefore and redoing it to
// Batch.FocusAfter, provided that document exists at that point.
//
// # Invariant
//
// Replaying Actions on top of Initial.Documents yields the current
// document store. When Limit trims old batches they are folded into
// Initial, together with the focus that followed them, so the invariant
// keeps holding.
//
// Buffer is a value type. All methods return a new Buffer and never
// modify slices shared with an older value.
package history
