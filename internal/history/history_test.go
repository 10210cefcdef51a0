package history

import (
	"testing"

	"github.com/dshills/edtr/internal/action"
	"github.com/dshills/edtr/internal/document"
)

// edit applies e to docs the way the documents reducer does, records the
// result in buf and returns both.
func edit(t *testing.T, buf Buffer, docs document.Store, e action.Edit) (Buffer, document.Store) {
	t.Helper()

	var next document.Store
	switch a := e.(type) {
	case action.Insert:
		next = docs.Insert(a.ID, a.Plugin, true, a.State)
	case action.Change:
		next, _ = docs.Change(a.ID, a.State)
	case action.Remove:
		next = docs.Remove(a.ID)
	}

	u, ok := Capture(e, docs, next)
	if !ok {
		return buf, next
	}
	return buf.Record(u), next
}

func TestCaptureNoop(t *testing.T) {
	docs := document.Store{}.Insert("a", "text", true, "x")

	if _, ok := Capture(action.Remove{ID: "missing"}, docs, docs); ok {
		t.Error("expected remove of missing id to capture nothing")
	}
	if _, ok := Capture(action.Change{ID: "a", State: "x"}, docs, docs); ok {
		t.Error("expected unchanged entry to capture nothing")
	}
}

func TestCaptureKinds(t *testing.T) {
	empty := document.Store{}
	one := empty.Insert("a", "text", true, "x")

	u, ok := Capture(action.Insert{ID: "a"}, empty, one)
	if !ok || u.Kind != KindInsert || u.Before != nil || u.After == nil {
		t.Errorf("insert capture = %+v, %v", u, ok)
	}

	u, ok = Capture(action.Remove{ID: "a"}, one, empty)
	if !ok || u.Kind != KindRemove || u.Before == nil || u.After != nil {
		t.Errorf("remove capture = %+v, %v", u, ok)
	}
	if u.Before.State != "x" {
		t.Errorf("remove should keep removed snapshot, got %+v", u.Before)
	}
}

func TestUndoRestoresPreBatch(t *testing.T) {
	buf := New(BaseState{}, 0)
	docs := document.Store{}

	buf, docs = edit(t, buf, docs, action.Insert{ID: "a", Plugin: "text", State: "s0"})
	buf = buf.Commit()
	pre := docs

	buf, docs = edit(t, buf, docs, action.Change{ID: "a", State: "s1", Commit: action.ForceCommit})
	buf, docs = edit(t, buf, docs, action.Insert{ID: "b", Plugin: "text", State: "b0", Commit: action.ForceCombine})
	buf, docs = edit(t, buf, docs, action.Remove{ID: "a", Commit: action.ForceCombine})
	post := docs

	if buf.UndoCount() != 2 {
		t.Fatalf("UndoCount() = %d, want 2", buf.UndoCount())
	}

	buf, batch, ok := buf.Undo()
	if !ok {
		t.Fatal("expected undo")
	}
	docs = batch.Revert(docs)
	if !docs.Equal(pre) {
		t.Errorf("undo: got %v, want %v", docs, pre)
	}

	buf, batch, ok = buf.Redo()
	if !ok {
		t.Fatal("expected redo")
	}
	docs = batch.Apply(docs)
	if !docs.Equal(post) {
		t.Errorf("redo: got %v, want %v", docs, post)
	}
	if buf.CanRedo() {
		t.Error("redo stack should be empty")
	}
}

func TestUndoEmptyIsNoop(t *testing.T) {
	buf := New(BaseState{}, 0)

	next, batch, ok := buf.Undo()
	if ok || batch != nil {
		t.Error("expected nothing to undo")
	}
	if next.CanUndo() || next.CanRedo() {
		t.Error("empty buffer changed")
	}

	if _, _, ok := buf.Redo(); ok {
		t.Error("expected nothing to redo")
	}
}

func TestNewEditClearsRedo(t *testing.T) {
	buf := New(BaseState{}, 0)
	docs := document.Store{}

	buf, docs = edit(t, buf, docs, action.Insert{ID: "a", Plugin: "text", State: "x"})
	buf, batch, _ := buf.Undo()
	docs = batch.Revert(docs)

	if !buf.CanRedo() {
		t.Fatal("expected redo after undo")
	}

	buf, _ = edit(t, buf, docs, action.Insert{ID: "b", Plugin: "text", State: "y"})
	if buf.CanRedo() {
		t.Error("new edit should clear redo stack")
	}
}

func TestAutoCoalescesSameDocumentChanges(t *testing.T) {
	buf := New(BaseState{}, 0)
	docs := document.Store{}

	buf, docs = edit(t, buf, docs, action.Insert{ID: "a", Plugin: "text", State: ""})
	buf = buf.Commit()

	for _, s := range []string{"h", "he", "hel", "hell", "hello"} {
		buf, docs = edit(t, buf, docs, action.Change{ID: "a", State: s})
	}

	if buf.UndoCount() != 2 {
		t.Fatalf("UndoCount() = %d, want 2", buf.UndoCount())
	}
	if buf.Pending != 5 {
		t.Errorf("Pending = %d, want 5", buf.Pending)
	}

	_, batch, _ := buf.Undo()
	docs = batch.Revert(docs)
	a, _ := docs.Get("a")
	if a.State != "" {
		t.Errorf("undo should restore empty text, got %v", a.State)
	}
}

func TestAutoSplitsOnOtherDocument(t *testing.T) {
	buf := New(BaseState{}, 0)
	docs := document.Store{}

	buf, docs = edit(t, buf, docs, action.Insert{ID: "a", Plugin: "text"})
	buf, docs = edit(t, buf, docs, action.Insert{ID: "b", Plugin: "text"})
	buf, docs = edit(t, buf, docs, action.Change{ID: "a", State: "1"})
	buf, _ = edit(t, buf, docs, action.Change{ID: "b", State: "2"})

	if buf.UndoCount() != 4 {
		t.Errorf("UndoCount() = %d, want 4", buf.UndoCount())
	}
}

func TestCommitClosesBatch(t *testing.T) {
	buf := New(BaseState{}, 0)
	docs := document.Store{}

	buf, docs = edit(t, buf, docs, action.Insert{ID: "a", Plugin: "text"})
	buf, docs = edit(t, buf, docs, action.Change{ID: "a", State: "1"})
	buf = buf.Commit()
	if buf.Pending != 0 {
		t.Errorf("Pending = %d after commit", buf.Pending)
	}

	buf, docs = edit(t, buf, docs, action.Change{ID: "a", State: "2"})
	buf, _ = edit(t, buf, docs, action.Change{ID: "a", State: "3", Commit: action.ForceCombine})

	if buf.UndoCount() != 3 {
		t.Errorf("UndoCount() = %d, want 3", buf.UndoCount())
	}
}

func TestForceCombineWithoutOpenBatch(t *testing.T) {
	buf := New(BaseState{}, 0)
	buf, _ = edit(t, buf, document.Store{}, action.Insert{ID: "a", Plugin: "text", Commit: action.ForceCombine})

	if buf.UndoCount() != 1 || buf.Pending != 1 {
		t.Errorf("UndoCount() = %d, Pending = %d", buf.UndoCount(), buf.Pending)
	}
}

func TestRecordDoesNotAlias(t *testing.T) {
	buf := New(BaseState{}, 0)
	docs := document.Store{}

	buf, docs = edit(t, buf, docs, action.Insert{ID: "a", Plugin: "text"})
	base := buf

	left, _ := edit(t, base, docs, action.Insert{ID: "l", Plugin: "text", Commit: action.ForceCombine})
	right, _ := edit(t, base, docs, action.Insert{ID: "r", Plugin: "text", Commit: action.ForceCombine})

	if len(base.Actions[0]) != 1 {
		t.Errorf("base batch modified: %d entries", len(base.Actions[0]))
	}
	if left.Actions[0][1].ID != "l" || right.Actions[0][1].ID != "r" {
		t.Error("sibling buffers share storage")
	}
}

func TestLimitFoldsIntoInitial(t *testing.T) {
	buf := New(BaseState{}, 2)
	docs := document.Store{}

	for _, id := range []string{"a", "b", "c", "d"} {
		buf, docs = edit(t, buf, docs, action.Insert{ID: id, Plugin: "text", State: id})
	}

	if buf.UndoCount() != 2 {
		t.Fatalf("UndoCount() = %d, want 2", buf.UndoCount())
	}
	if !buf.Initial.Documents.Has("a") || !buf.Initial.Documents.Has("b") {
		t.Errorf("trimmed batches not folded: %v", buf.Initial.Documents.IDs())
	}
	if !buf.Replay().Equal(docs) {
		t.Errorf("Replay() = %v, want %v", buf.Replay().IDs(), docs.IDs())
	}
}

func TestBatchIDs(t *testing.T) {
	b := Batch{{ID: "a"}, {ID: "b"}, {ID: "a"}}
	ids := b.IDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("IDs() = %v", ids)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{KindInsert, "insert"},
		{KindChange, "change"},
		{KindRemove, "remove"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestBatchFocus(t *testing.T) {
	b := Batch{
		{ID: "a", FocusBefore: "x", FocusAfter: "x"},
		{ID: "b", FocusBefore: "x", FocusAfter: ""},
	}
	if b.FocusBefore() != "x" || b.FocusAfter() != "" {
		t.Errorf("FocusBefore() = %q, FocusAfter() = %q", b.FocusBefore(), b.FocusAfter())
	}
	if (Batch{}).FocusBefore() != "" || (Batch{}).FocusAfter() != "" {
		t.Error("empty batch should report no focus")
	}
}

func TestLimitFoldsFocusIntoInitial(t *testing.T) {
	buf := New(BaseState{}, 1)
	docs := document.Store{}.Insert("a", "text", true, "x")

	next, _ := docs.Change("a", "y")
	u, _ := Capture(action.Change{ID: "a", State: "y"}, docs, next)
	u.FocusBefore, u.FocusAfter = "", "a"
	buf = buf.Record(u).Commit()

	after, _ := next.Change("a", "z")
	u, _ = Capture(action.Change{ID: "a", State: "z"}, next, after)
	u.FocusBefore, u.FocusAfter = "a", "a"
	buf = buf.Record(u)

	if buf.Initial.Focus != "a" {
		t.Errorf("Initial.Focus = %q, want focus after the folded batch", buf.Initial.Focus)
	}
}
