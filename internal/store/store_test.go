package store_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dshills/edtr/internal/action"
	"github.com/dshills/edtr/internal/document"
	"github.com/dshills/edtr/internal/logging"
	"github.com/dshills/edtr/internal/plugin/builtin"
	"github.com/dshills/edtr/internal/state"
	"github.com/dshills/edtr/internal/store"
)

func newStore(opts ...store.Option) *store.Store {
	return store.New(state.NewWithPlugins(state.DefaultOptions(), builtin.Registry()), opts...)
}

func TestDispatchUpdatesState(t *testing.T) {
	s := newStore()

	if err := s.Dispatch(action.Insert{ID: "d1", Plugin: "text", State: "hello"}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	d, ok := state.Document(s.State(), "d1")
	if !ok || d.State != "hello" {
		t.Errorf("d1 = %+v, %v", d, ok)
	}
}

func TestDispatchRejectsInvalid(t *testing.T) {
	var buf bytes.Buffer
	s := newStore(store.WithLogger(logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})))

	before := s.State()
	err := s.Dispatch(action.Insert{Plugin: "text"})
	if !errors.Is(err, action.ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
	if state.DocumentsChanged(before, s.State()) {
		t.Error("rejected action changed state")
	}
	if !strings.Contains(buf.String(), "rejected action") {
		t.Errorf("expected error log, got %q", buf.String())
	}
}

func TestDispatchWarnsOnNoopEdit(t *testing.T) {
	var buf bytes.Buffer
	s := newStore(store.WithLogger(logging.New(logging.Config{Level: logging.LevelWarn, Output: &buf})))

	if err := s.Dispatch(action.Change{ID: "missing-id", State: "x"}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "edit had no effect") || !strings.Contains(out, "id=missing-id") {
		t.Errorf("expected warning for missing id, got %q", out)
	}
}

func TestSubscribe(t *testing.T) {
	s := newStore()

	var got []action.Type
	unsubscribe := s.Subscribe(func(c store.Change) {
		got = append(got, c.Action.Type())
	})

	_ = s.DispatchAll(
		action.Insert{ID: "a", Plugin: "text"},
		action.Focus{ID: "a"},
	)
	unsubscribe()
	_ = s.Dispatch(action.Remove{ID: "a"})

	if len(got) != 2 || got[0] != action.TypeInsert || got[1] != action.TypeFocus {
		t.Errorf("listener saw %v", got)
	}
}

func TestListenerPanicRecovered(t *testing.T) {
	s := newStore()

	s.Subscribe(func(store.Change) { panic("boom") })
	called := false
	s.Subscribe(func(store.Change) { called = true })

	if err := s.Dispatch(action.SetEditable{Editable: false}); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("second listener not called after first panicked")
	}
	if state.IsEditable(s.State()) {
		t.Error("state not updated")
	}
}

func TestListenerMayDispatch(t *testing.T) {
	s := newStore()

	s.Subscribe(func(c store.Change) {
		if ins, ok := c.Action.(action.Insert); ok {
			_ = s.Dispatch(action.Focus{ID: ins.ID})
		}
	})

	if err := s.Dispatch(action.Insert{ID: "a", Plugin: "text"}); err != nil {
		t.Fatal(err)
	}
	if id, _ := state.Focused(s.State()); id != "a" {
		t.Errorf("Focused() = %q, want a", id)
	}
}

func TestConcurrentDispatch(t *testing.T) {
	s := newStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Dispatch(action.Insert{ID: string(rune('a' + i)), Plugin: "text"})
		}(i)
	}
	wg.Wait()

	if n := state.Documents(s.State()).Len(); n != 20 {
		t.Errorf("Len() = %d, want 20", n)
	}
}

func TestConcurrentDispatchDeliversInOrder(t *testing.T) {
	s := newStore()

	var (
		mu        sync.Mutex
		last      int
		delivered int
		broken    int
	)
	s.Subscribe(func(c store.Change) {
		mu.Lock()
		defer mu.Unlock()
		if c.Prev.Documents.Len() != last {
			broken++
		}
		last = c.Next.Documents.Len()
		delivered++
	})

	const workers, perWorker = 8, 200
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_ = s.Dispatch(action.Insert{Plugin: "text", ID: document.NewID()})
			}
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if delivered != workers*perWorker {
		t.Errorf("delivered %d changes, want %d", delivered, workers*perWorker)
	}
	if broken != 0 {
		t.Errorf("%d changes did not follow the previous change", broken)
	}
}

func TestNestedDispatchDeliveredAfterCurrentChange(t *testing.T) {
	s := newStore()

	var order []string
	s.Subscribe(func(c store.Change) {
		order = append(order, string(c.Action.Type()))
		if _, ok := c.Action.(action.Insert); ok {
			_ = s.Dispatch(action.Commit{})
		}
	})
	s.Subscribe(func(c store.Change) {
		order = append(order, "second:"+string(c.Action.Type()))
	})

	if err := s.Dispatch(action.Insert{ID: "a", Plugin: "text"}); err != nil {
		t.Fatal(err)
	}

	want := []string{"Insert", "second:Insert", "Commit", "second:Commit"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("delivery order = %v, want %v", order, want)
	}
}

func TestCommitterClosesBatchAfterIdle(t *testing.T) {
	s := newStore()
	c := store.NewCommitter(s, 20*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Attach(ctx, s)

	_ = s.DispatchAll(
		action.Insert{ID: "a", Plugin: "text", State: ""},
		action.Commit{},
		action.Change{ID: "a", State: "h"},
	)
	if s.State().History.Pending == 0 {
		t.Fatal("expected an open batch right after typing")
	}

	deadline := time.Now().Add(2 * time.Second)
	for s.State().History.Pending != 0 {
		if time.Now().After(deadline) {
			t.Fatal("committer never closed the batch")
		}
		time.Sleep(5 * time.Millisecond)
	}

	_ = s.Dispatch(action.Change{ID: "a", State: "hi"})
	if got := s.State().History.UndoCount(); got != 3 {
		t.Errorf("UndoCount() = %d, want 3", got)
	}
}

func TestCommitterFlushAndStop(t *testing.T) {
	s := newStore()
	c := store.NewCommitter(s, time.Hour, nil)
	s.Subscribe(c.Observe)

	_ = s.Dispatch(action.Insert{ID: "a", Plugin: "text"})
	if !c.Pending() {
		t.Fatal("expected scheduled commit")
	}

	if err := c.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if c.Pending() {
		t.Error("Flush should cancel the timer")
	}
	if s.State().History.Pending != 0 {
		t.Error("Flush should close the open batch")
	}

	c.Stop()
	_ = s.Dispatch(action.Change{ID: "a", State: "x"})
	if c.Pending() {
		t.Error("stopped committer scheduled a commit")
	}
	if err := c.Flush(); !errors.Is(err, store.ErrCommitterStopped) {
		t.Errorf("expected ErrCommitterStopped, got %v", err)
	}
}

func TestCommitterIgnoresNoopEdits(t *testing.T) {
	s := newStore()
	c := store.NewCommitter(s, time.Hour, nil)
	s.Subscribe(c.Observe)
	defer c.Stop()

	_ = s.Dispatch(action.Remove{ID: "missing"})
	_ = s.Dispatch(action.SetEditable{Editable: false})
	if c.Pending() {
		t.Error("committer scheduled a commit for a no-op")
	}
}
