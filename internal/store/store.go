package store

import (
	"sort"
	"sync"

	"github.com/dshills/edtr/internal/action"
	"github.com/dshills/edtr/internal/logging"
	"github.com/dshills/edtr/internal/state"
)

// Dispatcher accepts actions.
type Dispatcher interface {
	Dispatch(a action.Action) error
}

// Change describes one accepted action.
type Change struct {
	Action action.Action
	Prev   state.State
	Next   state.State
}

// Listener observes accepted actions. Listeners must not block; panics
// are recovered and logged.
type Listener func(Change)

// Store holds the current state of a session.
type Store struct {
	mu    sync.Mutex
	state state.State

	// queue holds accepted changes awaiting delivery, in dispatch order.
	// delivering is set while one caller drains it.
	queue      []Change
	delivering bool

	listenersMu sync.RWMutex
	listeners   map[int]Listener
	nextID      int

	logger *logging.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a store holding initial.
func New(initial state.State, opts ...Option) *Store {
	s := &Store{
		state:     initial,
		listeners: make(map[int]Listener),
		logger:    logging.Null(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("store")
	return s
}

// State returns the current snapshot.
func (s *Store) State() state.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies a synchronously. Rejected actions leave the state
// untouched and return an *action.InvalidActionError.
//
// Listeners see changes in the order actions were applied, so each
// Change.Prev is the Next of the change before it. A Dispatch made while
// another caller is delivering, including one made from a listener, queues
// its change for that caller and returns.
func (s *Store) Dispatch(a action.Action) error {
	s.mu.Lock()
	prev := s.state
	next, err := state.Reduce(prev, a)
	if err != nil {
		s.mu.Unlock()
		s.logger.Error("rejected action: %v", err)
		return err
	}
	s.state = next
	s.queue = append(s.queue, Change{Action: a, Prev: prev, Next: next})
	deliver := !s.delivering
	s.delivering = true
	s.mu.Unlock()

	if e, ok := a.(action.Edit); ok && !state.DocumentsChanged(prev, next) {
		s.logger.WithFields(map[string]any{
			"action": a.Type(),
			"id":     e.DocumentID(),
		}).Warn("edit had no effect")
	} else {
		s.logger.Debug("applied %s", a.Type())
	}

	if deliver {
		s.drain()
	}
	return nil
}

// drain delivers queued changes until the queue is empty.
func (s *Store) drain() {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.queue = nil
			s.delivering = false
			s.mu.Unlock()
			return
		}
		c := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		s.notify(c)
	}
}

// DispatchAll applies actions in order and stops at the first rejected
// action.
func (s *Store) DispatchAll(actions ...action.Action) error {
	for _, a := range actions {
		if err := s.Dispatch(a); err != nil {
			return err
		}
	}
	return nil
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

func (s *Store) notify(c Change) {
	s.listenersMu.RLock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	s.listenersMu.RUnlock()

	sort.Ints(ids)
	for _, id := range ids {
		s.listenersMu.RLock()
		l, ok := s.listeners[id]
		s.listenersMu.RUnlock()
		if ok {
			s.safeCall(l, c)
		}
	}
}

func (s *Store) safeCall(l Listener, c Change) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("listener panic on %s: %v", c.Action.Type(), r)
		}
	}()
	l(c)
}
