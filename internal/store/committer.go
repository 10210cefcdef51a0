package store

import (
	"context"
	"sync"
	"time"

	"github.com/dshills/edtr/internal/action"
	"github.com/dshills/edtr/internal/logging"
	"github.com/dshills/edtr/internal/state"
)

// DefaultCommitDelay is the idle time after which open edits are
// committed as one undo step.
const DefaultCommitDelay = time.Second

// Committer closes the open undo step once edits pause.
//
// Every effective edit restarts the timer. When it fires the committer
// dispatches action.Commit, so a burst of keystrokes ends up as one undo
// step while a pause starts a new one.
type Committer struct {
	mu      sync.Mutex
	target  Dispatcher
	delay   time.Duration
	timer   *time.Timer
	gen     uint64
	stopped bool

	logger *logging.Logger
}

// NewCommitter creates a committer that dispatches to target.
func NewCommitter(target Dispatcher, delay time.Duration, logger *logging.Logger) *Committer {
	if delay <= 0 {
		delay = DefaultCommitDelay
	}
	if logger == nil {
		logger = logging.Null()
	}
	return &Committer{
		target: target,
		delay:  delay,
		logger: logger.WithComponent("committer"),
	}
}

// Attach subscribes the committer to s and stops it when ctx ends.
func (c *Committer) Attach(ctx context.Context, s *Store) {
	unsubscribe := s.Subscribe(c.Observe)
	go func() {
		<-ctx.Done()
		unsubscribe()
		c.Stop()
	}()
}

// Observe restarts the timer for effective edits. It has the Listener
// signature.
func (c *Committer) Observe(ch Change) {
	if _, ok := ch.Action.(action.Edit); !ok {
		return
	}
	if !state.DocumentsChanged(ch.Prev, ch.Next) {
		return
	}
	c.Touch()
}

// Touch restarts the idle timer.
func (c *Committer) Touch() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.gen++
	gen := c.gen
	c.timer = time.AfterFunc(c.delay, func() { c.fire(gen) })
}

// Pending reports whether a commit is scheduled.
func (c *Committer) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil
}

// Flush commits immediately and cancels the scheduled commit.
func (c *Committer) Flush() error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return ErrCommitterStopped
	}
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	return c.target.Dispatch(action.Commit{})
}

// Stop cancels any scheduled commit. Later edits are ignored.
func (c *Committer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopped = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Committer) fire(gen uint64) {
	c.mu.Lock()
	if c.stopped || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.mu.Unlock()

	if err := c.target.Dispatch(action.Commit{}); err != nil {
		c.logger.Error("commit failed: %v", err)
	}
}
