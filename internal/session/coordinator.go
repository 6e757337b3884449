package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// Outcome is how a join attempt ended.
type Outcome int

const (
	// OutcomeReady means the room was joined.
	OutcomeReady Outcome = iota
	// OutcomeDegraded means the join failed and play continues locally.
	OutcomeDegraded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReady:
		return "ready"
	case OutcomeDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// Result reports a finished join attempt.
type Result struct {
	Outcome Outcome
	Reason  error // set when degraded
}

// Coordinator tracks session readiness. Readiness flips to true exactly once,
// when the join attempt resolves either way; only a ready outcome provides a
// channel. The game loop reads it while a join may be finishing on another
// goroutine.
type Coordinator struct {
	ready   atomic.Bool
	timeout time.Duration
	logger  *log.Logger

	mu      sync.RWMutex
	channel Channel
	result  *Result
	joining bool
}

// NewCoordinator creates a coordinator. A zero timeout leaves the join bounded
// only by its context. logger may be nil.
func NewCoordinator(timeout time.Duration, logger *log.Logger) *Coordinator {
	return &Coordinator{timeout: timeout, logger: logger}
}

var errAlreadyJoining = errors.New("session: join already attempted")

// Join makes the single join attempt. Failure is not fatal: the coordinator
// still becomes ready, without a channel. A second call returns degraded
// without trying again.
func (c *Coordinator) Join(ctx context.Context, j Joiner) Result {
	c.mu.Lock()
	if c.joining || c.result != nil {
		c.mu.Unlock()
		return Result{Outcome: OutcomeDegraded, Reason: errAlreadyJoining}
	}
	c.joining = true
	c.mu.Unlock()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	ch, err := j.Join(ctx)
	if err == nil && ch == nil {
		err = errors.New("session: joiner returned no channel")
	}

	res := Result{Outcome: OutcomeReady}
	if err != nil {
		res = Result{Outcome: OutcomeDegraded, Reason: err}
		if c.logger != nil {
			c.logger.Warn("multiplayer unavailable, playing locally", "error", err)
		}
	} else if c.logger != nil {
		c.logger.Info("joined session", "peer", ch.Self())
	}

	c.mu.Lock()
	if err == nil {
		c.channel = ch
	}
	c.result = &res
	c.joining = false
	c.mu.Unlock()

	c.SetReady(true)
	return res
}

// SetReady sets the readiness flag. Readiness never goes back to false.
func (c *Coordinator) SetReady(ready bool) {
	if ready {
		c.ready.Store(true)
	}
}

// Ready reports whether the join attempt has resolved.
func (c *Coordinator) Ready() bool {
	return c.ready.Load()
}

// Channel returns the room channel once ready with a successful join.
func (c *Coordinator) Channel() (Channel, bool) {
	if !c.Ready() {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.channel, c.channel != nil
}

// Result returns the join result, if the attempt has finished.
func (c *Coordinator) Result() (Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.result == nil {
		return Result{}, false
	}
	return *c.result, true
}

// Online reports whether the game is connected to a room.
func (c *Coordinator) Online() bool {
	_, ok := c.Channel()
	return ok
}
