package notify

import (
	"time"

	"github.com/google/uuid"
)

// DefaultDuration is how long a notification stays visible.
const DefaultDuration = 4 * time.Second

// Clock abstracts time so the frame loop and tests can drive expiry.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now returns the current time.
func (f ClockFunc) Now() time.Time {
	return f()
}

// timer is the single outstanding auto-clear handle. It is bound to the
// notification it was started for.
type timer struct {
	owner    uuid.UUID
	deadline time.Time
}

// Queue holds at most one pending notification. New notifications overwrite
// the pending one and replace its timer.
//
// Queue is driven from the game tick and is not safe for concurrent use.
type Queue struct {
	clock    Clock
	duration time.Duration

	current *Notification
	timer   *timer
}

// NewQueue creates a queue. A nil clock uses wall time; a non-positive
// duration uses DefaultDuration.
func NewQueue(clock Clock, duration time.Duration) *Queue {
	if clock == nil {
		clock = ClockFunc(time.Now)
	}
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Queue{clock: clock, duration: duration}
}

// Enqueue shows n, replacing any pending notification and restarting the
// auto-clear timer for n.
func (q *Queue) Enqueue(n Notification) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	q.current = &n
	q.timer = &timer{owner: n.ID, deadline: q.clock.Now().Add(q.duration)}
}

// Current returns the pending notification, if any.
func (q *Queue) Current() (Notification, bool) {
	if q.current == nil {
		return Notification{}, false
	}
	return *q.current, true
}

// Clear removes the pending notification and cancels its timer.
func (q *Queue) Clear() {
	q.current = nil
	q.timer = nil
}

// Dismiss clears the pending notification only if it is id.
// It reports whether anything was cleared.
func (q *Queue) Dismiss(id uuid.UUID) bool {
	if q.current == nil || q.current.ID != id {
		return false
	}
	q.Clear()
	return true
}

// Remaining returns the time until the pending notification expires.
func (q *Queue) Remaining() time.Duration {
	if q.timer == nil {
		return 0
	}
	return max(q.timer.deadline.Sub(q.clock.Now()), 0)
}

// Tick fires the timer if it has expired. It reports whether a notification
// was cleared.
func (q *Queue) Tick() bool {
	t := q.timer
	if t == nil || q.current == nil {
		return false
	}
	if q.clock.Now().Before(t.deadline) {
		return false
	}
	return q.Dismiss(t.owner)
}
