package coopsched

import "time"

// Status reports how a cooperative poll step completed.
type Status uint8

const (
	// StatusDone indicates the task completed; it will not run again.
	StatusDone Status = iota
	// StatusYielded indicates the task gave up the processor voluntarily
	// but is still runnable; it is requeued at the back of the ready queue.
	StatusYielded
	// StatusParked indicates the task is waiting on an external event; it
	// runs again only after its [Waker] fires.
	StatusParked
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusDone:
		return "Done"
	case StatusYielded:
		return "Yielded"
	case StatusParked:
		return "Parked"
	default:
		return "Unknown"
	}
}

// Task is one unit of cooperative work: a poll function called once per
// scheduling step, running to its next suspension point and reporting how
// it left off. Tasks run on the executor's loop goroutine, never
// concurrently with each other.
type Task func(t *Turn) Status

// Turn is the per-step context handed to a task. It is only valid for the
// duration of the call; take a [Waker] or [Spawner] from it to retain
// capabilities beyond the step.
type Turn struct {
	c  *Core
	id uint64
}

// ID returns the task's scheduler-unique identifier.
func (t *Turn) ID() uint64 {
	return t.id
}

// Waker returns a copyable wake handle for this task. Hand it to whatever
// event source should make the task runnable again after it parks.
func (t *Turn) Waker() Waker {
	return Waker{c: t.c, id: t.id}
}

// Spawner returns the scheduler's spawn capability, allowing a running task
// to enqueue new tasks.
func (t *Turn) Spawner() Spawner {
	return Spawner{c: t.c}
}

// Waker marks one task runnable. The zero value is inert.
//
// Wake may be called from any goroutine, repeatedly, and at any time: a
// wake for a task that is already queued is redundant, a wake for a task
// that is currently running is remembered until the step finishes (so a
// park that races with its own wakeup is not lost), and a wake for a
// completed task is a no-op.
type Waker struct {
	c  *Core
	id uint64
}

// Wake marks the task runnable and signals the executor. Never blocks.
func (w Waker) Wake() {
	if w.c == nil {
		return
	}
	w.c.wakeTask(w.id)
}

// After arranges for w.Wake to be invoked once d has elapsed, from a timer
// goroutine. The returned timer may be stopped to cancel delivery.
func After(d time.Duration, w Waker) *time.Timer {
	return time.AfterFunc(d, w.Wake)
}
