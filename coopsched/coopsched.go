package coopsched

import (
	"sync"
	"sync/atomic"

	wakeloop "github.com/joeycumines/go-wakeloop"
	"github.com/joeycumines/logiface"
)

// taskState stores scheduler-visible task state. Guarded by Core.mu except
// where noted.
type taskState struct {
	id          uint64
	fn          Task
	queued      bool // in the ready queue
	running     bool // currently inside its poll step
	wakePending bool // woken mid-step; requeue when the step ends
	done        bool
}

// Core is a FIFO cooperative scheduler implementing
// wakeloop.SchedulerCore[Spawner].
//
// PollOnce runs on the executor's loop goroutine; Spawn and Waker.Wake may
// arrive from any goroutine, so the queue and task table are guarded by a
// mutex. The executor's wake callback is always invoked outside that lock
// (it must stay callable reentrantly and must never observe the scheduler
// mid-mutation anyway).
type Core struct { // betteralign:ignore
	// Prevent copying
	_ [0]func()

	mu     sync.Mutex
	wake   wakeloop.WakeCallback
	ec     wakeloop.ExecutionContext
	nextID uint64
	tasks  map[uint64]*taskState

	// Ready queue, double-buffered so PollOnce drains a snapshot while new
	// arrivals land in a fresh slice.
	ready    []*taskState
	readyBuf []*taskState

	logger *logiface.Logger[logiface.Event]

	panics atomic.Uint64
}

// New constructs a scheduler core.
func New(opts ...Option) (*Core, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Core{
		tasks:  make(map[uint64]*taskState),
		logger: cfg.logger,
	}, nil
}

// Initialize registers the executor's wake callback and returns the
// scheduler handle plus the initial spawn capability. Called once, by
// wakeloop.New.
func (c *Core) Initialize(wake wakeloop.WakeCallback, ec wakeloop.ExecutionContext) (wakeloop.Scheduler, Spawner) {
	c.mu.Lock()
	c.wake = wake
	c.ec = ec
	c.mu.Unlock()
	return c, Spawner{c: c}
}

// PollOnce runs every currently-ready task one step. Tasks that become
// ready during the poll (spawns, yields, wakes) are deferred to the next
// poll; the wake callback fired on their behalf guarantees that next poll
// happens before the executor idles.
func (c *Core) PollOnce() {
	c.mu.Lock()
	batch := c.ready
	c.ready = c.readyBuf[:0]
	c.readyBuf = batch
	c.mu.Unlock()

	for i, st := range batch {
		batch[i] = nil // Clear for GC
		c.runTask(st)
	}
}

// runTask executes one poll step with panic confinement and applies the
// resulting status.
func (c *Core) runTask(st *taskState) {
	c.mu.Lock()
	if st.done {
		c.mu.Unlock()
		return
	}
	st.queued = false
	st.running = true
	st.wakePending = false
	fn := st.fn
	c.mu.Unlock()

	status, panicked := c.invoke(st.id, fn)

	var notify wakeloop.WakeCallback
	c.mu.Lock()
	st.running = false
	switch {
	case panicked || status == StatusDone:
		st.done = true
		delete(c.tasks, st.id)
	case status == StatusYielded:
		c.enqueueLocked(st)
		notify = c.wake
	default: // StatusParked
		if st.wakePending {
			// The waker fired while the task was mid-step; the park must
			// not stick.
			st.wakePending = false
			c.enqueueLocked(st)
			notify = c.wake
		}
	}
	c.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// invoke runs a single poll step, recovering task panics.
func (c *Core) invoke(id uint64, fn Task) (status Status, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			c.panics.Add(1)
			c.logger.Err().Uint64("task", id).Any("panic", r).Log("task panicked; dropping task")
		}
	}()
	t := Turn{c: c, id: id}
	return fn(&t), false
}

// enqueueLocked appends st to the ready queue. Caller holds c.mu.
func (c *Core) enqueueLocked(st *taskState) {
	if st.queued || st.done {
		return
	}
	st.queued = true
	c.ready = append(c.ready, st)
}

// spawn registers and enqueues a new task, waking the executor.
func (c *Core) spawn(fn Task) uint64 {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	st := &taskState{id: id, fn: fn}
	c.tasks[id] = st
	c.enqueueLocked(st)
	wake := c.wake
	c.mu.Unlock()

	c.logger.Debug().Uint64("task", id).Log("task spawned")
	if wake != nil {
		wake()
	}
	return id
}

// wakeTask marks a task runnable, from any goroutine. Stale wakes (unknown
// or completed task) are no-ops.
func (c *Core) wakeTask(id uint64) {
	c.mu.Lock()
	st, ok := c.tasks[id]
	if !ok || st.done {
		c.mu.Unlock()
		return
	}
	if st.running {
		st.wakePending = true
	} else {
		c.enqueueLocked(st)
	}
	wake := c.wake
	c.mu.Unlock()

	if wake != nil {
		wake()
	}
}

// TaskCount returns the number of live (not yet completed) tasks.
func (c *Core) TaskCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tasks)
}

// Panics returns the number of task panics confined so far.
func (c *Core) Panics() uint64 {
	return c.panics.Load()
}

// Spawner is the copyable capability granting permission to enqueue tasks.
// It has no independent lifecycle and owns nothing; copies are
// interchangeable. The zero value is unbound and rejects spawns.
type Spawner struct {
	c *Core
}

// Spawn enqueues a new task and wakes the executor. Callable from the Run
// init callback, from running tasks, or from any other goroutine.
func (s Spawner) Spawn(fn Task) error {
	if s.c == nil {
		return ErrInvalidSpawner
	}
	if fn == nil {
		return ErrNilTask
	}
	s.c.spawn(fn)
	return nil
}
