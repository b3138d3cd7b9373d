package wakeloop

import (
	"context"
	"sync/atomic"

	"github.com/joeycumines/logiface"
)

// execTestHooks provides injection points for deterministic race testing.
type execTestHooks struct {
	PostPoll func() // Called after PollOnce, before the wait commit
	PreWait  func() // Called after the flag check, before WaitForInterrupt
	PostWait func() // Called after WaitForInterrupt returns
}

// Executor is the run-loop driver. It owns the wake flag, the idle hook,
// and the loop state machine; the scheduler core it was constructed with
// owns everything about tasks.
//
// S is the spawn-capability type produced by the scheduler core and handed
// to the Run init callback.
//
// An Executor drives at most one run loop and is single-use: store it
// somewhere with a lifetime covering the remainder of the process and call
// [Executor.Run] once. The ownership check is enforced at runtime via the
// state machine rather than by the type system.
type Executor[S any] struct { // betteralign:ignore
	// Prevent copying
	_ [0]func()

	// Collaborator handles, fixed at construction
	sched   Scheduler
	spawner S
	idle    IdleHook

	// Shared signal state
	flag        WakeFlag
	state       *ExecState
	wakePending atomic.Uint32 // Interrupt-delivery deduplication

	logger *logiface.Logger[logiface.Event]
	ec     ExecutionContext
	id     uint64

	// HOOKS: Test hooks for deterministic race testing
	testHooks *execTestHooks
}

var executorIDCounter atomic.Uint64

// New creates an executor bound to the given scheduler core.
//
// The core's wake callback is registered here, before Run: the scheduler
// may signal (and tasks may be spawned, where the core allows it) from the
// moment New returns. Signals that arrive before Run are latched by the
// wake flag and observed by the loop's first flag check.
func New[S any](core SchedulerCore[S], opts ...Option) (*Executor[S], error) {
	if core == nil {
		return nil, ErrNilSchedulerCore
	}

	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	e := &Executor[S]{
		id:     executorIDCounter.Add(1),
		state:  NewExecState(),
		idle:   cfg.idle,
		logger: cfg.logger,
		ec:     cfg.ec,
	}
	e.sched, e.spawner = core.Initialize(e.wake, e.ec)

	return e, nil
}

// wake is the WakeCallback registered with the scheduler core.
//
// It must stay a short lock-free sequence: it may run on any goroutine,
// concurrently with the run loop's wait commit, or reentrantly with itself.
func (e *Executor[S]) wake() {
	// Order matters: publish the flag before observing the loop state. In
	// the seq-cst total order either this store precedes the loop's
	// ConsumeIfSet (work observed, no wait), or the loop's StateWaiting
	// publication precedes our load (interrupt delivered).
	e.flag.Signal()

	if e.state.Load() == StateWaiting {
		if e.wakePending.CompareAndSwap(0, 1) {
			e.idle.Interrupt()
		}
	}
}

// Run invokes init exactly once, synchronously, with the scheduler's spawn
// capability, then drives the run loop forever.
//
// "Forever" is bounded only by ctx: Run returns ctx.Err() once the context
// is cancelled, which is this package's rendition of the enclosing process
// halting. With a background context Run never returns.
//
// The loop body per iteration: PollOnce, commit to waiting, consume the
// wake flag, repoll immediately if it was set, otherwise suspend in the
// idle hook until an interrupt arrives.
func (e *Executor[S]) Run(ctx context.Context, init func(S)) error {
	if !e.state.TryTransition(StateNew, StatePolling) {
		if e.state.Load() == StateStopped {
			return ErrExecutorStopped
		}
		return ErrExecutorRunning
	}
	defer e.state.Store(StateStopped)

	if init != nil {
		init(e.spawner)
	}
	e.logger.Debug().Uint64("executor", e.id).Log("run loop started")

	// Watcher: a cancelled context must rouse a loop suspended in the idle
	// hook. Cancellation rides the normal wake path.
	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			e.wake()
		case <-watchDone:
		}
	}()

	for {
		select {
		case <-ctx.Done():
			e.logger.Debug().Uint64("executor", e.id).Log("run loop halted")
			return ctx.Err()
		default:
		}

		e.sched.PollOnce()

		if e.testHooks != nil && e.testHooks.PostPoll != nil {
			e.testHooks.PostPoll()
		}

		// Critical-section entry: StateWaiting must be visible before the
		// flag check, so a concurrent wake() either loses the race to
		// ConsumeIfSet or sees the state and interrupts the hook.
		e.state.TryTransition(StatePolling, StateWaiting)

		if e.flag.ConsumeIfSet() {
			// Work arrived since the poll started; repoll immediately.
			e.state.TryTransition(StateWaiting, StatePolling)
			continue
		}

		if e.testHooks != nil && e.testHooks.PreWait != nil {
			e.testHooks.PreWait()
		}

		e.idle.WaitForInterrupt()

		// Resumed by an interrupt, or a latched/spurious one; harmless,
		// the next iteration re-checks everything.
		e.wakePending.Store(0)
		e.state.TryTransition(StateWaiting, StatePolling)

		if e.testHooks != nil && e.testHooks.PostWait != nil {
			e.testHooks.PostWait()
		}
	}
}

// State returns the current run-loop state.
func (e *Executor[S]) State() LoopState {
	return e.state.Load()
}

// ID returns the executor's process-unique identifier, mostly for logging.
func (e *Executor[S]) ID() uint64 {
	return e.id
}
