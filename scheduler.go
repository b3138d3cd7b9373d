package wakeloop

// WakeCallback signals that deferred work has become runnable.
//
// The executor registers one of these with its [SchedulerCore] at
// construction. From this package's point of view it is exactly
// [WakeFlag.Signal] plus idle-hook interrupt delivery.
//
// Re-entrancy contract: the callback is a short lock-free sequence (an
// atomic store, an atomic load, and at most one non-blocking interrupt
// delivery). It is safe to invoke from any goroutine, concurrently with or
// nested inside the run loop's wait-commit window, and at any point in the
// executor's life, including before Run and after Run has returned.
type WakeCallback func()

// ExecutionContext is an opaque value passed through to the scheduler at
// wake-callback registration time. It may be nil (a constant) when a single
// global flag suffices, or distinct per executor when multiple independent
// run loops coexist and the scheduler needs to tell them apart.
type ExecutionContext any

// Scheduler is the run loop's view of the external collaborator that owns
// the ready queue and task storage.
type Scheduler interface {
	// PollOnce runs every currently-ready task to its next suspension
	// point. It must not block, and it may invoke the registered
	// WakeCallback zero or more times, from arbitrary goroutines, during or
	// after execution.
	//
	// Task panics are the scheduler's concern: the run loop neither
	// recovers them nor defines a recoverable error type for them.
	PollOnce()
}

// SchedulerCore constructs the scheduler side of the handshake. S is the
// scheduler's spawn-capability type: a lightweight, copyable token granting
// permission to enqueue tasks, handed to the Run init callback.
type SchedulerCore[S any] interface {
	// Initialize registers the wake callback to be invoked whenever
	// deferred work becomes ready, and returns the scheduler handle plus an
	// initial spawn capability. It is called exactly once, by [New].
	Initialize(wake WakeCallback, ec ExecutionContext) (Scheduler, S)
}
