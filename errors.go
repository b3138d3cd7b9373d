package wakeloop

import "errors"

// Standard errors.
var (
	// ErrExecutorRunning is returned when Run() is called on an executor
	// whose run loop is already active.
	ErrExecutorRunning = errors.New("wakeloop: executor is already running")

	// ErrExecutorStopped is returned when Run() is called on an executor
	// whose run loop has already returned. Executors are single-use.
	ErrExecutorStopped = errors.New("wakeloop: executor has been stopped")

	// ErrNilSchedulerCore is returned by New when no scheduler core is
	// provided.
	ErrNilSchedulerCore = errors.New("wakeloop: scheduler core is nil")

	// ErrNilIdleHook is returned when WithIdleHook is given a nil hook.
	ErrNilIdleHook = errors.New("wakeloop: idle hook is nil")
)
