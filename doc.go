// Package wakeloop provides the run-loop and wake-signaling core of a
// cooperative task executor: a lock-free handshake between interrupt-style
// signal sources and a single polling loop that alternates between draining
// ready work and suspending in a low-power wait.
//
// # Architecture
//
// The package is deliberately small and split along the seams that vary per
// deployment:
//
//   - [WakeFlag]: a single level-triggered boolean, settable from any
//     goroutine, tested-and-cleared only by the run loop.
//   - [IdleHook]: the pluggable "halt until interrupt" primitive. The run
//     loop suspends in [IdleHook.WaitForInterrupt]; signal sources resume it
//     via [IdleHook.Interrupt].
//   - [Executor]: the forever-loop driver. Each iteration polls the
//     scheduler, then commits to waiting, consults the flag, and either
//     loops back immediately or suspends.
//   - [SchedulerCore]: the external collaborator owning the ready queue and
//     task storage. It is handed a [WakeCallback] at construction and must
//     invoke it whenever deferred work becomes runnable.
//
// A reference SchedulerCore implementation lives in the coopsched
// subpackage.
//
// # Wakeup Correctness
//
// The loop publishes its intent to wait (a state transition to
// [StateWaiting]) before the final [WakeFlag.ConsumeIfSet] check. A
// concurrent Signal therefore either lands before the check, in which case
// the loop skips the wait, or observes the waiting state and delivers an
// interrupt to the idle hook. Latching hooks ([EventIdleHook],
// EventfdIdleHook) retain an interrupt that arrives before the wait begins,
// which closes the check-then-wait race entirely.
//
// Not every idle hook can close that race. [SpinIdleHook] discards
// interrupts and merely yields the processor; it never loses work (the flag
// is re-checked every iteration) but it is not power-saving and the
// signal/wait window remains open. Some hardware targets in the source
// family of this design have the same limitation, where the low-power
// status bit cannot be safely manipulated before the wait instruction
// executes. Treat the closed race as a property of the chosen hook, not of
// this package.
//
// # Thread Safety
//
// [WakeFlag.Signal], [IdleHook.Interrupt], and the [WakeCallback] handed to
// the scheduler are safe to call from any goroutine, reentrantly, and
// repeatedly. [WakeFlag.ConsumeIfSet] belongs to the run loop alone. An
// [Executor] drives at most one run loop: concurrent or repeated calls to
// [Executor.Run] fail with [ErrExecutorRunning] or [ErrExecutorStopped].
//
// # Execution Model
//
// Scheduling is strictly cooperative. A single goroutine executes the loop
// and everything the scheduler runs from PollOnce; concurrency comes only
// from signal sources. The sole suspension point is the idle hook; no other
// operation blocks. The loop has no terminal state of its own: [Executor.Run]
// returns only when the supplied context is cancelled, which models the
// enclosing process halting.
package wakeloop
