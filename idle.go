package wakeloop

import "runtime"

// IdleHook is the pluggable "halt until interrupt" primitive: the single
// designed suspension point of the run loop.
//
// WaitForInterrupt is called only by the run loop, and only after it has
// committed to waiting; it must suspend until an interrupt is delivered,
// then return. It must be side-effect-free with respect to program state
// other than time elapsed. Spurious returns are permitted (the loop
// re-checks the flag every iteration).
//
// Interrupt is the delivery edge. It must never block, must tolerate any
// goroutine as a caller, and must be idempotent. Implementations that latch
// an Interrupt arriving before the next WaitForInterrupt (so the wait
// returns immediately) close the check-then-wait race; implementations that
// cannot latch must document that the race stays open.
type IdleHook interface {
	// WaitForInterrupt halts the run loop until an interrupt occurs.
	WaitForInterrupt()
	// Interrupt resumes a pending or imminent WaitForInterrupt.
	Interrupt()
}

// EventIdleHook is the portable default IdleHook: a one-slot latch.
//
// An Interrupt that arrives while no wait is in progress is retained, and
// the next WaitForInterrupt returns immediately, the software equivalent
// of a wait-for-event instruction with an event register. Interrupts do not
// accumulate beyond one.
type EventIdleHook struct {
	_  [0]func() // Prevent copying
	ch chan struct{}
}

// NewEventIdleHook creates a ready-to-use EventIdleHook.
func NewEventIdleHook() *EventIdleHook {
	return &EventIdleHook{ch: make(chan struct{}, 1)}
}

// WaitForInterrupt suspends until Interrupt is (or was already) called.
func (h *EventIdleHook) WaitForInterrupt() {
	<-h.ch
}

// Interrupt latches a wakeup. Non-blocking; extra interrupts coalesce.
func (h *EventIdleHook) Interrupt() {
	select {
	case h.ch <- struct{}{}:
	default:
	}
}

// SpinIdleHook is a degraded fallback IdleHook that merely yields the
// processor instead of suspending.
//
// It is NOT power-saving: the run loop degenerates into a busy poll.
// Interrupt is a no-op, so the signal/wait race window is not closed by
// this hook. Work is never lost (the flag is level-triggered and
// re-checked each iteration), but the loop burns cycles to guarantee that.
// This mirrors the target-family members whose low-power status bit cannot
// be safely manipulated before the wait instruction executes.
type SpinIdleHook struct{}

// WaitForInterrupt yields the processor and returns.
func (SpinIdleHook) WaitForInterrupt() {
	runtime.Gosched()
}

// Interrupt is a no-op; there is nothing suspended to resume.
func (SpinIdleHook) Interrupt() {}
