package wakeloop

import "sync/atomic"

// WakeFlag is the shared work signal: a single level-triggered boolean with
// exactly one reader/clearer role (the run loop) and any number of setter
// roles (interrupt-style signal sources).
//
// The zero value is ready to use, cleared. A WakeFlag is process-lifetime
// state; there is no teardown.
//
// Only [WakeFlag.ConsumeIfSet] ever transitions the flag set→clear. Any
// caller may transition it clear→set or set→set via [WakeFlag.Signal]; the
// latter is redundant, not queued (level signal, not a counter).
type WakeFlag struct {
	_ [0]func() // Prevent copying
	v atomic.Uint32
}

// Signal marks that new ready work exists.
//
// Signal never blocks, never fails, and is safe to call from any goroutine,
// concurrently, repeatedly, and reentrantly (including nested inside a
// racing ConsumeIfSet). It is a single atomic store; Go atomics are
// sequentially consistent, so the effect is visible to the run loop without
// additional synchronization.
func (f *WakeFlag) Signal() {
	f.v.Store(1)
}

// ConsumeIfSet atomically tests and clears the flag, reporting whether it
// was set.
//
// ConsumeIfSet is reserved for the run loop, and is only meaningful inside
// the wait-commit window (after the loop has published [StateWaiting]). A
// Signal racing with ConsumeIfSet is never dropped: the CAS either observes
// the set flag and clears it, or the Signal lands after the clear and is
// observed by a later call.
func (f *WakeFlag) ConsumeIfSet() bool {
	return f.v.CompareAndSwap(1, 0)
}
