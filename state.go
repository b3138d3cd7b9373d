package wakeloop

import (
	"sync/atomic"
)

// LoopState represents the current state of the executor's run loop.
//
// State Machine:
//
//	StateNew (0) → StatePolling (1)        [Run()]
//	StatePolling (1) → StateWaiting (2)    [wait commit via CAS]
//	StateWaiting (2) → StatePolling (1)    [flag consumed, or idle resume]
//	StatePolling (1) → StateStopped (3)    [Run() returning (ctx cancelled)]
//	StateStopped (3) → (terminal)
//
// State Transition Rules:
//   - Use TryTransition() (CAS) for the Polling/Waiting cycle
//   - Use Store() only for the irreversible StateStopped
//
// The Polling→Waiting transition doubles as the critical-section entry: it
// must be published before the final WakeFlag check, so a concurrent Signal
// observing StateWaiting knows to deliver an idle-hook interrupt.
type LoopState uint64

const (
	// StateNew indicates the executor has been created but not started.
	StateNew LoopState = 0
	// StatePolling indicates the loop is actively draining ready tasks.
	StatePolling LoopState = 1
	// StateWaiting indicates the loop has committed to (or is suspended in)
	// the low-power wait.
	StateWaiting LoopState = 2
	// StateStopped indicates Run has returned; the executor is spent.
	StateStopped LoopState = 3
)

// String returns a human-readable representation of the state.
func (s LoopState) String() string {
	switch s {
	case StateNew:
		return "New"
	case StatePolling:
		return "Polling"
	case StateWaiting:
		return "Waiting"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// ExecState holds the loop state in a single atomic word: no mutex, just
// Load/Store/CAS. The word sits alone on its cache line so signal sources
// hammering the wake path do not false-share with neighbouring state.
type ExecState struct { // betteralign:ignore
	_ [64]byte // Pad to isolate the word on its own cache line //nolint:unused
	v atomic.Uint64
	_ [56]byte // 64 - 8 //nolint:unused
}

// NewExecState creates a new state machine in the New state.
func NewExecState() *ExecState {
	s := &ExecState{}
	s.v.Store(uint64(StateNew))
	return s
}

// Load returns the current state atomically.
func (s *ExecState) Load() LoopState {
	return LoopState(s.v.Load())
}

// Store unconditionally overwrites the state; callers validate the
// transition themselves. The run loop uses it only for the irreversible
// StateStopped.
func (s *ExecState) Store(state LoopState) {
	s.v.Store(uint64(state))
}

// TryTransition attempts to atomically transition from one state to another.
// Returns true if the transition was successful.
func (s *ExecState) TryTransition(from, to LoopState) bool {
	return s.v.CompareAndSwap(uint64(from), uint64(to))
}

// IsTerminal returns true if the current state is terminal (Stopped).
func (s *ExecState) IsTerminal() bool {
	return s.Load() == StateStopped
}

// IsRunning returns true if the loop is currently polling or waiting.
func (s *ExecState) IsRunning() bool {
	state := s.Load()
	return state == StatePolling || state == StateWaiting
}
