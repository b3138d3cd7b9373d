//go:build linux

package wakeloop

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// EventfdIdleHook is a Linux IdleHook backed by an eventfd.
//
// The run loop suspends in a blocking read of the eventfd; Interrupt adds
// to the counter, which both resumes a pending read and latches for the
// next one. Latching, so the check-then-wait race is closed.
//
// Prefer this hook when the waiting goroutine should park in the kernel
// rather than in the Go runtime (e.g. alongside other fd-driven signal
// sources sharing the same eventfd).
type EventfdIdleHook struct {
	_   [0]func() // Prevent copying
	fd  int
	buf [8]byte // Read buffer; only the run loop touches it
}

// NewEventfdIdleHook creates an eventfd-backed idle hook.
func NewEventfdIdleHook() (*EventfdIdleHook, error) {
	// Blocking on purpose: WaitForInterrupt parks in the read.
	fd, err := unix.Eventfd(0, unix.EFD_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &EventfdIdleHook{fd: fd}, nil
}

// WaitForInterrupt blocks reading the eventfd until the counter is nonzero,
// consuming it (the latch resets).
func (h *EventfdIdleHook) WaitForInterrupt() {
	for {
		_, err := unix.Read(h.fd, h.buf[:])
		if err != unix.EINTR {
			return
		}
	}
}

// Interrupt adds one to the eventfd counter. Never blocks in practice: an
// eventfd write only stalls at counter overflow, which a consuming reader
// prevents; at worst the latch is already saturated and the error is moot.
func (h *EventfdIdleHook) Interrupt() {
	// Native endianness, no binary.LittleEndian overhead.
	var one uint64 = 1
	buf := (*[8]byte)(unsafe.Pointer(&one))[:]
	_, _ = unix.Write(h.fd, buf)
}

// Close releases the eventfd. The hook must not be used afterwards.
func (h *EventfdIdleHook) Close() error {
	return unix.Close(h.fd)
}
