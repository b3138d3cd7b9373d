package coopsched

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	wakeloop "github.com/joeycumines/go-wakeloop"
)

// TestExecutor_EndToEnd drives a full executor over this scheduler: spawn
// from init, run to completion, wake from a timer "interrupt", spawn from a
// running task.
func TestExecutor_EndToEnd(t *testing.T) {
	t.Parallel()

	core, err := New()
	if err != nil {
		t.Fatal("New failed:", err)
	}
	exec, err := wakeloop.New[Spawner](core)
	if err != nil {
		t.Fatal("wakeloop.New failed:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var sleeperDone, childDone atomic.Bool
	finished := make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- exec.Run(ctx, func(spawner Spawner) {
			// A task that parks on a timer wake, then spawns a child.
			var parked bool
			_ = spawner.Spawn(func(turn *Turn) Status {
				if !parked {
					parked = true
					After(20*time.Millisecond, turn.Waker())
					return StatusParked
				}
				sleeperDone.Store(true)
				_ = turn.Spawner().Spawn(func(*Turn) Status {
					childDone.Store(true)
					close(finished)
					return StatusDone
				})
				return StatusDone
			})
		})
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("tasks did not complete")
	}
	if !sleeperDone.Load() || !childDone.Load() {
		t.Errorf("sleeperDone=%v childDone=%v, want both true",
			sleeperDone.Load(), childDone.Load())
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Run returned %v, want context cancellation", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	if got := core.TaskCount(); got != 0 {
		t.Errorf("TaskCount() = %d after completion, want 0", got)
	}
}

// TestExecutor_PingPong alternates two tasks waking each other through
// parked wakers, exercising the wake path under sustained load.
func TestExecutor_PingPong(t *testing.T) {
	t.Parallel()

	core, err := New()
	if err != nil {
		t.Fatal("New failed:", err)
	}
	exec, err := wakeloop.New[Spawner](core)
	if err != nil {
		t.Fatal("wakeloop.New failed:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	const volleys = 500
	finished := make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- exec.Run(ctx, func(spawner Spawner) {
			var ping, pong Waker
			var count int

			_ = spawner.Spawn(func(turn *Turn) Status {
				ping = turn.Waker()
				if pong != (Waker{}) {
					pong.Wake()
				}
				count++
				if count >= volleys {
					close(finished)
					return StatusDone
				}
				return StatusParked
			})
			_ = spawner.Spawn(func(turn *Turn) Status {
				pong = turn.Waker()
				ping.Wake()
				return StatusParked
			})
		})
	}()

	select {
	case <-finished:
	case <-time.After(4 * time.Second):
		t.Fatal("ping-pong stalled")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

// TestExecutor_WakeFromManyInterruptSources fans many timer goroutines into
// one parked task set, verifying every task eventually completes.
func TestExecutor_WakeFromManyInterruptSources(t *testing.T) {
	t.Parallel()

	core, err := New()
	if err != nil {
		t.Fatal("New failed:", err)
	}
	exec, err := wakeloop.New[Spawner](core)
	if err != nil {
		t.Fatal("wakeloop.New failed:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	const numTasks = 50
	var completed atomic.Int64
	allDone := make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- exec.Run(ctx, func(spawner Spawner) {
			for i := 0; i < numTasks; i++ {
				delay := time.Duration(i%10+1) * time.Millisecond
				var parked bool
				_ = spawner.Spawn(func(turn *Turn) Status {
					if !parked {
						parked = true
						After(delay, turn.Waker())
						return StatusParked
					}
					if completed.Add(1) == numTasks {
						close(allDone)
					}
					return StatusDone
				})
			}
		})
	}()

	select {
	case <-allDone:
	case <-time.After(4 * time.Second):
		t.Fatalf("only %d/%d tasks completed", completed.Load(), numTasks)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
