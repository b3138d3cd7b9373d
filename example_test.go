package wakeloop_test

import (
	"context"
	"fmt"
	"time"

	wakeloop "github.com/joeycumines/go-wakeloop"
	"github.com/joeycumines/go-wakeloop/coopsched"
)

// Example_basicUsage demonstrates wiring a scheduler core to an executor
// and running tasks to completion.
//
// This shows the fundamental pattern of:
// 1. Creating a scheduler core
// 2. Creating an executor bound to it with New()
// 3. Spawning initial tasks from the Run init callback
// 4. Bounding the otherwise-forever loop with a context
func Example_basicUsage() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	core, err := coopsched.New()
	if err != nil {
		fmt.Printf("Failed to create scheduler: %v\n", err)
		return
	}

	exec, err := wakeloop.New[coopsched.Spawner](core)
	if err != nil {
		fmt.Printf("Failed to create executor: %v\n", err)
		return
	}

	// Run never returns on its own; cancel once the work is done.
	err = exec.Run(ctx, func(spawner coopsched.Spawner) {
		spawner.Spawn(func(*coopsched.Turn) coopsched.Status {
			fmt.Println("task 1 executed")
			return coopsched.StatusDone
		})
		spawner.Spawn(func(*coopsched.Turn) coopsched.Status {
			fmt.Println("task 2 executed")
			cancel()
			return coopsched.StatusDone
		})
	})
	fmt.Println("run loop halted:", err)

	// Output:
	// task 1 executed
	// task 2 executed
	// run loop halted: context canceled
}

// Example_parkAndWake demonstrates a task suspending on an external event
// and being woken by a timer acting as an interrupt source.
func Example_parkAndWake() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	core, _ := coopsched.New()
	exec, _ := wakeloop.New[coopsched.Spawner](core)

	_ = exec.Run(ctx, func(spawner coopsched.Spawner) {
		var parked bool
		spawner.Spawn(func(turn *coopsched.Turn) coopsched.Status {
			if !parked {
				parked = true
				fmt.Println("parking until the timer fires")
				coopsched.After(10*time.Millisecond, turn.Waker())
				return coopsched.StatusParked
			}
			fmt.Println("woken by the timer")
			cancel()
			return coopsched.StatusDone
		})
	})

	// Output:
	// parking until the timer fires
	// woken by the timer
}
