// Package coopsched is a reference SchedulerCore for wakeloop: a FIFO
// cooperative scheduler with parking and wakers.
//
// Tasks are poll functions. Each call to a task is one cooperative step,
// and its [Status] return value tells the scheduler what to do next: drop
// it ([StatusDone]), requeue it immediately ([StatusYielded]), or park it
// until some external event wakes it ([StatusParked]). A parked task is
// woken through a [Waker], a copyable handle safe to invoke from any
// goroutine, such as a timer callback or an I/O completion (see [After]).
//
// The scheduler invokes the executor's wake callback whenever a task
// becomes ready: on spawn, on wake, and on yield-requeue. It never blocks
// inside PollOnce.
//
// Task panics are confined here, per the collaborator-failure policy: the
// panicking task is dropped, the panic is counted ([Core.Panics]) and
// logged, and polling continues with the remaining tasks.
package coopsched
