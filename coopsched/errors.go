package coopsched

import "errors"

// Standard errors.
var (
	// ErrInvalidSpawner is returned by Spawn on a zero-value Spawner not
	// bound to a Core.
	ErrInvalidSpawner = errors.New("coopsched: spawner is not bound to a scheduler")

	// ErrNilTask is returned when Spawn is given a nil task.
	ErrNilTask = errors.New("coopsched: task is nil")
)
