package port_platform

import (
	"time"

	"github.com/google/uuid"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewUUID() uuid.UUID
}

// Timer is a handle to one scheduled callback. Stop reports whether the
// callback was prevented from running.
type Timer interface {
	Stop() bool
}

// Scheduler is the cancellable-timer primitive behind debounced input
// validation: each new input stops the prior handle and schedules a fresh
// one. The callback runs on its own goroutine.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Timer
}
