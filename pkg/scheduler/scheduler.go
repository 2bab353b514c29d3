package scheduler

import (
	"errors"
	"time"
)

// Handle identifies one scheduled action. Zero is never issued.
type Handle uint64

// Scheduler là capability "schedule(delay, action) -> handle, cancel(handle)".
//
// Actions always run on the owner's event loop, never concurrently with
// each other, so callers mutate their state without locks.
type Scheduler interface {
	Schedule(delay time.Duration, action func()) Handle
	Cancel(h Handle)
}

var ErrLoopStopped = errors.New("event loop stopped")
