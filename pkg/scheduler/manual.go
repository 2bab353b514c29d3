package scheduler

import (
	"sort"
	"time"
)

// Manual is a virtual-clock Scheduler for tests.
// Actions only run inside Advance, on the caller's goroutine.
type Manual struct {
	now    time.Duration
	nextID Handle
	tasks  map[Handle]*manualTask
}

type manualTask struct {
	handle Handle
	due    time.Duration
	action func()
}

func NewManual() *Manual {
	return &Manual{tasks: make(map[Handle]*manualTask)}
}

func (m *Manual) Schedule(delay time.Duration, action func()) Handle {
	m.nextID++
	h := m.nextID
	m.tasks[h] = &manualTask{handle: h, due: m.now + delay, action: action}
	return h
}

func (m *Manual) Cancel(h Handle) {
	delete(m.tasks, h)
}

// Pending returns the number of scheduled, not yet run actions.
func (m *Manual) Pending() int {
	return len(m.tasks)
}

// Now returns the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Advance moves the clock forward by d, running every action that becomes
// due. Actions scheduled by other actions run too when due within d.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d

	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		delete(m.tasks, next.handle)
		m.now = next.due
		next.action()
	}

	m.now = target
}

func (m *Manual) nextDue(limit time.Duration) *manualTask {
	due := make([]*manualTask, 0, len(m.tasks))
	for _, t := range m.tasks {
		if t.due <= limit {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].handle < due[j].handle
	})
	return due[0]
}
