package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ========================================
// EVENT LOOP
// ========================================
// Loop chạy toàn bộ page work trên MỘT goroutine duy nhất.
// Timer callbacks, HTTP gestures và content loading đều được post vào queue
// và thực thi tuần tự, giống UI thread của browser.

type Loop struct {
	tasks chan func()
	done  chan struct{}

	mu     sync.Mutex
	nextID Handle
	timers map[Handle]*time.Timer

	stopOnce sync.Once
}

// NewLoop creates a loop with a buffered task queue.
func NewLoop(queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Loop{
		tasks:  make(chan func(), queueSize),
		done:   make(chan struct{}),
		timers: make(map[Handle]*time.Timer),
	}
}

// Run executes posted tasks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	defer l.stop()

	for {
		select {
		case <-ctx.Done():
			return
		case task := <-l.tasks:
			l.exec(task)
		}
	}
}

func (l *Loop) exec(task func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Event loop task panicked")
		}
	}()
	task()
}

func (l *Loop) stop() {
	l.stopOnce.Do(func() {
		close(l.done)

		l.mu.Lock()
		for h, t := range l.timers {
			t.Stop()
			delete(l.timers, h)
		}
		l.mu.Unlock()
	})
}

// Post enqueues fn. Returns false when the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do runs fn on the loop and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	task := func() {
		defer close(finished)
		fn()
	}

	select {
	case l.tasks <- task:
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Schedule arms a timer whose action is executed on the loop.
func (l *Loop) Schedule(delay time.Duration, action func()) Handle {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	h := l.nextID

	l.timers[h] = time.AfterFunc(delay, func() {
		l.Post(func() {
			// Cancel may have happened between firing and running.
			if !l.claim(h) {
				return
			}
			action()
		})
	})
	return h
}

// claim removes h from the armed set, reporting whether it was still armed.
func (l *Loop) claim(h Handle) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.timers[h]; !ok {
		return false
	}
	delete(l.timers, h)
	return true
}

// Cancel stops h. Unknown or already-run handles are ignored.
func (l *Loop) Cancel(h Handle) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t, ok := l.timers[h]; ok {
		t.Stop()
		delete(l.timers, h)
	}
}

// Pending returns the number of armed handles.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}
