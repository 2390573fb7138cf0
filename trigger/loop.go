package trigger

import (
	"context"
	"time"
)

// Loop is a single-goroutine event loop. Input callbacks and timer callbacks
// are posted to it and run one at a time, in order.
type Loop struct {
	queue chan func()
}

func NewLoop() *Loop {
	return &Loop{queue: make(chan func(), 256)}
}

// Post queues f to run on the loop. It blocks while the queue is full.
func (l *Loop) Post(f func()) {
	l.queue <- f
}

// AfterFunc posts f to the loop once d has elapsed. Timers cannot be
// cancelled.
func (l *Loop) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, func() { l.Post(f) })
}

// Run processes callbacks until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-l.queue:
			f()
		}
	}
}
