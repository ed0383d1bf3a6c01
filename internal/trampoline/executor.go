package trampoline

import (
	"context"
	"errors"
	"sync"
)

// Executor runs a call on the thread it stands for.
type Executor interface {
	Submit(fn func()) error
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(fn func()) error

func (f ExecutorFunc) Submit(fn func()) error { return f(fn) }

var (
	ErrQueueFull   = errors.New("executor queue is full")
	ErrQueueClosed = errors.New("executor queue is closed")
)

// Queue is an Executor drained by whichever goroutine calls Run or Drain,
// typically one locked to the thread the calls belong to. Calls run in
// submission order.
type Queue struct {
	mu     sync.Mutex
	closed bool
	calls  chan func()
}

// NewQueue creates a queue holding up to size pending calls.
func NewQueue(size int) *Queue {
	return &Queue{calls: make(chan func(), size)}
}

func (q *Queue) Submit(fn func()) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.calls <- fn:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run executes calls until ctx is done or the queue is closed and empty.
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case fn, ok := <-q.calls:
			if !ok {
				return nil
			}
			fn()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Drain executes the calls pending right now and returns how many ran.
func (q *Queue) Drain() int {
	n := 0
	for {
		select {
		case fn, ok := <-q.calls:
			if !ok {
				return n
			}
			fn()
			n++
		default:
			return n
		}
	}
}

// Pending is the number of queued calls.
func (q *Queue) Pending() int {
	return len(q.calls)
}

// Close refuses further calls. Pending calls can still be drained.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.calls)
	}
}
