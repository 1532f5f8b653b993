package task

import (
	"sync"
	"sync/atomic"

	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/domain"
)

// fifo is an unbounded FIFO. Pushes never block the producer for longer
// than a channel handoff; receives on the out channel block until an item
// arrives or the fifo is closed. A pump goroutine bridges the two ends,
// spilling into a slice backlog whenever no consumer is ready.
type fifo[T any] struct {
	in        chan T
	out       chan T
	stop      chan struct{}
	closeOnce sync.Once
	size      atomic.Int64
}

func newFIFO[T any]() *fifo[T] {
	f := &fifo[T]{
		in:   make(chan T),
		out:  make(chan T),
		stop: make(chan struct{}),
	}
	go f.pump()
	return f
}

func (f *fifo[T]) pump() {
	defer close(f.out)

	var backlog []T
	for {
		// Only offer the head of the backlog when there is one; a nil
		// channel keeps that select arm disabled.
		var out chan T
		var head T
		if len(backlog) > 0 {
			out = f.out
			head = backlog[0]
		}

		select {
		case <-f.stop:
			// No further pushes can land; hand the backlog over before
			// closing the consumer end.
			for _, v := range backlog {
				f.out <- v
				f.size.Add(-1)
			}
			return
		case v := <-f.in:
			backlog = append(backlog, v)
		case out <- head:
			backlog = backlog[1:]
			f.size.Add(-1)
		}
	}
}

// push enqueues v and reports the queue size including it. Returns false
// if the fifo was closed before the item could be accepted.
func (f *fifo[T]) push(v T) (int, bool) {
	n := int(f.size.Add(1))
	select {
	case f.in <- v:
		return n, true
	case <-f.stop:
		f.size.Add(-1)
		return 0, false
	}
}

// c returns the consumer end. The channel is closed when the fifo closes.
func (f *fifo[T]) c() <-chan T {
	return f.out
}

// len is a best-effort snapshot of the number of queued items.
func (f *fifo[T]) len() int {
	return int(f.size.Load())
}

// close stops the intake. Items already queued are still delivered; the
// consumer channel closes after the last one, so the caller must keep
// draining c() until it does.
func (f *fifo[T]) close() {
	f.closeOnce.Do(func() {
		close(f.stop)
	})
}

// Queue is the unbounded task queue feeding the worker pool. Producers
// submit without ever blocking; workers consume from C in FIFO order.
type Queue struct {
	fifo *fifo[*domain.Task]
}

// NewQueue creates an empty task queue.
func NewQueue() *Queue {
	return &Queue{fifo: newFIFO[*domain.Task]()}
}

// Submit enqueues a task and returns the new queue depth. It never blocks
// and never rejects; bounding the queue is deliberately left to producers.
// After Close the task is rejected and the reported depth is zero.
func (q *Queue) Submit(t *domain.Task) int {
	depth, ok := q.fifo.push(t)
	if !ok {
		return 0
	}
	return depth
}

// Depth is a best-effort snapshot of the number of queued tasks.
func (q *Queue) Depth() int {
	return q.fifo.len()
}

// C returns the consumer end of the queue.
func (q *Queue) C() <-chan *domain.Task {
	return q.fifo.out
}

// Close stops the queue's intake. Tasks still queued are flushed to C,
// which closes after the last one.
func (q *Queue) Close() {
	q.fifo.close()
}
