// Package task implements the per-tab task queue and timer system (spec
// §4.10): a Task is a deferred call enqueued once and run to completion by
// the tab's own main-thread loop. Grounded in spirit on
// grindlemire-go-tui's app_loop.go event-queue drain loop, but queue and
// dequeue use a mutex + sync.Cond blocking FIFO rather than a buffered
// channel, per the Design Notes' explicit prescription.
package task

import (
	"sync"

	"github.com/google/uuid"
)

// ID identifies a task or a tab across the queue and timer system.
type ID = uuid.UUID

// Task is a deferred, callable-once function.
type Task struct {
	ID ID
	Fn func()
}

// NewTask wraps fn as a Task with a fresh ID.
func NewTask(fn func()) Task {
	return Task{ID: uuid.New(), Fn: fn}
}

// Queue is a FIFO of tasks protected by a lock, with a blocking Pop via
// sync.Cond rather than a channel (spec §4.10/§5: "blocking dequeue with
// a condition variable").
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	tasks  []Task
	closed bool
}

// NewQueue allocates an empty queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push enqueues t and wakes one blocked Pop, if any. Safe from any thread.
func (q *Queue) Push(t Task) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.tasks = append(q.tasks, t)
	q.cond.Signal()
}

// Pop blocks until a task is available or Close is called, returning
// (task, true) in the former case. Tasks observe FIFO order.
func (q *Queue) Pop() (Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.tasks) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.tasks) == 0 {
		return Task{}, false
	}
	t := q.tasks[0]
	q.tasks = q.tasks[1:]
	return t, true
}

// Close marks the queue closed and wakes every blocked Pop. Idempotent.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.cond.Broadcast()
}

// Run loops Pop/execute until the queue is closed — "each tab owns a task
// queue and a dedicated main thread that loops: lock, pop front, unlock,
// execute" (spec §4.10).
func (q *Queue) Run() {
	for {
		t, ok := q.Pop()
		if !ok {
			return
		}
		t.Fn()
	}
}
