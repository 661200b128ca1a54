package taskqueue

import (
	"context"
	"sync"

	"innova-chat/logger"
)

// Task is one detached unit of background work tied to a session.
type Task struct {
	ID        string
	SessionID int64
	Run       func(ctx context.Context)
}

// Queue is a bounded task queue drained by a fixed pool of workers. It
// replaces ad hoc goroutine spawning for background work: under load the
// buffer fills and further tasks are dropped instead of growing resource
// usage without bound.
//
// Workers run under the queue's own background context, never a request
// context — a task outlives the request that scheduled it.
type Queue struct {
	tasks  chan Task
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	closed    bool
	pending   map[int64]int
	cancelled map[int64]bool
}

// New builds a queue with the given worker count and buffer size and starts
// its workers.
func New(workers, size int) *Queue {
	if workers <= 0 {
		workers = 1
	}
	if size <= 0 {
		size = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		tasks:     make(chan Task, size),
		ctx:       ctx,
		cancel:    cancel,
		pending:   map[int64]int{},
		cancelled: map[int64]bool{},
	}
	q.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go q.worker()
	}
	return q
}

// Enqueue schedules a task without blocking. It reports false when the
// buffer is full, or the queue is already closed, and the task was dropped.
// The send happens under the lock so a concurrent Close cannot close the
// channel between the closed check and the send.
func (q *Queue) Enqueue(t Task) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	select {
	case q.tasks <- t:
		q.pending[t.SessionID]++
		return true
	default:
		return false
	}
}

// CancelSession marks any pending tasks for the session as no-ops. Used
// when a session is deleted before its title task runs.
func (q *Queue) CancelSession(sessionID int64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.pending[sessionID] > 0 {
		q.cancelled[sessionID] = true
	}
}

// Close stops accepting work and waits for in-flight tasks to finish.
// Idempotent; later Enqueue calls report false instead of panicking.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.tasks)
	q.mu.Unlock()

	q.wg.Wait()
	q.cancel()
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for t := range q.tasks {
		if q.skip(t.SessionID) {
			logger.InfoWithFields("background task skipped, session cancelled", logger.Fields{
				"task_id":    t.ID,
				"session_id": t.SessionID,
			})
			q.finish(t.SessionID)
			continue
		}
		t.Run(q.ctx)
		q.finish(t.SessionID)
	}
}

func (q *Queue) skip(sessionID int64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.cancelled[sessionID]
}

// finish decrements the pending count and clears the cancellation mark once
// nothing for the session remains, keeping both maps bounded.
func (q *Queue) finish(sessionID int64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending[sessionID]--
	if q.pending[sessionID] <= 0 {
		delete(q.pending, sessionID)
		delete(q.cancelled, sessionID)
	}
}
