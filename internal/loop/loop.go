// Package loop moves blocking work off the event-loop goroutine and brings
// its result back.
//
// A Task runs off-loop and returns a resume function. The Runner executes
// resume on the loop goroutine, where it may touch models and views and
// publish events. Tasks must not touch loop-owned state themselves.
package loop

import (
	"context"
	"sync"

	"github.com/sourcegraph/conc"
)

// Task performs blocking work and returns the continuation to run on the
// loop goroutine. A nil continuation is allowed.
type Task func(ctx context.Context) (resume func())

// Runner schedules tasks.
type Runner interface {
	Go(Task)
}

// Inline runs each task and its continuation immediately on the calling
// goroutine.
type Inline struct {
	Ctx context.Context
}

// Go runs t to completion.
func (i Inline) Go(t Task) {
	ctx := i.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if resume := t(ctx); resume != nil {
		resume()
	}
}

// Queue buffers tasks until the host drains them. The TUI converts drained
// tasks into commands; headless callers use Flush.
type Queue struct {
	mu    sync.Mutex
	tasks []Task
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Go enqueues t.
func (q *Queue) Go(t Task) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, t)
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Drain removes and returns the pending tasks in submission order.
func (q *Queue) Drain() []Task {
	q.mu.Lock()
	defer q.mu.Unlock()
	tasks := q.tasks
	q.tasks = nil
	return tasks
}

// Flush runs pending tasks concurrently, then resumes them in submission
// order on the calling goroutine. Tasks queued by a continuation are
// flushed in a following round, until the queue is empty. A panicking task
// is reported as an error after the remaining tasks of its round finish;
// continuations of that round are skipped.
func (q *Queue) Flush(ctx context.Context) error {
	for {
		tasks := q.Drain()
		if len(tasks) == 0 {
			return nil
		}

		resumes := make([]func(), len(tasks))
		var wg conc.WaitGroup
		for i, t := range tasks {
			wg.Go(func() {
				resumes[i] = t(ctx)
			})
		}
		if r := wg.WaitAndRecover(); r != nil {
			return r.AsError()
		}

		for _, resume := range resumes {
			if resume != nil {
				resume()
			}
		}
	}
}

var (
	_ Runner = Inline{}
	_ Runner = (*Queue)(nil)
)
