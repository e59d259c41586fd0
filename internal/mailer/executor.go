// Package mailer implements the asynchronous notification dispatcher: a
// bounded worker pool (Executor) that runs fire-and-forget send tasks, a
// Dispatcher that builds and validates email payloads, and pluggable
// delivery providers (Amazon SES, SMTP).
package mailer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

const (
	defaultWorkers   = 4
	defaultQueueSize = 100
)

// ErrMailerClosed is returned by Submit after the executor has been stopped.
var ErrMailerClosed = errors.New("mailer: executor is closed")

// Task is a deferred unit of work executed at most once on a worker goroutine.
type Task func()

// Executor runs submitted tasks on a fixed pool of worker goroutines.
// A task that panics is recovered and logged; it never takes down a worker
// or the pool.
type Executor struct {
	ch      chan Task
	logger  *slog.Logger
	workers int

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewExecutor creates an Executor with the given worker count and queue
// buffer size and starts its workers. Non-positive values fall back to
// defaults (4 workers, buffer of 100).
func NewExecutor(workers, queueSize int, logger *slog.Logger) *Executor {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	e := &Executor{
		ch:      make(chan Task, queueSize),
		logger:  logger,
		workers: workers,
	}
	e.start()
	return e
}

func (e *Executor) start() {
	for i := 0; i < e.workers; i++ {
		e.wg.Add(1)
		go e.worker()
	}
	e.logger.Info("mail executor started", "workers", e.workers, "queue_size", cap(e.ch))
}

// worker consumes tasks until the intake channel is closed. Each task runs
// under its own recover so a panic is confined to that task.
func (e *Executor) worker() {
	defer e.wg.Done()
	for task := range e.ch {
		queueDepth.Set(float64(e.QueueLength()))
		e.run(task)
	}
}

func (e *Executor) run(task Task) {
	defer func() {
		if r := recover(); r != nil {
			taskPanics.Inc()
			e.logger.Error("panic in mail task recovered", "panic", r)
		}
	}()
	task()
}

// Submit enqueues a task for asynchronous execution and returns without
// waiting for it to run. When the buffer is full, Submit blocks until a
// worker frees a slot. Returns ErrMailerClosed after Stop.
func (e *Executor) Submit(task Task) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrMailerClosed
	}
	// Holding the lock across the send keeps Stop's close(e.ch) from racing
	// a blocked sender. Workers drain concurrently, so the hold is short.
	e.ch <- task
	e.mu.Unlock()

	tasksQueued.Inc()
	queueDepth.Set(float64(e.QueueLength()))
	return nil
}

// Stop closes the intake and waits for in-flight tasks to finish, giving up
// when ctx expires. Submit calls made after Stop return ErrMailerClosed.
func (e *Executor) Stop(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	close(e.ch)
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("mail executor stopped")
		return nil
	case <-ctx.Done():
		e.logger.Warn("mail executor shutdown timed out, abandoning in-flight tasks")
		return ctx.Err()
	}
}

// QueueLength returns the number of tasks waiting for a worker.
func (e *Executor) QueueLength() int {
	return len(e.ch)
}
