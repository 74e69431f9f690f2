// Package loop serializes every mutation of a running simulation onto one
// goroutine: frame ticks and pointer events are submitted as tasks and run
// strictly in arrival order.
package loop

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrNotStarted     = errors.New("loop: not started")
	ErrStopped        = errors.New("loop: stopped")
	ErrAlreadyStarted = errors.New("loop: start called multiple times")
)

// Task is one unit of work run on the loop goroutine.
type Task func() error

// Config controls the behaviour of the single thread loop.
type Config struct {
	QueueSize int
	Logger    *log.Logger
}

// Loop delivers submitted tasks to a single goroutine.
type Loop struct {
	// mu keeps Stop from closing the queue under a pending send.
	mu     sync.RWMutex
	queue  chan Task
	logger *log.Logger

	started atomic.Bool
	stopped atomic.Bool

	done chan struct{}
}

func New(cfg Config) *Loop {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 1024
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Loop{
		queue:  make(chan Task, queueSize),
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Start launches the loop goroutine. It must be called once.
func (l *Loop) Start(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	go l.run(ctx)
	return nil
}

func (l *Loop) run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			l.logger.Printf("[Loop] context cancelled, shutting down: %v\n", ctx.Err())
			return
		case task, ok := <-l.queue:
			if !ok {
				return
			}
			if err := task(); err != nil {
				l.logger.Printf("[Loop] task error: %v\n", err)
			}
		}
	}
}

// Submit enqueues a task, blocking while the queue is full.
func (l *Loop) Submit(ctx context.Context, task Task) error {
	if !l.started.Load() {
		return ErrNotStarted
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.stopped.Load() {
		return ErrStopped
	}
	select {
	case <-l.done:
		return ErrStopped
	default:
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrStopped
	case l.queue <- task:
		return nil
	}
}

// TrySubmit enqueues a task without blocking and reports whether it was
// accepted. Frame ticks use it so a stalled loop drops frames instead of
// queueing them.
func (l *Loop) TrySubmit(task Task) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.started.Load() || l.stopped.Load() {
		return false
	}
	select {
	case l.queue <- task:
		return true
	default:
		return false
	}
}

// Stop closes the queue, lets already queued tasks finish and waits for the
// goroutine to exit.
func (l *Loop) Stop(ctx context.Context) error {
	l.mu.Lock()
	if !l.stopped.CompareAndSwap(false, true) {
		l.mu.Unlock()
		return ErrStopped
	}
	close(l.queue)
	l.mu.Unlock()
	if !l.started.Load() {
		return nil
	}
	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once the loop goroutine has exited.
func (l *Loop) Done() <-chan struct{} { return l.done }

// DrainTimeout stops the loop, waiting at most timeout.
func (l *Loop) DrainTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return l.Stop(ctx)
}
