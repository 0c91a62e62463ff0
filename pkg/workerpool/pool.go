// Package workerpool provides a bounded goroutine pool with backpressure.
//
// Velora uses a Pool to cap concurrent SMTP deliveries: when every worker
// is busy, Submit fails fast so the caller can requeue the job instead of
// piling up goroutines.
package workerpool

import (
	"errors"
	"sync"
)

// ErrPoolFull is returned by Submit when all workers are busy and the task
// queue is at capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed is returned by Submit after Shutdown has been called.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Pool is a bounded goroutine pool.
type Pool struct {
	queue  chan func()
	wg     sync.WaitGroup
	once   sync.Once
	closed chan struct{}
}

// New creates a Pool with the given number of workers.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	p := &Pool{
		// Buffer 2× the worker count so short bursts are absorbed.
		queue:  make(chan func(), size*2),
		closed: make(chan struct{}),
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

// Submit enqueues task for execution without blocking.
//   - Returns ErrPoolFull if the task queue is at capacity.
//   - Returns ErrPoolClosed if Shutdown has been called.
func (p *Pool) Submit(task func()) error {
	select {
	case <-p.closed:
		return ErrPoolClosed
	default:
	}

	select {
	case p.queue <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// SubmitWait blocks until a slot is available or the pool is closed.
func (p *Pool) SubmitWait(task func()) error {
	select {
	case <-p.closed:
		return ErrPoolClosed
	case p.queue <- task:
		return nil
	}
}

// Shutdown stops accepting new tasks, waits for in-flight tasks to finish,
// and releases the workers. Safe to call multiple times.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.closed)
		close(p.queue)
		p.wg.Wait()
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.queue {
		guard(task)
	}
}

// guard keeps a panicking task from killing its worker.
func guard(task func()) {
	defer func() { recover() }() //nolint:errcheck
	task()
}
