// Package queue runs Velora's background jobs: order confirmation mail,
// the low-stock digest, password reset delivery.
//
//	type OrderEmailsJob struct { OrderID uint }
//	func (j *OrderEmailsJob) Handle() error { ... }
//
//	queue.Dispatch(&OrderEmailsJob{OrderID: 42})
//	queue.DispatchAfter(&OrderEmailsJob{OrderID: 43}, 30*time.Second)
//
// Jobs serialize as JSON envelopes, so the in-memory driver and the Redis
// driver are interchangeable at boot.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/velora-shop/velora/pkg/logger"
	"github.com/velora-shop/velora/pkg/metrics"
)

// Job is anything that can be queued. Handle returns a non-nil error to
// signal failure and trigger a retry.
type Job interface {
	Handle() error
}

// FailedJob records a job that exhausted its retries.
type FailedJob struct {
	Job      Job
	Err      error
	FailedAt time.Time
	Attempts int
}

// Driver is the queue storage backend.
type Driver interface {
	Push(payload []byte) error
	Pop(ctx context.Context) ([]byte, error)
}

// pollBackoff is how long a worker sleeps after a driver Pop error before
// trying again.
const pollBackoff = 500 * time.Millisecond

// Manager owns the driver, the job-type registry and the failed-job list.
type Manager struct {
	mu       sync.RWMutex
	driver   Driver
	registry map[string]func() Job // "%T" type name → constructor
	failed   []FailedJob
	maxRetry int
}

var defaultManager = &Manager{
	registry: map[string]func() Job{},
	maxRetry: 3,
	driver:   NewMemoryDriver(),
}

// SetDriver swaps the underlying queue driver (e.g. Redis).
func SetDriver(d Driver) {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	defaultManager.driver = d
}

// SetMaxRetry sets how many times a failing job is attempted.
func SetMaxRetry(n int) { defaultManager.maxRetry = n }

// Register makes a job type restorable from its serialized envelope.
// Call once at boot for every job type.
func Register(name string, factory func() Job) {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	defaultManager.registry[name] = factory
}

// envelope is the wire form of a queued job.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func seal(job Job) ([]byte, error) {
	typeName := fmt.Sprintf("%T", job)

	payload, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("queue: marshal job %s: %w", typeName, err)
	}
	env, err := json.Marshal(envelope{Type: typeName, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("queue: marshal envelope: %w", err)
	}
	return env, nil
}

// Dispatch pushes job onto the queue immediately.
func Dispatch(job Job) error {
	env, err := seal(job)
	if err != nil {
		return err
	}
	return defaultManager.currentDriver().Push(env)
}

// DispatchAfter pushes job onto the queue after a delay. The Redis driver
// schedules it natively; the in-memory driver spawns a timer goroutine.
func DispatchAfter(job Job, delay time.Duration) {
	if rd, ok := defaultManager.currentDriver().(*RedisDriver); ok {
		env, err := seal(job)
		if err != nil {
			logger.Error("queue: delayed dispatch failed", "error", err)
			return
		}
		if err := rd.PushDelayed(env, delay); err != nil {
			logger.Error("queue: delayed dispatch failed", "error", err)
		}
		return
	}

	go func() {
		time.Sleep(delay)
		if err := Dispatch(job); err != nil {
			logger.Error("queue: delayed dispatch failed", "error", err)
		}
	}()
}

func (m *Manager) currentDriver() Driver {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.driver
}

// StartWorkers launches n workers that drain the queue until ctx is
// cancelled.
func StartWorkers(ctx context.Context, n int) {
	for i := 0; i < n; i++ {
		go defaultManager.work(ctx)
	}
	logger.Info("queue: workers started", "count", n)
}

func (m *Manager) work(ctx context.Context) {
	for ctx.Err() == nil {
		raw, err := m.currentDriver().Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			time.Sleep(pollBackoff)
			continue
		}
		if raw == nil {
			continue
		}
		m.process(raw)
	}
}

func (m *Manager) process(raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		logger.Error("queue: bad envelope", "error", err)
		return
	}

	m.mu.RLock()
	factory, ok := m.registry[env.Type]
	m.mu.RUnlock()

	if !ok {
		logger.Warn("queue: unregistered job type", "type", env.Type)
		return
	}

	job := factory()
	if err := json.Unmarshal(env.Payload, job); err != nil {
		logger.Error("queue: unmarshal payload", "type", env.Type, "error", err)
		return
	}

	m.runWithRetry(job, env.Type)
}

func (m *Manager) runWithRetry(job Job, typeName string) {
	var lastErr error
	for attempt := 1; attempt <= m.maxRetry; attempt++ {
		err := job.Handle()
		if err == nil {
			metrics.JobsProcessed.WithLabelValues(typeName).Inc()
			logger.Info("queue: job processed", "type", typeName)
			return
		}
		lastErr = err
		logger.Warn("queue: job failed, retrying",
			"type", typeName, "attempt", attempt, "error", err)
		time.Sleep(time.Duration(attempt) * time.Second) // linear backoff
	}

	metrics.JobsFailed.WithLabelValues(typeName).Inc()
	m.persistFailed(job, typeName, lastErr, m.maxRetry)
	logger.Error("queue: job exhausted retries", "type", typeName, "error", lastErr)
}

// FailedJobs returns a snapshot of jobs that exhausted their retries.
func FailedJobs() []FailedJob {
	defaultManager.mu.RLock()
	defer defaultManager.mu.RUnlock()
	out := make([]FailedJob, len(defaultManager.failed))
	copy(out, defaultManager.failed)
	return out
}
