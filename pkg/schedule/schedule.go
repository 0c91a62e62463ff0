// Package schedule runs Velora's recurring work, like the daily low-stock
// digest, with a Laravel-flavoured fluent registration API.
//
//	schedule.Daily().At("07:00").Name("low-stock-digest").Run(sendDigest)
//	schedule.Every(5).Minutes().Run(syncData)
//	schedule.Cron("0 * * * *").Run(myTask)
//
//	// Start the loop once at boot:
//	schedule.Start(ctx)
package schedule

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/velora-shop/velora/pkg/logger"
)

// Task is the function signature for scheduled work.
type Task func()

// job is one registered task with its firing rule. Either interval or
// cronExpr is set, never both.
type job struct {
	id        string
	interval  time.Duration
	cronExpr  string
	task      Task
	lastRun   time.Time
	running   bool
	noOverlap bool
	mu        sync.Mutex
}

// Schedule builds one job fluently before Run registers it.
type Schedule struct {
	j *job
}

var (
	mu   sync.Mutex
	jobs []*job
)

// EveryMinute fires every 60 seconds.
func EveryMinute() *Schedule { return Every(1).Minutes() }

// Every starts a fluent builder with n units; follow with Seconds,
// Minutes, Hours or Days.
func Every(n int) *every { return &every{n: n} }

// Hourly fires once an hour.
func Hourly() *Schedule { return Every(1).Hours() }

// Daily fires every 24 hours; combine with At for a wall-clock time.
func Daily() *Schedule { return Every(24).Hours() }

// Cron registers with a 5-field cron expression (min hour dom mon dow).
func Cron(expr string) *Schedule {
	return &Schedule{j: &job{cronExpr: expr}}
}

type every struct{ n int }

func (e *every) Seconds() *Schedule {
	return &Schedule{j: &job{interval: time.Duration(e.n) * time.Second}}
}
func (e *every) Minutes() *Schedule {
	return &Schedule{j: &job{interval: time.Duration(e.n) * time.Minute}}
}
func (e *every) Hours() *Schedule {
	return &Schedule{j: &job{interval: time.Duration(e.n) * time.Hour}}
}
func (e *every) Days() *Schedule {
	return &Schedule{j: &job{interval: time.Duration(e.n) * 24 * time.Hour}}
}

// At pins the job to a wall-clock time ("15:04") by converting it to a
// daily cron match.
func (s *Schedule) At(hhmm string) *Schedule {
	var hh, mm int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &hh, &mm); err == nil {
		s.j.interval = 0
		s.j.cronExpr = fmt.Sprintf("%d %d * * *", mm, hh)
	}
	return s
}

// WithoutOverlapping skips a firing while the previous run is still going.
func (s *Schedule) WithoutOverlapping() *Schedule {
	s.j.noOverlap = true
	return s
}

// Name sets the identifier used in logs and the CLI listing.
func (s *Schedule) Name(id string) *Schedule {
	s.j.id = id
	return s
}

// Run registers the job with the global scheduler.
func (s *Schedule) Run(fn Task) {
	s.j.task = fn
	if s.j.id == "" {
		s.j.id = fmt.Sprintf("task-%d", len(jobs)+1)
	}
	mu.Lock()
	jobs = append(jobs, s.j)
	mu.Unlock()
}

// Start launches the scheduler loop in the background. It polls every
// second and fires whatever is due.
func Start(ctx context.Context) {
	go loop(ctx)
	logger.Info("schedule: scheduler started")
}

func loop(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("schedule: scheduler stopped")
			return
		case now := <-ticker.C:
			mu.Lock()
			snapshot := make([]*job, len(jobs))
			copy(snapshot, jobs)
			mu.Unlock()

			for _, j := range snapshot {
				if j.due(now) {
					j.fire()
				}
			}
		}
	}
}

func (j *job) due(now time.Time) bool {
	if j.cronExpr != "" {
		// Cron matches a whole minute; don't re-fire on every tick of it.
		if !j.lastRun.IsZero() && now.Sub(j.lastRun) < time.Minute {
			return false
		}
		return cronMatches(j.cronExpr, now)
	}
	if j.lastRun.IsZero() {
		return true // first run
	}
	return now.Sub(j.lastRun) >= j.interval
}

func (j *job) fire() {
	j.mu.Lock()
	if j.noOverlap && j.running {
		j.mu.Unlock()
		logger.Warn("schedule: skipping overlapping task", "id", j.id)
		return
	}
	j.running = true
	j.lastRun = time.Now()
	j.mu.Unlock()

	go func() {
		defer func() {
			j.mu.Lock()
			j.running = false
			j.mu.Unlock()
			if r := recover(); r != nil {
				logger.Error("schedule: task panicked", "id", j.id, "panic", r)
			}
		}()

		logger.Info("schedule: running task", "id", j.id)
		j.task()
	}()
}

// cronMatches evaluates a minimal 5-field expression against t.
// Each field accepts * | number | */step | lo-hi.
func cronMatches(expr string, t time.Time) bool {
	fields := strings.Fields(expr)
	if len(fields) != 5 {
		return false
	}
	values := []int{t.Minute(), t.Hour(), t.Day(), int(t.Month()), int(t.Weekday())}
	for i, f := range fields {
		if !fieldMatches(f, values[i]) {
			return false
		}
	}
	return true
}

func fieldMatches(field string, val int) bool {
	switch {
	case field == "*":
		return true
	case strings.HasPrefix(field, "*/"):
		var step int
		fmt.Sscanf(field[2:], "%d", &step)
		return step > 0 && val%step == 0
	case strings.Contains(field, "-"):
		var lo, hi int
		fmt.Sscanf(field, "%d-%d", &lo, &hi)
		return val >= lo && val <= hi
	default:
		var n int
		fmt.Sscanf(field, "%d", &n)
		return n == val
	}
}

// List describes every registered job for the CLI.
func List() []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		freq := j.cronExpr
		if freq == "" {
			freq = j.interval.String()
		}
		out = append(out, fmt.Sprintf("%s  [%s]", j.id, freq))
	}
	return out
}
