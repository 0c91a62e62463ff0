package schedule_test

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/velora-shop/velora/pkg/schedule"
)

func TestSecondsTaskRuns(t *testing.T) {
	var runs atomic.Int32
	schedule.Every(1).Seconds().Name("tick").Run(func() { runs.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	schedule.Start(ctx)

	deadline := time.Now().Add(5 * time.Second)
	for runs.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	assert.Greater(t, runs.Load(), int32(0), "task never ran")
}

func TestListShowsRegisteredEntries(t *testing.T) {
	schedule.Daily().At("07:00").Name("morning-digest").Run(func() {})

	var found string
	for _, line := range schedule.List() {
		if strings.Contains(line, "morning-digest") {
			found = line
		}
	}
	assert.NotEmpty(t, found)
	// At() converts the daily interval to a cron expression.
	assert.Contains(t, found, "0 7 * * *")
}
