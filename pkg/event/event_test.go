package event_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/velora-shop/velora/pkg/event"
)

func TestFireReachesAllListeners(t *testing.T) {
	t.Cleanup(event.Flush)

	var got []interface{}
	event.Listen("order.shipped", func(p interface{}) { got = append(got, p) })
	event.Listen("order.shipped", func(p interface{}) { got = append(got, p) })

	event.Fire("order.shipped", 42)
	assert.Equal(t, []interface{}{42, 42}, got)
}

func TestFireUnknownEventIsNoop(t *testing.T) {
	t.Cleanup(event.Flush)
	assert.NotPanics(t, func() { event.Fire("nobody.listens", nil) })
}

func TestFireAsync(t *testing.T) {
	t.Cleanup(event.Flush)

	var wg sync.WaitGroup
	wg.Add(2)
	event.Listen("ping", func(interface{}) { wg.Done() })
	event.Listen("ping", func(interface{}) { wg.Done() })

	event.FireAsync("ping", nil)

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("async listeners never ran")
	}
}

func TestFlush(t *testing.T) {
	fired := false
	event.Listen("stale", func(interface{}) { fired = true })
	event.Flush()

	event.Fire("stale", nil)
	assert.False(t, fired)
}
