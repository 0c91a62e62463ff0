package realtime

import (
	"net/http"
	"sync"
	"time"

	"github.com/velora-shop/velora/pkg/sse"
)

// sseSubscribers holds one buffered channel per connected SSE client.
var (
	sseMu          sync.Mutex
	sseSubscribers = make(map[chan []byte]struct{})
)

// publish fans a stock frame out to every SSE subscriber. Slow clients
// drop frames rather than block the order path.
func publish(frame []byte) {
	sseMu.Lock()
	defer sseMu.Unlock()
	for ch := range sseSubscribers {
		select {
		case ch <- frame:
		default:
		}
	}
}

func subscribe() (chan []byte, func()) {
	ch := make(chan []byte, 16)
	sseMu.Lock()
	sseSubscribers[ch] = struct{}{}
	sseMu.Unlock()

	cancel := func() {
		sseMu.Lock()
		delete(sseSubscribers, ch)
		sseMu.Unlock()
	}
	return ch, cancel
}

// StreamStockSSE serves the same stock frames as the WebSocket hub over
// Server-Sent Events, for dashboards behind proxies that strip upgrades.
func StreamStockSSE(w http.ResponseWriter, r *http.Request) {
	stream := sse.New(w, r)
	if stream == nil {
		return
	}

	ch, cancel := subscribe()
	defer cancel()

	heartbeat := time.NewTicker(25 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			stream.Comment("keepalive")
		case frame := <-ch:
			stream.SendRaw(string(frame))
		}
		if stream.IsClosed() {
			return
		}
	}
}
