// Package event is the in-process dispatcher that decouples services from
// their side effects: placing an order fires "order.placed", and listeners
// queue the mail jobs and broadcast stock updates.
package event

import "sync"

// Handler receives an event payload.
type Handler func(payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}
)

// Listen registers a handler for the given event name.
func Listen(event string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[event] = append(handlers[event], handler)
}

// snapshot copies the handler list so listeners registered mid-dispatch
// don't race the iteration.
func snapshot(event string) []Handler {
	mu.RLock()
	defer mu.RUnlock()
	hs := make([]Handler, len(handlers[event]))
	copy(hs, handlers[event])
	return hs
}

// Fire dispatches an event synchronously to every registered listener.
func Fire(event string, payload interface{}) {
	for _, h := range snapshot(event) {
		h(payload)
	}
}

// FireAsync dispatches to every listener in its own goroutine and returns
// immediately.
func FireAsync(event string, payload interface{}) {
	for _, h := range snapshot(event) {
		go h(payload)
	}
}

// Flush removes all listeners. Tests use it to isolate registrations.
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}
