// Package sse writes Server-Sent Events, the fallback transport for live
// stock updates when a proxy in front of Velora breaks WebSockets.
//
//	stream := sse.New(w, r)
//	for update := range updates {
//	    stream.Send("stock", update)
//	    if stream.IsClosed() {
//	        break
//	    }
//	}
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Stream is one open SSE connection. The zero value is not usable; nil
// streams are safe to call, every method no-ops.
type Stream struct {
	w       http.ResponseWriter
	r       *http.Request
	flusher http.Flusher
	closed  bool
}

// New sets the event-stream headers and wraps the connection. Returns nil
// if the ResponseWriter cannot flush.
func New(w http.ResponseWriter, r *http.Request) *Stream {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return nil
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no") // disable nginx buffering

	return &Stream{w: w, r: r, flusher: flusher}
}

// flush pushes buffered bytes to the client and notes a disconnect.
func (s *Stream) flush() {
	s.flusher.Flush()
	select {
	case <-s.r.Context().Done():
		s.closed = true
	default:
	}
}

// Send writes a named event with a JSON-encoded payload.
func (s *Stream) Send(event string, data any) error {
	if s == nil || s.closed {
		return nil
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("sse: marshal: %w", err)
	}

	fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload)
	s.flush()
	return nil
}

// SendRaw writes a bare data line with no event name. Used for frames that
// are already JSON, like the stock updates shared with the WebSocket hub.
func (s *Stream) SendRaw(data string) {
	if s == nil || s.closed {
		return
	}
	fmt.Fprintf(s.w, "data: %s\n\n", data)
	s.flush()
}

// Comment writes an SSE comment line, used as a keepalive heartbeat.
func (s *Stream) Comment(msg string) {
	if s == nil || s.closed {
		return
	}
	fmt.Fprintf(s.w, ": %s\n\n", msg)
	s.flush()
}

// IsClosed reports whether the client has disconnected.
func (s *Stream) IsClosed() bool {
	if s == nil {
		return true
	}
	select {
	case <-s.r.Context().Done():
		s.closed = true
	default:
	}
	return s.closed
}
