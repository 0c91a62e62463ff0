// Package ws implements the WebSocket side of Velora's live stock feed
// using gorilla/websocket.
//
// The hub is one-way: the server broadcasts stock frames, subscribers only
// listen. Inbound data frames from browsers are read and discarded so that
// control frames (pong, close) keep flowing.
//
//	var Stock = ws.NewHub()
//	func init() { go Stock.Run() }
//
//	router.Get("/ws/stock", "ws.stock", func(w http.ResponseWriter, r *http.Request) {
//	    ws.Upgrade(w, r, Stock)
//	})
//
//	Stock.Broadcast <- []byte(`{"productId":1,"quantity":4}`)
package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/velora-shop/velora/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	// Subscribers never send application data; anything beyond a control
	// frame's worth of bytes is a misbehaving client.
	readLimit = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins by default — restrict in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SetCheckOrigin replaces the default (allow-all) origin checker.
func SetCheckOrigin(fn func(r *http.Request) bool) {
	upgrader.CheckOrigin = fn
}

// subscriber is one connected dashboard. Frames queue on send; a full
// buffer means the client is too slow and gets dropped by the hub.
type subscriber struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// drain discards inbound data frames while servicing pongs, and tells the
// hub when the peer goes away.
func (s *subscriber) drain() {
	defer func() {
		s.hub.unregister <- s
		s.conn.Close()
	}()
	s.conn.SetReadLimit(readLimit)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("ws: unexpected close", "error", err)
			}
			return
		}
	}
}

// push writes queued frames and periodic pings until the connection dies
// or the hub closes the send channel.
func (s *subscriber) push() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()
	for {
		select {
		case frame, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Hub fans stock frames out to every connected subscriber.
type Hub struct {
	subscribers map[*subscriber]struct{}
	// Broadcast delivers a frame to all connected subscribers.
	Broadcast  chan []byte
	register   chan *subscriber
	unregister chan *subscriber
}

// NewHub creates a Hub. Call hub.Run() in a goroutine at startup.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*subscriber]struct{}),
		Broadcast:   make(chan []byte, 256),
		register:    make(chan *subscriber),
		unregister:  make(chan *subscriber),
	}
}

// Run is the hub event loop. Must be run in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.subscribers[sub] = struct{}{}
			logger.Info("ws: subscriber connected", "total", len(h.subscribers))

		case sub := <-h.unregister:
			if _, ok := h.subscribers[sub]; ok {
				delete(h.subscribers, sub)
				close(sub.send)
				logger.Info("ws: subscriber disconnected", "total", len(h.subscribers))
			}

		case frame := <-h.Broadcast:
			for sub := range h.subscribers {
				select {
				case sub.send <- frame:
				default:
					// Too slow to keep up; disconnect rather than block
					// everyone else.
					close(sub.send)
					delete(h.subscribers, sub)
				}
			}
		}
	}
}

// Upgrade switches an HTTP request to a WebSocket and subscribes it to the
// hub's broadcasts.
func Upgrade(w http.ResponseWriter, r *http.Request, hub *Hub) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("ws: upgrade failed", "error", err)
		return
	}
	sub := &subscriber{hub: hub, conn: conn, send: make(chan []byte, 64)}
	hub.register <- sub
	go sub.push()
	go sub.drain()
}
