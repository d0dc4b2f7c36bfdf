// Package realtime implements the admin broadcast group over WebSocket.
//
// A single goroutine owns the client set and serializes register,
// unregister and broadcast commands over channels. Delivery is at-most-once
// and best-effort: a session that is offline at broadcast time never
// receives that event, and a client whose send buffer is full is dropped
// rather than awaited.
package realtime

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mehdios/senteur/internal/metrics"
)

// Envelope is the wire frame sent to every admin session.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	count      chan chan int
	done       chan struct{}
	log        *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		count:      make(chan chan int),
		done:       make(chan struct{}),
		log:        log.With("component", "realtime"),
	}
}

// Run owns the client set until ctx is cancelled. All remaining
// connections are closed on the way out.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
			metrics.WSConnections.Set(float64(len(h.clients)))
			h.log.Info("admin session joined", slog.Int("sessions", len(h.clients)))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.WSConnections.Set(float64(len(h.clients)))
				h.log.Info("admin session left", slog.Int("sessions", len(h.clients)))
			}

		case msg := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					// slow consumer, drop it
					delete(h.clients, client)
					close(client.send)
				}
			}
			metrics.WSConnections.Set(float64(len(h.clients)))

		case reply := <-h.count:
			reply <- len(h.clients)

		case <-ctx.Done():
			// unblocks client pumps still trying to register or
			// unregister after the loop exits
			close(h.done)
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			metrics.WSConnections.Set(0)
			h.log.Info("realtime hub stopped")
			return
		}
	}
}

// Broadcast emits an event to every connected admin session. With zero
// sessions it is a no-op. It never blocks the caller on socket writes.
func (h *Hub) Broadcast(event string, data interface{}) error {
	msg, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		return err
	}
	h.broadcast <- msg
	metrics.Broadcasts.Inc()
	return nil
}

// Sessions reports the number of currently connected admin sessions.
func (h *Hub) Sessions() int {
	reply := make(chan int, 1)
	h.count <- reply
	return <-reply
}
