package feed

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/pointsdesk/pointsdesk/internal/domain"
)

type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// Event describes one change to the points table. New is nil for
// deletes, Old is nil for inserts.
type Event struct {
	Type EventType            `json:"event"`
	New  *domain.PointsRecord `json:"new,omitempty"`
	Old  *domain.PointsRecord `json:"old,omitempty"`
}

type Publisher interface {
	Publish(event Event)
}

// Hub fans change events out to websocket clients and in-process
// subscribers. Slow consumers are dropped rather than blocking writers.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client

	mu          sync.Mutex
	subscribers []chan Event
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			zap.L().Debug("feed client connected")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				zap.L().Debug("feed client disconnected")
			}

		case event := <-h.broadcast:
			h.fanOut(event)
		}
	}
}

func (h *Hub) fanOut(event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("failed to marshal feed event", zap.Error(err))
		return
	}

	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subscribers {
		select {
		case sub <- event:
		default:
			zap.L().Warn("feed subscriber lagging, event dropped")
		}
	}
}

// Publish enqueues an event for fan-out. Never blocks the caller: if
// the hub queue is full the event is dropped, consumers fall back to a
// full reload.
func (h *Hub) Publish(event Event) {
	select {
	case h.broadcast <- event:
	default:
		zap.L().Warn("feed backlog full, event dropped")
	}
}

// Subscribe registers an in-process consumer, such as the ledger cache.
func (h *Hub) Subscribe() <-chan Event {
	ch := make(chan Event, 64)
	h.mu.Lock()
	h.subscribers = append(h.subscribers, ch)
	h.mu.Unlock()
	return ch
}
