// Package realtime pushes schedule changes to connected websocket clients.
// Clients subscribe to rooms when they connect; a room per team carries event
// created/updated/deleted notices.
package realtime

import (
	"club-api/core/logger"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

const (
	TypeSubscribed   = "subscribed"
	TypeEventCreated = "event.created"
	TypeEventUpdated = "event.updated"
	TypeEventDeleted = "event.deleted"

	writeTimeout = 5 * time.Second
)

type Message struct {
	Type string `json:"type"`
	Room string `json:"room"`
	Data any    `json:"data,omitempty"`
}

// Publisher is what services depend on.
type Publisher interface {
	Publish(room, msgType string, data any)
}

type subscriber struct {
	send      chan []byte
	closeSlow func()
}

type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[*subscriber]struct{}
	buffer  int
	origins []string
}

// NewHub creates a hub; origins are the allowed Origin patterns for upgrades.
func NewHub(origins []string) *Hub {
	return &Hub{
		rooms:   make(map[string]map[*subscriber]struct{}),
		buffer:  16,
		origins: origins,
	}
}

func TeamRoom(teamID uuid.UUID) string {
	return "team_" + teamID.String()
}

// Publish fans msg out to the room. Subscribers whose buffer is full are dropped.
func (h *Hub) Publish(room, msgType string, data any) {
	b, err := json.Marshal(Message{Type: msgType, Room: room, Data: data})
	if err != nil {
		logger.Error("Hub:Publish:Marshal", "room", room, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.rooms[room] {
		select {
		case s.send <- b:
		default:
			go s.closeSlow()
		}
	}
}

// Subscribers returns the number of subscribers in room.
func (h *Hub) Subscribers(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Serve upgrades the request and streams room messages until the client leaves
// or ctx ends.
func (h *Hub) Serve(ctx context.Context, w http.ResponseWriter, r *http.Request, rooms ...string) error {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.origins})
	if err != nil {
		return err
	}
	defer conn.CloseNow()

	sub := &subscriber{
		send: make(chan []byte, h.buffer),
		closeSlow: func() {
			conn.Close(websocket.StatusPolicyViolation, "connection too slow")
		},
	}
	h.join(sub, rooms)
	defer h.leave(sub, rooms)

	// Clients only listen; CloseRead handles control frames and reports disconnects.
	ctx = conn.CloseRead(ctx)

	for _, room := range rooms {
		if err := write(ctx, conn, Message{Type: TypeSubscribed, Room: room}); err != nil {
			return err
		}
	}

	for {
		select {
		case b := <-sub.send:
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Write(wctx, websocket.MessageText, b)
			cancel()
			if err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (h *Hub) join(s *subscriber, rooms []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, room := range rooms {
		if h.rooms[room] == nil {
			h.rooms[room] = make(map[*subscriber]struct{})
		}
		h.rooms[room][s] = struct{}{}
	}
}

func (h *Hub) leave(s *subscriber, rooms []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, room := range rooms {
		delete(h.rooms[room], s)
		if len(h.rooms[room]) == 0 {
			delete(h.rooms, room)
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, msg Message) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, b)
}
