// Package chat relays websocket frames between connections in the same room.
package chat

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sbworks/marketplace/internal/api/metrics"
)

const DefaultRoom = "lobby"

type frame struct {
	kind int
	data []byte
}

type envelope struct {
	from  *Client
	frame frame
}

// Hub owns room membership. All mutations happen on the Run goroutine.
type Hub struct {
	rooms      map[string]map[*Client]struct{}
	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	countReq   chan countRequest
	done       chan struct{}
	log        zerolog.Logger
}

type countRequest struct {
	room  string
	reply chan int
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]struct{}),
		broadcast:  make(chan envelope, 1024),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		countReq:   make(chan countRequest),
		done:       make(chan struct{}),
		log:        log.With().Str("component", "chat_hub").Logger(),
	}
}

// Run processes hub traffic until ctx is done, then disconnects every client.
// It must be called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, members := range h.rooms {
				for c := range members {
					h.drop(c)
				}
			}
			return

		case c := <-h.register:
			members, ok := h.rooms[c.room]
			if !ok {
				members = make(map[*Client]struct{})
				h.rooms[c.room] = members
			}
			members[c] = struct{}{}
			metrics.ChatConnections.Inc()
			h.log.Debug().Str("room", c.room).Str("user_id", c.userID).Int("members", len(members)).Msg("chat joined")

		case c := <-h.unregister:
			h.drop(c)

		case env := <-h.broadcast:
			for c := range h.rooms[env.from.room] {
				if c == env.from {
					continue
				}
				select {
				case c.send <- env.frame:
					metrics.ChatMessagesTotal.WithLabelValues("delivered").Inc()
				default:
					metrics.ChatMessagesTotal.WithLabelValues("dropped").Inc()
					h.log.Warn().Str("room", c.room).Str("user_id", c.userID).Msg("chat client too slow, disconnecting")
					h.drop(c)
				}
			}

		case req := <-h.countReq:
			req.reply <- len(h.rooms[req.room])
		}
	}
}

// drop removes c from its room and closes its send channel once.
func (h *Hub) drop(c *Client) {
	members, ok := h.rooms[c.room]
	if !ok {
		return
	}
	if _, ok := members[c]; !ok {
		return
	}
	delete(members, c)
	close(c.send)
	metrics.ChatConnections.Dec()
	if len(members) == 0 {
		delete(h.rooms, c.room)
	}
	h.log.Debug().Str("room", c.room).Str("user_id", c.userID).Msg("chat left")
}

// Register joins c to its room. Once the hub has stopped, c's send channel is
// closed instead so its write pump ends the connection.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		close(c.send)
	}
}

// Unregister is a no-op after the hub has stopped.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues data for every other member of from's room. Frames are
// dropped when the hub is saturated.
func (h *Hub) Broadcast(from *Client, kind int, data []byte) {
	select {
	case h.broadcast <- envelope{from: from, frame: frame{kind: kind, data: data}}:
	default:
		metrics.ChatMessagesTotal.WithLabelValues("dropped").Inc()
		h.log.Warn().Str("room", from.room).Msg("chat broadcast dropped: buffer full")
	}
}

// Members returns the number of clients currently in room.
func (h *Hub) Members(ctx context.Context, room string) int {
	reply := make(chan int, 1)
	select {
	case h.countReq <- countRequest{room: room, reply: reply}:
		return <-reply
	case <-ctx.Done():
		return 0
	case <-h.done:
		return 0
	}
}
