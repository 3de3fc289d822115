package main

import (
	"context"
	"time"
)

// sendBuffer is how many prompts may queue for a slow client before the
// hub gives up on it.
const sendBuffer = 64

type client struct {
	id   SessionID
	addr string
	send chan string
}

func newClient(addr string) *client {
	return &client{
		id:   newSessionID(),
		addr: addr,
		send: make(chan string, sendBuffer),
	}
}

type lineRequest struct {
	id   SessionID
	line string
}

// Hub is the only goroutine that touches the Server. Transports talk to it
// over channels.
type Hub struct {
	cfg     *Config
	server  *Server
	clients map[SessionID]*client

	register chan *client
	unreg    chan SessionID
	lines    chan lineRequest
	roomsReq chan chan []RoomSummary
}

func newHub(cfg *Config, server *Server) *Hub {
	return &Hub{
		cfg:      cfg,
		server:   server,
		clients:  make(map[SessionID]*client),
		register: make(chan *client),
		unreg:    make(chan SessionID),
		lines:    make(chan lineRequest),
		roomsReq: make(chan chan []RoomSummary),
	}
}

func (h *Hub) run(ctx context.Context) {
	ticker := time.NewTicker(h.cfg.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			for id := range h.clients {
				h.drop(id)
			}
			return

		case c := <-h.register:
			h.clients[c.id] = c
			h.server.Connect(c.id, c.addr)

			logf(h.cfg, "GAMES: %s connected as %s", c.addr, c.id)

			h.flush(c)

		case id := <-h.unreg:
			h.drop(id)
			h.flushAll()

		case req := <-h.lines:
			if _, ok := h.clients[req.id]; !ok {
				continue
			}
			h.server.ApplyInput(req.id, req.line)
			h.flushAll()

		case <-ticker.C:
			for id := range h.clients {
				h.server.Tick(id)
			}
			h.flushAll()

		case reply := <-h.roomsReq:
			reply <- h.server.Rooms()
		}
	}
}

func (h *Hub) flushAll() {
	for _, c := range h.clients {
		h.flush(c)
	}
}

// flush hands the client whatever it has not seen yet. Clients that cannot
// keep up, or whose session went fatal, are dropped.
func (h *Hub) flush(c *client) {
	if text, ok := h.server.ProducePrompt(c.id); ok {
		select {
		case c.send <- text:
		default:
			errorf("GAMES: %s (%s) is not reading, dropping it", c.id, c.addr)
			h.drop(c.id)
			return
		}
	}

	if h.server.Fatal(c.id) {
		h.drop(c.id)
	}
}

// drop closes the client's outbound channel, which makes its transport hang
// up once everything already queued has been written.
func (h *Hub) drop(id SessionID) {
	c, ok := h.clients[id]
	if !ok {
		return
	}

	delete(h.clients, id)
	close(c.send)

	h.server.OnDisconnect(id)
}

func (h *Hub) connect(ctx context.Context, c *client) bool {
	select {
	case h.register <- c:
		return true
	case <-ctx.Done():
		return false
	}
}

func (h *Hub) input(ctx context.Context, id SessionID, line string) {
	select {
	case h.lines <- lineRequest{id: id, line: line}:
	case <-ctx.Done():
	}
}

func (h *Hub) disconnect(ctx context.Context, id SessionID) {
	select {
	case h.unreg <- id:
	case <-ctx.Done():
	}
}

// rooms asks the hub for a snapshot of every room.
func (h *Hub) rooms(ctx context.Context) ([]RoomSummary, error) {
	reply := make(chan []RoomSummary, 1)

	select {
	case h.roomsReq <- reply:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case rooms := <-reply:
		return rooms, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
