package main

import (
	"maps"
	"slices"
)

// RoomContainer is one lobby slot: its display name and, once anyone has
// touched it, the game being played there.
type RoomContainer struct {
	id   int
	name string
	game *Room
}

// ensureGame returns the room's game, dealing a board on first use.
func (c *RoomContainer) ensureGame(deal func() Board) *Room {
	if c.game == nil {
		c.game = newRoom(deal())
	}
	return c.game
}

// Registry owns every room, keyed by id.
type Registry struct {
	rooms map[int]*RoomContainer
}

func newRegistry() *Registry {
	return &Registry{
		rooms: make(map[int]*RoomContainer),
	}
}

// create adds a room under the smallest positive id not currently in use.
func (r *Registry) create(name string) *RoomContainer {
	id := 1
	for {
		if _, taken := r.rooms[id]; !taken {
			break
		}
		id++
	}

	c := &RoomContainer{id: id, name: name}
	r.rooms[id] = c
	return c
}

func (r *Registry) get(id int) (*RoomContainer, bool) {
	c, ok := r.rooms[id]
	return c, ok
}

func (r *Registry) remove(id int) {
	delete(r.rooms, id)
}

// list returns every room in ascending id order.
func (r *Registry) list() []*RoomContainer {
	out := make([]*RoomContainer, 0, len(r.rooms))
	for _, id := range slices.Sorted(maps.Keys(r.rooms)) {
		out = append(out, r.rooms[id])
	}
	return out
}
