package main

import "fmt"

// broadcastAll queues line for every member of the room.
func (s *Server) broadcastAll(g *Room, line string) {
	for _, id := range g.members {
		if sess, ok := s.sessions[id]; ok {
			sess.overlay().enqueue(line)
		}
	}
}

// broadcastOthers queues line for every member except from.
func (s *Server) broadcastOthers(g *Room, from SessionID, line string) {
	for _, id := range g.members {
		if id == from {
			continue
		}
		if sess, ok := s.sessions[id]; ok {
			sess.overlay().enqueue(line)
		}
	}
}

// forceRenderAll makes every member's next prompt redraw the room.
func (s *Server) forceRenderAll(g *Room) {
	for _, id := range g.members {
		if sess, ok := s.sessions[id]; ok {
			sess.overlay().forceRender()
		}
	}
}

// leaveRooms removes sess from every room that lists it. This walks the
// whole registry.
func (s *Server) leaveRooms(sess *Session) {
	for _, room := range s.rooms.list() {
		if room.game == nil {
			continue
		}
		if room.game.removeMember(sess.id) {
			s.broadcastAll(room.game, displayName(sess)+" left the game")
		}
	}
}

// closeRoom tears a finished room down and sends its members back to the
// lobby. Their players are kept.
func (s *Server) closeRoom(room *RoomContainer) {
	s.rooms.remove(room.id)

	if room.game != nil {
		for _, id := range room.game.members {
			sess, ok := s.sessions[id]
			if !ok || sess.roomID != room.id {
				continue
			}

			sess.roomID = 0
			sess.prevMode = sess.mode
			sess.mode = ModeLobbySelection
			sess.lastPrompt = ""
			sess.overlay().enqueue(fmt.Sprintf("Room %d closed", room.id))
		}
	}

	logf(s.cfg, "GAMES: Closed room %d", room.id)
}
