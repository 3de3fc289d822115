package main

import (
	"fmt"
	"strings"
)

// roomPrompt drains the session's queue and redraws the room when its state
// moved on since the player last saw it.
func (s *Server) roomPrompt(sess *Session) (string, bool) {
	room, ok := s.rooms.get(sess.roomID)
	if !ok {
		s.fail(sess, fmt.Errorf("%w: %d", ErrRoomNotFound, sess.roomID))
		return s.lobbyPrompt(sess)
	}

	g := room.ensureGame(s.deal)
	p := sess.overlay()

	var out strings.Builder
	for _, line := range p.drain() {
		out.WriteString(line)
		out.WriteString("\r\n")
	}

	if p.needsRender(g.state) {
		out.WriteString(s.renderView(sess, room, g))
		p.markShown(g.state)
	}

	if out.Len() == 0 {
		return "", false
	}

	return out.String(), true
}

// renderView is the full screen for the room's current state as seen by
// sess.
func (s *Server) renderView(sess *Session, c *RoomContainer, g *Room) string {
	var out strings.Builder

	fmt.Fprintf(&out, "== Room %d: %s (%s) ==\r\n", c.id, c.name, g.state)

	switch g.state {
	case WaitingToStart:
		s.renderWaiting(&out, sess, g)
	case RedTurn, BlueTurn:
		s.renderTurn(&out, sess, g)
	case GameEnd:
		renderEnd(&out, g)
	}

	return out.String()
}

func (s *Server) renderWaiting(out *strings.Builder, sess *Session, g *Room) {
	out.WriteString("Players:\r\n")
	for _, id := range g.members {
		name := string(id)
		if other, ok := s.sessions[id]; ok {
			name = displayName(other)
		}

		p := s.player(id)
		marker := " "
		if id == sess.id {
			marker = ">"
		}
		fmt.Fprintf(out, "%s %-20s %-8s %s\r\n", marker, name, p.team, p.role)
	}

	if missing := g.missingRoles(s.player); len(missing) > 0 {
		fmt.Fprintf(out, "Still needed: %s\r\n", strings.Join(missing, ", "))
	}

	out.WriteString("Commands: red, blue, spymaster, teammate, show, start. Anything else is chat.\r\n")
}

func (s *Server) renderTurn(out *strings.Builder, sess *Session, g *Room) {
	p := sess.overlay()
	active := g.activeTeam()

	fmt.Fprintf(out, "%s team's turn. %s\r\n", active, g.scoreLine())

	if g.clue != nil {
		fmt.Fprintf(out, "Clue: %s, %d (%d guessed)\r\n", g.clue.Text, g.clue.Count, g.guessCount)
	} else {
		out.WriteString("No clue given yet.\r\n")
	}

	switch {
	case p.team == active && p.role == Spymaster:
		out.WriteString("You are the spymaster. Give a clue as: word,count\r\n")
	case p.team == active && p.role == Teammate:
		out.WriteString("Guess with !word, or end your turn with !! once you have guessed.\r\n")
	default:
		out.WriteString("Waiting for the other team. Anything you type is chat.\r\n")
	}

	out.WriteString(g.board.render(p.role))
}

func renderEnd(out *strings.Builder, g *Room) {
	fmt.Fprintf(out, "Game over. %s\r\n", endReason(g))
	fmt.Fprintf(out, "Final score: %s\r\n", g.scoreLine())
	out.WriteString(g.board.render(Spymaster))
	out.WriteString("Press enter to return to the lobby.\r\n")
}

// endReason explains who won a finished game and how.
func endReason(g *Room) string {
	winner := g.winner()

	switch {
	case g.assassinFoundBy != Floating:
		return fmt.Sprintf("%s team found the assassin. %s team wins!", g.assassinFoundBy, winner)
	case winner != Floating:
		return fmt.Sprintf("%s team found all of its agents and wins!", winner)
	default:
		return "Nobody wins."
	}
}

// RoomSummary is the public view of one room, shared by the lobby listing
// and the HTTP status endpoint.
type RoomSummary struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	State   string `json:"state"`
	Players int    `json:"players"`
	Red     int    `json:"red_score"`
	Blue    int    `json:"blue_score"`
}

// Rooms summarizes every room in ascending id order.
func (s *Server) Rooms() []RoomSummary {
	rooms := s.rooms.list()

	out := make([]RoomSummary, 0, len(rooms))
	for _, c := range rooms {
		summary := RoomSummary{
			ID:    c.id,
			Name:  c.name,
			State: WaitingToStart.String(),
		}

		if c.game != nil {
			summary.State = c.game.state.String()
			summary.Players = len(c.game.members)
			summary.Red = c.game.redScore
			summary.Blue = c.game.blueScore
		}

		out = append(out, summary)
	}

	return out
}
