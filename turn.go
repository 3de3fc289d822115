package main

import (
	"fmt"
	"strings"
)

// roomInput applies one line from a session that is inside a room.
func (s *Server) roomInput(sess *Session, line string) {
	room, ok := s.rooms.get(sess.roomID)
	if !ok {
		s.fail(sess, fmt.Errorf("%w: %d", ErrRoomNotFound, sess.roomID))
		return
	}

	g := room.ensureGame(s.deal)
	p := sess.overlay()

	switch g.state {
	case WaitingToStart:
		s.waitingInput(sess, p, g, line)
	case RedTurn, BlueTurn:
		s.turnInput(sess, p, g, line)
	case GameEnd:
		s.closeRoom(room)
	}
}

func (s *Server) waitingInput(sess *Session, p *Player, g *Room, line string) {
	switch strings.ToLower(line) {
	case "teammate":
		p.role = Teammate
		s.announceSeat(sess, p, g)
	case "spymaster":
		p.role = Spymaster
		s.announceSeat(sess, p, g)
	case "red":
		p.team = Red
		s.announceSeat(sess, p, g)
	case "blue":
		p.team = Blue
		s.announceSeat(sess, p, g)
	case "show":
		p.forceRender()
	case "start":
		s.startGame(sess, g)
	default:
		s.chat(sess, g, line)
	}
}

// announceSeat tells the room about a team or role change and redraws the
// roster for the player who made it.
func (s *Server) announceSeat(sess *Session, p *Player, g *Room) {
	p.forceRender()
	s.broadcastOthers(g, sess.id, fmt.Sprintf("%s is now %s %s", sess.name, p.team, p.role))
}

func (s *Server) startGame(sess *Session, g *Room) {
	missing := g.missingRoles(s.player)
	if len(missing) > 0 {
		s.broadcastAll(g, fmt.Sprintf("%s tried to start the game, but nobody is playing: %s",
			sess.name, strings.Join(missing, ", ")))
		return
	}

	g.state = RedTurn
	s.broadcastAll(g, sess.name+" started the game. Red team goes first.")

	logf(s.cfg, "GAMES: Room %d started by %q", sess.roomID, sess.name)
}

func (s *Server) turnInput(sess *Session, p *Player, g *Room, line string) {
	active := g.activeTeam()
	acting := p.team == active

	switch {
	case acting && p.role == Spymaster:
		clue, ok := parseClue(line)
		if !ok {
			return
		}
		g.clue = &clue
		s.forceRenderAll(g)
		s.broadcastAll(g, fmt.Sprintf("%s spymaster %s: %s, %d", active, sess.name, clue.Text, clue.Count))

	case acting && p.role == Teammate && strings.HasPrefix(line, "!!"):
		if g.guessCount == 0 {
			return
		}
		g.endTurn()
		s.broadcastAll(g, fmt.Sprintf("%s ended the %s turn", sess.name, active))
		s.announceOutcome(sess, g)

	case acting && p.role == Teammate && strings.HasPrefix(line, "!"):
		s.guess(sess, g, strings.TrimSpace(strings.TrimPrefix(line, "!")))

	default:
		s.chat(sess, g, line)
	}
}

func (s *Server) guess(sess *Session, g *Room, word string) {
	s.broadcastAll(g, fmt.Sprintf("%s guesses %s", sess.name, word))

	res := g.guess(word)
	if res.card == nil {
		s.broadcastAll(g, word+" is not a valid card name")
		return
	}

	s.forceRenderAll(g)
	s.broadcastAll(g, reveal(*res.card))

	if res.turnEnded || res.gameEnded {
		s.announceOutcome(sess, g)
	}
}

// announceOutcome reports the room's state after a turn has changed hands
// or the game has finished.
func (s *Server) announceOutcome(sess *Session, g *Room) {
	if g.state == GameEnd {
		s.broadcastAll(g, "Game over. "+endReason(g))
		logf(s.cfg, "GAMES: Room %d finished (%s)", sess.roomID, g.scoreLine())
		return
	}

	s.broadcastAll(g, fmt.Sprintf("Turn over. It is the %s team's turn.", g.activeTeam()))
}

func reveal(card Card) string {
	if card.Kind == Assassin {
		return card.Word + " is the assassin!"
	}
	return fmt.Sprintf("%s is a %s", card.Word, card.Kind)
}

func (s *Server) chat(sess *Session, g *Room, line string) {
	if line == "" {
		return
	}
	s.broadcastOthers(g, sess.id, sess.name+": "+line)
}
