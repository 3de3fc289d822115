package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxNameLength = 20

const (
	promptJoined  = "Connected to Telnet Codenames\r\n"
	promptName    = "Enter a username:\r\n"
	promptLobby   = "Which lobby do you want to join? Or create a new lobby\r\n"
	promptInvalid = "Invalid input, please try again\r\n"
	promptFatal   = "Fatal error, disconnecting\r\n"
)

// lobbyPrompt builds the prompt for every mode outside of a room. The
// screen itself is only repeated when its text changed.
func (s *Server) lobbyPrompt(sess *Session) (string, bool) {
	var screen string

	switch sess.mode {
	case ModeJoined:
		screen = promptJoined
	case ModeChooseName:
		screen = promptName
	case ModeLobbySelection:
		screen = promptLobby + s.lobbyListing()
	case ModeInvalidInput:
		screen = promptInvalid
	case ModeFatal:
		screen = promptFatal
	}

	var out strings.Builder
	if sess.player != nil {
		for _, line := range sess.player.drain() {
			out.WriteString(line)
			out.WriteString("\r\n")
		}
	}

	if screen != sess.lastPrompt {
		out.WriteString(screen)
		sess.lastPrompt = screen
	}

	if out.Len() == 0 {
		return "", false
	}

	return out.String(), true
}

func (s *Server) lobbyListing() string {
	var out strings.Builder

	out.WriteString("0: New Lobby\r\n")
	for _, room := range s.Rooms() {
		fmt.Fprintf(&out, "%d: %s (%d players, %s)\r\n", room.ID, room.Name, room.Players, room.State)
	}

	return out.String()
}

func validName(name string) bool {
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return false
	}

	for _, r := range name {
		if !unicode.IsPrint(r) || r == ':' {
			return false
		}
	}

	return true
}

func (s *Server) nameTaken(sess *Session, name string) bool {
	for _, other := range s.sessions {
		if other != sess && strings.EqualFold(other.name, name) {
			return true
		}
	}
	return false
}

func (s *Server) chooseName(sess *Session, line string) {
	if !validName(line) || s.nameTaken(sess, line) {
		sess.mode = ModeInvalidInput
		return
	}

	sess.name = line
	sess.mode = ModeLobbySelection

	logf(s.cfg, "GAMES: %s is now known as %q", sess.addr, sess.name)
}

// selectLobby handles a lobby index: 0 makes a new room, anything else
// must name a room that exists.
func (s *Server) selectLobby(sess *Session, line string) {
	id, err := strconv.Atoi(line)
	if err != nil || id < 0 {
		sess.mode = ModeInvalidInput
		return
	}

	var room *RoomContainer
	if id == 0 {
		room = s.rooms.create(sess.name + "'s room")
		logf(s.cfg, "GAMES: %q created room %d", sess.name, room.id)
	} else {
		var ok bool
		room, ok = s.rooms.get(id)
		if !ok {
			sess.mode = ModeInvalidInput
			return
		}
	}

	s.enterRoom(sess, room)
}

func (s *Server) enterRoom(sess *Session, room *RoomContainer) {
	g := room.ensureGame(s.deal)

	p := sess.overlay()
	p.forceRender()

	g.addMember(sess.id)
	sess.roomID = room.id
	sess.mode = ModeInRoom
	sess.lastPrompt = ""

	s.broadcastOthers(g, sess.id, sess.name+" joined the room")

	logf(s.cfg, "GAMES: %q joined room %d (%d members)", sess.name, room.id, len(g.members))
}
