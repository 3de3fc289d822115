package main

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

// SessionID identifies one connection for its whole lifetime.
type SessionID string

func newSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// Mode is the top-level screen a session is on.
type Mode int

const (
	ModeJoined Mode = iota
	ModeChooseName
	ModeLobbySelection
	ModeInRoom
	ModeInvalidInput
	ModeFatal
)

// Session is one connected player, independent of any room.
type Session struct {
	id       SessionID
	addr     string
	name     string
	mode     Mode
	prevMode Mode

	// roomID is 0 while the session is outside every room.
	roomID int

	// player is created the first time the session enters a room.
	player *Player

	// lastPrompt is the last screen sent outside of a room.
	lastPrompt string
}

// overlay returns the session's game data, creating it on first use.
func (sess *Session) overlay() *Player {
	if sess.player == nil {
		sess.player = newPlayer()
	}
	return sess.player
}

// Server is the whole game world: every room and every connected session.
// It is not safe for concurrent use; the hub is its only caller.
type Server struct {
	cfg      *Config
	rooms    *Registry
	sessions map[SessionID]*Session
	words    []string
	rng      *rand.Rand
}

func newServer(cfg *Config, words []string, rng *rand.Rand) *Server {
	return &Server{
		cfg:      cfg,
		rooms:    newRegistry(),
		sessions: make(map[SessionID]*Session),
		words:    words,
		rng:      rng,
	}
}

func (s *Server) deal() Board {
	return generateBoard(s.rng, s.words)
}

// Connect starts tracking a new session.
func (s *Server) Connect(id SessionID, addr string) {
	s.sessions[id] = &Session{
		id:       id,
		addr:     addr,
		mode:     ModeJoined,
		prevMode: ModeJoined,
	}
}

func (s *Server) session(id SessionID) (*Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// player returns the overlay for id without creating one. Sessions that
// have never entered a room read as a fresh default player.
func (s *Server) player(id SessionID) *Player {
	if sess, ok := s.sessions[id]; ok && sess.player != nil {
		return sess.player
	}
	return newPlayer()
}

// Fatal reports whether the session must be disconnected.
func (s *Server) Fatal(id SessionID) bool {
	sess, ok := s.sessions[id]
	return ok && sess.mode == ModeFatal
}

// ProducePrompt returns whatever the session has not been shown yet: queued
// lines first, then the current screen if it changed. It returns false when
// there is nothing new to send.
func (s *Server) ProducePrompt(id SessionID) (string, bool) {
	sess, err := s.session(id)
	if err != nil {
		return "", false
	}

	if sess.mode == ModeInRoom {
		return s.roomPrompt(sess)
	}

	return s.lobbyPrompt(sess)
}

// ApplyInput feeds one line from the session into the game.
func (s *Server) ApplyInput(id SessionID, line string) {
	s.drive(id, strings.TrimSpace(line), false)
}

// Tick drives the session without input, for polls where no line arrived.
func (s *Server) Tick(id SessionID) {
	s.drive(id, "", true)
}

func (s *Server) drive(id SessionID, line string, idle bool) {
	sess, err := s.session(id)
	if err != nil {
		return
	}

	start := sess.mode

	switch sess.mode {
	case ModeJoined:
		sess.mode = ModeChooseName
	case ModeChooseName:
		if !idle {
			s.chooseName(sess, line)
		}
	case ModeLobbySelection:
		if !idle {
			s.selectLobby(sess, line)
		}
	case ModeInvalidInput:
		sess.mode = sess.prevMode
	case ModeInRoom:
		if !idle {
			s.roomInput(sess, line)
		}
	case ModeFatal:
	}

	if sess.mode != start {
		sess.prevMode = start
	}
}

// OnDisconnect forgets the session and removes it from every room it was
// part of, telling the rest of that room.
func (s *Server) OnDisconnect(id SessionID) {
	sess, err := s.session(id)
	if err != nil {
		return
	}

	delete(s.sessions, id)
	s.leaveRooms(sess)

	logf(s.cfg, "GAMES: %s (%s) disconnected", displayName(sess), sess.addr)
}

// fail puts a session whose state no longer makes sense into the fatal
// mode; the transport drops it after the next prompt.
func (s *Server) fail(sess *Session, err error) {
	errorf("GAMES: dropping %s (%s): %v", displayName(sess), sess.addr, err)
	sess.mode = ModeFatal
	sess.roomID = 0
}

func displayName(sess *Session) string {
	if sess.name == "" {
		return string(sess.id)
	}
	return sess.name
}
