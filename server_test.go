package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	return newServer(&Config{}, testWords(t), testRNG())
}

// login connects a session and walks it through to the lobby.
func login(t *testing.T, s *Server, id SessionID, name string) {
	t.Helper()

	s.Connect(id, "127.0.0.1:23")
	s.Tick(id)
	s.ApplyInput(id, name)

	sess, err := s.session(id)
	require.NoError(t, err)
	require.Equal(t, ModeLobbySelection, sess.mode)
}

// drain reads and discards whatever the session has pending.
func drain(s *Server, ids ...SessionID) {
	for _, id := range ids {
		s.ProducePrompt(id)
	}
}

func prompt(t *testing.T, s *Server, id SessionID) string {
	t.Helper()

	text, ok := s.ProducePrompt(id)
	require.True(t, ok, "expected a prompt for %s", id)

	return text
}

// seatedRoom puts alice and bob on red and carol and dave on blue, each
// team with one spymaster and one teammate, all in room 1.
func seatedRoom(t *testing.T) (*Server, *Room) {
	t.Helper()

	s := newTestServer(t)

	seats := []struct {
		id, name, team, role string
	}{
		{"a", "alice", "red", "spymaster"},
		{"b", "bob", "red", "teammate"},
		{"c", "carol", "blue", "spymaster"},
		{"d", "dave", "blue", "teammate"},
	}

	for i, seat := range seats {
		id := SessionID(seat.id)
		login(t, s, id, seat.name)
		if i == 0 {
			s.ApplyInput(id, "0")
		} else {
			s.ApplyInput(id, "1")
		}
		s.ApplyInput(id, seat.team)
		s.ApplyInput(id, seat.role)
	}

	room, ok := s.rooms.get(1)
	require.True(t, ok)
	require.NotNil(t, room.game)

	room.game.board = fixedBoard()
	drain(s, "a", "b", "c", "d")

	return s, room.game
}

func TestSessionModeFlow(t *testing.T) {
	s := newTestServer(t)

	s.Connect("a", "127.0.0.1:23")
	assert.Equal(t, promptJoined, prompt(t, s, "a"))

	s.Tick("a")
	assert.Equal(t, promptName, prompt(t, s, "a"))

	s.ApplyInput("a", "bad:name")
	assert.Equal(t, promptInvalid, prompt(t, s, "a"))

	s.Tick("a")
	assert.Equal(t, promptName, prompt(t, s, "a"))

	s.ApplyInput("a", "  alice  ")
	text := prompt(t, s, "a")
	assert.Contains(t, text, promptLobby)
	assert.Contains(t, text, "0: New Lobby")

	sess, err := s.session("a")
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.name)
}

func TestNameRules(t *testing.T) {
	s := newTestServer(t)
	login(t, s, "a", "alice")

	s.Connect("b", "127.0.0.1:24")
	s.Tick("b")

	for _, name := range []string{"ALICE", "", "this name is far too long for us", "tab\there"} {
		s.ApplyInput("b", name)
		sess, _ := s.session("b")
		assert.Equal(t, ModeInvalidInput, sess.mode, "name %q", name)
		s.Tick("b")
	}

	s.ApplyInput("b", "bob")
	sess, _ := s.session("b")
	assert.Equal(t, ModeLobbySelection, sess.mode)
}

func TestLobbySelection(t *testing.T) {
	s := newTestServer(t)
	login(t, s, "a", "alice")
	login(t, s, "b", "bob")

	s.ApplyInput("a", "0")
	sess, _ := s.session("a")
	assert.Equal(t, ModeInRoom, sess.mode)
	assert.Equal(t, 1, sess.roomID)

	drain(s, "b")
	s.Tick("b")
	assert.Equal(t, "0: New Lobby\r\n1: alice's room (1 players, waiting)\r\n", s.lobbyListing())

	s.ApplyInput("b", "7")
	sess, _ = s.session("b")
	assert.Equal(t, ModeInvalidInput, sess.mode)

	s.Tick("b")
	s.ApplyInput("b", "1")
	assert.Equal(t, ModeInRoom, sess.mode)
	assert.Contains(t, prompt(t, s, "a"), "bob joined the room")
}

func TestPromptDedup(t *testing.T) {
	s := newTestServer(t)
	login(t, s, "a", "alice")
	s.ApplyInput("a", "0")

	text := prompt(t, s, "a")
	assert.Contains(t, text, "Room 1")
	assert.Contains(t, text, "alice")

	_, ok := s.ProducePrompt("a")
	assert.False(t, ok)

	s.Tick("a")
	_, ok = s.ProducePrompt("a")
	assert.False(t, ok)

	s.ApplyInput("a", "show")
	assert.Contains(t, prompt(t, s, "a"), "Players:")
}

func TestLobbyPromptDedup(t *testing.T) {
	s := newTestServer(t)
	login(t, s, "a", "alice")
	drain(s, "a")

	_, ok := s.ProducePrompt("a")
	assert.False(t, ok)
}

func TestChatGoesToOthers(t *testing.T) {
	s := newTestServer(t)
	login(t, s, "a", "alice")
	login(t, s, "b", "bob")
	s.ApplyInput("a", "0")
	s.ApplyInput("b", "1")
	drain(s, "a", "b")

	s.ApplyInput("a", "hello there")

	assert.Equal(t, "alice: hello there\r\n", prompt(t, s, "b"))
	_, ok := s.ProducePrompt("a")
	assert.False(t, ok)
}

func TestSeatCommands(t *testing.T) {
	s := newTestServer(t)
	login(t, s, "a", "alice")
	s.ApplyInput("a", "0")
	drain(s, "a")

	s.ApplyInput("a", "Blue")
	s.ApplyInput("a", "SPYMASTER")

	p := s.player("a")
	assert.Equal(t, Blue, p.team)
	assert.Equal(t, Spymaster, p.role)
	assert.Contains(t, prompt(t, s, "a"), "Blue")
}

func TestStartRequiresEveryRole(t *testing.T) {
	s := newTestServer(t)

	login(t, s, "a", "alice")
	login(t, s, "b", "bob")
	login(t, s, "c", "carol")
	s.ApplyInput("a", "0")
	s.ApplyInput("b", "1")
	s.ApplyInput("c", "1")

	s.ApplyInput("a", "red")
	s.ApplyInput("a", "spymaster")
	s.ApplyInput("b", "red")
	s.ApplyInput("b", "teammate")
	s.ApplyInput("c", "blue")
	s.ApplyInput("c", "spymaster")
	drain(s, "a", "b", "c")

	s.ApplyInput("a", "start")

	room, _ := s.rooms.get(1)
	assert.Equal(t, WaitingToStart, room.game.state)
	for _, id := range []SessionID{"a", "b", "c"} {
		assert.Contains(t, prompt(t, s, id), "blue teammate")
	}

	login(t, s, "d", "dave")
	s.ApplyInput("d", "1")
	s.ApplyInput("d", "blue")
	s.ApplyInput("d", "teammate")
	drain(s, "a", "b", "c", "d")

	s.ApplyInput("a", "start")
	assert.Equal(t, RedTurn, room.game.state)

	text := prompt(t, s, "d")
	assert.Contains(t, text, "alice started the game")
	assert.Contains(t, text, "Red team's turn")
}

func TestTurnFlow(t *testing.T) {
	s, g := seatedRoom(t)

	s.ApplyInput("a", "start")
	require.Equal(t, RedTurn, g.state)
	drain(s, "a", "b", "c", "d")

	// The blue spymaster is not acting, so this is chat.
	s.ApplyInput("c", "ocean,2")
	assert.Nil(t, g.clue)
	assert.Contains(t, prompt(t, s, "a"), "carol: ocean,2")

	s.ApplyInput("a", "ocean 2")
	assert.Nil(t, g.clue)

	s.ApplyInput("a", "ocean,1")
	require.NotNil(t, g.clue)
	assert.Equal(t, Clue{Text: "ocean", Count: 1}, *g.clue)
	text := prompt(t, s, "d")
	assert.Contains(t, text, "Red spymaster alice: ocean, 1")
	assert.Contains(t, text, "Clue: ocean, 1 (0 guessed)")
	drain(s, "a", "b", "c", "d")

	// Nothing to pass on before the first guess.
	s.ApplyInput("b", "!!")
	assert.Equal(t, RedTurn, g.state)

	s.ApplyInput("b", "!w00")
	assert.Equal(t, 1, g.redScore)
	assert.Equal(t, RedTurn, g.state)

	text = prompt(t, s, "c")
	assert.Contains(t, text, "bob guesses w00")
	assert.Contains(t, text, "w00 is a red agent")
	assert.Contains(t, text, "w00(red)*")

	s.ApplyInput("b", "!w09")
	assert.Equal(t, BlueTurn, g.state)
	assert.Equal(t, 1, g.blueScore)
	assert.Contains(t, prompt(t, s, "a"), "Turn over")
	drain(s, "b", "c", "d")

	// Bob is off turn now; his guess is chat.
	s.ApplyInput("b", "!w01")
	assert.False(t, g.board.find("w01").Flipped)
	assert.Contains(t, prompt(t, s, "d"), "bob: !w01")
}

func TestUnknownGuessIsReported(t *testing.T) {
	s, g := seatedRoom(t)
	s.ApplyInput("a", "start")
	drain(s, "a", "b", "c", "d")

	s.ApplyInput("b", "!zebra")

	assert.Equal(t, 1, g.guessCount)
	assert.Contains(t, prompt(t, s, "a"), "zebra is not a valid card name")
}

func TestEndTurnCommand(t *testing.T) {
	s, g := seatedRoom(t)
	s.ApplyInput("a", "start")
	s.ApplyInput("a", "ocean,3")
	s.ApplyInput("b", "!w00")
	drain(s, "a", "b", "c", "d")

	s.ApplyInput("b", "!!")

	assert.Equal(t, BlueTurn, g.state)
	assert.Equal(t, 0, g.guessCount)
	assert.Contains(t, prompt(t, s, "c"), "bob ended the Red turn")
}

func TestTeammateViewHidesKinds(t *testing.T) {
	s, _ := seatedRoom(t)
	s.ApplyInput("a", "start")

	teammate := prompt(t, s, "b")
	spymaster := prompt(t, s, "a")

	assert.NotContains(t, teammate, "(red)")
	assert.NotContains(t, teammate, "(assassin)")
	assert.Contains(t, spymaster, "w24(assassin)")
}

func TestAssassinEndsGameAndTeardown(t *testing.T) {
	s, g := seatedRoom(t)
	s.ApplyInput("a", "start")
	s.ApplyInput("a", "ocean,1")
	s.ApplyInput("b", "!w00")
	s.ApplyInput("b", "!w09")
	require.Equal(t, BlueTurn, g.state)
	drain(s, "a", "b", "c", "d")

	s.ApplyInput("d", "!w24")
	require.Equal(t, GameEnd, g.state)
	assert.Equal(t, Blue, g.assassinFoundBy)

	text := prompt(t, s, "a")
	assert.Contains(t, text, "w24 is the assassin!")
	assert.Contains(t, text, "Red team wins")
	assert.Contains(t, text, "Press enter")
	drain(s, "b", "c", "d")

	// Idle ticks leave the finished room alone.
	s.Tick("a")
	_, ok := s.rooms.get(1)
	assert.True(t, ok)

	s.ApplyInput("c", "")
	_, ok = s.rooms.get(1)
	assert.False(t, ok)

	for _, id := range []SessionID{"a", "b", "c", "d"} {
		sess, err := s.session(id)
		require.NoError(t, err)
		assert.Equal(t, ModeLobbySelection, sess.mode)
		assert.Equal(t, 0, sess.roomID)

		text := prompt(t, s, id)
		assert.Contains(t, text, "Room 1 closed")
		assert.Contains(t, text, promptLobby)
	}

	// Players keep their seats for the next room.
	assert.Equal(t, Red, s.player("a").team)
}

func TestDisconnectLeavesRoom(t *testing.T) {
	s := newTestServer(t)
	login(t, s, "a", "alice")
	login(t, s, "b", "bob")
	login(t, s, "c", "carol")
	s.ApplyInput("a", "0")
	s.ApplyInput("b", "1")
	s.ApplyInput("c", "1")
	drain(s, "a", "b", "c")

	s.OnDisconnect("c")

	room, _ := s.rooms.get(1)
	assert.Equal(t, []SessionID{"a", "b"}, room.game.members)
	assert.Contains(t, prompt(t, s, "a"), "carol left the game")
	assert.Contains(t, prompt(t, s, "b"), "carol left the game")

	_, err := s.session("c")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Unknown ids are ignored everywhere.
	s.OnDisconnect("c")
	s.ApplyInput("c", "hello")
	_, ok := s.ProducePrompt("c")
	assert.False(t, ok)
}

func TestMissingRoomIsFatal(t *testing.T) {
	s := newTestServer(t)
	login(t, s, "a", "alice")
	s.ApplyInput("a", "0")
	drain(s, "a")

	s.rooms.remove(1)

	text := prompt(t, s, "a")
	assert.Contains(t, text, promptFatal)
	assert.True(t, s.Fatal("a"))
}

func TestRoomsSummary(t *testing.T) {
	s, g := seatedRoom(t)
	g.redScore = 3

	rooms := s.Rooms()
	require.Len(t, rooms, 1)
	assert.Equal(t, RoomSummary{
		ID:      1,
		Name:    "alice's room",
		State:   "waiting",
		Players: 4,
		Red:     3,
	}, rooms[0])
}
