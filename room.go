package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	// redTarget and blueTarget are the agent counts each side must find.
	// Red moves first and so has one more agent to uncover.
	redTarget  = redAgents
	blueTarget = blueAgents
)

// RoomState is where a room is in its lifecycle.
type RoomState int

const (
	WaitingToStart RoomState = iota
	RedTurn
	BlueTurn
	GameEnd
)

func (s RoomState) String() string {
	switch s {
	case WaitingToStart:
		return "waiting"
	case RedTurn:
		return "red turn"
	case BlueTurn:
		return "blue turn"
	case GameEnd:
		return "game over"
	default:
		return "unknown"
	}
}

// Clue is the spymaster's hint and the number of cards it points at.
type Clue struct {
	Text  string
	Count int
}

// parseClue accepts "word,count". Anything else is rejected.
func parseClue(line string) (Clue, bool) {
	word, count, ok := strings.Cut(line, ",")
	if !ok {
		return Clue{}, false
	}

	word = strings.TrimSpace(word)
	if word == "" || strings.Contains(count, ",") {
		return Clue{}, false
	}

	n, err := strconv.Atoi(strings.TrimSpace(count))
	if err != nil || n < 0 {
		return Clue{}, false
	}

	return Clue{Text: word, Count: n}, true
}

// Room is a single game instance.
type Room struct {
	state RoomState

	// members are session ids in the order they joined. Sessions are owned
	// by the server; this is only a lookup list.
	members []SessionID

	redScore   int
	blueScore  int
	guessCount int

	// assassinFoundBy is Floating until a team flips the assassin.
	assassinFoundBy Team

	clue  *Clue
	board Board
}

func newRoom(board Board) *Room {
	return &Room{
		state:           WaitingToStart,
		assassinFoundBy: Floating,
		board:           board,
	}
}

func (g *Room) hasMember(id SessionID) bool {
	return slices.Contains(g.members, id)
}

func (g *Room) addMember(id SessionID) {
	if g.hasMember(id) {
		return
	}
	g.members = append(g.members, id)
}

// removeMember reports whether id was a member.
func (g *Room) removeMember(id SessionID) bool {
	i := slices.Index(g.members, id)
	if i < 0 {
		return false
	}
	g.members = slices.Delete(g.members, i, i+1)
	return true
}

// activeTeam is the team allowed to act, or Floating outside of a turn.
func (g *Room) activeTeam() Team {
	switch g.state {
	case RedTurn:
		return Red
	case BlueTurn:
		return Blue
	default:
		return Floating
	}
}

func turnFor(t Team) RoomState {
	if t == Blue {
		return BlueTurn
	}
	return RedTurn
}

// missingRoles lists every team/role pair that nobody currently holds, in
// a fixed order. The game can start once it is empty.
func (g *Room) missingRoles(player func(SessionID) *Player) []string {
	type slot struct {
		team Team
		role Role
	}

	held := make(map[slot]bool)
	for _, id := range g.members {
		p := player(id)
		if p.team == Floating || p.role == Spectator {
			continue
		}
		held[slot{p.team, p.role}] = true
	}

	var missing []string
	for _, team := range []Team{Red, Blue} {
		for _, role := range []Role{Spymaster, Teammate} {
			if !held[slot{team, role}] {
				missing = append(missing, strings.ToLower(team.String()+" "+role.String()))
			}
		}
	}
	return missing
}

// endTurn hands play to the other team and ends the game if either side
// has found all of its agents. Re-guessing a flipped card scores it again,
// so a score can pass its target; anything at or past it ends the game.
func (g *Room) endTurn() {
	g.state = turnFor(g.activeTeam().other())
	g.guessCount = 0

	if g.redScore >= redTarget || g.blueScore >= blueTarget {
		g.state = GameEnd
	}
}

// guessResult describes what a single guess did to the room.
type guessResult struct {
	card      *Card
	turnEnded bool
	gameEnded bool
}

// guess resolves one teammate guess for the active team. An unknown word
// counts against the guess total but changes nothing else.
func (g *Room) guess(word string) guessResult {
	active := g.activeTeam()
	g.guessCount++

	card := g.board.find(word)
	if card == nil {
		return guessResult{}
	}

	card.Flipped = true
	res := guessResult{card: card}

	switch card.Kind {
	case RedAgent:
		g.redScore++
		res.turnEnded = active == Blue
	case BlueAgent:
		g.blueScore++
		res.turnEnded = active == Red
	case Bystander:
		res.turnEnded = true
	case Assassin:
		g.assassinFoundBy = active
		g.state = GameEnd
		res.gameEnded = true
		return res
	}

	if !res.turnEnded && g.clue != nil && g.guessCount > g.clue.Count {
		res.turnEnded = true
	}

	if res.turnEnded {
		g.endTurn()
		res.gameEnded = g.state == GameEnd
	}

	return res
}

// winner returns the winning team once the game has ended, or Floating.
func (g *Room) winner() Team {
	if g.state != GameEnd {
		return Floating
	}
	if g.assassinFoundBy != Floating {
		return g.assassinFoundBy.other()
	}
	if g.redScore >= redTarget {
		return Red
	}
	if g.blueScore >= blueTarget {
		return Blue
	}
	return Floating
}

func (g *Room) scoreLine() string {
	return fmt.Sprintf("Red %d/%d, Blue %d/%d", g.redScore, redTarget, g.blueScore, blueTarget)
}
