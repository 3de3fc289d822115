package main

// Team is the side a player plays for. Floating players have not picked one.
type Team int

const (
	Floating Team = iota
	Red
	Blue
)

func (t Team) String() string {
	switch t {
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	default:
		return "Floating"
	}
}

// other returns the opposing team. Floating has no opponent.
func (t Team) other() Team {
	switch t {
	case Red:
		return Blue
	case Blue:
		return Red
	default:
		return Floating
	}
}

// Role is what a player does for their team.
type Role int

const (
	Spectator Role = iota
	Spymaster
	Teammate
)

func (r Role) String() string {
	switch r {
	case Spymaster:
		return "Spymaster"
	case Teammate:
		return "Teammate"
	default:
		return "Spectator"
	}
}

// Player is the game data layered onto a session once it has entered a
// room. It outlives any single room.
type Player struct {
	team Team
	role Role

	// pending holds lines waiting to be delivered, oldest first.
	pending []string

	// lastShown is the room state the full view was last rendered for.
	// nil forces the next prompt to render it again.
	lastShown *RoomState
}

func newPlayer() *Player {
	return &Player{
		team: Floating,
		role: Spectator,
	}
}

func (p *Player) enqueue(line string) {
	p.pending = append(p.pending, line)
}

// drain returns every queued line exactly once, in the order queued.
func (p *Player) drain() []string {
	lines := p.pending
	p.pending = nil
	return lines
}

func (p *Player) forceRender() {
	p.lastShown = nil
}

func (p *Player) markShown(state RoomState) {
	p.lastShown = &state
}

func (p *Player) needsRender(state RoomState) bool {
	return p.lastShown == nil || *p.lastShown != state
}
