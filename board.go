package main

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	// boardRows is the number of rows of cards on the board.
	boardRows = 5
	// boardColumns is the number of columns of cards on the board.
	boardColumns = 5
	// boardSize is the total number of cards on the board.
	boardSize = boardRows * boardColumns

	redAgents  = 9
	blueAgents = 8
	bystanders = 7
	assassins  = 1
)

// CardKind is the hidden identity of a card.
type CardKind int

const (
	RedAgent CardKind = iota
	BlueAgent
	Assassin
	Bystander
)

func (k CardKind) String() string {
	switch k {
	case RedAgent:
		return "red agent"
	case BlueAgent:
		return "blue agent"
	case Assassin:
		return "assassin"
	case Bystander:
		return "bystander"
	default:
		return "unknown"
	}
}

// marker is the short tag shown next to a revealed word.
func (k CardKind) marker() string {
	switch k {
	case RedAgent:
		return "(red)"
	case BlueAgent:
		return "(blue)"
	case Assassin:
		return "(assassin)"
	default:
		return "(bystander)"
	}
}

// kindPool is the card layout dealt onto every board. It must hold exactly
// boardSize entries.
var kindPool = func() []CardKind {
	pool := make([]CardKind, 0, boardSize)
	for range redAgents {
		pool = append(pool, RedAgent)
	}
	for range blueAgents {
		pool = append(pool, BlueAgent)
	}
	for range bystanders {
		pool = append(pool, Bystander)
	}
	for range assassins {
		pool = append(pool, Assassin)
	}
	return pool
}()

// Card is one cell of the board. Word and Kind never change once dealt;
// Flipped only ever goes from false to true.
type Card struct {
	Word    string
	Kind    CardKind
	Flipped bool
}

type Board [boardRows][boardColumns]Card

// generateBoard deals a fresh board, drawing words and kinds without
// replacement. It panics if kindPool does not fill the grid or there are
// fewer words than cells; both are programming errors caught at startup.
func generateBoard(rng *rand.Rand, words []string) Board {
	if len(kindPool) != boardSize {
		panic(fmt.Errorf("%w: %d kinds for %d cells", ErrBoardLayout, len(kindPool), boardSize))
	}
	if len(words) < boardSize {
		panic(fmt.Errorf("%w: need %d words, got %d", ErrWordListTooShort, boardSize, len(words)))
	}

	wordOrder := rng.Perm(len(words))
	kindOrder := rng.Perm(len(kindPool))

	var b Board
	for i := range boardSize {
		b[i/boardColumns][i%boardColumns] = Card{
			Word: words[wordOrder[i]],
			Kind: kindPool[kindOrder[i]],
		}
	}

	return b
}

// find returns the card whose word matches exactly, or nil.
func (b *Board) find(word string) *Card {
	for r := range boardRows {
		for c := range boardColumns {
			if b[r][c].Word == word {
				return &b[r][c]
			}
		}
	}
	return nil
}

func (b *Board) count(kind CardKind) int {
	n := 0
	for r := range boardRows {
		for c := range boardColumns {
			if b[r][c].Kind == kind {
				n++
			}
		}
	}
	return n
}

// cardText is what a viewer with the given role may see of one card.
// Teammates only ever learn the kind of a card once it is flipped.
func cardText(card Card, viewer Role) string {
	if viewer == Teammate && !card.Flipped {
		return card.Word
	}

	text := card.Word + card.Kind.marker()
	if card.Flipped {
		text += "*"
	}
	return text
}

// render draws the board as seen by viewer, one row per line.
func (b *Board) render(viewer Role) string {
	width := 0
	for r := range boardRows {
		for c := range boardColumns {
			width = max(width, len(cardText(b[r][c], viewer)))
		}
	}

	var out strings.Builder
	for r := range boardRows {
		for c := range boardColumns {
			text := cardText(b[r][c], viewer)
			if c == boardColumns-1 {
				out.WriteString(text)
				continue
			}
			fmt.Fprintf(&out, "%-*s  ", width, text)
		}
		out.WriteString("\r\n")
	}

	return out.String()
}
