package board

import (
	"fmt"

	"github.com/TheKrainBow/gomoku/internal/geometry"
	"github.com/TheKrainBow/gomoku/internal/pattern"
)

type Rock uint8

const (
	Empty Rock = iota
	Black
	White
)

func (r Rock) Opponent() Rock {
	switch r {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

// Player returns the side owning the rock. It is false for Empty.
func (r Rock) Player() (Player, bool) {
	switch r {
	case Black:
		return PlayerBlack, true
	case White:
		return PlayerWhite, true
	default:
		return PlayerBlack, false
	}
}

func (r Rock) String() string {
	switch r {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "Empty"
	}
}

// View translates a cell for the side owning owner.
func View(cell, owner Rock) pattern.PlayerRock {
	switch {
	case cell == Empty:
		return pattern.None
	case cell == owner:
		return pattern.Player
	default:
		return pattern.Opponent
	}
}

// Player is the side to move. Its value is the move serialization code.
type Player uint8

const (
	PlayerBlack Player = iota
	PlayerWhite
)

func (p Player) Opponent() Player {
	return p ^ 1
}

func (p Player) Rock() Rock {
	if p == PlayerWhite {
		return White
	}
	return Black
}

func (p Player) String() string {
	if p == PlayerWhite {
		return "white"
	}
	return "black"
}

type Move struct {
	Player      Player
	Coordinates geometry.Coordinates
	// Captured lists the opposing rocks removed by the move, filled when the
	// move is applied.
	Captured []geometry.Coordinates
}

func NewMove(player Player, x, y int) Move {
	return Move{Player: player, Coordinates: geometry.NewCoordinates(x, y)}
}

// Pairs is the number of pairs the move captured.
func (m Move) Pairs() int {
	return len(m.Captured) / 2
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d,%d)", m.Player, m.Coordinates.X, m.Coordinates.Y)
}
