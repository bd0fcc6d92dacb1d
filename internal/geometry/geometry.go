// Package geometry holds the fixed 19x19 board coordinate system: directions,
// the four axes, and precomputed per-axis orderings and window tables.
package geometry

import "fmt"

const (
	Size  = 19
	Cells = Size * Size
)

type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewCoordinates(x, y int) Coordinates {
	return Coordinates{X: x, Y: y}
}

func FromIndex(index int) Coordinates {
	return Coordinates{X: index % Size, Y: index / Size}
}

func Center() Coordinates {
	return Coordinates{X: Size / 2, Y: Size / 2}
}

func (c Coordinates) InBounds() bool {
	return c.X >= 0 && c.Y >= 0 && c.X < Size && c.Y < Size
}

func (c Coordinates) Index() int {
	return c.Y*Size + c.X
}

// Step returns c shifted n times along d. The result may be off the board.
func (c Coordinates) Step(d Direction, n int) Coordinates {
	return Coordinates{X: c.X + d.DX*n, Y: c.Y + d.DY*n}
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Chebyshev returns the king-move distance between two coordinates.
func Chebyshev(a, b Coordinates) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

type Direction struct {
	DX int
	DY int
}

// Directions lists the eight unit vectors. Entries i and i+4 are opposite.
var Directions = [8]Direction{
	{1, 0}, {0, 1}, {1, 1}, {1, -1},
	{-1, 0}, {0, -1}, {-1, -1}, {-1, 1},
}

func (d Direction) Opposite() Direction {
	return Direction{DX: -d.DX, DY: -d.DY}
}

func (d Direction) Axis() Axis {
	switch {
	case d.DY == 0:
		return Horizontal
	case d.DX == 0:
		return Vertical
	case d.DX == d.DY:
		return Diagonal
	default:
		return AntiDiagonal
	}
}

type Axis int

const (
	Horizontal Axis = iota
	Vertical
	Diagonal
	AntiDiagonal
)

var Axes = [4]Axis{Horizontal, Vertical, Diagonal, AntiDiagonal}

// Direction returns the forward unit vector of the axis. The backward vector
// is its Opposite.
func (a Axis) Direction() Direction {
	return Directions[a]
}

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Diagonal:
		return "diagonal"
	case AntiDiagonal:
		return "anti-diagonal"
	default:
		return "unknown"
	}
}
