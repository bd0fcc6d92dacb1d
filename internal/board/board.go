// Package board holds the 19x19 position, its per-player rock sets and
// capture counts, the move history, and the rules that gate placements.
package board

import (
	"github.com/pkg/errors"

	"github.com/TheKrainBow/gomoku/internal/geometry"
	"github.com/TheKrainBow/gomoku/internal/pattern"
)

type Board struct {
	cells   [geometry.Cells]Rock
	sides   [2]Side
	all     RockSet
	history []Move
	hash    uint64
}

func New() *Board {
	b := &Board{}
	b.hash = ComputeHash(b)
	return b
}

func (b *Board) Clone() *Board {
	clone := *b
	clone.history = make([]Move, len(b.history), cap(b.history))
	copy(clone.history, b.history)
	return &clone
}

func (b *Board) Get(x, y int) (Rock, error) {
	c := geometry.NewCoordinates(x, y)
	if !c.InBounds() {
		return Empty, outOfBounds(c)
	}
	return b.cells[c.Index()], nil
}

// At returns the rock on cell index i.
func (b *Board) At(i int) Rock {
	return b.cells[i]
}

func (b *Board) Captures(p Player) int {
	return b.sides[p].Captures
}

func (b *Board) Rocks(p Player) RockSet {
	return b.sides[p].Rocks
}

// All is the union of both rock sets.
func (b *Board) All() RockSet {
	return b.all
}

func (b *Board) IsEmpty() bool {
	return b.all.Empty()
}

// History returns the applied moves, oldest first. Callers must not modify it.
func (b *Board) History() []Move {
	return b.history
}

func (b *Board) LastMove() (Move, bool) {
	if len(b.history) == 0 {
		return Move{}, false
	}
	return b.history[len(b.history)-1], true
}

// Hash is the zobrist key of the rocks and capture counts. It does not
// include the side to move.
func (b *Board) Hash() uint64 {
	return b.hash
}

// Put sets a cell without rules, captures or history. It is meant for
// building positions.
func (b *Board) Put(c geometry.Coordinates, r Rock) error {
	if !c.InBounds() {
		return outOfBounds(c)
	}
	i := c.Index()
	if b.cells[i] != Empty {
		b.remove(i)
	}
	if r != Empty {
		b.place(i, r)
	}
	return nil
}

// SetCaptures overrides a capture count when building positions.
func (b *Board) SetCaptures(p Player, n int) {
	b.setCaptures(p, n)
}

func (b *Board) place(i int, r Rock) {
	p, _ := r.Player()
	b.cells[i] = r
	b.sides[p].Rocks.Add(i)
	b.all.Add(i)
	b.hash ^= zobrist.rock(i, r)
}

func (b *Board) remove(i int) {
	r := b.cells[i]
	p, _ := r.Player()
	b.cells[i] = Empty
	b.sides[p].Rocks.Remove(i)
	b.all.Remove(i)
	b.hash ^= zobrist.rock(i, r)
}

func (b *Board) setCaptures(p Player, n int) {
	b.hash ^= captureHash(p, b.sides[p].Captures)
	b.sides[p].Captures = n
	b.hash ^= captureHash(p, n)
}

// Line returns the neighbourhood of cell i along axis as seen by owner.
func (b *Board) Line(i int, axis geometry.Axis, owner Rock) pattern.Line {
	return b.lineWindow(i, axis, owner, pattern.Reach)
}

func (b *Board) lineWindow(i int, axis geometry.Axis, owner Rock, half int) pattern.Line {
	l := pattern.EmptyLine()
	lo, hi := geometry.Window(axis, half, half, i)
	rank := geometry.Rank(axis, i)
	for k := lo; k <= hi; k++ {
		l[pattern.Reach+k-rank] = View(b.cells[geometry.AtRank(axis, k)], owner)
	}
	return l
}

// Validate checks the cell grid against the rock sets and the hash.
func (b *Board) Validate() error {
	var black, white RockSet
	for i, cell := range b.cells {
		switch cell {
		case Black:
			black.Add(i)
		case White:
			white.Add(i)
		}
	}
	if black != b.sides[PlayerBlack].Rocks || white != b.sides[PlayerWhite].Rocks {
		return errors.Wrap(ErrInternalInvariant, "rock sets out of sync with cells")
	}
	if b.all != black.Union(white) {
		return errors.Wrap(ErrInternalInvariant, "occupied set out of sync")
	}
	if b.hash != ComputeHash(b) {
		return errors.Wrap(ErrInternalInvariant, "hash out of sync")
	}
	return nil
}
