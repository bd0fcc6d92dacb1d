package board

import (
	"math/bits"

	"github.com/TheKrainBow/gomoku/internal/geometry"
)

const rockSetWords = (geometry.Cells + 63) / 64

// RockSet is a set of cell indices.
type RockSet struct {
	words [rockSetWords]uint64
}

func (s *RockSet) Add(i int) {
	s.words[i>>6] |= 1 << uint(i&63)
}

func (s *RockSet) Remove(i int) {
	s.words[i>>6] &^= 1 << uint(i&63)
}

func (s RockSet) Has(i int) bool {
	return s.words[i>>6]&(1<<uint(i&63)) != 0
}

func (s RockSet) Len() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

func (s RockSet) Empty() bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// ForEach calls fn for every index in ascending order.
func (s RockSet) ForEach(fn func(i int)) {
	for wi, w := range s.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			fn(wi<<6 | b)
			w &= w - 1
		}
	}
}

func (s RockSet) Coordinates() []geometry.Coordinates {
	out := make([]geometry.Coordinates, 0, s.Len())
	s.ForEach(func(i int) {
		out = append(out, geometry.FromIndex(i))
	})
	return out
}

func (s RockSet) Union(other RockSet) RockSet {
	for i := range s.words {
		s.words[i] |= other.words[i]
	}
	return s
}

func (s RockSet) Intersects(other RockSet) bool {
	for i := range s.words {
		if s.words[i]&other.words[i] != 0 {
			return true
		}
	}
	return false
}

// Side is the per-player half of a board.
type Side struct {
	Rocks    RockSet
	Captures int
}
