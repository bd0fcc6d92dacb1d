package board

import "github.com/TheKrainBow/gomoku/internal/geometry"

type zobristTable struct {
	rocks [geometry.Cells][2]uint64
}

var zobrist = newZobristTable()

func newZobristTable() *zobristTable {
	rng := splitmix64{state: uint64(0x9e3779b97f4a7c15) ^ geometry.Size}
	z := &zobristTable{}
	for i := range z.rocks {
		z.rocks[i][0] = rng.next()
		z.rocks[i][1] = rng.next()
	}
	return z
}

func (z *zobristTable) rock(i int, r Rock) uint64 {
	if r == White {
		return z.rocks[i][1]
	}
	return z.rocks[i][0]
}

// captureHash mixes a capture count into the hash so positions reached with
// different capture totals never share a key.
func captureHash(player Player, count int) uint64 {
	seed := uint64(count)<<1 | uint64(player&1)
	rng := splitmix64{state: seed + 0x9e3779b97f4a7c15}
	return rng.next()
}

// ComputeHash rebuilds the hash of b from scratch.
func ComputeHash(b *Board) uint64 {
	var hash uint64
	for i, cell := range b.cells {
		if cell != Empty {
			hash ^= zobrist.rock(i, cell)
		}
	}
	hash ^= captureHash(PlayerBlack, b.sides[PlayerBlack].Captures)
	hash ^= captureHash(PlayerWhite, b.sides[PlayerWhite].Captures)
	return hash
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
