package search

import (
	"sort"

	"github.com/TheKrainBow/gomoku/internal/board"
	"github.com/TheKrainBow/gomoku/internal/geometry"
)

type TTFlag uint8

const (
	TTExact TTFlag = iota
	TTLower
	TTUpper
)

func (f TTFlag) String() string {
	switch f {
	case TTLower:
		return "lower"
	case TTUpper:
		return "upper"
	default:
		return "exact"
	}
}

type TTEntry struct {
	Key        uint64
	Depth      int
	Side       board.Player
	Score      int64
	Flag       TTFlag
	BestMove   geometry.Coordinates
	HasBest    bool
	BlackScore int64
	WhiteScore int64
	Hits       uint32
	Valid      bool
}

// TranspositionTable is a bucketed hash table owned by one search. It is
// not safe for concurrent use.
type TranspositionTable struct {
	mask    uint64
	buckets int
	entries []TTEntry
}

func NewTranspositionTable(size uint64, buckets int) *TranspositionTable {
	if buckets <= 0 {
		buckets = 2
	}
	if size < 1 {
		size = 1
	}
	if (size & (size - 1)) != 0 {
		size = nextPowerOfTwo(size)
	}
	return &TranspositionTable{
		mask:    size - 1,
		buckets: buckets,
		entries: make([]TTEntry, int(size)*buckets),
	}
}

// ttKey folds the side to move and the remaining depth into a board hash.
func ttKey(hash uint64, side board.Player, depth int) uint64 {
	return hash ^ mixKey(uint64(depth)<<1|uint64(side))
}

func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
}

func (tt *TranspositionTable) bucketIndex(key uint64) int {
	return int(key&tt.mask) * tt.buckets
}

// Probe returns the entry stored for key. Entries must also agree on side
// and depth, so a key collision between positions is never trusted.
func (tt *TranspositionTable) Probe(key uint64, side board.Player, depth int) (TTEntry, bool) {
	start := tt.bucketIndex(key)
	for i := 0; i < tt.buckets; i++ {
		idx := start + i
		entry := &tt.entries[idx]
		if !entry.Valid || entry.Key != key || entry.Side != side || entry.Depth != depth {
			continue
		}
		entry.Hits++
		return *entry, true
	}
	return TTEntry{}, false
}

// Store inserts e, replacing the same key, an empty slot, or the weakest
// replaceable entry of the bucket, in that order. It reports whether e was
// written.
func (tt *TranspositionTable) Store(e TTEntry) bool {
	e.Valid = true
	e.Hits = 0
	start := tt.bucketIndex(e.Key)

	for i := 0; i < tt.buckets; i++ {
		idx := start + i
		entry := tt.entries[idx]
		if !entry.Valid || entry.Key != e.Key || entry.Side != e.Side {
			continue
		}
		if replacementClass(entry, e.Depth, e.Flag) == 0 {
			return false
		}
		tt.entries[idx] = e
		return true
	}

	for i := 0; i < tt.buckets; i++ {
		idx := start + i
		if tt.entries[idx].Valid {
			continue
		}
		tt.entries[idx] = e
		return true
	}

	victim := -1
	victimClass := 0
	for i := 0; i < tt.buckets; i++ {
		idx := start + i
		class := replacementClass(tt.entries[idx], e.Depth, e.Flag)
		if class == 0 {
			continue
		}
		if victim == -1 || class < victimClass ||
			(class == victimClass && tt.entries[idx].Hits < tt.entries[victim].Hits) {
			victim = idx
			victimClass = class
		}
	}
	if victim == -1 {
		return false
	}
	tt.entries[victim] = e
	return true
}

// TopEntriesByHits lists the most probed entries, deepest first on ties.
func (tt *TranspositionTable) TopEntriesByHits(limit int) []TTEntry {
	if limit <= 0 {
		limit = 10
	}
	valid := make([]TTEntry, 0, limit)
	for i := range tt.entries {
		if tt.entries[i].Valid {
			valid = append(valid, tt.entries[i])
		}
	}
	sort.Slice(valid, func(i, j int) bool {
		if valid[i].Hits != valid[j].Hits {
			return valid[i].Hits > valid[j].Hits
		}
		if valid[i].Depth != valid[j].Depth {
			return valid[i].Depth > valid[j].Depth
		}
		return valid[i].Key < valid[j].Key
	})
	if len(valid) > limit {
		valid = valid[:limit]
	}
	return valid
}

func (tt *TranspositionTable) Count() int {
	count := 0
	for i := range tt.entries {
		if tt.entries[i].Valid {
			count++
		}
	}
	return count
}

func (tt *TranspositionTable) Capacity() int {
	if tt == nil {
		return 0
	}
	return len(tt.entries)
}

// replacementClass ranks how willingly entry gives way to a new result of
// the given depth and flag. 0 means keep the entry.
func replacementClass(entry TTEntry, depth int, flag TTFlag) int {
	if depth > entry.Depth {
		return 1
	}
	if depth == entry.Depth && flag == TTExact && entry.Flag != TTExact {
		return 2
	}
	if depth == entry.Depth && flag == entry.Flag {
		return 3
	}
	return 0
}

func mixKey(v uint64) uint64 {
	v += 0x9e3779b97f4a7c15
	v = (v ^ (v >> 30)) * 0xbf58476d1ce4e5b9
	v = (v ^ (v >> 27)) * 0x94d049bb133111eb
	return v ^ (v >> 31)
}

func nextPowerOfTwo(v uint64) uint64 {
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	v++
	return v
}
