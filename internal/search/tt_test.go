package search

import (
	"testing"

	"github.com/TheKrainBow/gomoku/internal/board"
	"github.com/TheKrainBow/gomoku/internal/geometry"
)

func TestTTStoreProbe(t *testing.T) {
	tt := NewTranspositionTable(1<<10, 2)
	for i := 0; i < 4000; i++ {
		key := mixKey(uint64(i))
		depth := (i % 8) + 1
		tt.Store(TTEntry{Key: key, Depth: depth, Score: int64(i), Flag: TTExact, BestMove: geometry.FromIndex(i % geometry.Cells), HasBest: true})
		tt.Probe(key, board.PlayerBlack, depth)
	}
	if tt.Count() == 0 {
		t.Fatalf("expected TT to contain entries")
	}
	if tt.Count() > tt.Capacity() {
		t.Fatalf("count %d exceeds capacity %d", tt.Count(), tt.Capacity())
	}
}

func TestTTProbeChecksSideAndDepth(t *testing.T) {
	tt := NewTranspositionTable(64, 2)
	key := ttKey(12345, board.PlayerWhite, 3)
	tt.Store(TTEntry{Key: key, Depth: 3, Side: board.PlayerWhite, Score: 42, Flag: TTLower})
	if _, ok := tt.Probe(key, board.PlayerBlack, 3); ok {
		t.Fatalf("probe must not match the other side")
	}
	if _, ok := tt.Probe(key, board.PlayerWhite, 2); ok {
		t.Fatalf("probe must not match another depth")
	}
	entry, ok := tt.Probe(key, board.PlayerWhite, 3)
	if !ok || entry.Score != 42 || entry.Flag != TTLower {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if ttKey(12345, board.PlayerWhite, 3) == ttKey(12345, board.PlayerBlack, 3) {
		t.Fatalf("side must change the key")
	}
	if ttKey(12345, board.PlayerWhite, 3) == ttKey(12345, board.PlayerWhite, 4) {
		t.Fatalf("depth must change the key")
	}
}

func TestTTReplacementPrefersDeeperAndExact(t *testing.T) {
	tt := NewTranspositionTable(1, 1)
	tt.Store(TTEntry{Key: 7, Depth: 4, Flag: TTExact, Score: 1})
	if tt.Store(TTEntry{Key: 8, Depth: 2, Flag: TTExact, Score: 2}) {
		t.Fatalf("shallower entry must not evict a deeper one")
	}
	if !tt.Store(TTEntry{Key: 7, Depth: 4, Flag: TTExact, Score: 3}) {
		t.Fatalf("same key, depth and flag should refresh")
	}
	tt.Store(TTEntry{Key: 9, Depth: 1, Flag: TTLower})
	if !tt.Store(TTEntry{Key: 9, Depth: 6, Flag: TTUpper}) {
		t.Fatalf("deeper entry should replace")
	}
	tt.Clear()
	if tt.Count() != 0 {
		t.Fatalf("clear left %d entries", tt.Count())
	}
}

func TestTTSizeRoundsUp(t *testing.T) {
	tt := NewTranspositionTable(100, 3)
	if tt.Capacity() != 128*3 {
		t.Fatalf("expected capacity %d, got %d", 128*3, tt.Capacity())
	}
}

func TestTopEntriesByHits(t *testing.T) {
	tt := NewTranspositionTable(16, 2)
	tt.Store(TTEntry{Key: 1, Depth: 1})
	tt.Store(TTEntry{Key: 2, Depth: 1})
	for i := 0; i < 3; i++ {
		tt.Probe(2, board.PlayerBlack, 1)
	}
	top := tt.TopEntriesByHits(1)
	if len(top) != 1 || top[0].Key != 2 || top[0].Hits != 3 {
		t.Fatalf("unexpected top entries %+v", top)
	}
}
