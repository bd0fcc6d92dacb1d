package main

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/TheKrainBow/gomoku/internal/board"
	"github.com/TheKrainBow/gomoku/internal/geometry"
	"github.com/TheKrainBow/gomoku/internal/heuristic"
)

func testArena() arenaConfig {
	return arenaConfig{
		Games:        4,
		Concurrency:  2,
		Depth:        [2]int{1, 1},
		OpeningPlies: 2,
		Seed:         3,
		MaxPlies:     24,
		TTSize:       1 << 10,
		Rules:        board.DefaultRules(),
		Weights:      heuristic.DefaultWeights(),
	}
}

func TestOpeningsAreDeterministicAndLegal(t *testing.T) {
	rules := board.DefaultRules()
	first := buildOpening(rand.New(rand.NewSource(9)), rules, 4)
	second := buildOpening(rand.New(rand.NewSource(9)), rules, 4)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("same seed gave different openings (-first +second):\n%s", diff)
	}
	if len(first) != 4 {
		t.Fatalf("expected 4 plies, got %v", first)
	}
	b := board.New()
	for i, c := range first {
		if geometry.Chebyshev(c, geometry.Center()) > 2 {
			t.Fatalf("opening move %s is far from the center", c)
		}
		if _, err := b.SetMove(rules, board.Move{Player: board.Player(i % 2), Coordinates: c}); err != nil {
			t.Fatalf("opening ply %d: %v", i+1, err)
		}
	}
}

func TestPlayGameEndsWithinMaxPlies(t *testing.T) {
	cfg := testArena()
	cfg.PrintBoards = true
	pair := pairing{Index: 1, Opening: []geometry.Coordinates{geometry.Center(), {X: 10, Y: 9}}}
	res, err := playGame(context.Background(), cfg, pair)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if res.Plies < len(pair.Opening) || res.Plies > cfg.MaxPlies {
		t.Fatalf("unexpected ply count %d", res.Plies)
	}
	if res.Reason == "" {
		t.Fatalf("a finished game needs a reason")
	}
	if res.Stats[board.PlayerBlack].Nodes == 0 || res.Stats[board.PlayerWhite].Nodes == 0 {
		t.Fatalf("both sides should have searched: %+v", res.Stats)
	}
	if _, err := board.Parse(res.Board); err != nil {
		t.Fatalf("final board does not parse: %v", err)
	}
}

func TestDecidedFindsFive(t *testing.T) {
	b := board.New()
	for x := 0; x < 5; x++ {
		if err := b.Put(geometry.NewCoordinates(x, 9), board.White); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	winner, reason, ok := decided(b, board.DefaultRules(), board.PlayerBlack)
	if !ok || winner != board.PlayerWhite || reason != "alignment" {
		t.Fatalf("got %s %q %t", winner, reason, ok)
	}
}

func TestRunPlaysEveryGame(t *testing.T) {
	cfg := testArena()
	total, err := run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if total.Games != cfg.Games {
		t.Fatalf("expected %d games, got %s", cfg.Games, total)
	}
	if total.Wins[0]+total.Wins[1]+total.Draws != cfg.Games {
		t.Fatalf("results do not add up: %s", total)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := run(ctx, testArena()); err == nil {
		t.Fatalf("expected the cancelled context to stop the arena")
	}
}

func TestSummaryScore(t *testing.T) {
	even := summary{Games: 4, Wins: [2]int{1, 1}, Draws: 2}
	if even.Score() != 0.5 || math.Abs(even.EloDiff()) > 1e-9 {
		t.Fatalf("even match: score %.3f elo %.1f", even.Score(), even.EloDiff())
	}
	sweep := summary{Games: 2, Wins: [2]int{2, 0}}
	if sweep.EloDiff() <= 0 {
		t.Fatalf("a black sweep should favour black, got %.1f", sweep.EloDiff())
	}
}
