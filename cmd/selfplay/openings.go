package main

import (
	"context"
	"math/rand"

	"github.com/TheKrainBow/gomoku/internal/board"
	"github.com/TheKrainBow/gomoku/internal/geometry"
)

// pairing is one game to play: its number and the moves it opens with.
type pairing struct {
	Index   int
	Opening []geometry.Coordinates
}

var openingOffsets = []geometry.Coordinates{
	{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1},
	{X: 1, Y: 1}, {X: -1, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 1},
	{X: 2, Y: 0}, {X: 0, Y: 2}, {X: -2, Y: 0}, {X: 0, Y: -2},
}

// buildOpening draws plies legal moves around the center, alternating
// colours from Black.
func buildOpening(rng *rand.Rand, rules board.Rules, plies int) []geometry.Coordinates {
	b := board.New()
	center := geometry.Center()
	opening := make([]geometry.Coordinates, 0, plies)
	for attempts := 0; len(opening) < plies && attempts < 1000; attempts++ {
		off := openingOffsets[rng.Intn(len(openingOffsets))]
		c := geometry.NewCoordinates(center.X+off.X, center.Y+off.Y)
		player := board.Player(len(opening) % 2)
		if _, err := b.SetMove(rules, board.Move{Player: player, Coordinates: c}); err != nil {
			continue
		}
		opening = append(opening, c)
	}
	return opening
}

func dealOpenings(ctx context.Context, cfg arenaConfig, pending chan<- pairing) error {
	rng := rand.New(rand.NewSource(cfg.Seed))
	for i := 0; i < cfg.Games; i++ {
		pair := pairing{Index: i + 1, Opening: buildOpening(rng, cfg.Rules, cfg.OpeningPlies)}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case pending <- pair:
		}
	}
	return nil
}
