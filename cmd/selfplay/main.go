// Command selfplay plays the engine against itself at fixed depths and
// reports the results.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/TheKrainBow/gomoku/internal/board"
	"github.com/TheKrainBow/gomoku/internal/heuristic"
	"github.com/TheKrainBow/gomoku/internal/search"
)

func main() {
	defaults := search.DefaultOptions()
	games := flag.Int("games", 10, "number of games")
	concurrency := flag.Int("concurrency", runtime.NumCPU(), "games played at once")
	blackDepth := flag.Int("black-depth", defaults.Depth, "black search depth in plies")
	whiteDepth := flag.Int("white-depth", defaults.Depth, "white search depth in plies")
	openingPlies := flag.Int("opening-plies", 2, "random plies played before the engines take over")
	seed := flag.Int64("seed", 1, "opening generator seed")
	maxPlies := flag.Int("max-plies", 200, "plies after which a game is a draw")
	ttSize := flag.Uint64("tt-size", defaults.TTSize, "transposition table slots per searcher")
	noCapture := flag.Bool("no-capture", false, "disable pair captures")
	noDoubleThree := flag.Bool("no-double-three", false, "allow double threes")
	noGameEndingCapture := flag.Bool("no-game-ending-capture", false, "fives win even when a capture could break them")
	openThreeBonus := flag.Int64("open-three-bonus", 0, "extra score per open three")
	printBoards := flag.Bool("print-boards", false, "print the final board of every game")
	flag.Parse()

	rules := board.DefaultRules()
	rules.CaptureEnabled = !*noCapture
	rules.NoDoubleThreeEnabled = !*noDoubleThree
	rules.GameEndingCaptureEnabled = !*noGameEndingCapture
	weights := heuristic.DefaultWeights()
	weights.OpenThreeBonus = *openThreeBonus

	cfg := arenaConfig{
		Games:        *games,
		Concurrency:  max(*concurrency, 1),
		Depth:        [2]int{*blackDepth, *whiteDepth},
		OpeningPlies: *openingPlies,
		Seed:         *seed,
		MaxPlies:     *maxPlies,
		TTSize:       *ttSize,
		Rules:        rules,
		Weights:      weights,
		PrintBoards:  *printBoards,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	_, err := run(ctx, cfg)
	stop()
	if err != nil {
		log.Printf("[selfplay] %v", err)
		os.Exit(1)
	}
}
