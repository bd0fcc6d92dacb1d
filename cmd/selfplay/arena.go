package main

import (
	"context"
	"log"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/TheKrainBow/gomoku/internal/board"
	"github.com/TheKrainBow/gomoku/internal/heuristic"
	"github.com/TheKrainBow/gomoku/internal/search"
)

type arenaConfig struct {
	Games        int
	Concurrency  int
	Depth        [2]int
	OpeningPlies int
	Seed         int64
	MaxPlies     int
	TTSize       uint64
	Rules        board.Rules
	Weights      heuristic.Weights
	PrintBoards  bool
}

func (c arenaConfig) options(player board.Player) search.Options {
	opts := search.DefaultOptions()
	opts.Depth = c.Depth[player]
	if c.TTSize > 0 {
		opts.TTSize = c.TTSize
	}
	opts.Weights = c.Weights
	return opts
}

type gameResult struct {
	Index int
	// Winner is meaningful only when Draw is false.
	Winner board.Player
	Draw   bool
	Reason string
	Plies  int
	Stats  [2]search.Stats
	Board  string
}

// run deals openings to cfg.Concurrency players and folds their results
// into a summary. The first error cancels every game still running.
func run(ctx context.Context, cfg arenaConfig) (summary, error) {
	log.Printf("[selfplay] %d games on %d workers (GOMAXPROCS=%d): black depth %d, white depth %d, rules %s",
		cfg.Games, cfg.Concurrency, runtime.GOMAXPROCS(0), cfg.Depth[board.PlayerBlack], cfg.Depth[board.PlayerWhite], cfg.Rules)

	g, ctx := errgroup.WithContext(ctx)
	pending := make(chan pairing)
	finished := make(chan gameResult)

	g.Go(func() error {
		defer close(pending)
		return dealOpenings(ctx, cfg, pending)
	})
	g.Go(func() error {
		defer close(finished)
		var players errgroup.Group
		for w := 1; w <= cfg.Concurrency; w++ {
			w := w
			players.Go(func() error {
				return playPairings(ctx, cfg, w, pending, finished)
			})
		}
		return players.Wait()
	})

	var total summary
	g.Go(func() error {
		var err error
		total, err = collectResults(ctx, cfg, finished)
		return err
	})
	return total, g.Wait()
}

// playPairings plays openings until pending is drained.
func playPairings(ctx context.Context, cfg arenaConfig, worker int, pending <-chan pairing, finished chan<- gameResult) error {
	for pair := range pending {
		res, err := playGame(ctx, cfg, pair)
		if err != nil {
			return errors.Wrapf(err, "worker %d", worker)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case finished <- res:
		}
	}
	return nil
}

// playGame plays one game from its opening. Each side owns its searcher, so
// games share nothing.
func playGame(ctx context.Context, cfg arenaConfig, pair pairing) (gameResult, error) {
	b := board.New()
	for i, c := range pair.Opening {
		if _, err := b.SetMove(cfg.Rules, board.Move{Player: board.Player(i % 2), Coordinates: c}); err != nil {
			return gameResult{}, errors.Wrapf(err, "game %d: opening ply %d", pair.Index, i+1)
		}
	}
	searchers := [2]*search.Searcher{
		search.New(cfg.Rules, cfg.options(board.PlayerBlack)),
		search.New(cfg.Rules, cfg.options(board.PlayerWhite)),
	}
	res := gameResult{Index: pair.Index}
	player := board.Player(len(pair.Opening) % 2)
	for ply := len(pair.Opening); ; ply++ {
		if err := ctx.Err(); err != nil {
			return gameResult{}, err
		}
		if winner, reason, ok := decided(b, cfg.Rules, player.Opponent()); ok {
			res.Winner, res.Reason = winner, reason
			break
		}
		if ply >= cfg.MaxPlies {
			res.Draw, res.Reason = true, "max plies"
			break
		}
		eval, err := searchers[player].Search(b, player)
		if err != nil {
			return gameResult{}, errors.Wrapf(err, "game %d: ply %d", pair.Index, ply+1)
		}
		addStats(&res.Stats[player], searchers[player].Stats())
		if !eval.Found {
			res.Draw, res.Reason = true, "no legal move"
			break
		}
		if _, err := b.SetMove(cfg.Rules, eval.BestMove); err != nil {
			return gameResult{}, errors.Wrapf(board.ErrInternalInvariant, "game %d: engine chose %s: %v", pair.Index, eval.BestMove, err)
		}
		player = player.Opponent()
	}
	res.Plies = len(b.History())
	if cfg.PrintBoards {
		res.Board = b.String()
	}
	return res, nil
}

// decided checks the last mover first, then its opponent.
func decided(b *board.Board, rules board.Rules, mover board.Player) (board.Player, string, bool) {
	for _, p := range []board.Player{mover, mover.Opponent()} {
		if !b.IsWinning(rules, p) {
			continue
		}
		if b.Captures(p) >= board.CapturesToWin {
			return p, "capture", true
		}
		return p, "alignment", true
	}
	return board.PlayerBlack, "", false
}

func addStats(total *search.Stats, s search.Stats) {
	total.Nodes += s.Nodes
	total.Leaves += s.Leaves
	total.TTProbes += s.TTProbes
	total.TTHits += s.TTHits
	total.TTStores += s.TTStores
	total.Cutoffs += s.Cutoffs
	total.Elapsed += s.Elapsed
	if total.Start.IsZero() {
		total.Start = s.Start
	}
}
