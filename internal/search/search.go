// Package search picks moves with a fixed depth negamax, alpha-beta pruning,
// pattern driven move ordering and a transposition table.
package search

import (
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/TheKrainBow/gomoku/internal/board"
	"github.com/TheKrainBow/gomoku/internal/heuristic"
	"github.com/TheKrainBow/gomoku/internal/pattern"
)

const infinity = int64(1) << 62

type Options struct {
	Depth     int               `json:"depth"`
	TTSize    uint64            `json:"tt_size"`
	TTBuckets int               `json:"tt_buckets"`
	Weights   heuristic.Weights `json:"weights"`
}

func DefaultOptions() Options {
	return Options{
		Depth:     3,
		TTSize:    1 << 16,
		TTBuckets: 4,
		Weights:   heuristic.DefaultWeights(),
	}
}

type Evaluation struct {
	Score int64 `json:"score"`
	// BestMove is meaningful only when Found is set.
	BestMove board.Move `json:"best_move"`
	Found    bool       `json:"found"`
}

// Searcher owns the state of one search at a time: a private board copy,
// the incremental evaluator and the transposition table.
type Searcher struct {
	rules board.Rules
	opts  Options
	tt    *TranspositionTable
	stats Stats

	board *board.Board
	eval  *heuristic.Evaluator
}

func New(rules board.Rules, opts Options) *Searcher {
	if opts.Depth < 0 {
		opts.Depth = 0
	}
	return &Searcher{
		rules: rules,
		opts:  opts,
		tt:    NewTranspositionTable(opts.TTSize, opts.TTBuckets),
	}
}

// Search runs a fixed depth search of b for player. b is not modified.
func (s *Searcher) Search(b *board.Board, player board.Player) (Evaluation, error) {
	return s.SearchDepth(b, player, s.opts.Depth)
}

func (s *Searcher) SearchDepth(b *board.Board, player board.Player, depth int) (Evaluation, error) {
	s.tt.Clear()
	s.stats = Stats{Start: time.Now()}
	s.board = b.Clone()
	s.eval = heuristic.NewEvaluator(s.board, s.rules, s.opts.Weights)
	defer func() {
		s.stats.Elapsed = time.Since(s.stats.Start)
		s.board = nil
		s.eval = nil
	}()

	if depth < 0 {
		depth = 0
	}
	score, best, found, err := s.negamax(depth, -infinity, infinity, player)
	if err != nil {
		return Evaluation{}, err
	}
	eval := Evaluation{Score: score, Found: found}
	if found {
		eval.BestMove = board.Move{Player: player, Coordinates: best.Coordinates}
	}
	return eval, nil
}

func (s *Searcher) Stats() Stats {
	return s.stats
}

func (s *Searcher) Table() *TranspositionTable {
	return s.tt
}

func (s *Searcher) terminal(player board.Player) bool {
	return s.board.IsWinning(s.rules, player) || s.board.IsWinning(s.rules, player.Opponent())
}

// negamax returns the value of the position for player, the side to move.
func (s *Searcher) negamax(depth int, alpha, beta int64, player board.Player) (int64, board.Move, bool, error) {
	s.stats.Nodes++
	alphaOrig := alpha
	key := ttKey(s.board.Hash(), player, depth)
	s.stats.TTProbes++
	entry, hit := s.tt.Probe(key, player, depth)
	if hit {
		s.stats.TTHits++
		best := board.Move{Player: player, Coordinates: entry.BestMove}
		switch entry.Flag {
		case TTExact:
			return entry.Score, best, entry.HasBest, nil
		case TTLower:
			if entry.Score > alpha {
				alpha = entry.Score
			}
		case TTUpper:
			if entry.Score < beta {
				beta = entry.Score
			}
		}
		if alpha >= beta {
			s.stats.Cutoffs++
			return entry.Score, best, entry.HasBest, nil
		}
	}

	if depth == 0 || s.terminal(player) {
		return s.leaf(key, depth, player), board.Move{}, false, nil
	}

	children, err := s.orderedChildren(player, entry, hit)
	if err != nil {
		return 0, board.Move{}, false, err
	}
	if len(children) == 0 {
		return s.leaf(key, depth, player), board.Move{}, false, nil
	}

	best := -infinity
	var bestMove board.Move
	for _, child := range children {
		applied, err := s.apply(child.move)
		if err != nil {
			return 0, board.Move{}, false, err
		}
		score, _, _, err := s.negamax(depth-1, -beta, -alpha, player.Opponent())
		if err != nil {
			return 0, board.Move{}, false, err
		}
		score = -score
		if err := s.undo(applied); err != nil {
			return 0, board.Move{}, false, err
		}
		if score > best {
			best = score
			bestMove = child.move
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			s.stats.Cutoffs++
			break
		}
	}

	flag := TTExact
	if best <= alphaOrig {
		flag = TTUpper
	} else if best >= beta {
		flag = TTLower
	}
	s.store(key, depth, player, best, flag, bestMove, true)
	return best, bestMove, true, nil
}

func (s *Searcher) leaf(key uint64, depth int, player board.Player) int64 {
	s.stats.Leaves++
	score := s.eval.ScoreForSide(s.board, player)
	s.store(key, depth, player, score, TTExact, board.Move{}, false)
	return score
}

func (s *Searcher) store(key uint64, depth int, player board.Player, score int64, flag TTFlag, best board.Move, hasBest bool) {
	stored := s.tt.Store(TTEntry{
		Key:        key,
		Depth:      depth,
		Side:       player,
		Score:      score,
		Flag:       flag,
		BestMove:   best.Coordinates,
		HasBest:    hasBest,
		BlackScore: s.eval.SideScore(s.board, board.PlayerBlack),
		WhiteScore: s.eval.SideScore(s.board, board.PlayerWhite),
	})
	if stored {
		s.stats.TTStores++
	}
}

type child struct {
	move     board.Move
	priority int
	score    int64
	index    int
}

// orderedChildren sorts the legal moves of player by the strength of the
// shape each move makes, then by the resulting position score. A best move
// remembered by the table goes first.
func (s *Searcher) orderedChildren(player board.Player, entry TTEntry, hit bool) ([]child, error) {
	moves := s.board.LegalMoves(s.rules, player)
	children := make([]child, 0, len(moves))
	for _, m := range moves {
		applied, err := s.apply(m)
		if err != nil {
			return nil, err
		}
		count := heuristic.ClassifyMove(s.board, s.rules, applied)
		c := child{
			move:     m,
			priority: pattern.BestPattern(count),
			score:    s.eval.ScoreForSide(s.board, player),
			index:    m.Coordinates.Index(),
		}
		if err := s.undo(applied); err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	sort.Slice(children, func(i, j int) bool {
		a, b := children[i], children[j]
		if hit && entry.HasBest {
			if a.move.Coordinates == entry.BestMove {
				return b.move.Coordinates != entry.BestMove
			}
			if b.move.Coordinates == entry.BestMove {
				return false
			}
		}
		if a.priority != b.priority {
			return a.priority > b.priority
		}
		if a.score != b.score {
			return a.score > b.score
		}
		return a.index < b.index
	})
	return children, nil
}

func (s *Searcher) apply(m board.Move) (board.Move, error) {
	applied, err := s.board.SetMove(s.rules, m)
	if err != nil {
		return m, errors.Wrapf(board.ErrInternalInvariant, "apply generated move %s: %v", m, err)
	}
	s.eval.RefreshMove(s.board, applied)
	return applied, nil
}

func (s *Searcher) undo(applied board.Move) error {
	undone, err := s.board.UndoMove()
	if err != nil {
		return errors.Wrapf(err, "undo %s", applied)
	}
	if undone.Coordinates != applied.Coordinates {
		return errors.Wrapf(board.ErrInternalInvariant, "undo %s popped %s", applied, undone)
	}
	s.eval.RefreshMove(s.board, undone)
	return nil
}

// BestMove runs a one-off search with a fresh searcher.
func BestMove(rules board.Rules, b *board.Board, depth int, player board.Player) (Evaluation, error) {
	opts := DefaultOptions()
	opts.Depth = depth
	return New(rules, opts).Search(b, player)
}
