// Package gomoku is the headless decision core of a 19x19 Gomoku engine with
// pair captures, the double-three prohibition and game ending captures.
//
// Hosts build a Board, apply moves through ApplyMove and ask BestMove for the
// engine's choice. Nothing here performs I/O.
package gomoku

import (
	"github.com/pkg/errors"

	"github.com/TheKrainBow/gomoku/internal/board"
	"github.com/TheKrainBow/gomoku/internal/geometry"
	"github.com/TheKrainBow/gomoku/internal/heuristic"
	"github.com/TheKrainBow/gomoku/internal/search"
)

type (
	Board       = board.Board
	Move        = board.Move
	Player      = board.Player
	Rock        = board.Rock
	Rules       = board.Rules
	Coordinates = geometry.Coordinates
	Evaluation  = search.Evaluation
)

const (
	Black = board.PlayerBlack
	White = board.PlayerWhite
)

var (
	ErrOutOfBounds       = board.ErrOutOfBounds
	ErrOccupied          = board.ErrOccupied
	ErrIllegalMove       = board.ErrIllegalMove
	ErrInternalInvariant = board.ErrInternalInvariant
)

// AppliedMove is the outcome of a committed move.
type AppliedMove struct {
	Move     Move          `json:"move"`
	Captured []Coordinates `json:"captured"`
	// Winning reports whether the mover has won once the move is on the board.
	Winning bool `json:"winning"`
}

func NewBoard() *Board {
	return board.New()
}

func DefaultRules() Rules {
	return board.DefaultRules()
}

func ApplyMove(b *Board, rules Rules, m Move) (AppliedMove, error) {
	applied, err := b.SetMove(rules, m)
	if err != nil {
		return AppliedMove{}, errors.Wrapf(err, "apply move %s", m)
	}
	return AppliedMove{
		Move:     applied,
		Captured: applied.Captured,
		Winning:  b.IsWinning(rules, m.Player),
	}, nil
}

// BestMove searches depth plies ahead for player. b is left unchanged.
func BestMove(rules Rules, b *Board, depth int, player Player) (Evaluation, error) {
	eval, err := search.BestMove(rules, b, depth, player)
	if err != nil {
		return Evaluation{}, errors.Wrapf(err, "best move for %s at depth %d", player, depth)
	}
	return eval, nil
}

func IsWinning(b *Board, rules Rules, player Player) bool {
	return b.IsWinning(rules, player)
}

func LegalMoves(b *Board, rules Rules, player Player) []Move {
	return b.LegalMoves(rules, player)
}

// Score is the static evaluation of b for player under the default rules
// and weights: player's shapes minus the opponent's.
func Score(b *Board, player Player) int64 {
	return heuristic.Evaluate(b, board.DefaultRules(), heuristic.DefaultWeights(), player)
}
