package gomoku

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/TheKrainBow/gomoku/internal/board"
)

func TestNewBoardDefaults(t *testing.T) {
	b := NewBoard()
	rules := DefaultRules()
	if !rules.CaptureEnabled || !rules.GameEndingCaptureEnabled || !rules.NoDoubleThreeEnabled {
		t.Fatalf("all rules should default to enabled: %s", rules)
	}
	if got := Score(b, Black); got != 0 {
		t.Fatalf("empty board score %d", got)
	}
	moves := LegalMoves(b, rules, White)
	if len(moves) != 1 || moves[0].Coordinates != (Coordinates{X: 9, Y: 9}) {
		t.Fatalf("expected the center only, got %v", moves)
	}
}

func TestApplyMoveReportsCaptures(t *testing.T) {
	b := NewBoard()
	rules := DefaultRules()
	sequence := []Move{
		board.NewMove(Black, 9, 9),
		board.NewMove(White, 10, 9),
		board.NewMove(Black, 9, 10),
		board.NewMove(White, 11, 9),
	}
	for _, m := range sequence {
		if _, err := ApplyMove(b, rules, m); err != nil {
			t.Fatalf("apply %s: %v", m, err)
		}
	}
	applied, err := ApplyMove(b, rules, board.NewMove(Black, 12, 9))
	if err != nil {
		t.Fatalf("apply capture: %v", err)
	}
	want := []Coordinates{{X: 11, Y: 9}, {X: 10, Y: 9}}
	if diff := cmp.Diff(want, applied.Captured); diff != "" {
		t.Fatalf("captured mismatch (-want +got):\n%s", diff)
	}
	if applied.Winning {
		t.Fatalf("one pair does not win")
	}
}

func TestApplyMoveWrapsErrors(t *testing.T) {
	b := NewBoard()
	rules := DefaultRules()
	if _, err := ApplyMove(b, rules, board.NewMove(Black, 9, 9)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	_, err := ApplyMove(b, rules, board.NewMove(White, 9, 9))
	if !errors.Is(err, ErrOccupied) {
		t.Fatalf("expected occupied, got %v", err)
	}
}

func TestBestMoveAndWin(t *testing.T) {
	b := NewBoard()
	rules := DefaultRules()
	for _, m := range []Move{
		board.NewMove(Black, 9, 9), board.NewMove(White, 0, 18),
		board.NewMove(Black, 10, 9), board.NewMove(White, 1, 18),
		board.NewMove(Black, 11, 9), board.NewMove(White, 18, 0),
		board.NewMove(Black, 12, 9), board.NewMove(White, 18, 1),
	} {
		if _, err := ApplyMove(b, rules, m); err != nil {
			t.Fatalf("apply %s: %v", m, err)
		}
	}
	eval, err := BestMove(rules, b, 1, Black)
	if err != nil {
		t.Fatalf("best move: %v", err)
	}
	if !eval.Found {
		t.Fatalf("expected a move")
	}
	applied, err := ApplyMove(b, rules, eval.BestMove)
	if err != nil {
		t.Fatalf("apply best move: %v", err)
	}
	if !applied.Winning || !IsWinning(b, rules, Black) {
		t.Fatalf("expected %s to complete five", eval.BestMove)
	}
}
