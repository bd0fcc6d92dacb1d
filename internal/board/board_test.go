package board

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/TheKrainBow/gomoku/internal/geometry"
	"github.com/TheKrainBow/gomoku/internal/pattern"
)

func put(t *testing.T, b *Board, r Rock, coords ...[2]int) {
	t.Helper()
	for _, c := range coords {
		if err := b.Put(geometry.NewCoordinates(c[0], c[1]), r); err != nil {
			t.Fatalf("put %v: %v", c, err)
		}
	}
}

func play(t *testing.T, b *Board, rules Rules, p Player, x, y int) Move {
	t.Helper()
	m, err := b.SetMove(rules, NewMove(p, x, y))
	if err != nil {
		t.Fatalf("play %s at (%d,%d): %v", p, x, y, err)
	}
	return m
}

func TestEmptyBoardOffersCenter(t *testing.T) {
	b := New()
	moves := b.LegalMoves(DefaultRules(), PlayerBlack)
	if len(moves) != 1 {
		t.Fatalf("expected a single candidate, got %d", len(moves))
	}
	if moves[0].Coordinates != geometry.NewCoordinates(9, 9) {
		t.Fatalf("expected center, got %s", moves[0].Coordinates)
	}
}

func TestOpenIntersectionsAroundSingleRock(t *testing.T) {
	b := New()
	play(t, b, DefaultRules(), PlayerBlack, 9, 9)
	want := []geometry.Coordinates{
		{X: 8, Y: 8}, {X: 9, Y: 8}, {X: 10, Y: 8},
		{X: 8, Y: 9}, {X: 10, Y: 9},
		{X: 8, Y: 10}, {X: 9, Y: 10}, {X: 10, Y: 10},
	}
	if diff := cmp.Diff(want, b.OpenIntersections()); diff != "" {
		t.Fatalf("open intersections mismatch (-want +got):\n%s", diff)
	}
}

func TestFiveInARowWins(t *testing.T) {
	b := New()
	put(t, b, Black, [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0}, [2]int{4, 0})
	rules := DefaultRules()
	if !b.HasFiveInARow(PlayerBlack) {
		t.Fatalf("expected five in a row")
	}
	if !b.IsWinning(rules, PlayerBlack) {
		t.Fatalf("expected black to be winning")
	}
	if b.IsWinning(rules, PlayerWhite) {
		t.Fatalf("white has nothing")
	}
	line, ok := b.FiveInARow(PlayerBlack)
	if !ok || len(line) != 5 || line[0] != geometry.NewCoordinates(0, 0) {
		t.Fatalf("unexpected winning line %v", line)
	}
}

func TestCapturableFiveDoesNotWin(t *testing.T) {
	b := New()
	put(t, b, Black, [2]int{0, 5}, [2]int{1, 5}, [2]int{2, 5}, [2]int{3, 5}, [2]int{4, 5}, [2]int{1, 6})
	put(t, b, White, [2]int{1, 7})
	rules := DefaultRules()
	if !b.HasFiveInARow(PlayerBlack) {
		t.Fatalf("expected five in a row")
	}
	if !b.IsCapturable(geometry.NewCoordinates(1, 5)) {
		t.Fatalf("expected (1,5) to be capturable")
	}
	if b.HasUncapturedFiveInARow(rules, PlayerBlack) {
		t.Fatalf("five should be breakable by capture")
	}
	if b.IsWinning(rules, PlayerBlack) {
		t.Fatalf("black should not win yet")
	}
	rules.GameEndingCaptureEnabled = false
	if !b.IsWinning(rules, PlayerBlack) {
		t.Fatalf("without game ending capture the five wins")
	}
}

func TestLongRunWinsWhenFiveStayClean(t *testing.T) {
	b := New()
	put(t, b, Black, [2]int{0, 5}, [2]int{1, 5}, [2]int{2, 5}, [2]int{3, 5}, [2]int{4, 5}, [2]int{5, 5}, [2]int{0, 6})
	put(t, b, White, [2]int{0, 7})
	if !b.IsWinning(DefaultRules(), PlayerBlack) {
		t.Fatalf("(1..5,5) is an uncaptured five")
	}
}

func TestEdgeNeverCaptures(t *testing.T) {
	b := New()
	put(t, b, Black, [2]int{0, 0}, [2]int{0, 1})
	put(t, b, White, [2]int{0, 2})
	if b.IsCapturable(geometry.NewCoordinates(0, 0)) {
		t.Fatalf("a pair against the edge cannot be captured")
	}
}

func TestFreeThreeCounts(t *testing.T) {
	b := New()
	put(t, b, Black, [2]int{1, 0}, [2]int{2, 0})
	m := NewMove(PlayerBlack, 3, 0)
	if got := b.MoveCreateFreeThreeDirectPattern(m); got != 1 {
		t.Fatalf("direct free three: got %d want 1", got)
	}
	if got := b.MoveCreateFreeThreeSecondaryPattern(m); got != 0 {
		t.Fatalf("secondary free three: got %d want 0", got)
	}

	m = NewMove(PlayerBlack, 4, 0)
	if got := b.MoveCreateFreeThreeDirectPattern(m); got != 0 {
		t.Fatalf("direct free three: got %d want 0", got)
	}
	if got := b.MoveCreateFreeThreeSecondaryPattern(m); got != 1 {
		t.Fatalf("secondary free three: got %d want 1", got)
	}
}

func TestDoubleThreeIsIllegal(t *testing.T) {
	b := New()
	put(t, b, Black, [2]int{9, 7}, [2]int{9, 8}, [2]int{7, 9}, [2]int{8, 9})
	_, err := b.SetMove(DefaultRules(), NewMove(PlayerBlack, 9, 9))
	if !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected illegal move, got %v", err)
	}
	if ReasonOf(err) != DoubleThree {
		t.Fatalf("expected double three, got %s", ReasonOf(err))
	}

	rules := DefaultRules()
	rules.NoDoubleThreeEnabled = false
	if _, err := b.SetMove(rules, NewMove(PlayerBlack, 9, 9)); err != nil {
		t.Fatalf("double three allowed when the rule is off: %v", err)
	}
}

func TestRecursiveCaptureIsIllegal(t *testing.T) {
	b := New()
	put(t, b, White, [2]int{5, 5}, [2]int{8, 5})
	put(t, b, Black, [2]int{6, 5})
	_, err := b.SetMove(DefaultRules(), NewMove(PlayerBlack, 7, 5))
	if ReasonOf(err) != RecursiveCapture {
		t.Fatalf("expected recursive capture, got %v", err)
	}

	rules := DefaultRules()
	rules.CaptureEnabled = false
	if err := b.IsMoveLegal(rules, NewMove(PlayerBlack, 7, 5)); err != nil {
		t.Fatalf("straddle allowed without captures: %v", err)
	}
}

func TestOwnCaptureLiftsStraddle(t *testing.T) {
	b := New()
	rules := DefaultRules()
	put(t, b, White, [2]int{3, 5}, [2]int{6, 5}, [2]int{7, 5})
	put(t, b, Black, [2]int{4, 5}, [2]int{8, 5})
	if err := b.IsMoveLegal(rules, NewMove(PlayerBlack, 5, 5)); err != nil {
		t.Fatalf("capturing out of the straddle should be legal: %v", err)
	}
	m := play(t, b, rules, PlayerBlack, 5, 5)
	if m.Pairs() != 1 {
		t.Fatalf("expected one pair, got %d", m.Pairs())
	}
	for _, x := range []int{6, 7} {
		if got, _ := b.Get(x, 5); got != Empty {
			t.Fatalf("(%d,5) should be captured, got %s", x, got)
		}
	}

	b = New()
	put(t, b, White, [2]int{3, 5}, [2]int{6, 5})
	put(t, b, Black, [2]int{4, 5})
	if ReasonOf(b.IsMoveLegal(rules, NewMove(PlayerBlack, 5, 5))) != RecursiveCapture {
		t.Fatalf("without the capture the straddle must stay illegal")
	}
}

func TestCaptureOnSeveralAxes(t *testing.T) {
	b := New()
	rules := DefaultRules()
	put(t, b, Black, [2]int{11, 5}, [2]int{5, 5}, [2]int{8, 2})
	taken := [][2]int{{9, 5}, {10, 5}, {7, 5}, {6, 5}, {8, 4}, {8, 3}}
	put(t, b, White, taken...)
	hash := b.Hash()

	m := play(t, b, rules, PlayerBlack, 8, 5)
	if m.Pairs() != 3 || len(m.Captured) != 6 {
		t.Fatalf("expected three pairs, got %v", m.Captured)
	}
	if got := b.Captures(PlayerBlack); got != 3 {
		t.Fatalf("expected three pairs credited, got %d", got)
	}
	for _, c := range taken {
		if got, _ := b.Get(c[0], c[1]); got != Empty {
			t.Fatalf("%v should be captured, got %s", c, got)
		}
	}
	if b.Hash() != ComputeHash(b) {
		t.Fatalf("incremental hash drifted")
	}

	if _, err := b.UndoMove(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	for _, c := range taken {
		if got, _ := b.Get(c[0], c[1]); got != White {
			t.Fatalf("%v should be restored, got %s", c, got)
		}
	}
	if b.Captures(PlayerBlack) != 0 || b.Hash() != hash {
		t.Fatalf("undo did not restore the position")
	}
}

func TestPlacementErrors(t *testing.T) {
	b := New()
	rules := DefaultRules()
	if _, err := b.SetMove(rules, NewMove(PlayerBlack, 19, 0)); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected out of bounds, got %v", err)
	}
	play(t, b, rules, PlayerBlack, 9, 9)
	if _, err := b.SetMove(rules, NewMove(PlayerWhite, 9, 9)); !errors.Is(err, ErrOccupied) {
		t.Fatalf("expected occupied, got %v", err)
	}
	if _, err := b.Get(-1, 3); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected out of bounds from Get, got %v", err)
	}
}

func TestCaptureAndUndo(t *testing.T) {
	b := New()
	rules := DefaultRules()
	put(t, b, Black, [2]int{5, 5})
	put(t, b, White, [2]int{6, 5}, [2]int{7, 5})
	before := b.Clone()

	m := play(t, b, rules, PlayerBlack, 8, 5)
	want := []geometry.Coordinates{{X: 6, Y: 5}, {X: 7, Y: 5}}
	if diff := cmp.Diff(want, m.Captured); diff != "" {
		t.Fatalf("captured mismatch (-want +got):\n%s", diff)
	}
	if b.Captures(PlayerBlack) != 1 {
		t.Fatalf("expected one captured pair, got %d", b.Captures(PlayerBlack))
	}
	if r, _ := b.Get(6, 5); r != Empty {
		t.Fatalf("captured rock still on board")
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("validate after capture: %v", err)
	}

	if _, err := b.UndoMove(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if b.String() != before.String() {
		t.Fatalf("undo did not restore the grid:\n%s", b)
	}
	if b.Captures(PlayerBlack) != 0 || b.Hash() != before.Hash() || len(b.History()) != 0 {
		t.Fatalf("undo did not restore captures, hash or history")
	}
	if b.Rocks(PlayerWhite) != before.Rocks(PlayerWhite) {
		t.Fatalf("undo did not restore white rocks")
	}
}

func TestUndoOnEmptyHistory(t *testing.T) {
	if _, err := New().UndoMove(); !errors.Is(err, ErrInternalInvariant) {
		t.Fatalf("expected invariant error, got %v", err)
	}
}

func TestCaptureWinsByCount(t *testing.T) {
	b := New()
	rules := DefaultRules()
	b.SetCaptures(PlayerWhite, 4)
	put(t, b, White, [2]int{5, 5})
	put(t, b, Black, [2]int{6, 5}, [2]int{7, 5})
	play(t, b, rules, PlayerWhite, 8, 5)
	if !b.IsWinning(rules, PlayerWhite) {
		t.Fatalf("five captured pairs must win")
	}
}

func TestHashTracksCapturesAndRocks(t *testing.T) {
	b := New()
	put(t, b, Black, [2]int{0, 0})
	other := b.Clone()
	other.SetCaptures(PlayerBlack, 2)
	if b.Hash() == other.Hash() {
		t.Fatalf("expected hash to differ for different capture counts")
	}
	if b.Hash() != ComputeHash(b) {
		t.Fatalf("incremental hash drifted")
	}
	swapped := New()
	put(t, swapped, White, [2]int{0, 0})
	if swapped.Hash() == b.Hash() {
		t.Fatalf("expected hash to depend on rock colour")
	}
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	rules := DefaultRules()
	for game := 0; game < 8; game++ {
		b := New()
		player := PlayerBlack
		placed := [2]int{}
		for ply := 0; ply < 120; ply++ {
			moves := b.LegalMoves(rules, player)
			if len(moves) == 0 || b.IsWinning(rules, player.Opponent()) {
				break
			}
			snapshot := b.Clone()
			pick := moves[rng.Intn(len(moves))].Coordinates
			play(t, b, rules, player, pick.X, pick.Y)
			if err := b.Validate(); err != nil {
				t.Fatalf("game %d ply %d: %v", game, ply, err)
			}
			if b.Rocks(PlayerBlack).Intersects(b.Rocks(PlayerWhite)) {
				t.Fatalf("game %d ply %d: rock sets overlap", game, ply)
			}
			if _, err := b.UndoMove(); err != nil {
				t.Fatalf("game %d ply %d: undo: %v", game, ply, err)
			}
			if b.String() != snapshot.String() || b.Hash() != snapshot.Hash() || len(b.History()) != len(snapshot.History()) {
				t.Fatalf("game %d ply %d: undo did not restore the position", game, ply)
			}
			play(t, b, rules, player, pick.X, pick.Y)
			placed[player]++
			for _, p := range []Player{PlayerBlack, PlayerWhite} {
				if 2*b.Captures(p) > placed[p.Opponent()] {
					t.Fatalf("game %d ply %d: %s captured more than was placed", game, ply, p)
				}
			}
			player = player.Opponent()
		}
		replay := New()
		for _, m := range b.History() {
			play(t, replay, rules, m.Player, m.Coordinates.X, m.Coordinates.Y)
		}
		if replay.String() != b.String() || replay.Hash() != b.Hash() {
			t.Fatalf("game %d: history replay diverged", game)
		}
	}
}

func TestStringParseRoundTrip(t *testing.T) {
	b := New()
	rules := DefaultRules()
	play(t, b, rules, PlayerBlack, 9, 9)
	play(t, b, rules, PlayerWhite, 10, 9)
	play(t, b, rules, PlayerBlack, 0, 18)
	parsed, err := Parse(b.String())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.String() != b.String() || parsed.Hash() != b.Hash() {
		t.Fatalf("round trip mismatch")
	}
	if _, err := Parse("1 2 3"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestCheckPatternTreatsEdgeAsOpponent(t *testing.T) {
	b := New()
	put(t, b, Black, [2]int{0, 3}, [2]int{1, 3})
	tpl := pattern.Compile([]pattern.Shape{{Category: pattern.DeadTwo, Pattern: "OPP_", Anchors: []int{2}}})[0]
	right := geometry.Directions[0]
	if !b.CheckPattern(geometry.NewCoordinates(1, 3), right, tpl, PlayerBlack) {
		t.Fatalf("expected the edge to bound the pair")
	}
	if b.CheckPattern(geometry.NewCoordinates(1, 3), right.Opposite(), tpl, PlayerBlack) {
		t.Fatalf("pattern does not hold walking left")
	}
}
