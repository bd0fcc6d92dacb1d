package board

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/TheKrainBow/gomoku/internal/geometry"
	"github.com/TheKrainBow/gomoku/internal/pattern"
)

// CapturesToWin is the number of captured pairs that wins the game.
const CapturesToWin = 5

type Rules struct {
	CaptureEnabled           bool `json:"capture_enabled"`
	GameEndingCaptureEnabled bool `json:"game_ending_capture_enabled"`
	NoDoubleThreeEnabled     bool `json:"no_double_three_enabled"`
}

func DefaultRules() Rules {
	return Rules{
		CaptureEnabled:           true,
		GameEndingCaptureEnabled: true,
		NoDoubleThreeEnabled:     true,
	}
}

func (r Rules) String() string {
	return fmt.Sprintf("Rules{capture=%t, game_ending_capture=%t, no_double_three=%t}",
		r.CaptureEnabled, r.GameEndingCaptureEnabled, r.NoDoubleThreeEnabled)
}

// SetMove places the move's rock, resolves captures and records the move.
// The returned move has Captured filled.
func (b *Board) SetMove(rules Rules, m Move) (Move, error) {
	if err := b.IsMoveLegal(rules, m); err != nil {
		return m, err
	}
	i := m.Coordinates.Index()
	rock := m.Player.Rock()
	b.place(i, rock)
	m.Captured = nil
	if rules.CaptureEnabled {
		var buf [16]int
		captured := b.findCaptures(i, rock, buf[:0])
		for _, j := range captured {
			b.remove(j)
			m.Captured = append(m.Captured, geometry.FromIndex(j))
		}
		if len(captured) > 0 {
			b.setCaptures(m.Player, b.sides[m.Player].Captures+len(captured)/2)
		}
	}
	b.history = append(b.history, m)
	return m, nil
}

// UndoMove reverts the last applied move.
func (b *Board) UndoMove() (Move, error) {
	m, ok := b.LastMove()
	if !ok {
		return Move{}, errors.Wrap(ErrInternalInvariant, "undo on empty history")
	}
	i := m.Coordinates.Index()
	if b.cells[i] != m.Player.Rock() {
		return m, errors.Wrapf(ErrInternalInvariant, "undo %s: cell holds %s", m, b.cells[i])
	}
	b.history = b.history[:len(b.history)-1]
	b.remove(i)
	opp := m.Player.Opponent().Rock()
	for _, c := range m.Captured {
		b.place(c.Index(), opp)
	}
	if len(m.Captured) > 0 {
		b.setCaptures(m.Player, b.sides[m.Player].Captures-m.Pairs())
	}
	return m, nil
}

// IsMoveLegal reports why m cannot be played, nil if it can.
func (b *Board) IsMoveLegal(rules Rules, m Move) error {
	c := m.Coordinates
	if !c.InBounds() {
		return outOfBounds(c)
	}
	i := c.Index()
	if b.cells[i] != Empty {
		return occupied(c)
	}
	rock := m.Player.Rock()
	// Any straddle left after the move's own captures is refused, without
	// asking whether the opponent's recapture would pay off.
	if rules.CaptureEnabled && b.selfCaptures(i, rock) {
		return illegal(c, RecursiveCapture)
	}
	if rules.NoDoubleThreeEnabled && b.freeThreeAxes(i, rock, pattern.FreeThreeDirect, pattern.FreeThreeSecondary) >= 2 {
		return illegal(c, DoubleThree)
	}
	return nil
}

// selfCaptures simulates the placement with its own captures resolved and
// reports whether the new rock ends up inside an O P P O straddle.
func (b *Board) selfCaptures(i int, rock Rock) bool {
	var buf [16]int
	b.cells[i] = rock
	captured := b.findCaptures(i, rock, buf[:0])
	for _, j := range captured {
		b.cells[j] = Empty
	}
	straddled := false
	for _, axis := range geometry.Axes {
		l := b.lineWindow(i, axis, rock, 3)
		if pattern.AnyOnAxis(pattern.SelfCapture, &l) {
			straddled = true
			break
		}
	}
	opp := rock.Opponent()
	for _, j := range captured {
		b.cells[j] = opp
	}
	b.cells[i] = Empty
	return straddled
}

// findCaptures appends the indices of the opposing rocks a rock on i would
// take.
func (b *Board) findCaptures(i int, rock Rock, dst []int) []int {
	for _, axis := range geometry.Axes {
		l := b.lineWindow(i, axis, rock, 3)
		rank := geometry.Rank(axis, i)
		for _, sign := range [2]int{1, -1} {
			if pattern.Match(pattern.Capture, &l, sign) {
				dst = append(dst,
					geometry.AtRank(axis, rank+sign),
					geometry.AtRank(axis, rank+2*sign))
			}
		}
	}
	return dst
}

// freeThreeAxes counts the axes on which a rock on i would complete one of
// the given templates.
func (b *Board) freeThreeAxes(i int, rock Rock, catalogs ...[]pattern.Template) int {
	n := 0
	for _, axis := range geometry.Axes {
		l := b.lineWindow(i, axis, rock, pattern.Reach)
		for _, catalog := range catalogs {
			if pattern.AnyOnAxis(catalog, &l) {
				n++
				break
			}
		}
	}
	return n
}

func (b *Board) MoveCreateFreeThreeDirectPattern(m Move) int {
	if !m.Coordinates.InBounds() {
		return 0
	}
	return b.freeThreeAxes(m.Coordinates.Index(), m.Player.Rock(), pattern.FreeThreeDirect)
}

func (b *Board) MoveCreateFreeThreeSecondaryPattern(m Move) int {
	if !m.Coordinates.InBounds() {
		return 0
	}
	return b.freeThreeAxes(m.Coordinates.Index(), m.Player.Rock(), pattern.FreeThreeSecondary)
}

// CheckPattern reports whether t holds around c along d for player. The
// cell c itself is not read.
func (b *Board) CheckPattern(c geometry.Coordinates, d geometry.Direction, t pattern.Template, player Player) bool {
	if !c.InBounds() {
		return false
	}
	axis := d.Axis()
	sign := 1
	if d != axis.Direction() {
		sign = -1
	}
	l := b.Line(c.Index(), axis, player.Rock())
	return pattern.Match(t, &l, sign)
}

// OpenIntersections lists the empty cells next to a rock, in index order.
func (b *Board) OpenIntersections() []geometry.Coordinates {
	var open RockSet
	b.all.ForEach(func(i int) {
		c := geometry.FromIndex(i)
		for _, d := range geometry.Directions {
			n := c.Step(d, 1)
			if n.InBounds() && b.cells[n.Index()] == Empty {
				open.Add(n.Index())
			}
		}
	})
	return open.Coordinates()
}

// LegalMoves returns the candidate moves of player. The empty board only
// offers the center.
func (b *Board) LegalMoves(rules Rules, player Player) []Move {
	if b.all.Empty() {
		center := geometry.Center()
		return []Move{{Player: player, Coordinates: center}}
	}
	open := b.OpenIntersections()
	moves := make([]Move, 0, len(open))
	for _, c := range open {
		m := Move{Player: player, Coordinates: c}
		if b.IsMoveLegal(rules, m) == nil {
			moves = append(moves, m)
		}
	}
	return moves
}

// IsCapturable reports whether the rock on c belongs to a pair the opponent
// can take with its next move.
func (b *Board) IsCapturable(c geometry.Coordinates) bool {
	if !c.InBounds() {
		return false
	}
	i := c.Index()
	rock := b.cells[i]
	if rock == Empty {
		return false
	}
	for _, axis := range geometry.Axes {
		l := b.lineWindow(i, axis, rock, 3)
		if pattern.AnyOnAxis(pattern.CaptureThreat, &l) {
			return true
		}
	}
	return false
}

// runs calls fn with every maximal run of at least five rocks of player
// until fn returns true.
func (b *Board) runs(player Player, fn func(run []geometry.Coordinates) bool) bool {
	rock := player.Rock()
	rocks := b.sides[player].Rocks
	found := false
	var run []geometry.Coordinates
	rocks.ForEach(func(i int) {
		if found {
			return
		}
		start := geometry.FromIndex(i)
		for _, axis := range geometry.Axes {
			d := axis.Direction()
			if prev := start.Step(d.Opposite(), 1); prev.InBounds() && b.cells[prev.Index()] == rock {
				continue
			}
			run = run[:0]
			for c := start; c.InBounds() && b.cells[c.Index()] == rock; c = c.Step(d, 1) {
				run = append(run, c)
			}
			if len(run) >= 5 && fn(run) {
				found = true
				return
			}
		}
	})
	return found
}

func (b *Board) HasFiveInARow(player Player) bool {
	return b.runs(player, func([]geometry.Coordinates) bool { return true })
}

// FiveInARow returns the first run of five or more rocks of player.
func (b *Board) FiveInARow(player Player) ([]geometry.Coordinates, bool) {
	var line []geometry.Coordinates
	ok := b.runs(player, func(run []geometry.Coordinates) bool {
		line = append([]geometry.Coordinates(nil), run...)
		return true
	})
	return line, ok
}

// HasUncapturedFiveInARow is HasFiveInARow where, with game ending captures,
// a five only counts if none of its rocks can be captured.
func (b *Board) HasUncapturedFiveInARow(rules Rules, player Player) bool {
	if !rules.CaptureEnabled || !rules.GameEndingCaptureEnabled {
		return b.HasFiveInARow(player)
	}
	return b.runs(player, func(run []geometry.Coordinates) bool {
		capturable := make([]bool, len(run))
		for k, c := range run {
			capturable[k] = b.IsCapturable(c)
		}
		for start := 0; start+5 <= len(run); start++ {
			clean := true
			for k := start; k < start+5; k++ {
				if capturable[k] {
					clean = false
					break
				}
			}
			if clean {
				return true
			}
		}
		return false
	})
}

func (b *Board) IsWinning(rules Rules, player Player) bool {
	return b.sides[player].Captures >= CapturesToWin || b.HasUncapturedFiveInARow(rules, player)
}
