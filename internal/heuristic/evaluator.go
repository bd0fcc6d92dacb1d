package heuristic

import (
	"github.com/TheKrainBow/gomoku/internal/board"
	"github.com/TheKrainBow/gomoku/internal/geometry"
	"github.com/TheKrainBow/gomoku/internal/pattern"
)

// Evaluator keeps the strongest position category of every rock in every
// direction and the per-side tallies, so a move only reclassifies the rocks
// whose lines it touched.
type Evaluator struct {
	weights Weights
	rules   board.Rules
	owner   [geometry.Cells]board.Rock
	cats    [geometry.Cells][8]pattern.Category
	counts  [2]pattern.Count
}

func NewEvaluator(b *board.Board, rules board.Rules, weights Weights) *Evaluator {
	e := &Evaluator{weights: weights, rules: rules}
	e.Reset(b)
	return e
}

// Reset reclassifies every rock of b.
func (e *Evaluator) Reset(b *board.Board) {
	e.counts = [2]pattern.Count{}
	for i := range e.owner {
		e.owner[i] = board.Empty
	}
	all := b.All()
	all.ForEach(func(i int) {
		e.classify(b, i)
	})
}

// Refresh reclassifies the rocks sharing a line window with any changed
// cell. Call it after every placement, capture or undo with the cells the
// board changed.
func (e *Evaluator) Refresh(b *board.Board, changed ...geometry.Coordinates) {
	var touched board.RockSet
	var buf [2*pattern.Reach + 1]int
	for _, c := range changed {
		if !c.InBounds() {
			continue
		}
		for _, axis := range geometry.Axes {
			for _, j := range geometry.LineWindow(axis, pattern.Reach, pattern.Reach, c.Index(), buf[:0]) {
				touched.Add(j)
			}
		}
	}
	touched.ForEach(func(i int) {
		e.forget(i)
		if b.At(i) != board.Empty {
			e.classify(b, i)
		}
	})
}

// RefreshMove is Refresh for the cells an applied move changed.
func (e *Evaluator) RefreshMove(b *board.Board, m board.Move) {
	var buf [17]geometry.Coordinates
	changed := append(buf[:0], m.Coordinates)
	changed = append(changed, m.Captured...)
	e.Refresh(b, changed...)
}

func (e *Evaluator) forget(i int) {
	owner := e.owner[i]
	if owner == board.Empty {
		return
	}
	p, _ := owner.Player()
	for _, category := range e.cats[i] {
		e.counts[p].Remove(category)
	}
	e.owner[i] = board.Empty
}

func (e *Evaluator) classify(b *board.Board, i int) {
	owner := b.At(i)
	p, _ := owner.Player()
	var lines [4]pattern.Line
	for _, axis := range geometry.Axes {
		lines[axis] = b.Line(i, axis, owner)
	}
	for d := range geometry.Directions {
		axis, sign := directionAxis(d)
		category := pattern.NoCategory
		if tpl, ok := pattern.First(pattern.PositionCatalog, &lines[axis], sign); ok {
			category = tpl.Category
		}
		e.cats[i][d] = category
		e.counts[p].Add(category)
	}
	e.owner[i] = owner
}

// Count returns the tally of player's rocks with its captured pairs.
func (e *Evaluator) Count(b *board.Board, player board.Player) pattern.Count {
	c := e.counts[player]
	c.Captures = b.Captures(player)
	return c
}

// SideScore scores player's own shapes. A five that the opponent can still
// break by capture scores as a captured five.
func (e *Evaluator) SideScore(b *board.Board, player board.Player) int64 {
	c := e.Count(b, player)
	if c.Has(pattern.FiveInRow) && e.rules.CaptureEnabled && e.rules.GameEndingCaptureEnabled &&
		!b.HasUncapturedFiveInARow(e.rules, player) {
		c.Tally[pattern.CapturedFiveInRow] += c.Tally[pattern.FiveInRow]
		c.Tally[pattern.FiveInRow] = 0
	}
	return e.weights.Score(c)
}

// ScoreForSide is player's score minus the opponent's.
func (e *Evaluator) ScoreForSide(b *board.Board, player board.Player) int64 {
	return e.SideScore(b, player) - e.SideScore(b, player.Opponent())
}

// Evaluate scores b for player from scratch.
func Evaluate(b *board.Board, rules board.Rules, weights Weights, player board.Player) int64 {
	return NewEvaluator(b, rules, weights).ScoreForSide(b, player)
}
