package heuristic

import (
	"github.com/TheKrainBow/gomoku/internal/board"
	"github.com/TheKrainBow/gomoku/internal/geometry"
	"github.com/TheKrainBow/gomoku/internal/pattern"
)

// directionAxis maps an index of geometry.Directions to its axis and the
// sign of its walk along that axis.
func directionAxis(d int) (geometry.Axis, int) {
	if d < 4 {
		return geometry.Axes[d], 1
	}
	return geometry.Axes[d-4], -1
}

// Classify tallies the strongest category a rock of player on c forms in
// each of the eight directions. The cell itself is read as the player's
// rock whether or not it is occupied.
func Classify(b *board.Board, rules board.Rules, c geometry.Coordinates, player board.Player) pattern.Count {
	var count pattern.Count
	if !c.InBounds() {
		return count
	}
	i := c.Index()
	var lines [4]pattern.Line
	for _, axis := range geometry.Axes {
		lines[axis] = b.Line(i, axis, player.Rock())
	}
	for d := range geometry.Directions {
		axis, sign := directionAxis(d)
		tpl, ok := pattern.First(pattern.Catalog, &lines[axis], sign)
		if !ok {
			continue
		}
		category := tpl.Category
		if category == pattern.FiveInRow && rules.CaptureEnabled && rules.GameEndingCaptureEnabled &&
			fiveCapturable(b, i, axis, sign, tpl) {
			category = pattern.CapturedFiveInRow
		}
		count.Add(category)
	}
	return count
}

// ClassifyMove classifies an applied move and records its captured pairs.
func ClassifyMove(b *board.Board, rules board.Rules, m board.Move) pattern.Count {
	count := Classify(b, rules, m.Coordinates, m.Player)
	count.Captures = m.Pairs()
	return count
}

func fiveCapturable(b *board.Board, i int, axis geometry.Axis, sign int, tpl pattern.Template) bool {
	rank := geometry.Rank(axis, i)
	for _, offset := range tpl.Rocks() {
		j := geometry.AtRank(axis, rank+sign*offset)
		if b.IsCapturable(geometry.FromIndex(j)) {
			return true
		}
	}
	return false
}
