// Package heuristic classifies the shapes rocks form and turns category
// tallies into scores.
package heuristic

import (
	"github.com/TheKrainBow/gomoku/internal/board"
	"github.com/TheKrainBow/gomoku/internal/pattern"
)

// Weights maps category presence to score. Categories without a field
// score nothing.
type Weights struct {
	FiveInRow         int64 `json:"five_in_row"`
	KilledFive        int64 `json:"killed_five"`
	KilledFour        int64 `json:"killed_four"`
	BlockedCapture    int64 `json:"blocked_capture"`
	KilledThree       int64 `json:"killed_three"`
	OpenFour          int64 `json:"live_four"`
	CutThree          int64 `json:"cut_three"`
	CapturedFiveInRow int64 `json:"captured_five_in_row"`
	OpenThree         int64 `json:"live_three"`
	// OpenThreeBonus is added on top of OpenThree. 2000 gives the historical
	// 17000 live three.
	OpenThreeBonus int64 `json:"live_three_bonus"`
	// DeadFour is paid per dead four, not once.
	DeadFour int64 `json:"dead_four"`
	OpenTwo  int64 `json:"live_two"`
}

func DefaultWeights() Weights {
	return Weights{
		FiveInRow:         10_000_000,
		KilledFive:        99_999,
		KilledFour:        75_000,
		BlockedCapture:    70_000,
		KilledThree:       60_000,
		OpenFour:          50_000,
		CutThree:          25_000,
		CapturedFiveInRow: 20_000,
		OpenThree:         15_000,
		OpenThreeBonus:    0,
		DeadFour:          50,
		OpenTwo:           200,
	}
}

// WinScore is the score of a won position under the default weights.
const WinScore = 10_000_000

// Score sums the weights of the categories present in c. Reaching the
// capture target scores as a five.
func (w Weights) Score(c pattern.Count) int64 {
	var s int64
	if c.Has(pattern.FiveInRow) || c.Captures >= board.CapturesToWin {
		s += w.FiveInRow
	}
	if c.Has(pattern.KilledFive) {
		s += w.KilledFive
	}
	if c.Has(pattern.KilledFour) {
		s += w.KilledFour
	}
	if c.Has(pattern.BlockedCapture) {
		s += w.BlockedCapture
	}
	if c.Has(pattern.KilledThree) {
		s += w.KilledThree
	}
	if c.Has(pattern.OpenFour) {
		s += w.OpenFour
	}
	if c.Has(pattern.CutThree) {
		s += w.CutThree
	}
	if c.Has(pattern.CapturedFiveInRow) {
		s += w.CapturedFiveInRow
	}
	if c.Has(pattern.OpenThree) {
		s += w.OpenThree + w.OpenThreeBonus
	}
	if n := c.Get(pattern.DeadFour); n > 0 {
		s += w.DeadFour * int64(n)
	}
	if c.Has(pattern.OpenTwo) {
		s += w.OpenTwo
	}
	return s
}
