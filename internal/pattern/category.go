package pattern

import (
	"fmt"
	"strings"
)

// Category is the tactical meaning of a matched template. Lower values are
// stronger: the iota order is the priority order used for move ordering.
type Category int

const (
	FiveInRow Category = iota
	CapturedFiveInRow
	KilledFive
	OpenFour
	KilledFour
	DeadFour
	KilledThree
	BlockedCapture
	OpenThree
	CutThree
	DeadThree
	OpenTwo
	DeadTwo
)

const NumCategories = 13

// NoCategory marks a direction where no template matched.
const NoCategory Category = -1

var categoryNames = [NumCategories]string{
	"five_in_row",
	"captured_five_in_row",
	"killed_five",
	"open_four",
	"killed_four",
	"dead_four",
	"killed_three",
	"blocked_capture",
	"open_three",
	"cut_three",
	"dead_three",
	"open_two",
	"dead_two",
}

func (c Category) Valid() bool {
	return c >= 0 && c < NumCategories
}

// Priority is unique per category and grows with strength. NoCategory has
// priority 0.
func (c Category) Priority() int {
	if !c.Valid() {
		return 0
	}
	return NumCategories - int(c)
}

// MoveOnly reports categories that describe what a move just did to the
// opponent's shapes. They have no meaning for a rock already standing on the
// board.
func (c Category) MoveOnly() bool {
	switch c {
	case KilledFive, KilledFour, KilledThree, BlockedCapture, CutThree:
		return true
	}
	return false
}

func (c Category) String() string {
	if !c.Valid() {
		return "none"
	}
	return categoryNames[c]
}

// Count tallies the categories produced by one move or one side, plus the
// number of pairs the move captures.
type Count struct {
	Tally    [NumCategories]int `json:"tally"`
	Captures int                `json:"captures"`
}

func (c *Count) Add(category Category) {
	if category.Valid() {
		c.Tally[category]++
	}
}

func (c *Count) Remove(category Category) {
	if category.Valid() {
		c.Tally[category]--
	}
}

func (c Count) Get(category Category) int {
	if !category.Valid() {
		return 0
	}
	return c.Tally[category]
}

func (c Count) Has(category Category) bool {
	return c.Get(category) > 0
}

// Best returns the strongest category present.
func (c Count) Best() (Category, bool) {
	for i := 0; i < NumCategories; i++ {
		if c.Tally[i] > 0 {
			return Category(i), true
		}
	}
	return NoCategory, false
}

// BestPattern is the priority of the strongest category present, 0 when the
// count is empty.
func BestPattern(c Count) int {
	best, ok := c.Best()
	if !ok {
		return 0
	}
	return best.Priority()
}

func (c Count) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for i := 0; i < NumCategories; i++ {
		if c.Tally[i] == 0 {
			continue
		}
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&sb, "%s:%d", Category(i), c.Tally[i])
	}
	if c.Captures > 0 {
		if !first {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "captures:%d", c.Captures)
	}
	sb.WriteByte('}')
	return sb.String()
}
