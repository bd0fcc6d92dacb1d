// Package pattern holds the declarative template catalog used to classify the
// shape a move creates or destroys along one direction.
//
// Templates are written once, from the point of view of the side that owns
// the anchor cell, and compiled from shape strings:
//
//	P  a rock of the anchor's owner
//	O  an opposing rock, or the board edge unless the shape is strict
//	_  an empty cell
//
// Every shape lists the anchor positions it may be matched from. A nil anchor
// list means every P of the shape, which gives "any shift around the anchor".
// Reversed shapes are not listed: matchers test both directions of an axis.
package pattern

import "fmt"

// PlayerRock is a cell seen from one side.
type PlayerRock int8

const (
	None PlayerRock = iota
	Player
	Opponent
	// Edge marks an off-board cell inside a Line. Templates treat it as
	// Opponent unless matched strictly.
	Edge
)

func (r PlayerRock) String() string {
	switch r {
	case None:
		return "_"
	case Player:
		return "P"
	case Opponent:
		return "O"
	case Edge:
		return "#"
	default:
		return "?"
	}
}

type Constraint struct {
	Offset int
	Want   PlayerRock
}

type Template struct {
	Category    Category
	Shape       string
	Anchor      int
	Constraints []Constraint
	// Strict templates need real opposing rocks: the edge satisfies nothing.
	Strict bool
}

func (t Template) String() string {
	return fmt.Sprintf("%s[%s@%d]", t.Category, t.Shape, t.Anchor)
}

// Rocks returns the offsets of the Player cells of the template, anchor
// included.
func (t Template) Rocks() []int {
	offsets := []int{0}
	for _, c := range t.Constraints {
		if c.Want == Player {
			offsets = append(offsets, c.Offset)
		}
	}
	return offsets
}

type Shape struct {
	Category Category
	Pattern  string
	Anchors  []int
	Strict   bool
}

// Reach bounds the absolute offset of every compiled constraint.
const Reach = 5

func Compile(shapes []Shape) []Template {
	var out []Template
	for _, shape := range shapes {
		anchors := shape.Anchors
		if anchors == nil {
			for i := 0; i < len(shape.Pattern); i++ {
				if shape.Pattern[i] == 'P' {
					anchors = append(anchors, i)
				}
			}
		}
		for _, anchor := range anchors {
			out = append(out, compileOne(shape, anchor))
		}
	}
	return out
}

func compileOne(shape Shape, anchor int) Template {
	if anchor < 0 || anchor >= len(shape.Pattern) || shape.Pattern[anchor] != 'P' {
		panic(fmt.Sprintf("pattern: anchor %d of %q is not a P cell", anchor, shape.Pattern))
	}
	t := Template{Category: shape.Category, Shape: shape.Pattern, Anchor: anchor, Strict: shape.Strict}
	for i := 0; i < len(shape.Pattern); i++ {
		if i == anchor {
			continue
		}
		offset := i - anchor
		if offset > Reach || offset < -Reach {
			panic(fmt.Sprintf("pattern: %q exceeds reach from anchor %d", shape.Pattern, anchor))
		}
		var want PlayerRock
		switch shape.Pattern[i] {
		case 'P':
			want = Player
		case 'O':
			want = Opponent
		case '_':
			want = None
		default:
			panic(fmt.Sprintf("pattern: bad cell %q in %q", shape.Pattern[i], shape.Pattern))
		}
		t.Constraints = append(t.Constraints, Constraint{Offset: offset, Want: want})
	}
	return t
}

var catalogShapes = []Shape{
	{Category: FiveInRow, Pattern: "PPPPP"},

	{Category: KilledFive, Pattern: "OPOOO", Anchors: []int{1}, Strict: true},
	{Category: KilledFive, Pattern: "OOPOO", Anchors: []int{2}, Strict: true},

	{Category: OpenFour, Pattern: "_PPPP_"},
	{Category: OpenFour, Pattern: "PP_PP"},
	{Category: OpenFour, Pattern: "P_PPP"},

	{Category: KilledFour, Pattern: "POOOO", Anchors: []int{0}, Strict: true},

	{Category: DeadFour, Pattern: "OPPPP_"},

	{Category: KilledThree, Pattern: "POOO_", Anchors: []int{0}, Strict: true},
	{Category: KilledThree, Pattern: "POO_O_", Anchors: []int{0}, Strict: true},
	{Category: KilledThree, Pattern: "PO_OO_", Anchors: []int{0}, Strict: true},

	{Category: BlockedCapture, Pattern: "OPPP", Anchors: []int{3}, Strict: true},

	{Category: OpenThree, Pattern: "_PPP_"},
	{Category: OpenThree, Pattern: "_PP_P_"},

	{Category: CutThree, Pattern: "_OPOO_", Anchors: []int{2}, Strict: true},

	{Category: DeadThree, Pattern: "OPPP_"},
	{Category: DeadThree, Pattern: "OPP_P_"},
	{Category: DeadThree, Pattern: "OP_PP_"},

	{Category: OpenTwo, Pattern: "_PP_"},
	{Category: OpenTwo, Pattern: "_P_P_"},

	{Category: DeadTwo, Pattern: "OPP_"},
	{Category: DeadTwo, Pattern: "OP_P_"},
}

// Catalog is ordered strongest first: the first template that matches in a
// direction is the strongest shape there.
var Catalog = Compile(catalogShapes)

// PositionCatalog is Catalog without the move-only categories. It classifies
// rocks of a standing position.
var PositionCatalog = positionTemplates(Catalog)

func positionTemplates(templates []Template) []Template {
	var out []Template
	for _, t := range templates {
		if !t.Category.MoveOnly() {
			out = append(out, t)
		}
	}
	return out
}

// FreeThreeDirect matches three consecutive rocks with both ends empty.
var FreeThreeDirect = Compile([]Shape{
	{Category: OpenThree, Pattern: "_PPP_"},
})

// FreeThreeSecondary matches the split open threes.
var FreeThreeSecondary = Compile([]Shape{
	{Category: OpenThree, Pattern: "_PP_P_"},
	{Category: OpenThree, Pattern: "_P_PP_"},
})

// Capture is P O O P seen from the capturing rock.
var Capture = Compile([]Shape{
	{Category: BlockedCapture, Pattern: "POOP", Anchors: []int{0}, Strict: true},
})[0]

// CaptureThreat matches a rock that belongs to a pair the opponent can take
// with one move.
var CaptureThreat = Compile([]Shape{
	{Category: DeadTwo, Pattern: "OPP_", Strict: true},
})

// SelfCapture matches a rock sitting inside an O P P O straddle.
var SelfCapture = Compile([]Shape{
	{Category: DeadTwo, Pattern: "OPPO", Strict: true},
})
