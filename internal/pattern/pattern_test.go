package pattern

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// lineFrom builds a line from a shape string with the anchor at index anchor.
// Cells outside the string are Edge.
func lineFrom(shape string, anchor int) Line {
	l := EmptyLine()
	for i := 0; i < len(shape); i++ {
		var r PlayerRock
		switch shape[i] {
		case 'P':
			r = Player
		case 'O':
			r = Opponent
		case '_':
			r = None
		default:
			r = Edge
		}
		l[Reach+i-anchor] = r
	}
	return l
}

func TestCompileAnchors(t *testing.T) {
	templates := Compile([]Shape{{Category: OpenTwo, Pattern: "_P_P_"}})
	if len(templates) != 2 {
		t.Fatalf("expected one template per P, got %d", len(templates))
	}
	want := []Constraint{
		{Offset: -1, Want: None},
		{Offset: 1, Want: None},
		{Offset: 2, Want: Player},
		{Offset: 3, Want: None},
	}
	if diff := cmp.Diff(want, templates[0].Constraints); diff != "" {
		t.Fatalf("constraints mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, -2}, templates[1].Rocks()); diff != "" {
		t.Fatalf("rock offsets mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogIsOrderedByStrength(t *testing.T) {
	for i := 1; i < len(Catalog); i++ {
		if Catalog[i].Category < Catalog[i-1].Category {
			t.Fatalf("%s listed after %s", Catalog[i], Catalog[i-1])
		}
	}
}

func TestFirstPicksStrongest(t *testing.T) {
	cases := []struct {
		shape  string
		anchor int
		want   Category
	}{
		{"_PPPPP_", 3, FiveInRow},
		{"__PPPP__", 2, OpenFour},
		{"#PPPP_", 1, DeadFour},
		{"_PPP_", 2, OpenThree},
		{"__PP_P__", 5, OpenThree},
		{"OPPP__", 1, DeadThree},
		{"OPPP__", 3, BlockedCapture},
		{"_OPOO_", 2, CutThree},
		{"#POOOO_", 1, KilledFour},
		{"__PP__", 2, OpenTwo},
		{"OPP__", 1, DeadTwo},
		{"OPOOO", 1, KilledFive},
	}
	for _, tc := range cases {
		l := lineFrom(tc.shape, tc.anchor)
		got := NoCategory
		for _, sign := range []int{1, -1} {
			if tpl, ok := First(Catalog, &l, sign); ok && (got == NoCategory || tpl.Category < got) {
				got = tpl.Category
			}
		}
		if got != tc.want {
			t.Errorf("%s@%d: got %s want %s", tc.shape, tc.anchor, got, tc.want)
		}
	}
}

func TestPositionCatalogSkipsMoveOnlyShapes(t *testing.T) {
	for _, tpl := range PositionCatalog {
		if tpl.Category.MoveOnly() {
			t.Fatalf("%s is only meaningful for a move", tpl)
		}
	}
	l := lineFrom("OPPPO", 3)
	for _, sign := range []int{1, -1} {
		if tpl, ok := First(PositionCatalog, &l, sign); ok {
			t.Fatalf("a three closed on both ends matched %s", tpl)
		}
	}
	l = lineFrom("_PPP_", 1)
	if tpl, ok := First(PositionCatalog, &l, 1); !ok || tpl.Category != OpenThree {
		t.Fatalf("expected open three, got %v %v", tpl, ok)
	}
}

func TestEdgeMatchesOpponentUnlessStrict(t *testing.T) {
	l := lineFrom("#PP_", 1)
	deadTwo := Compile([]Shape{{Category: DeadTwo, Pattern: "OPP_", Anchors: []int{1}}})[0]
	if !Match(deadTwo, &l, 1) {
		t.Fatalf("edge should close the pair for pattern matching")
	}
	if MatchStrict(deadTwo, &l, 1) {
		t.Fatalf("strict matching must not accept the edge")
	}
	if Match(CaptureThreat[0], &l, 1) {
		t.Fatalf("edge must not count as a capturing rock")
	}
}

func TestFreeThreeCatalogs(t *testing.T) {
	direct := lineFrom("__PPP__", 4)
	if !AnyOnAxis(FreeThreeDirect, &direct) {
		t.Fatalf("expected direct free three")
	}
	if AnyOnAxis(FreeThreeSecondary, &direct) {
		t.Fatalf("unexpected secondary free three")
	}
	split := lineFrom("_PP_P_", 4)
	if AnyOnAxis(FreeThreeDirect, &split) {
		t.Fatalf("unexpected direct free three")
	}
	if !AnyOnAxis(FreeThreeSecondary, &split) {
		t.Fatalf("expected secondary free three")
	}
}

func TestCountBestPattern(t *testing.T) {
	var c Count
	if BestPattern(c) != 0 {
		t.Fatalf("empty count should have priority 0")
	}
	c.Add(OpenTwo)
	c.Add(DeadFour)
	c.Add(DeadFour)
	best, ok := c.Best()
	if !ok || best != DeadFour {
		t.Fatalf("expected dead_four, got %s", best)
	}
	if BestPattern(c) <= OpenTwo.Priority() {
		t.Fatalf("dead_four priority must beat open_two")
	}
	c.Remove(DeadFour)
	if got := c.Get(DeadFour); got != 1 {
		t.Fatalf("expected one dead_four left, got %d", got)
	}
	if got := c.String(); got != "{dead_four:1 open_two:1}" {
		t.Fatalf("unexpected string %q", got)
	}
}
