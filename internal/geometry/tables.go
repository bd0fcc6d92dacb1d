package geometry

// MaxHalf is the largest half-radius served by Window.
const MaxHalf = 5

type axisTable struct {
	order   [Cells]int16 // axis rank -> horizontal index
	rank    [Cells]int16 // horizontal index -> axis rank
	line    [Cells]int16 // horizontal index -> line id
	pos     [Cells]int16 // horizontal index -> position inside its line
	lineLen []int16
	windows [MaxHalf + 1][MaxHalf + 1][Cells][2]int16
}

var tables = buildTables()

func buildTables() *[4]axisTable {
	var t [4]axisTable
	for _, axis := range Axes {
		t[axis].build(axis)
	}
	return &t
}

func (t *axisTable) build(axis Axis) {
	forward := axis.Direction()
	backward := forward.Opposite()
	k := 0
	for i := 0; i < Cells; i++ {
		start := FromIndex(i)
		if start.Step(backward, 1).InBounds() {
			continue
		}
		lineID := int16(len(t.lineLen))
		n := 0
		for c := start; c.InBounds(); c = c.Step(forward, 1) {
			idx := c.Index()
			t.order[k] = int16(idx)
			t.rank[idx] = int16(k)
			t.line[idx] = lineID
			t.pos[idx] = int16(n)
			k++
			n++
		}
		t.lineLen = append(t.lineLen, int16(n))
	}
	for left := 0; left <= MaxHalf; left++ {
		for right := 0; right <= MaxHalf; right++ {
			for i := 0; i < Cells; i++ {
				pos := int(t.pos[i])
				length := int(t.lineLen[t.line[i]])
				l := left
				if l > pos {
					l = pos
				}
				r := right
				if r > length-1-pos {
					r = length - 1 - pos
				}
				rank := int(t.rank[i])
				t.windows[left][right][i] = [2]int16{int16(rank - l), int16(rank + r)}
			}
		}
	}
}

// Window returns the inclusive axis-rank bounds of the window reaching left
// cells backward and right cells forward from cell i, clipped to i's line.
// Both ends are on the same line as i and hi-lo <= left+right.
func Window(axis Axis, left, right, i int) (lo, hi int) {
	w := tables[axis].windows[left][right][i]
	return int(w[0]), int(w[1])
}

// Rank maps a horizontal-order index to its position in the axis ordering.
func Rank(axis Axis, i int) int {
	return int(tables[axis].rank[i])
}

// AtRank maps an axis-ordering position back to a horizontal-order index.
func AtRank(axis Axis, k int) int {
	return int(tables[axis].order[k])
}

// SameLine reports whether two cells lie on the same line of the axis.
func SameLine(axis Axis, a, b int) bool {
	return tables[axis].line[a] == tables[axis].line[b]
}

// LineWindow appends to dst the horizontal indices of Window(axis, left,
// right, i) in forward order.
func LineWindow(axis Axis, left, right, i int, dst []int) []int {
	lo, hi := Window(axis, left, right, i)
	for k := lo; k <= hi; k++ {
		dst = append(dst, AtRank(axis, k))
	}
	return dst
}
