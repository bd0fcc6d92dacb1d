package pattern

// Line is the neighbourhood of one cell along an axis, seen from one side.
// Index Reach is the anchor; Reach+k is k steps forward along the axis.
type Line [2*Reach + 1]PlayerRock

// EmptyLine returns a line where every cell is off the board.
func EmptyLine() Line {
	var l Line
	for i := range l {
		l[i] = Edge
	}
	return l
}

func (l *Line) At(offset int) PlayerRock {
	return l[Reach+offset]
}

// Match reports whether t holds around the anchor of l, walking the template
// forward (sign 1) or backward (sign -1). The anchor itself is not read.
// Edge cells satisfy Opponent constraints of non-strict templates.
func Match(t Template, l *Line, sign int) bool {
	if t.Strict {
		return MatchStrict(t, l, sign)
	}
	for _, c := range t.Constraints {
		got := l[Reach+sign*c.Offset]
		if got == Edge {
			got = Opponent
		}
		if got != c.Want {
			return false
		}
	}
	return true
}

// MatchStrict is Match where Edge cells satisfy nothing.
func MatchStrict(t Template, l *Line, sign int) bool {
	for _, c := range t.Constraints {
		if l[Reach+sign*c.Offset] != c.Want {
			return false
		}
	}
	return true
}

// First returns the first template of the list matching l in the given
// direction.
func First(templates []Template, l *Line, sign int) (Template, bool) {
	for _, t := range templates {
		if Match(t, l, sign) {
			return t, true
		}
	}
	return Template{}, false
}

// AnyOnAxis reports whether any template matches l in either direction.
func AnyOnAxis(templates []Template, l *Line) bool {
	for _, t := range templates {
		if Match(t, l, 1) || Match(t, l, -1) {
			return true
		}
	}
	return false
}
