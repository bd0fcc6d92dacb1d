package board

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/TheKrainBow/gomoku/internal/geometry"
)

// String renders 19 lines of 19 space separated digits: 0 empty, 1 black,
// 2 white.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(geometry.Cells * 2)
	for y := 0; y < geometry.Size; y++ {
		for x := 0; x < geometry.Size; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte('0' + byte(b.cells[y*geometry.Size+x]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Parse reads the String format back. Blank lines are ignored. The result
// has no history and no captures.
func Parse(text string) (*Board, error) {
	b := New()
	y := 0
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if y >= geometry.Size {
			return nil, errors.Errorf("parse board: more than %d rows", geometry.Size)
		}
		if len(fields) != geometry.Size {
			return nil, errors.Errorf("parse board: row %d has %d cells", y, len(fields))
		}
		for x, field := range fields {
			var r Rock
			switch field {
			case "0":
				r = Empty
			case "1":
				r = Black
			case "2":
				r = White
			default:
				return nil, errors.Errorf("parse board: bad cell %q at (%d,%d)", field, x, y)
			}
			if r != Empty {
				b.place(geometry.NewCoordinates(x, y).Index(), r)
			}
		}
		y++
	}
	if y != geometry.Size {
		return nil, errors.Errorf("parse board: got %d rows, want %d", y, geometry.Size)
	}
	return b, nil
}
