package board

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/TheKrainBow/gomoku/internal/geometry"
)

var (
	ErrOutOfBounds = errors.New("out of bounds")
	ErrOccupied    = errors.New("occupied")
	ErrIllegalMove = errors.New("illegal move")
	// ErrInternalInvariant reports board state that should be unreachable.
	ErrInternalInvariant = errors.New("internal invariant violated")
)

// IllegalReason says which rule forbids a placement.
type IllegalReason int

const (
	NoReason IllegalReason = iota
	DoubleThree
	RecursiveCapture
)

func (r IllegalReason) String() string {
	switch r {
	case DoubleThree:
		return "double three"
	case RecursiveCapture:
		return "recursive capture"
	default:
		return "none"
	}
}

// MoveError carries the rejected coordinates. Err is one of the sentinels
// above.
type MoveError struct {
	Err         error
	Coordinates geometry.Coordinates
	Reason      IllegalReason
}

func (e *MoveError) Error() string {
	if e.Reason != NoReason {
		return fmt.Sprintf("%s at %s: %s", e.Err, e.Coordinates, e.Reason)
	}
	return fmt.Sprintf("%s at %s", e.Err, e.Coordinates)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// ReasonOf extracts the illegal reason from err, NoReason if there is none.
func ReasonOf(err error) IllegalReason {
	var moveErr *MoveError
	if errors.As(err, &moveErr) {
		return moveErr.Reason
	}
	return NoReason
}

func outOfBounds(c geometry.Coordinates) error {
	return &MoveError{Err: ErrOutOfBounds, Coordinates: c}
}

func occupied(c geometry.Coordinates) error {
	return &MoveError{Err: ErrOccupied, Coordinates: c}
}

func illegal(c geometry.Coordinates, reason IllegalReason) error {
	return &MoveError{Err: ErrIllegalMove, Coordinates: c, Reason: reason}
}
