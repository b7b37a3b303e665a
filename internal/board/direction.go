package board

import (
	"errors"
	"fmt"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists the four canonical directions in a stable order.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// Errors reported by the engine. Boundary validation failures wrap
// ErrInvalidBoard/ErrInvalidScore; ErrInvalidDirection on a move is a
// caller contract violation.
var (
	ErrInvalidDirection = errors.New("board: invalid direction")
	ErrInvalidBoard     = errors.New("board: invalid board")
	ErrInvalidScore     = errors.New("board: invalid score")
)

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the four canonical directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// ParseDirection converts a direction token ("up", "down", "left",
// "right") into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}
