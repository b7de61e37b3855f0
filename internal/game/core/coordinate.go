package core

import "fmt"

// Location represents a position on the game map
type Location struct {
	X, Y int
}

// FromIndex creates a location from a map index using row-major ordering
func FromIndex(idx, width int) Location {
	return Location{
		X: idx % width,
		Y: idx / width,
	}
}

// ToIndex converts the location to a map index using row-major ordering
func (l Location) ToIndex(width int) int {
	return l.Y*width + l.X
}

// Add returns a new location that is the sum of this location and another
func (l Location) Add(other Location) Location {
	return Location{X: l.X + other.X, Y: l.Y + other.Y}
}

// String returns a string representation of the location
func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.X, l.Y)
}

// Direction is a move direction. The numeric values are the ones used on the wire.
type Direction int

const (
	STILL Direction = iota
	NORTH
	EAST
	SOUTH
	WEST
)

// Cardinals is the fixed order in which neighbours are examined.
var Cardinals = []Direction{NORTH, EAST, SOUTH, WEST}

// DirectionVectors provides location offsets for each direction
var DirectionVectors = map[Direction]Location{
	STILL: {X: 0, Y: 0},
	NORTH: {X: 0, Y: -1},
	EAST:  {X: 1, Y: 0},
	SOUTH: {X: 0, Y: 1},
	WEST:  {X: -1, Y: 0},
}

// Offset returns the unit step for the direction; unknown values do not move.
func (d Direction) Offset() Location {
	return DirectionVectors[d]
}

func (d Direction) IsValid() bool    { return d >= STILL && d <= WEST }
func (d Direction) IsCardinal() bool { return d >= NORTH && d <= WEST }

func (d Direction) String() string {
	switch d {
	case STILL:
		return "STILL"
	case NORTH:
		return "NORTH"
	case EAST:
		return "EAST"
	case SOUTH:
		return "SOUTH"
	case WEST:
		return "WEST"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}
