package core

import "fmt"

// Move is the unit of output: the piece at Location goes Direction.
type Move struct {
	Location  Location
	Direction Direction
}

// MoveSet is one player's moves for a turn. Order carries no meaning.
type MoveSet []Move

func (m Move) String() string {
	return fmt.Sprintf("%s %s", m.Location, m.Direction)
}

// Validate checks a move issued by playerID against the map it was computed from.
func (m Move) Validate(gm *GameMap, playerID int) error {
	if !gm.InBounds(m.Location.X, m.Location.Y) {
		return ErrOutOfBounds
	}
	if !m.Direction.IsValid() {
		return ErrInvalidDirection
	}
	if gm.Site(m.Location).Owner != playerID {
		return ErrNotOwned
	}
	return nil
}

// ByLocation indexes a move set by origin. A later move for the same origin is reported
// as a duplicate and ignored.
func (ms MoveSet) ByLocation() (map[Location]Direction, []Move) {
	out := make(map[Location]Direction, len(ms))
	var dups []Move
	for _, m := range ms {
		if _, seen := out[m.Location]; seen {
			dups = append(dups, m)
			continue
		}
		out[m.Location] = m.Direction
	}
	return out, dups
}
