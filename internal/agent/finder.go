package agent

import (
	"github.com/jerold/Halite/internal/game/core"
)

// DefaultDirection is returned when no frontier is found within range.
const DefaultDirection = core.SOUTH

// NearestEnemyDirection returns the cardinal direction with the shortest run of tiles owned
// by me before a tile that is not.
//
// A walk steps onto each owned tile and counts it, so a foreign tile k steps away is seen at
// distance k (a foreign neighbour at 0). Walks are capped at min(width, height)/2 so a line
// owned end to end on the torus cannot loop forever, and a direction must be strictly below
// the cap to count; the cap then tightens to that distance. Ties keep the earlier direction.
func NearestEnemyDirection(m *core.GameMap, me int, loc core.Location) core.Direction {
	direction := DefaultDirection
	// limit is twice the cap, which keeps the odd-sized half step exact in integers.
	limit := min(m.Width, m.Height)

	for _, d := range core.Cardinals {
		distance := 0
		current := loc
		site := m.GetSite(current, d)
		for site.IsOwnedBy(me) && 2*distance < limit {
			distance++
			current = m.GetLocation(current, d)
			site = m.Site(current)
		}
		if 2*distance < limit {
			direction = d
			limit = 2 * distance
		}
	}
	return direction
}
