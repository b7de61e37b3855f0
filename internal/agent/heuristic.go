package agent

import (
	"math"

	"github.com/jerold/Halite/internal/game/core"
)

// FreeCapture is the score of an unowned tile with no strength: taking it costs nothing,
// so nothing outranks it.
var FreeCapture = math.Inf(1)

// Candidate is one neighbour of the tile being decided. It lives only for that decision.
type Candidate struct {
	Direction core.Direction
	Site      core.Site
	Location  core.Location
}

// Score rates a candidate as an attack target for player me.
//
// Unowned tiles score production/strength, so weak productive tiles come first. Any other
// tile scores the total strength of enemy pieces adjacent to it, which is the damage an
// attacker moving there would deal through overkill.
func Score(m *core.GameMap, me int, c Candidate) float64 {
	if c.Site.IsNeutral() {
		if c.Site.Strength == 0 {
			return FreeCapture
		}
		return float64(c.Site.Production) / float64(c.Site.Strength)
	}
	return float64(EnemyPressure(m, me, c.Location))
}

// EnemyPressure sums the strength of the tiles around loc owned by someone other than me.
func EnemyPressure(m *core.GameMap, me int, loc core.Location) int {
	total := 0
	for _, d := range core.Cardinals {
		s := m.GetSite(loc, d)
		if s.IsEnemyOf(me) {
			total += s.Strength
		}
	}
	return total
}
