package agent

import (
	"github.com/jerold/Halite/internal/game/core"
)

// DefaultAccumulateFactor: a tile holds still until its strength reaches production * 5.
const DefaultAccumulateFactor = 5

// Reason records which rule produced a move.
type Reason int

const (
	ReasonAttack     Reason = iota // target weaker than us
	ReasonAccumulate               // too weak to bother moving
	ReasonAdvance                  // interior tile heading for the frontier
	ReasonWait                     // border tile, target still too strong
)

func (r Reason) String() string {
	switch r {
	case ReasonAttack:
		return "attack"
	case ReasonAccumulate:
		return "accumulate"
	case ReasonAdvance:
		return "advance"
	case ReasonWait:
		return "wait"
	default:
		return "unknown"
	}
}

// SelectTarget scans the four neighbours of loc. It returns the best scored neighbour not
// owned by me, or nil when every neighbour is ours, and whether loc is a border tile.
func SelectTarget(m *core.GameMap, me int, loc core.Location) (target *Candidate, border bool) {
	var bestScore float64
	for _, d := range core.Cardinals {
		c := Candidate{
			Direction: d,
			Site:      m.GetSite(loc, d),
			Location:  m.GetLocation(loc, d),
		}
		if c.Site.IsOwnedBy(me) {
			continue
		}
		border = true
		score := Score(m, me, c)
		if target == nil || score > bestScore {
			picked := c
			target = &picked
			bestScore = score
		}
	}
	return target, border
}

// Decide picks the move for the tile at loc, which must be owned by me.
func Decide(m *core.GameMap, me int, loc core.Location, accumulateFactor int) (core.Move, Reason) {
	site := m.Site(loc)
	target, border := SelectTarget(m, me, loc)

	if target != nil && site.Strength > target.Site.Strength {
		return core.Move{Location: loc, Direction: target.Direction}, ReasonAttack
	}

	if site.Strength < site.Production*accumulateFactor {
		return core.Move{Location: loc, Direction: core.STILL}, ReasonAccumulate
	}

	if !border {
		return core.Move{Location: loc, Direction: NearestEnemyDirection(m, me, loc)}, ReasonAdvance
	}

	return core.Move{Location: loc, Direction: core.STILL}, ReasonWait
}
