package game

import (
	"github.com/rs/zerolog"

	"github.com/jerold/Halite/internal/game/core"
	"github.com/jerold/Halite/internal/game/events"
	"github.com/jerold/Halite/internal/game/processor"
)

// CombatStats summarises one turn of movement and combat.
type CombatStats struct {
	Moved    int
	Fights   int
	Captures int
}

// CombatResolver moves pieces and settles every tile where owners meet.
type CombatResolver struct {
	eventBus *events.EventBus
	gameID   string
	logger   zerolog.Logger
}

func NewCombatResolver(eventBus *events.EventBus, gameID string, logger zerolog.Logger) *CombatResolver {
	return &CombatResolver{
		eventBus: eventBus,
		gameID:   gameID,
		logger:   logger.With().Str("component", "CombatResolver").Logger(),
	}
}

// pieces maps owner tag to the strength that owner has on one tile.
type pieces map[int]int

func (p pieces) add(owner, strength int) {
	p[owner] = min(core.MaxStrength, p[owner]+strength)
}

// Resolve applies movement and combat to m in place.
//
// Every owned piece moves to its destination and merges with same-owner pieces there,
// capped at core.MaxStrength. Unowned pieces never move. On each tile every piece then
// damages every piece of another owner on that tile by its own strength; player pieces also
// damage other players' pieces on the four adjacent tiles. All damage is computed from
// strengths before any of it is applied.
//
// A piece survives when its strength exceeds the damage it took, or when it took none. A
// lone survivor owns the tile with what is left. Several survivors (only possible at
// strength 0) resolve in favour of a single player over the unowned side, and to an
// unowned tile when two players are left. A tile every piece left keeps its owner at
// strength 0.
func (cr *CombatResolver) Resolve(m *core.GameMap, intents processor.Intents, turn int) CombatStats {
	var stats CombatStats
	area := m.Area()
	onTile := make([]pieces, area)

	place := func(idx, owner, strength int) {
		if onTile[idx] == nil {
			onTile[idx] = make(pieces, 1)
		}
		onTile[idx].add(owner, strength)
	}

	m.ForEach(func(loc core.Location, s core.Site) {
		if s.IsNeutral() {
			place(loc.ToIndex(m.Width), core.NeutralID, s.Strength)
			return
		}
		d := intents.Direction(loc)
		if d != core.STILL {
			stats.Moved++
		}
		place(m.GetLocation(loc, d).ToIndex(m.Width), s.Owner, s.Strength)
	})

	damage := make([]map[int]int, area)
	hit := func(idx, owner, amount int) {
		if damage[idx] == nil {
			damage[idx] = make(map[int]int, 2)
		}
		damage[idx][owner] += amount
	}

	for idx, ps := range onTile {
		for owner, strength := range ps {
			for other := range ps {
				if other != owner {
					hit(idx, other, strength)
				}
			}
			if owner == core.NeutralID {
				continue
			}
			loc := core.FromIndex(idx, m.Width)
			for _, d := range core.Cardinals {
				nIdx := m.GetLocation(loc, d).ToIndex(m.Width)
				for other := range onTile[nIdx] {
					if other != owner && other != core.NeutralID {
						hit(nIdx, other, strength)
					}
				}
			}
		}
	}

	for idx, ps := range onTile {
		x, y := m.XY(idx)
		site := &m.Contents[y][x]

		if len(ps) == 0 {
			site.Strength = 0
			continue
		}

		previousOwner := site.Owner
		owner, strength := settle(ps, damage[idx])
		site.Owner, site.Strength = owner, strength

		if len(damage[idx]) == 0 {
			continue
		}
		stats.Fights++
		if owner != previousOwner {
			stats.Captures++
		}
		cr.eventBus.Publish(events.NewCombatResolvedEvent(cr.gameID, turn, core.Location{X: x, Y: y}, previousOwner, owner, strength, len(ps)))
	}

	cr.logger.Debug().
		Int("turn", turn).
		Int("moved", stats.Moved).
		Int("fights", stats.Fights).
		Int("captures", stats.Captures).
		Msg("Combat resolved")

	return stats
}

// settle picks the owner and remaining strength of one tile.
func settle(ps pieces, damage map[int]int) (owner, strength int) {
	survivors := 0
	players := 0
	owner = core.NeutralID
	for o, s := range ps {
		taken := damage[o]
		if s-taken <= 0 && taken > 0 {
			continue
		}
		survivors++
		if o != core.NeutralID {
			players++
			owner, strength = o, s-taken
		} else if players == 0 {
			strength = s - taken
		}
	}

	switch {
	case survivors == 0 || players > 1:
		return core.NeutralID, 0
	case players == 1:
		return owner, strength
	default:
		return core.NeutralID, strength
	}
}
