package testutil

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/jerold/Halite/internal/game/core"
)

// NewTestRNG returns a seeded RNG so generated maps repeat between runs.
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger discards everything.
func NopLogger() zerolog.Logger { return zerolog.Nop() }

// NewUniformMap creates a map where every site has the given owner, production and strength.
func NewUniformMap(width, height, owner, production, strength int) *core.GameMap {
	m := core.NewGameMap(width, height)
	for y := range m.Contents {
		for x := range m.Contents[y] {
			m.Contents[y][x] = core.Site{Owner: owner, Production: production, Strength: strength}
		}
	}
	return m
}

// SetSite overwrites one site by coordinates.
func SetSite(m *core.GameMap, x, y, owner, production, strength int) {
	m.SetSite(core.Location{X: x, Y: y}, core.Site{Owner: owner, Production: production, Strength: strength})
}

// NewMapWithSites builds an unowned map and then applies the given sites.
func NewMapWithSites(width, height int, sites map[core.Location]core.Site) *core.GameMap {
	m := core.NewGameMap(width, height)
	for loc, s := range sites {
		m.SetSite(loc, s)
	}
	return m
}

// NewDuelMap creates a width x height map of unowned tiles (production 1, strength 10) with
// player 1 at (1,1) and player 2 at (width-2,height-2), both at strength 100.
func NewDuelMap(width, height int) *core.GameMap {
	m := NewUniformMap(width, height, core.NeutralID, 1, 10)
	SetSite(m, 1, 1, 1, 2, 100)
	SetSite(m, width-2, height-2, 2, 2, 100)
	return m
}
