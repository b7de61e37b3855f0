package mapgen

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/jerold/Halite/internal/config"
	"github.com/jerold/Halite/internal/game/core"
)

var ErrNoSpawnLocation = errors.New("no valid spawn location")

// MapConfig holds configuration for map generation
type MapConfig struct {
	Width           int
	Height          int
	PlayerCount     int
	MinProduction   int
	MaxProduction   int
	MinStrength     int
	MaxStrength     int
	StartStrength   int
	MinSpawnSpacing int
	// SmoothingPasses averages each production with its neighbours so productive tiles
	// form regions instead of noise.
	SmoothingPasses int
}

// DefaultMapConfig returns a sensible default configuration
func DefaultMapConfig(w, h, players int) MapConfig {
	return MapConfig{
		Width:           w,
		Height:          h,
		PlayerCount:     players,
		MinProduction:   1,
		MaxProduction:   15,
		MinStrength:     5,
		MaxStrength:     core.MaxStrength,
		StartStrength:   core.MaxStrength,
		MinSpawnSpacing: 5,
		SmoothingPasses: 1,
	}
}

// FromConfig builds a MapConfig from the mapgen section of the application config.
func FromConfig(c config.MapGenConfig, w, h, players int) MapConfig {
	mc := DefaultMapConfig(w, h, players)
	mc.MinProduction = c.MinProduction
	mc.MaxProduction = c.MaxProduction
	mc.MinStrength = c.MinStrength
	mc.MaxStrength = c.MaxStrength
	mc.StartStrength = c.StartStrength
	mc.MinSpawnSpacing = c.MinSpawnSpacing
	return mc
}

// Validate reports settings that cannot produce a legal map.
func (c MapConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", core.ErrInvalidDimensions, c.Width, c.Height)
	}
	if c.PlayerCount < 0 || c.PlayerCount > c.Width*c.Height {
		return fmt.Errorf("cannot place %d players on a %dx%d map", c.PlayerCount, c.Width, c.Height)
	}
	if c.MinProduction < 0 || c.MaxProduction < c.MinProduction {
		return fmt.Errorf("invalid production range %d..%d", c.MinProduction, c.MaxProduction)
	}
	if c.MinStrength < 0 || c.MaxStrength < c.MinStrength || c.MaxStrength > core.MaxStrength {
		return fmt.Errorf("invalid strength range %d..%d", c.MinStrength, c.MaxStrength)
	}
	if c.StartStrength < 0 || c.StartStrength > core.MaxStrength {
		return fmt.Errorf("invalid start strength %d", c.StartStrength)
	}
	return nil
}

// Generator handles map generation with deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
}

func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// GenerateMap creates a map with productions, neutral strengths and one spawn per player.
// Player tags are 1..PlayerCount.
func (g *Generator) GenerateMap() (*core.GameMap, []SpawnPlacement, error) {
	if err := g.config.Validate(); err != nil {
		return nil, nil, err
	}

	m := core.NewGameMap(g.config.Width, g.config.Height)
	g.placeProduction(m)
	g.placeStrength(m)

	spawns, err := g.placeSpawns(m)
	if err != nil {
		return nil, nil, err
	}
	return m, spawns, nil
}

func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) placeProduction(m *core.GameMap) {
	for y := range m.Contents {
		for x := range m.Contents[y] {
			m.Contents[y][x].Production = g.between(g.config.MinProduction, g.config.MaxProduction)
		}
	}

	for pass := 0; pass < g.config.SmoothingPasses; pass++ {
		next := m.Clone()
		m.ForEach(func(loc core.Location, s core.Site) {
			sum := s.Production
			for _, d := range core.Cardinals {
				sum += m.GetSite(loc, d).Production
			}
			next.Contents[loc.Y][loc.X].Production = (sum + 2) / 5
		})
		m.Contents = next.Contents
	}
}

func (g *Generator) placeStrength(m *core.GameMap) {
	for y := range m.Contents {
		for x := range m.Contents[y] {
			m.Contents[y][x].Strength = g.between(g.config.MinStrength, g.config.MaxStrength)
		}
	}
}

func (g *Generator) placeSpawns(m *core.GameMap) ([]SpawnPlacement, error) {
	placements := make([]SpawnPlacement, 0, g.config.PlayerCount)

	for tag := 1; tag <= g.config.PlayerCount; tag++ {
		placement, err := g.findSpawnLocation(m, placements)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", tag, err)
		}
		placement.PlayerID = tag

		m.SetSite(placement.Location, core.Site{
			Owner:      tag,
			Strength:   g.config.StartStrength,
			Production: m.Site(placement.Location).Production,
		})
		placements = append(placements, placement)
	}

	return placements, nil
}

// findSpawnLocation tries random unowned tiles that respect the spacing, then falls back to
// the unowned tile farthest from every existing spawn.
func (g *Generator) findSpawnLocation(m *core.GameMap, existing []SpawnPlacement) (SpawnPlacement, error) {
	farEnough := func(loc core.Location) bool {
		for _, other := range existing {
			if m.Distance(loc, other.Location) < g.config.MinSpawnSpacing {
				return false
			}
		}
		return true
	}

	for attempts := 0; attempts < m.Area(); attempts++ {
		loc := core.Location{X: g.rng.Intn(m.Width), Y: g.rng.Intn(m.Height)}
		if m.Site(loc).IsNeutral() && farEnough(loc) {
			return SpawnPlacement{Location: loc}, nil
		}
	}

	best, bestDist := core.Location{}, -1
	m.ForEach(func(loc core.Location, s core.Site) {
		if !s.IsNeutral() {
			return
		}
		nearest := m.Width + m.Height
		for _, other := range existing {
			nearest = min(nearest, m.Distance(loc, other.Location))
		}
		if nearest > bestDist {
			best, bestDist = loc, nearest
		}
	})
	if bestDist < 0 {
		return SpawnPlacement{}, ErrNoSpawnLocation
	}
	return SpawnPlacement{Location: best}, nil
}

// SpawnPlacement records where a player started.
type SpawnPlacement struct {
	PlayerID int
	Location core.Location
}
