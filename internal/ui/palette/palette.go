// Package palette maps sites to colours for the viewer.
package palette

import (
	"image/color"

	"github.com/jerold/Halite/internal/game/core"
)

var (
	Neutral    = color.RGBA{110, 110, 110, 255}
	Background = color.RGBA{30, 30, 30, 255}
	Dot        = color.RGBA{255, 255, 255, 200}

	Players = []color.RGBA{
		{220, 60, 60, 255},  // red
		{60, 110, 220, 255}, // blue
		{60, 200, 80, 255},  // green
		{220, 200, 60, 255}, // yellow
		{170, 80, 200, 255}, // purple
		{60, 200, 200, 255}, // cyan
	}
)

// minBrightness is the share of full colour kept by a zero-strength tile.
const minBrightness = 0.3

// Owner returns the base colour for a player tag, or Neutral for tag 0.
func Owner(owner int) color.RGBA {
	if owner <= core.NeutralID {
		return Neutral
	}
	return Players[(owner-1)%len(Players)]
}

// Tile shades the owner's colour by strength: full colour at core.MaxStrength.
func Tile(s core.Site) color.RGBA {
	strength := min(max(s.Strength, 0), core.MaxStrength)
	f := minBrightness + (1-minBrightness)*float64(strength)/core.MaxStrength
	return Scale(Owner(s.Owner), f)
}

// Scale multiplies the colour channels by f, keeping alpha.
func Scale(c color.RGBA, f float64) color.RGBA {
	ch := func(v uint8) uint8 {
		return uint8(min(255, max(0, float64(v)*f+0.5)))
	}
	return color.RGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: c.A}
}

// DotSize returns the side in pixels of the production marker: up to half a tile for the
// map's most productive site, nothing for barren ones.
func DotSize(production, maxProduction, tileSize int) int {
	if production <= 0 || maxProduction <= 0 || tileSize < 4 {
		return 0
	}
	return max(1, tileSize/2*min(production, maxProduction)/maxProduction)
}

// MaxProduction returns the largest production on the map.
func MaxProduction(m *core.GameMap) int {
	highest := 0
	m.ForEach(func(_ core.Location, s core.Site) {
		highest = max(highest, s.Production)
	})
	return highest
}
