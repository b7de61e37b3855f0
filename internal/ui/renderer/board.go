package renderer

import (
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/jerold/Halite/internal/game/core"
	"github.com/jerold/Halite/internal/ui/palette"
)

// minLabelTile is the smallest tile size that still fits a strength label.
const minLabelTile = 22

type BoardRenderer struct {
	tileSize    int
	defaultFont font.Face
}

// NewBoardRenderer returns a renderer ready to use.
func NewBoardRenderer(tileSize int, f font.Face) *BoardRenderer {
	return &BoardRenderer{tileSize: tileSize, defaultFont: f}
}

func (br *BoardRenderer) SetTileSize(tileSize int) { br.tileSize = tileSize }
func (br *BoardRenderer) TileSize() int            { return br.tileSize }

// Draw renders m with its top-left corner at (offsetX, offsetY). Tiles take their owner's
// colour shaded by strength; a centred white square marks production.
func (br *BoardRenderer) Draw(screen *ebiten.Image, m *core.GameMap, offsetX, offsetY int) {
	if m == nil {
		return
	}

	ts := float32(br.tileSize)
	maxProd := palette.MaxProduction(m)

	m.ForEach(func(loc core.Location, s core.Site) {
		x := float32(offsetX + loc.X*br.tileSize)
		y := float32(offsetY + loc.Y*br.tileSize)

		// Leave a one pixel gap so tile borders stay visible.
		vector.DrawFilledRect(screen, x, y, ts-1, ts-1, palette.Tile(s), false)

		if dot := palette.DotSize(s.Production, maxProd, br.tileSize); dot > 0 {
			d := float32(dot)
			vector.DrawFilledRect(screen, x+(ts-d)/2, y+(ts-d)/2, d, d, palette.Dot, false)
		}

		if s.Strength > 0 && br.tileSize >= minLabelTile && br.defaultFont != nil {
			label := strconv.Itoa(s.Strength)
			b := text.BoundString(br.defaultFont, label)
			tx := int(x) + (br.tileSize-b.Dx())/2
			ty := int(y) + br.tileSize - 3
			text.Draw(screen, label, br.defaultFont, tx, ty, palette.Dot)
		}
	})
}
