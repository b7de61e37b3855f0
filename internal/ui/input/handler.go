package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Commands are the viewer actions requested during one frame.
type Commands struct {
	TogglePause bool
	Step        bool
	Restart     bool
	// SpeedDelta is -1 to slow playback down, +1 to speed it up.
	SpeedDelta int
}

type Handler struct {
	mouseX, mouseY int

	tileSize     int
	boardOffsetX int
	boardOffsetY int
}

func NewHandler(tileSize int) *Handler {
	return &Handler{tileSize: tileSize}
}

// Update reads the keyboard and mouse and returns this frame's commands.
func (h *Handler) Update() Commands {
	h.mouseX, h.mouseY = ebiten.CursorPosition()

	var c Commands
	c.TogglePause = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	c.Step = inpututil.IsKeyJustPressed(ebiten.KeyArrowRight)
	c.Restart = inpututil.IsKeyJustPressed(ebiten.KeyR)
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		c.SpeedDelta++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		c.SpeedDelta--
	}
	return c
}

func (h *Handler) SetTileSize(tileSize int) {
	h.tileSize = tileSize
}

func (h *Handler) SetBoardOffset(x, y int) {
	h.boardOffsetX = x
	h.boardOffsetY = y
}

// GetHoveredTile returns the tile under the cursor; it may lie outside the map.
func (h *Handler) GetHoveredTile() (int, int) {
	return h.screenToTile(h.mouseX, h.mouseY)
}

func (h *Handler) screenToTile(x, y int) (int, int) {
	if h.tileSize <= 0 {
		return -1, -1
	}
	dx, dy := x-h.boardOffsetX, y-h.boardOffsetY
	if dx < 0 || dy < 0 {
		return -1, -1
	}
	return dx / h.tileSize, dy / h.tileSize
}
