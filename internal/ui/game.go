package ui

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/jerold/Halite/internal/agent"
	"github.com/jerold/Halite/internal/config"
	"github.com/jerold/Halite/internal/game"
	"github.com/jerold/Halite/internal/game/core"
	"github.com/jerold/Halite/internal/ui/input"
	"github.com/jerold/Halite/internal/ui/palette"
	"github.com/jerold/Halite/internal/ui/renderer"
)

const hudHeight = 20

// UI configuration functions
func ScreenWidth() int {
	return config.Get().UI.Window.Width
}

func ScreenHeight() int {
	return config.Get().UI.Window.Height
}

func TileSize() int {
	return config.Get().UI.Game.TileSize
}

func TurnInterval() int {
	return config.Get().UI.Game.TurnInterval
}

// UIGame plays a match between built-in agents and draws it every frame.
type UIGame struct {
	gameCfg       game.GameConfig
	engine        *game.Engine
	bot           *agent.Agent
	boardRenderer *renderer.BoardRenderer
	inputHandler  *input.Handler
	defaultFont   font.Face
	logger        zerolog.Logger

	seed      int64
	paused    bool
	turnTimer int
	// speed divides the configured turn interval.
	speed int
}

// NewUIGame starts the first match from gameCfg and seed. gameCfg.Rng is replaced on every
// restart.
func NewUIGame(gameCfg game.GameConfig, accumulateFactor int, seed int64, logger zerolog.Logger) (*UIGame, error) {
	g := &UIGame{
		gameCfg:     gameCfg,
		bot:         agent.New(accumulateFactor, zerolog.Nop()),
		defaultFont: basicfont.Face7x13,
		logger:      logger.With().Str("component", "UIGame").Logger(),
		seed:        seed,
		speed:       1,
	}
	g.boardRenderer = renderer.NewBoardRenderer(TileSize(), g.defaultFont)
	g.inputHandler = input.NewHandler(TileSize())
	g.inputHandler.SetBoardOffset(0, hudHeight)

	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

// ApplyConfig picks up display settings after a config reload.
func (g *UIGame) ApplyConfig() {
	g.boardRenderer.SetTileSize(TileSize())
	g.inputHandler.SetTileSize(TileSize())
	g.logger.Info().Int("tile_size", TileSize()).Int("turn_interval", TurnInterval()).Msg("Display settings reloaded")
}

func (g *UIGame) restart() error {
	cfg := g.gameCfg
	cfg.Rng = rand.New(rand.NewSource(g.seed))
	cfg.GameID = fmt.Sprintf("viewer_%d", g.seed)
	engine, err := game.NewEngine(context.Background(), cfg)
	if err != nil {
		return err
	}
	g.engine = engine
	g.turnTimer = 0
	g.logger.Info().Int64("seed", g.seed).Msg("Match started")
	return nil
}

// Update proceeds the game state.
func (g *UIGame) Update() error {
	cmd := g.inputHandler.Update()

	if cmd.Restart {
		g.seed++
		return g.restart()
	}
	if cmd.TogglePause {
		g.paused = !g.paused
	}
	g.speed = min(max(g.speed+cmd.SpeedDelta, 1), 16)

	if g.engine.IsGameOver() {
		return nil
	}
	if cmd.Step {
		return g.step()
	}
	if g.paused {
		return nil
	}

	g.turnTimer++
	if g.turnTimer < max(TurnInterval()/g.speed, 1) {
		return nil
	}
	g.turnTimer = 0
	return g.step()
}

func (g *UIGame) step() error {
	m := g.engine.Map()
	moves := make(map[int]core.MoveSet)
	for _, p := range g.engine.Players() {
		if p.Alive {
			moves[p.ID] = g.bot.Moves(m, p.ID)
		}
	}
	if err := g.engine.Step(context.Background(), moves); err != nil {
		return err
	}
	if g.engine.IsGameOver() {
		g.logger.Info().
			Int("turn", g.engine.Turn()).
			Int("winner", g.engine.Winner()).
			Msg("Match finished")
	}
	return nil
}

// Draw renders the game screen.
func (g *UIGame) Draw(screen *ebiten.Image) {
	screen.Fill(palette.Background)

	m := g.engine.Map()
	g.boardRenderer.Draw(screen, m, 0, hudHeight)

	status := fmt.Sprintf("Turn %d/%d  x%d", g.engine.Turn(), g.engine.MaxTurns(), g.speed)
	switch {
	case g.engine.IsGameOver():
		status += fmt.Sprintf("  game over, winner %d", g.engine.Winner())
	case g.paused:
		status += "  paused"
	}
	ebitenutil.DebugPrintAt(screen, status, 5, 2)

	x, y := g.inputHandler.GetHoveredTile()
	if x >= 0 && y >= 0 && x < m.Width && y < m.Height {
		s := m.Site(core.Location{X: x, Y: y})
		hover := fmt.Sprintf("(%d,%d) owner %d strength %d production %d", x, y, s.Owner, s.Strength, s.Production)
		ebitenutil.DebugPrintAt(screen, hover, 260, 2)
	}

	for i, p := range g.engine.Players() {
		line := fmt.Sprintf("P%d tiles=%d str=%d", p.ID, p.Territory, p.Strength)
		if !p.Alive {
			line += " out"
		}
		ebitenutil.DebugPrintAt(screen, line, 5, hudHeight+m.Height*g.boardRenderer.TileSize()+4+i*16)
	}
}

// Layout defines the Ebitengine screen size.
func (g *UIGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return ScreenWidth(), ScreenHeight()
}
