package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/jerold/Halite/internal/game/core"
	"github.com/jerold/Halite/internal/game/events"
	"github.com/jerold/Halite/internal/game/mapgen"
	"github.com/jerold/Halite/internal/game/processor"
	"github.com/jerold/Halite/internal/game/rules"
)

// GameConfig holds everything needed to start a game.
type GameConfig struct {
	Width   int
	Height  int
	Players int
	// MaxTurns of 0 uses rules.DefaultMaxTurns.
	MaxTurns int
	// MapConfig overrides the generator settings; Width, Height and Players win over it.
	MapConfig *mapgen.MapConfig
	// Map starts the game from a prepared map instead of generating one.
	Map      *core.GameMap
	Rng      *rand.Rand
	Logger   zerolog.Logger
	GameID   string
	EventBus *events.EventBus
}

// Engine runs a Halite game: it owns the map and applies every player's moves each turn.
type Engine struct {
	gs        *GameState
	rng       *rand.Rand
	gameOver  bool
	winner    int
	logger    zerolog.Logger
	gameID    string
	startTime time.Time
	spawns    []mapgen.SpawnPlacement

	moveProcessor     *processor.MoveProcessor
	winCondition      *rules.WinConditionChecker
	eventBus          *events.EventBus
	productionManager *ProductionManager
	combatResolver    *CombatResolver
	turnProcessor     *TurnProcessor
}

// NewEngine creates a new game engine with the given configuration
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// Step applies one turn. moves is keyed by player tag; a player with no entry, or an
// owned tile with no move, stays still.
func (e *Engine) Step(ctx context.Context, moves map[int]core.MoveSet) error {
	return e.turnProcessor.ProcessTurn(ctx, moves)
}

// GameState returns a deep copy of the current state.
func (e *Engine) GameState() GameState { return *e.gs.Clone() }

// Map returns a copy of the current map, suitable to send to players.
func (e *Engine) Map() *core.GameMap { return e.gs.Map.Clone() }

func (e *Engine) Turn() int                       { return e.gs.Turn }
func (e *Engine) MaxTurns() int                   { return e.winCondition.MaxTurns() }
func (e *Engine) IsGameOver() bool                { return e.gameOver }
func (e *Engine) GameID() string                  { return e.gameID }
func (e *Engine) EventBus() *events.EventBus      { return e.eventBus }
func (e *Engine) Spawns() []mapgen.SpawnPlacement { return e.spawns }

// Winner returns the winning player tag, or 0 while the game runs or on a draw.
func (e *Engine) Winner() int {
	if !e.gameOver {
		return 0
	}
	return e.winner
}

// Players returns a copy of the player table, indexed by tag-1.
func (e *Engine) Players() []Player {
	out := make([]Player, len(e.gs.Players))
	copy(out, e.gs.Players)
	return out
}

// Ranking returns player tags best first, using the current standings.
func (e *Engine) Ranking() []int {
	return rules.Rank(e.rulePlayers())
}

func (e *Engine) rulePlayers() []rules.Player {
	out := make([]rules.Player, len(e.gs.Players))
	for i, p := range e.gs.Players {
		out[i] = p
	}
	return out
}

// checkGameOver updates gameOver and, when the game has just ended, fixes final ranks and
// publishes game.ended.
func (e *Engine) checkGameOver(logger zerolog.Logger) {
	if e.gameOver {
		return
	}
	over, winner := e.winCondition.CheckGameOver(e.rulePlayers(), e.gs.Turn)
	if !over {
		return
	}

	e.gameOver = true
	e.winner = winner
	ranking := e.Ranking()
	for i, tag := range ranking {
		e.gs.Player(tag).Rank = i + 1
	}

	logger.Info().
		Int("winner", winner).
		Ints("ranking", ranking).
		Int("turn", e.gs.Turn).
		Msg("Game ended")

	e.eventBus.Publish(events.NewGameEndedEvent(e.gameID, winner, ranking, e.gs.Turn, time.Since(e.startTime)))
}
