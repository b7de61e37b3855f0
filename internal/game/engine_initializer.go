package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/jerold/Halite/internal/game/core"
	"github.com/jerold/Halite/internal/game/events"
	"github.com/jerold/Halite/internal/game/mapgen"
	"github.com/jerold/Halite/internal/game/processor"
	"github.com/jerold/Halite/internal/game/rules"
)

// EngineInitializer handles the complex initialization of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	return &EngineInitializer{
		config: cfg,
		logger: cfg.Logger.With().Str("component", "GameEngine").Logger(),
	}
}

// Initialize creates and initializes a new game engine
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled or timed out during initial phase")
		return nil, ctx.Err()
	default:
	}

	ei.setupDefaults()

	m, spawns, err := ei.prepareMap()
	if err != nil {
		return nil, fmt.Errorf("map generation failed: %w", err)
	}

	gs := ei.initializeGameState(m)
	engine := ei.createEngine(gs, spawns)
	ei.setupEventHandling(engine)
	ei.performInitialSetup(engine)

	engine.eventBus.Publish(events.NewGameStartedEvent(
		engine.gameID,
		len(gs.Players),
		m.Width,
		m.Height,
		engine.MaxTurns(),
	))

	ei.logger.Info().
		Str("game_id", engine.gameID).
		Int("width", m.Width).
		Int("height", m.Height).
		Int("players", len(gs.Players)).
		Int("max_turns", engine.MaxTurns()).
		Msg("Engine created successfully")

	return engine, nil
}

func (ei *EngineInitializer) setupDefaults() {
	if ei.config.Rng == nil {
		ei.logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		ei.config.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if ei.config.GameID == "" {
		ei.config.GameID = fmt.Sprintf("game_%d", time.Now().UnixNano())
	}

	if ei.config.EventBus == nil {
		ei.config.EventBus = events.NewEventBus(ei.config.Logger)
	}
}

// prepareMap uses the supplied map when there is one and generates a new one otherwise.
func (ei *EngineInitializer) prepareMap() (*core.GameMap, []mapgen.SpawnPlacement, error) {
	if ei.config.Map != nil {
		if err := ei.config.Map.Validate(); err != nil {
			return nil, nil, err
		}
		m := ei.config.Map.Clone()
		if ei.config.Players == 0 {
			m.ForEach(func(_ core.Location, s core.Site) {
				ei.config.Players = max(ei.config.Players, s.Owner)
			})
		}
		return m, nil, nil
	}

	mapCfg := mapgen.DefaultMapConfig(ei.config.Width, ei.config.Height, ei.config.Players)
	if ei.config.MapConfig != nil {
		mapCfg = *ei.config.MapConfig
		mapCfg.Width, mapCfg.Height, mapCfg.PlayerCount = ei.config.Width, ei.config.Height, ei.config.Players
	}
	return mapgen.NewGenerator(mapCfg, ei.config.Rng).GenerateMap()
}

func (ei *EngineInitializer) initializeGameState(m *core.GameMap) *GameState {
	players := make([]Player, ei.config.Players)
	for i := range players {
		players[i] = Player{ID: i + 1, Alive: true}
	}
	return &GameState{Map: m, Players: players}
}

func (ei *EngineInitializer) createEngine(gs *GameState, spawns []mapgen.SpawnPlacement) *Engine {
	maxTurns := ei.config.MaxTurns
	if maxTurns <= 0 {
		maxTurns = rules.DefaultMaxTurns(gs.Map.Width, gs.Map.Height)
	}

	engine := &Engine{
		gs:            gs,
		rng:           ei.config.Rng,
		logger:        ei.logger,
		gameID:        ei.config.GameID,
		startTime:     time.Now(),
		spawns:        spawns,
		moveProcessor: processor.NewMoveProcessor(ei.logger),
		winCondition:  rules.NewWinConditionChecker(ei.logger, len(gs.Players), maxTurns),
		eventBus:      ei.config.EventBus,
	}

	engine.productionManager = NewProductionManager(engine.eventBus, engine.gameID, ei.logger)
	engine.combatResolver = NewCombatResolver(engine.eventBus, engine.gameID, ei.logger)
	engine.turnProcessor = NewTurnProcessor(engine)

	return engine
}

func (ei *EngineInitializer) setupEventHandling(engine *Engine) {
	engine.moveProcessor.SetEventPublisher(
		events.NewEventPublisherAdapter(engine.eventBus),
		func(playerID, turn, rejected int, firstErr error) interface{} {
			return events.NewMovesRejectedEvent(engine.gameID, playerID, turn, rejected, firstErr)
		},
	)
}

func (ei *EngineInitializer) performInitialSetup(engine *Engine) {
	engine.updatePlayerStats()
	engine.checkGameOver(ei.logger.With().Str("phase", "init").Logger())
}
