package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jerold/Halite/internal/game/core"
	"github.com/jerold/Halite/internal/game/events"
	"github.com/jerold/Halite/internal/game/processor"
)

// TurnProcessor handles the orchestration of a single turn
type TurnProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{
		engine: engine,
		logger: engine.logger,
	}
}

// ProcessTurn executes a complete game turn: moves, production, combat, then standings.
func (tp *TurnProcessor) ProcessTurn(ctx context.Context, moves map[int]core.MoveSet) error {
	if err := tp.checkContext(ctx, "before starting"); err != nil {
		return err
	}

	if err := tp.validateGameState(); err != nil {
		return err
	}

	tp.engine.gs.Turn++
	turn := tp.engine.gs.Turn

	turnLogger := tp.logger.With().Int("turn", turn).Logger()
	turnLogger.Debug().Msg("Starting game step")

	turnStartTime := time.Now()
	tp.engine.eventBus.Publish(events.NewTurnStartedEvent(tp.engine.gameID, turn))

	intents, accepted, err := tp.processMovesPhase(ctx, moves, turnLogger)
	if err != nil {
		return err
	}

	if err := tp.checkContext(ctx, "before production"); err != nil {
		return core.WrapTurnError(turn, "production", fmt.Errorf("context cancelled: %w", err))
	}
	tp.engine.productionManager.ProcessTurnProduction(tp.engine.gs.Map, intents, turn)

	combat := tp.engine.combatResolver.Resolve(tp.engine.gs.Map, intents, turn)

	tp.engine.updatePlayerStats()
	tp.engine.checkGameOver(turnLogger)

	tp.engine.eventBus.Publish(events.NewTurnEndedEvent(
		tp.engine.gameID,
		turn,
		accepted,
		time.Since(turnStartTime),
	))

	turnLogger.Debug().
		Int("moves_accepted", accepted).
		Int("fights", combat.Fights).
		Int("captures", combat.Captures).
		Msg("Game step finished")
	return nil
}

// checkContext checks if the context is cancelled
func (tp *TurnProcessor) checkContext(ctx context.Context, phase string) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Int("turn", tp.engine.gs.Turn).
			Str("phase", phase).
			Msg("Game step cancelled or timed out")
		return ctx.Err()
	default:
		return nil
	}
}

// validateGameState ensures the game can still take a turn
func (tp *TurnProcessor) validateGameState() error {
	if tp.engine.gameOver {
		tp.logger.Warn().
			Int("turn", tp.engine.gs.Turn).
			Msg("Attempted to step game that is already over")
		return core.WrapTurnError(tp.engine.gs.Turn, "step", core.ErrGameOver)
	}
	return nil
}

func (tp *TurnProcessor) processMovesPhase(ctx context.Context, moves map[int]core.MoveSet, turnLogger zerolog.Logger) (processor.Intents, int, error) {
	submitted := 0
	for _, ms := range moves {
		submitted += len(ms)
	}
	turnLogger.Debug().Int("num_moves_submitted", submitted).Msg("Processing moves")

	gs := tp.engine.gs
	intents, accepted, err := tp.engine.moveProcessor.ProcessMoves(ctx, gs.Map, gs.Turn, gs.AliveSet(), moves)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, 0, core.WrapTurnError(gs.Turn, "movement", fmt.Errorf("context cancelled: %w", err))
		}
		return nil, 0, core.WrapTurnError(gs.Turn, "movement", err)
	}
	return intents, accepted, nil
}
