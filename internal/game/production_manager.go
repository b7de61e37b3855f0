package game

import (
	"github.com/rs/zerolog"

	"github.com/jerold/Halite/internal/game/core"
	"github.com/jerold/Halite/internal/game/events"
	"github.com/jerold/Halite/internal/game/processor"
)

// ProductionManager grows pieces that stay still.
type ProductionManager struct {
	eventBus *events.EventBus
	gameID   string
	logger   zerolog.Logger
}

func NewProductionManager(eventBus *events.EventBus, gameID string, logger zerolog.Logger) *ProductionManager {
	return &ProductionManager{
		eventBus: eventBus,
		gameID:   gameID,
		logger:   logger.With().Str("component", "ProductionManager").Logger(),
	}
}

// ProcessTurnProduction adds each owned tile's production to its piece when that piece is
// not moving, capped at core.MaxStrength. Unowned tiles never produce.
func (pm *ProductionManager) ProcessTurnProduction(m *core.GameMap, intents processor.Intents, turn int) {
	tiles, gained, capped := 0, 0, 0

	for y := range m.Contents {
		for x := range m.Contents[y] {
			s := &m.Contents[y][x]
			if s.IsNeutral() || intents.Direction(core.Location{X: x, Y: y}) != core.STILL {
				continue
			}

			grown := s.Strength + s.Production
			if grown > core.MaxStrength {
				capped += grown - core.MaxStrength
				grown = core.MaxStrength
			}
			if grown > s.Strength {
				tiles++
				gained += grown - s.Strength
			}
			s.Strength = grown
		}
	}

	pm.logger.Debug().
		Int("turn", turn).
		Int("tiles_produced", tiles).
		Int("strength_gained", gained).
		Int("strength_capped", capped).
		Msg("Turn production complete")

	if tiles > 0 || capped > 0 {
		pm.eventBus.Publish(events.NewProductionAppliedEvent(pm.gameID, turn, tiles, gained, capped))
	}
}
