package game

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/jerold/Halite/internal/config"
	"github.com/jerold/Halite/internal/game/mapgen"
)

// ConfigFromApp builds a GameConfig from the arena and mapgen sections of the application
// config. The caller still sets GameID and EventBus when it needs them.
func ConfigFromApp(cfg *config.Config, logger zerolog.Logger, rng *rand.Rand) GameConfig {
	a := cfg.Arena
	mapCfg := mapgen.FromConfig(cfg.MapGen, a.Width, a.Height, a.Players)
	return GameConfig{
		Width:     a.Width,
		Height:    a.Height,
		Players:   a.Players,
		MaxTurns:  a.MaxTurns,
		MapConfig: &mapCfg,
		Rng:       rng,
		Logger:    logger,
	}
}
