package agent

import (
	"time"

	"github.com/jerold/Halite/internal/game/core"
	"github.com/rs/zerolog"
)

// Agent turns a frame into one move per owned tile. It keeps no state between turns.
type Agent struct {
	accumulateFactor int
	logger           zerolog.Logger
}

// New creates an agent. A non-positive factor falls back to DefaultAccumulateFactor.
func New(accumulateFactor int, logger zerolog.Logger) *Agent {
	if accumulateFactor <= 0 {
		accumulateFactor = DefaultAccumulateFactor
	}
	return &Agent{
		accumulateFactor: accumulateFactor,
		logger:           logger.With().Str("component", "Agent").Logger(),
	}
}

// AccumulateFactor returns the factor in use.
func (a *Agent) AccumulateFactor() int { return a.accumulateFactor }

// Moves decides every tile owned by me, row by row.
func (a *Agent) Moves(m *core.GameMap, me int) core.MoveSet {
	start := time.Now()
	moves := make(core.MoveSet, 0, m.Area()/4)
	var tally [4]int

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.Contents[y][x].IsOwnedBy(me) {
				continue
			}
			move, reason := Decide(m, me, core.Location{X: x, Y: y}, a.accumulateFactor)
			moves = append(moves, move)
			tally[reason]++
		}
	}

	a.logger.Debug().
		Int("player_id", me).
		Int("moves", len(moves)).
		Int("attack", tally[ReasonAttack]).
		Int("accumulate", tally[ReasonAccumulate]).
		Int("advance", tally[ReasonAdvance]).
		Int("wait", tally[ReasonWait]).
		Dur("elapsed", time.Since(start)).
		Msg("Computed moves")

	return moves
}
