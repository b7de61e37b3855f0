package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jerold/Halite/internal/game/core"
)

// EventPublisher avoids an import cycle with the events package.
type EventPublisher interface {
	Publish(event interface{})
}

// RejectedEventFactory builds the event published when a player's moves are rejected.
type RejectedEventFactory func(playerID, turn, rejected int, firstErr error) interface{}

// Intents maps each origin tile to the direction its piece will take this turn.
// Owned tiles with no entry stay still.
type Intents map[core.Location]core.Direction

// Direction returns the intended direction for loc, STILL when none was given.
func (in Intents) Direction(loc core.Location) core.Direction {
	if d, ok := in[loc]; ok {
		return d
	}
	return core.STILL
}

// MoveProcessor validates submitted moves and merges them into one set of intents.
type MoveProcessor struct {
	logger    zerolog.Logger
	publisher EventPublisher
	rejected  RejectedEventFactory
}

func NewMoveProcessor(logger zerolog.Logger) *MoveProcessor {
	return &MoveProcessor{
		logger: logger.With().Str("component", "MoveProcessor").Logger(),
	}
}

// SetEventPublisher wires rejection reporting. Both arguments are required for events to
// be published.
func (mp *MoveProcessor) SetEventPublisher(publisher EventPublisher, factory RejectedEventFactory) {
	mp.publisher = publisher
	mp.rejected = factory
}

// ProcessMoves validates every player's moves against the map and returns the merged
// intents plus the number of accepted moves. Invalid moves are dropped, logged and
// reported; they never fail the turn. Players not in alive are ignored entirely.
func (mp *MoveProcessor) ProcessMoves(ctx context.Context, m *core.GameMap, turn int, alive map[int]bool, moves map[int]core.MoveSet) (Intents, int, error) {
	intents := make(Intents)
	accepted := 0

	for playerID := 1; playerID <= maxPlayer(moves); playerID++ {
		set, ok := moves[playerID]
		if !ok {
			continue
		}

		select {
		case <-ctx.Done():
			mp.logger.Warn().Err(ctx.Err()).Msg("Move processing interrupted by context cancellation")
			return nil, 0, ctx.Err()
		default:
		}

		if !alive[playerID] {
			mp.logger.Warn().Int("player_id", playerID).Int("moves", len(set)).Msg("Ignoring moves from eliminated or unknown player")
			continue
		}

		errs := mp.validate(m, playerID, set, intents)
		accepted += len(set) - len(errs)

		if len(errs) > 0 {
			mp.logger.Warn().
				Int("player_id", playerID).
				Int("turn", turn).
				Int("rejected", len(errs)).
				Err(errors.Join(errs...)).
				Msg("Rejected invalid moves")
			if mp.publisher != nil && mp.rejected != nil {
				mp.publisher.Publish(mp.rejected(playerID, turn, len(errs), errs[0]))
			}
		}
	}

	mp.logger.Debug().Int("turn", turn).Int("accepted", accepted).Int("intents", len(intents)).Msg("Processed moves")
	return intents, accepted, nil
}

func (mp *MoveProcessor) validate(m *core.GameMap, playerID int, set core.MoveSet, intents Intents) []error {
	var errs []error
	seen := make(map[core.Location]bool, len(set))

	for _, mv := range set {
		if err := mv.Validate(m, playerID); err != nil {
			errs = append(errs, core.WrapMoveError(playerID, mv, err))
			continue
		}
		if seen[mv.Location] {
			errs = append(errs, core.WrapMoveError(playerID, mv, fmt.Errorf("%w at %s", core.ErrDuplicateMove, mv.Location)))
			continue
		}
		seen[mv.Location] = true
		intents[mv.Location] = mv.Direction
	}
	return errs
}

func maxPlayer(moves map[int]core.MoveSet) int {
	highest := 0
	for id := range moves {
		highest = max(highest, id)
	}
	return highest
}
