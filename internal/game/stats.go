package game

import "github.com/jerold/Halite/internal/game/events"

// updatePlayerStats recounts every player's territory, strength and production from the
// map and eliminates players left with no tiles.
func (e *Engine) updatePlayerStats() {
	for i := range e.gs.Players {
		p := &e.gs.Players[i]
		p.Territory, p.Strength, p.Production = 0, 0, 0
	}

	for y := range e.gs.Map.Contents {
		for _, s := range e.gs.Map.Contents[y] {
			p := e.gs.Player(s.Owner)
			if p == nil {
				continue
			}
			p.Territory++
			p.Strength += s.Strength
			p.Production += s.Production
		}
	}

	var eliminated []*Player
	for i := range e.gs.Players {
		p := &e.gs.Players[i]
		if p.Alive && p.Territory == 0 {
			p.Alive = false
			p.EliminatedTurn = e.gs.Turn
			eliminated = append(eliminated, p)
		}
	}

	// Players knocked out on the same turn share the best rank still open.
	if len(eliminated) > 0 {
		rank := len(e.gs.AliveSet()) + 1
		for _, p := range eliminated {
			p.Rank = rank
			e.logger.Info().
				Int("player_id", p.ID).
				Int("turn", e.gs.Turn).
				Int("rank", rank).
				Msg("Player has no territory left and is eliminated")
			e.eventBus.Publish(events.NewPlayerEliminatedEvent(e.gameID, p.ID, e.gs.Turn, rank))
		}
	}

	e.logger.Debug().Msg("Player stats updated")
}
