package game

import "github.com/jerold/Halite/internal/game/core"

// Player holds per-player totals, recomputed from the map after every turn.
// Players are tagged 1..N; tag 0 is the unowned side.
type Player struct {
	ID             int
	Alive          bool
	Territory      int
	Strength       int
	Production     int
	EliminatedTurn int // 0 while alive
	Rank           int // set when eliminated, final once the game is over
}

func (p Player) GetID() int             { return p.ID }
func (p Player) IsAlive() bool          { return p.Alive }
func (p Player) GetTerritory() int      { return p.Territory }
func (p Player) GetStrength() int       { return p.Strength }
func (p Player) GetEliminatedTurn() int { return p.EliminatedTurn }

type GameState struct {
	Turn    int
	Map     *core.GameMap
	Players []Player
}

// Player returns the player with the given tag, or nil.
func (gs *GameState) Player(tag int) *Player {
	if tag < 1 || tag > len(gs.Players) {
		return nil
	}
	return &gs.Players[tag-1]
}

// AliveSet returns the tags of players still in the game.
func (gs *GameState) AliveSet() map[int]bool {
	alive := make(map[int]bool, len(gs.Players))
	for _, p := range gs.Players {
		if p.Alive {
			alive[p.ID] = true
		}
	}
	return alive
}

// Clone returns a deep copy safe to hand outside the engine.
func (gs *GameState) Clone() *GameState {
	players := make([]Player, len(gs.Players))
	copy(players, gs.Players)
	return &GameState{
		Turn:    gs.Turn,
		Map:     gs.Map.Clone(),
		Players: players,
	}
}
