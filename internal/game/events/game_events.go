package events

import (
	"time"

	"github.com/jerold/Halite/internal/game/core"
)

const (
	TypeGameStarted       = "game.started"
	TypeGameEnded         = "game.ended"
	TypeTurnStarted       = "turn.started"
	TypeTurnEnded         = "turn.ended"
	TypeMovesRejected     = "moves.rejected"
	TypeProductionApplied = "production.applied"
	TypeCombatResolved    = "combat.resolved"
	TypePlayerEliminated  = "player.eliminated"
)

type GameStartedEvent struct {
	BaseEvent
	NumPlayers int
	MapWidth   int
	MapHeight  int
	MaxTurns   int
}

func NewGameStartedEvent(gameID string, numPlayers, width, height, maxTurns int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:  newBase(TypeGameStarted, gameID),
		NumPlayers: numPlayers,
		MapWidth:   width,
		MapHeight:  height,
		MaxTurns:   maxTurns,
	}
}

// GameEndedEvent reports the final ranking, best first. Winner is 0 on a draw.
type GameEndedEvent struct {
	BaseEvent
	Winner    int
	Ranking   []int
	FinalTurn int
	Duration  time.Duration
}

func NewGameEndedEvent(gameID string, winner int, ranking []int, finalTurn int, duration time.Duration) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID),
		Winner:    winner,
		Ranking:   ranking,
		FinalTurn: finalTurn,
		Duration:  duration,
	}
}

type TurnStartedEvent struct {
	BaseEvent
	TurnNumber int
}

func NewTurnStartedEvent(gameID string, turn int) *TurnStartedEvent {
	return &TurnStartedEvent{BaseEvent: newBase(TypeTurnStarted, gameID), TurnNumber: turn}
}

type TurnEndedEvent struct {
	BaseEvent
	TurnNumber    int
	MovesCount    int
	ProcessedTime time.Duration
}

func NewTurnEndedEvent(gameID string, turn, movesCount int, processedTime time.Duration) *TurnEndedEvent {
	return &TurnEndedEvent{
		BaseEvent:     newBase(TypeTurnEnded, gameID),
		TurnNumber:    turn,
		MovesCount:    movesCount,
		ProcessedTime: processedTime,
	}
}

// MovesRejectedEvent is published when some of a player's moves fail validation.
type MovesRejectedEvent struct {
	BaseEvent
	PlayerID   int
	TurnNumber int
	Rejected   int
	FirstError string
}

func NewMovesRejectedEvent(gameID string, playerID, turn, rejected int, firstErr error) *MovesRejectedEvent {
	e := &MovesRejectedEvent{
		BaseEvent:  newBase(TypeMovesRejected, gameID),
		PlayerID:   playerID,
		TurnNumber: turn,
		Rejected:   rejected,
	}
	if firstErr != nil {
		e.FirstError = firstErr.Error()
	}
	return e
}

// ProductionAppliedEvent totals the strength gained by still pieces in one turn.
// Capped counts the strength lost to the 255 ceiling.
type ProductionAppliedEvent struct {
	BaseEvent
	TurnNumber    int
	TilesProduced int
	Strength      int
	Capped        int
}

func NewProductionAppliedEvent(gameID string, turn, tiles, strength, capped int) *ProductionAppliedEvent {
	return &ProductionAppliedEvent{
		BaseEvent:     newBase(TypeProductionApplied, gameID),
		TurnNumber:    turn,
		TilesProduced: tiles,
		Strength:      strength,
		Capped:        capped,
	}
}

// CombatResolvedEvent describes one tile on which pieces took damage.
type CombatResolvedEvent struct {
	BaseEvent
	TurnNumber    int
	Location      core.Location
	PreviousOwner int
	NewOwner      int
	Strength      int
	Pieces        int
	Captured      bool
}

func NewCombatResolvedEvent(gameID string, turn int, loc core.Location, previousOwner, newOwner, strength, pieces int) *CombatResolvedEvent {
	return &CombatResolvedEvent{
		BaseEvent:     newBase(TypeCombatResolved, gameID),
		TurnNumber:    turn,
		Location:      loc,
		PreviousOwner: previousOwner,
		NewOwner:      newOwner,
		Strength:      strength,
		Pieces:        pieces,
		Captured:      previousOwner != newOwner,
	}
}

type PlayerEliminatedEvent struct {
	BaseEvent
	PlayerID   int
	TurnNumber int
	FinalRank  int
}

func NewPlayerEliminatedEvent(gameID string, playerID, turn, rank int) *PlayerEliminatedEvent {
	return &PlayerEliminatedEvent{
		BaseEvent:  newBase(TypePlayerEliminated, gameID),
		PlayerID:   playerID,
		TurnNumber: turn,
		FinalRank:  rank,
	}
}
