package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimensions = errors.New("invalid map dimensions")
	ErrInvalidSite       = errors.New("invalid site values")
	ErrOutOfBounds       = errors.New("location out of bounds")
	ErrInvalidDirection  = errors.New("invalid direction")
	ErrNotOwned          = errors.New("tile not owned by player")
	ErrDuplicateMove     = errors.New("more than one move for the same tile")
	ErrGameOver          = errors.New("game is over")
	ErrInvalidPlayer     = errors.New("invalid player ID")
)

// MoveError carries the player and move that produced an error.
type MoveError struct {
	PlayerID int
	Move     Move
	Err      error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("player %d: move %s: %v", e.PlayerID, e.Move, e.Err)
}

func (e *MoveError) Unwrap() error { return e.Err }

// WrapMoveError attaches move context. A nil err stays nil.
func WrapMoveError(playerID int, move Move, err error) error {
	if err == nil {
		return nil
	}
	return &MoveError{PlayerID: playerID, Move: move, Err: err}
}

// TurnError carries the turn and phase in which an error happened.
type TurnError struct {
	Turn  int
	Phase string
	Err   error
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("turn %d: %s: %v", e.Turn, e.Phase, e.Err)
}

func (e *TurnError) Unwrap() error { return e.Err }

// WrapTurnError attaches turn context. A nil err stays nil.
func WrapTurnError(turn int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return &TurnError{Turn: turn, Phase: phase, Err: err}
}
