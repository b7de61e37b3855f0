package rules

import (
	"math"
	"sort"

	"github.com/rs/zerolog"
)

// Player is the view of a player the rules need; game.Player implements it.
type Player interface {
	GetID() int
	IsAlive() bool
	GetTerritory() int
	GetStrength() int
	// GetEliminatedTurn is 0 while the player is alive.
	GetEliminatedTurn() int
}

// DefaultMaxTurns is the Halite turn limit, 10 * sqrt(width * height).
func DefaultMaxTurns(width, height int) int {
	return int(10 * math.Sqrt(float64(width*height)))
}

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger          zerolog.Logger
	originalPlayers int
	maxTurns        int
}

func NewWinConditionChecker(logger zerolog.Logger, originalPlayers, maxTurns int) *WinConditionChecker {
	return &WinConditionChecker{
		logger:          logger.With().Str("component", "WinConditionChecker").Logger(),
		originalPlayers: originalPlayers,
		maxTurns:        maxTurns,
	}
}

func (wc *WinConditionChecker) MaxTurns() int { return wc.maxTurns }

// CheckGameOver reports whether the game has ended after the given turn and, if so, the
// winning player tag (0 when nobody holds territory).
//
// A multi-player game ends when at most one player holds territory; a solo game ends when
// its player is gone. Either ends once maxTurns turns have been played.
func (wc *WinConditionChecker) CheckGameOver(players []Player, turn int) (bool, int) {
	aliveCount := 0
	for _, p := range players {
		if p.IsAlive() {
			aliveCount++
		}
	}

	var gameOver bool
	if wc.originalPlayers > 1 {
		gameOver = aliveCount <= 1
	} else {
		gameOver = aliveCount == 0
	}
	timedOut := wc.maxTurns > 0 && turn >= wc.maxTurns
	gameOver = gameOver || timedOut

	winner := 0
	if gameOver {
		if ranking := Rank(players); len(ranking) > 0 && aliveCount > 0 {
			winner = ranking[0]
		}
		wc.logger.Info().
			Int("turn", turn).
			Bool("turn_limit", timedOut).
			Int("alive_player_count", aliveCount).
			Int("winner_player_id", winner).
			Msg("Game over")
	}

	return gameOver, winner
}

// Rank orders player tags best first. Surviving players rank by territory, then total
// strength; eliminated players follow, latest elimination first. Remaining ties go to the
// lower tag.
func Rank(players []Player) []int {
	sorted := make([]Player, len(players))
	copy(sorted, players)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.IsAlive() != b.IsAlive() {
			return a.IsAlive()
		}
		if a.IsAlive() {
			if a.GetTerritory() != b.GetTerritory() {
				return a.GetTerritory() > b.GetTerritory()
			}
			if a.GetStrength() != b.GetStrength() {
				return a.GetStrength() > b.GetStrength()
			}
		} else if a.GetEliminatedTurn() != b.GetEliminatedTurn() {
			return a.GetEliminatedTurn() > b.GetEliminatedTurn()
		}
		return a.GetID() < b.GetID()
	})

	ranking := make([]int, len(sorted))
	for i, p := range sorted {
		ranking[i] = p.GetID()
	}
	return ranking
}
