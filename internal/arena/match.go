package arena

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jerold/Halite/internal/game"
	"github.com/jerold/Halite/internal/game/core"
	"github.com/jerold/Halite/internal/game/events"
	"github.com/jerold/Halite/internal/game/events/subscribers"
)

var ErrNoPlayers = errors.New("match needs at least one player")

const (
	DefaultInitTimeout = 15 * time.Second
	DefaultTurnTimeout = time.Second
)

// MatchConfig describes one match. Game.Players is overwritten with the number of seats;
// Game.Rng and Game.GameID are derived from Seed and the match id.
type MatchConfig struct {
	Game        game.GameConfig
	Seed        int64
	InitTimeout time.Duration
	TurnTimeout time.Duration
}

type PlayerResult struct {
	Tag       int    `json:"tag"`
	Name      string `json:"name"`
	Rank      int    `json:"rank"`
	Territory int    `json:"territory"`
	Strength  int    `json:"strength"`
	// Dropped is set when the player failed to answer; its pieces stayed still from then on.
	Dropped bool `json:"dropped"`
}

type Result struct {
	ID      string         `json:"id"`
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Turns   int            `json:"turns"`
	Seed    int64          `json:"seed"`
	Winner  int            `json:"winner"`
	Players []PlayerResult `json:"players"`
	Started time.Time      `json:"started"`
	Ended   time.Time      `json:"ended"`
}

// Match plays one game between a fixed set of players. Seat i plays as tag i+1.
type Match struct {
	id      string
	cfg     MatchConfig
	players []Player
	base    zerolog.Logger
	logger  zerolog.Logger
}

func NewMatch(cfg MatchConfig, players []Player, logger zerolog.Logger) *Match {
	if cfg.InitTimeout <= 0 {
		cfg.InitTimeout = DefaultInitTimeout
	}
	if cfg.TurnTimeout <= 0 {
		cfg.TurnTimeout = DefaultTurnTimeout
	}
	id := uuid.New().String()
	return &Match{
		id:      id,
		cfg:     cfg,
		players: players,
		base:    logger.With().Str("match_id", id).Logger(),
		logger:  logger.With().Str("component", "Match").Str("match_id", id).Logger(),
	}
}

func (mt *Match) ID() string { return mt.id }

// Run plays the match to the end and closes every player. A player whose Init or Turn fails
// is dropped for the rest of the match; only a cancelled ctx or an engine error stop it early.
func (mt *Match) Run(ctx context.Context) (*Result, error) {
	if len(mt.players) == 0 {
		return nil, ErrNoPlayers
	}
	defer mt.closePlayers()

	started := time.Now()
	gameCfg := mt.cfg.Game
	gameCfg.Players = len(mt.players)
	gameCfg.Rng = rand.New(rand.NewSource(mt.cfg.Seed))
	gameCfg.GameID = mt.id
	gameCfg.Logger = mt.base
	if gameCfg.EventBus == nil {
		gameCfg.EventBus = events.NewEventBus(mt.base)
	}
	eventLog := subscribers.NewLoggerSubscriber("match_events", mt.base, zerolog.DebugLevel)
	eventLog.SetEventFilter([]string{
		events.TypeGameStarted,
		events.TypeMovesRejected,
		events.TypePlayerEliminated,
		events.TypeGameEnded,
	})
	gameCfg.EventBus.Subscribe(eventLog)

	engine, err := game.NewEngine(ctx, gameCfg)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	names := make([]string, len(mt.players))
	dropped := make([]bool, len(mt.players))

	initErrs := mt.each(ctx, mt.cfg.InitTimeout, dropped, func(ctx context.Context, seat int) error {
		name, err := mt.players[seat].Init(ctx, seat+1, engine.Map())
		names[seat] = name
		return err
	})
	for seat, err := range initErrs {
		if names[seat] == "" {
			names[seat] = fmt.Sprintf("player%d", seat+1)
		}
		if err != nil {
			mt.drop(seat, dropped, "init", err)
		}
	}

	mt.logger.Info().
		Strs("players", names).
		Int("width", engine.Map().Width).
		Int("height", engine.Map().Height).
		Int64("seed", mt.cfg.Seed).
		Msg("Match started")

	for !engine.IsGameOver() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		m := engine.Map()
		alive := make([]bool, len(mt.players))
		for _, p := range engine.Players() {
			alive[p.ID-1] = p.Alive
		}

		moves := make([]core.MoveSet, len(mt.players))
		skip := make([]bool, len(mt.players))
		for seat := range skip {
			skip[seat] = dropped[seat] || !alive[seat]
		}
		turnErrs := mt.each(ctx, mt.cfg.TurnTimeout, skip, func(ctx context.Context, seat int) error {
			ms, err := mt.players[seat].Turn(ctx, m)
			moves[seat] = ms
			return err
		})

		submitted := make(map[int]core.MoveSet, len(mt.players))
		for seat, err := range turnErrs {
			if err != nil {
				mt.drop(seat, dropped, fmt.Sprintf("turn %d", engine.Turn()+1), err)
				continue
			}
			if moves[seat] != nil {
				submitted[seat+1] = moves[seat]
			}
		}

		if err := engine.Step(ctx, submitted); err != nil {
			return nil, fmt.Errorf("match %s: %w", mt.id, err)
		}
	}

	result := &Result{
		ID:      mt.id,
		Width:   engine.Map().Width,
		Height:  engine.Map().Height,
		Turns:   engine.Turn(),
		Seed:    mt.cfg.Seed,
		Winner:  engine.Winner(),
		Started: started,
		Ended:   time.Now(),
	}
	for _, p := range engine.Players() {
		result.Players = append(result.Players, PlayerResult{
			Tag:       p.ID,
			Name:      names[p.ID-1],
			Rank:      p.Rank,
			Territory: p.Territory,
			Strength:  p.Strength,
			Dropped:   dropped[p.ID-1],
		})
	}

	mt.logger.Info().
		Int("turns", result.Turns).
		Int("winner", result.Winner).
		Dur("duration", result.Ended.Sub(result.Started)).
		Msg("Match finished")

	return result, nil
}

// each calls fn for every seat not in skip, concurrently, each under its own timeout.
// The returned slice holds one error per seat.
func (mt *Match) each(ctx context.Context, timeout time.Duration, skip []bool, fn func(ctx context.Context, seat int) error) []error {
	errs := make([]error, len(mt.players))
	var g errgroup.Group
	for seat := range mt.players {
		if skip[seat] {
			continue
		}
		seat := seat
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			errs[seat] = fn(callCtx, seat)
			return nil
		})
	}
	_ = g.Wait()
	return errs
}

func (mt *Match) drop(seat int, dropped []bool, phase string, err error) {
	dropped[seat] = true
	mt.logger.Warn().
		Int("player_id", seat+1).
		Str("phase", phase).
		Err(err).
		Msg("Dropping player, its pieces stay still for the rest of the match")
	if cerr := mt.players[seat].Close(); cerr != nil {
		mt.logger.Debug().Err(cerr).Int("player_id", seat+1).Msg("Error closing dropped player")
	}
}

func (mt *Match) closePlayers() {
	for seat, p := range mt.players {
		if err := p.Close(); err != nil {
			mt.logger.Debug().Err(err).Int("player_id", seat+1).Msg("Error closing player")
		}
	}
}
