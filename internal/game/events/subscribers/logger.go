package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/jerold/Halite/internal/game/events"
)

// LoggerSubscriber writes every event it receives as one structured log line.
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool
	devMode         bool
}

func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter restricts logging to the given types; an empty list logs everything.
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool, len(eventTypes))
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode adds the full event as raw JSON to each line.
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	logEvent := ls.logger.WithLevel(ls.logLevel).
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp())

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int("num_players", e.NumPlayers).
			Int("map_width", e.MapWidth).
			Int("map_height", e.MapHeight).
			Int("max_turns", e.MaxTurns)

	case *events.GameEndedEvent:
		logEvent.
			Int("winner", e.Winner).
			Ints("ranking", e.Ranking).
			Int("final_turn", e.FinalTurn).
			Dur("duration", e.Duration)

	case *events.TurnStartedEvent:
		logEvent.Int("turn", e.TurnNumber)

	case *events.TurnEndedEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Int("moves_count", e.MovesCount).
			Dur("process_time", e.ProcessedTime)

	case *events.MovesRejectedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Int("turn", e.TurnNumber).
			Int("rejected", e.Rejected).
			Str("first_error", e.FirstError)

	case *events.ProductionAppliedEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Int("tiles_produced", e.TilesProduced).
			Int("strength", e.Strength).
			Int("capped", e.Capped)

	case *events.CombatResolvedEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Int("x", e.Location.X).
			Int("y", e.Location.Y).
			Int("previous_owner", e.PreviousOwner).
			Int("new_owner", e.NewOwner).
			Int("strength", e.Strength).
			Int("pieces", e.Pieces).
			Bool("captured", e.Captured)

	case *events.PlayerEliminatedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Int("turn", e.TurnNumber).
			Int("final_rank", e.FinalRank)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}
