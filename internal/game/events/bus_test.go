package events

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jerold/Halite/internal/game/core"
)

type testSubscriber struct {
	id              string
	interestedTypes map[string]bool
	receivedEvents  []Event
}

func (ts *testSubscriber) ID() string { return ts.id }

func (ts *testSubscriber) HandleEvent(e Event) {
	ts.receivedEvents = append(ts.receivedEvents, e)
}

func (ts *testSubscriber) InterestedIn(eventType string) bool {
	if ts.interestedTypes == nil {
		return true
	}
	return ts.interestedTypes[eventType]
}

type panickingSubscriber struct{}

func (panickingSubscriber) ID() string              { return "boom" }
func (panickingSubscriber) HandleEvent(Event)       { panic("subscriber failure") }
func (panickingSubscriber) InterestedIn(string) bool { return true }

func TestEventBus_SubscribeFunc(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	var received []Event
	id1 := bus.SubscribeFunc(TypeTurnStarted, func(e Event) { received = append(received, e) })
	id2 := bus.SubscribeFunc(TypeTurnStarted, func(e Event) { received = append(received, e) })

	assert.Equal(t, "turn.started_func_1", id1)
	assert.Equal(t, "turn.started_func_2", id2)
	assert.Equal(t, 2, bus.GetFuncHandlerCount(TypeTurnStarted))

	bus.Publish(NewTurnStartedEvent("g1", 3))
	bus.Publish(NewTurnEndedEvent("g1", 3, 10, time.Millisecond))

	require.Len(t, received, 2, "both handlers, only for turn.started")
	assert.Equal(t, "g1", received[0].GameID())
	assert.Equal(t, 3, received[0].(*TurnStartedEvent).TurnNumber)
}

func TestEventBus_Subscriber(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	subscriber := &testSubscriber{
		id: "test-subscriber",
		interestedTypes: map[string]bool{
			TypeGameStarted: true,
			TypeGameEnded:   true,
		},
	}
	bus.Subscribe(subscriber)
	assert.Equal(t, 1, bus.GetSubscriberCount())

	bus.Publish(NewGameStartedEvent("g", 2, 10, 10, 100))
	bus.Publish(NewTurnStartedEvent("g", 1))
	bus.Publish(NewGameEndedEvent("g", 1, []int{1, 2}, 100, time.Minute))

	require.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, TypeGameStarted, subscriber.receivedEvents[0].Type())
	assert.Equal(t, TypeGameEnded, subscriber.receivedEvents[1].Type())

	bus.Unsubscribe(subscriber.ID())
	bus.Publish(NewGameStartedEvent("g", 2, 10, 10, 100))
	assert.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, 0, bus.GetSubscriberCount())
}

func TestEventBus_PanicIsContained(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())
	bus.Subscribe(panickingSubscriber{})

	called := false
	bus.SubscribeFunc(TypeGameStarted, func(Event) { panic("handler failure") })
	bus.SubscribeFunc(TypeGameStarted, func(Event) { called = true })

	assert.NotPanics(t, func() { bus.Publish(NewGameStartedEvent("g", 2, 5, 5, 10)) })
	assert.True(t, called, "handlers after a panicking one still run")
}

func TestEventPublisherAdapter(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())
	sub := &testSubscriber{id: "all"}
	bus.Subscribe(sub)

	adapter := NewEventPublisherAdapter(bus)
	adapter.Publish(NewMovesRejectedEvent("g", 2, 4, 3, core.ErrNotOwned))
	adapter.Publish("not an event")

	require.Len(t, sub.receivedEvents, 1)
	rejected := sub.receivedEvents[0].(*MovesRejectedEvent)
	assert.Equal(t, 2, rejected.PlayerID)
	assert.Equal(t, 3, rejected.Rejected)
	assert.Equal(t, core.ErrNotOwned.Error(), rejected.FirstError)
}

func TestEventConstructors(t *testing.T) {
	loc := core.Location{X: 3, Y: 4}

	combat := NewCombatResolvedEvent("g", 7, loc, 1, 2, 40, 2)
	assert.Equal(t, TypeCombatResolved, combat.Type())
	assert.True(t, combat.Captured)
	assert.False(t, NewCombatResolvedEvent("g", 7, loc, 1, 1, 10, 2).Captured)

	elim := NewPlayerEliminatedEvent("g", 3, 50, 4)
	assert.Equal(t, TypePlayerEliminated, elim.Type())
	assert.Equal(t, 4, elim.FinalRank)

	prod := NewProductionAppliedEvent("g", 2, 5, 30, 1)
	assert.Equal(t, 30, prod.Strength)
	assert.WithinDuration(t, time.Now(), prod.Timestamp(), time.Second)

	assert.Empty(t, NewMovesRejectedEvent("g", 1, 1, 0, nil).FirstError)
	assert.Equal(t, "x", NewMovesRejectedEvent("g", 1, 1, 1, errors.New("x")).FirstError)
}
