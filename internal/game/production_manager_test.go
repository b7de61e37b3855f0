package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jerold/Halite/internal/game/core"
	"github.com/jerold/Halite/internal/game/events"
	"github.com/jerold/Halite/internal/game/processor"
	"github.com/jerold/Halite/internal/testutil"
)

func TestProductionManager_ProcessTurnProduction(t *testing.T) {
	m := testutil.NewUniformMap(4, 4, core.NeutralID, 3, 7)
	testutil.SetSite(m, 0, 0, 1, 5, 10)   // still
	testutil.SetSite(m, 1, 0, 1, 5, 10)   // moving
	testutil.SetSite(m, 2, 0, 2, 10, 250) // capped
	testutil.SetSite(m, 3, 0, 2, 4, 255)  // already full

	bus := events.NewEventBus(testutil.NopLogger())
	var applied []*events.ProductionAppliedEvent
	bus.SubscribeFunc(events.TypeProductionApplied, func(e events.Event) {
		applied = append(applied, e.(*events.ProductionAppliedEvent))
	})

	pm := NewProductionManager(bus, "prod-test", testutil.NopLogger())
	pm.ProcessTurnProduction(m, processor.Intents{{X: 1, Y: 0}: core.SOUTH}, 3)

	assert.Equal(t, 15, m.Site(core.Location{X: 0, Y: 0}).Strength)
	assert.Equal(t, 10, m.Site(core.Location{X: 1, Y: 0}).Strength, "moving pieces do not grow")
	assert.Equal(t, core.MaxStrength, m.Site(core.Location{X: 2, Y: 0}).Strength)
	assert.Equal(t, core.MaxStrength, m.Site(core.Location{X: 3, Y: 0}).Strength)
	assert.Equal(t, 7, m.Site(core.Location{X: 0, Y: 1}).Strength, "unowned tiles do not grow")

	require.Len(t, applied, 1)
	ev := applied[0]
	assert.Equal(t, 3, ev.TurnNumber)
	assert.Equal(t, 2, ev.TilesProduced)
	assert.Equal(t, 10, ev.Strength)
	assert.Equal(t, 9, ev.Capped)
}

func TestProductionManager_NoOwnedTiles(t *testing.T) {
	m := testutil.NewUniformMap(3, 3, core.NeutralID, 2, 0)
	bus := events.NewEventBus(testutil.NopLogger())
	published := 0
	bus.SubscribeFunc(events.TypeProductionApplied, func(events.Event) { published++ })

	NewProductionManager(bus, "prod-test", testutil.NopLogger()).ProcessTurnProduction(m, nil, 1)

	assert.Equal(t, 0, published)
	assert.Equal(t, 0, m.Site(core.Location{X: 1, Y: 1}).Strength)
}
