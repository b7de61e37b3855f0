package agent

import (
	"testing"

	"github.com/jerold/Halite/internal/game/core"
	"github.com/jerold/Halite/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecide_AttackTieGoesNorth(t *testing.T) {
	m := testutil.NewUniformMap(5, 5, core.NeutralID, 2, 10)
	testutil.SetSite(m, 0, 0, 1, 5, 50)

	target, border := SelectTarget(m, 1, core.Location{X: 0, Y: 0})
	require.NotNil(t, target)
	assert.True(t, border)
	assert.Equal(t, core.NORTH, target.Direction)
	assert.Equal(t, core.Location{X: 0, Y: 4}, target.Location, "north of the top row wraps to the bottom")
	assert.InDelta(t, 0.2, Score(m, 1, *target), 1e-9)

	move, reason := Decide(m, 1, core.Location{X: 0, Y: 0}, DefaultAccumulateFactor)
	assert.Equal(t, core.Move{Location: core.Location{X: 0, Y: 0}, Direction: core.NORTH}, move)
	assert.Equal(t, ReasonAttack, reason)
}

func TestDecide_WeakTileAccumulates(t *testing.T) {
	tests := []struct {
		name string
		m    *core.GameMap
	}{
		{
			name: "border tile",
			m: func() *core.GameMap {
				m := testutil.NewUniformMap(5, 5, core.NeutralID, 2, 10)
				testutil.SetSite(m, 2, 2, 1, 1, 3)
				return m
			}(),
		},
		{
			name: "interior tile",
			m: func() *core.GameMap {
				m := testutil.NewUniformMap(5, 5, 1, 1, 100)
				testutil.SetSite(m, 2, 2, 1, 1, 3)
				return m
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			move, reason := Decide(tt.m, 1, core.Location{X: 2, Y: 2}, DefaultAccumulateFactor)
			assert.Equal(t, core.STILL, move.Direction)
			assert.Equal(t, ReasonAccumulate, reason)
		})
	}
}

func TestDecide_Rules(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(m *core.GameMap)
		direction core.Direction
		reason    Reason
	}{
		{
			name: "equal strength does not attack",
			setup: func(m *core.GameMap) {
				testutil.SetSite(m, 3, 3, 1, 1, 10)
			},
			direction: core.STILL,
			reason:    ReasonWait,
		},
		{
			name: "strong border tile waits on stronger target",
			setup: func(m *core.GameMap) {
				testutil.SetSite(m, 3, 3, 1, 1, 8)
				for _, d := range core.Cardinals {
					loc := m.GetLocation(core.Location{X: 3, Y: 3}, d)
					m.SetSite(loc, core.Site{Strength: 9, Production: 1})
				}
			},
			direction: core.STILL,
			reason:    ReasonWait,
		},
		{
			name: "zero strength neighbour is taken first",
			setup: func(m *core.GameMap) {
				testutil.SetSite(m, 3, 3, 1, 1, 50)
				testutil.SetSite(m, 3, 4, core.NeutralID, 0, 0)
			},
			direction: core.SOUTH,
			reason:    ReasonAttack,
		},
		{
			name: "best ratio wins over iteration order",
			setup: func(m *core.GameMap) {
				testutil.SetSite(m, 3, 3, 1, 1, 50)
				testutil.SetSite(m, 2, 3, core.NeutralID, 9, 10)
			},
			direction: core.WEST,
			reason:    ReasonAttack,
		},
		{
			name: "enemy with the most pressure is targeted",
			setup: func(m *core.GameMap) {
				testutil.SetSite(m, 3, 3, 1, 1, 200)
				testutil.SetSite(m, 4, 3, 2, 1, 30)
				testutil.SetSite(m, 5, 3, 2, 1, 100)
			},
			direction: core.EAST,
			reason:    ReasonAttack,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testutil.NewUniformMap(7, 7, core.NeutralID, 1, 10)
			tt.setup(m)

			move, reason := Decide(m, 1, core.Location{X: 3, Y: 3}, DefaultAccumulateFactor)
			assert.Equal(t, tt.direction, move.Direction)
			assert.Equal(t, tt.reason, reason)
			assert.Equal(t, core.Location{X: 3, Y: 3}, move.Location)
		})
	}
}

func TestDecide_InteriorAdvances(t *testing.T) {
	m := testutil.NewUniformMap(7, 7, 1, 1, 100)
	testutil.SetSite(m, 4, 3, core.NeutralID, 1, 10)

	move, reason := Decide(m, 1, core.Location{X: 2, Y: 3}, DefaultAccumulateFactor)

	assert.Equal(t, core.EAST, move.Direction)
	assert.Equal(t, ReasonAdvance, reason)
}

func TestSelectTarget_NoneWhenSurrounded(t *testing.T) {
	m := testutil.NewUniformMap(3, 3, 1, 1, 10)

	target, border := SelectTarget(m, 1, core.Location{X: 1, Y: 1})

	assert.Nil(t, target)
	assert.False(t, border)
}

func TestDecide_CustomFactor(t *testing.T) {
	m := testutil.NewUniformMap(5, 5, 1, 4, 30)

	_, reason := Decide(m, 1, core.Location{X: 2, Y: 2}, 10)
	assert.Equal(t, ReasonAccumulate, reason, "30 < 4*10")

	_, reason = Decide(m, 1, core.Location{X: 2, Y: 2}, 5)
	assert.Equal(t, ReasonAdvance, reason, "30 >= 4*5")
}

func TestReason_String(t *testing.T) {
	assert.Equal(t, "attack", ReasonAttack.String())
	assert.Equal(t, "accumulate", ReasonAccumulate.String())
	assert.Equal(t, "advance", ReasonAdvance.String())
	assert.Equal(t, "wait", ReasonWait.String())
	assert.Equal(t, "unknown", Reason(42).String())
}
