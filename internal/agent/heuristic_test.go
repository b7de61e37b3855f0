package agent

import (
	"math"
	"testing"

	"github.com/jerold/Halite/internal/game/core"
	"github.com/jerold/Halite/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestScore_Unowned(t *testing.T) {
	m := testutil.NewUniformMap(5, 5, core.NeutralID, 2, 10)

	tests := []struct {
		name     string
		site     core.Site
		expected float64
	}{
		{"weak productive", core.Site{Strength: 10, Production: 2}, 0.2},
		{"strong barren", core.Site{Strength: 200, Production: 1}, 0.005},
		{"no production", core.Site{Strength: 40, Production: 0}, 0},
		{"equal", core.Site{Strength: 7, Production: 7}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Candidate{Direction: core.NORTH, Site: tt.site, Location: core.Location{X: 2, Y: 1}}
			assert.InDelta(t, tt.expected, Score(m, 1, c), 1e-9)
		})
	}
}

func TestScore_ZeroStrengthIsFreeCapture(t *testing.T) {
	m := testutil.NewUniformMap(3, 3, core.NeutralID, 0, 0)
	c := Candidate{Direction: core.EAST, Site: core.Site{Strength: 0, Production: 4}, Location: core.Location{X: 1, Y: 0}}

	var score float64
	assert.NotPanics(t, func() { score = Score(m, 1, c) })
	assert.True(t, math.IsInf(score, 1))
	assert.Equal(t, FreeCapture, score)
	assert.False(t, math.IsNaN(Score(m, 1, Candidate{Site: core.Site{}})), "0/0 must not produce NaN")
}

func TestScore_EnemyPressure(t *testing.T) {
	// Candidate enemy tile at (2,2); around it: enemy 2 north (30), enemy 3 east (20),
	// own tile south (99), unowned west (50).
	m := testutil.NewUniformMap(5, 5, core.NeutralID, 1, 50)
	testutil.SetSite(m, 2, 2, 2, 3, 40)
	testutil.SetSite(m, 2, 1, 2, 1, 30)
	testutil.SetSite(m, 3, 2, 3, 1, 20)
	testutil.SetSite(m, 2, 3, 1, 1, 99)

	c := Candidate{Direction: core.NORTH, Site: m.Site(core.Location{X: 2, Y: 2}), Location: core.Location{X: 2, Y: 2}}

	assert.Equal(t, 50.0, Score(m, 1, c))
	assert.Equal(t, 50, EnemyPressure(m, 1, core.Location{X: 2, Y: 2}))
	// From player 2's point of view only player 3 and player 1 count.
	assert.Equal(t, 119, EnemyPressure(m, 2, core.Location{X: 2, Y: 2}))
}

func TestScore_Idempotent(t *testing.T) {
	m := testutil.NewDuelMap(8, 8)
	before := m.Clone()
	c := Candidate{Direction: core.SOUTH, Site: m.Site(core.Location{X: 1, Y: 2}), Location: core.Location{X: 1, Y: 2}}

	first := Score(m, 1, c)
	second := Score(m, 1, c)

	assert.Equal(t, first, second)
	assert.Equal(t, before, m, "scoring must not mutate the map")
}
