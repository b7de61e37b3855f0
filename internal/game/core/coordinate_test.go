package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocation_AddAndString(t *testing.T) {
	l := Location{X: 3, Y: 5}.Add(Location{X: -1, Y: 2})
	assert.Equal(t, Location{X: 2, Y: 7}, l)
	assert.Equal(t, "(2,7)", l.String())
	assert.Equal(t, l, l.Add(STILL.Offset()))
}

func TestLocation_IndexRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		width    int
		expected Location
	}{
		{"TopLeft", 0, 10, Location{0, 0}},
		{"TopRight", 9, 10, Location{9, 0}},
		{"SecondRow", 10, 10, Location{0, 1}},
		{"Middle", 55, 10, Location{5, 5}},
		{"SmallMap", 7, 4, Location{3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := FromIndex(tt.index, tt.width)
			assert.Equal(t, tt.expected, loc)
			assert.Equal(t, tt.index, loc.ToIndex(tt.width))
		})
	}
}

func TestDirection_WireValues(t *testing.T) {
	// Halite encodes STILL=0, NORTH=1, EAST=2, SOUTH=3, WEST=4.
	assert.Equal(t, 0, int(STILL))
	assert.Equal(t, 1, int(NORTH))
	assert.Equal(t, 2, int(EAST))
	assert.Equal(t, 3, int(SOUTH))
	assert.Equal(t, 4, int(WEST))
	assert.Equal(t, []Direction{NORTH, EAST, SOUTH, WEST}, Cardinals)
}

func TestDirection_Validity(t *testing.T) {
	for _, d := range Cardinals {
		assert.True(t, d.IsValid())
		assert.True(t, d.IsCardinal())
	}
	assert.True(t, STILL.IsValid())
	assert.False(t, STILL.IsCardinal())
	assert.False(t, Direction(5).IsValid())
	assert.False(t, Direction(-1).IsValid())
	assert.Equal(t, "Direction(7)", Direction(7).String())
	assert.Equal(t, Location{}, Direction(9).Offset(), "unknown directions do not move")
}
