package protocol

import (
	"testing"

	"github.com/jerold/Halite/internal/game/core"
	"github.com/jerold/Halite/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeFrame_RunLength(t *testing.T) {
	m := testutil.NewUniformMap(3, 2, core.NeutralID, 1, 5)
	testutil.SetSite(m, 1, 0, 1, 1, 200)
	testutil.SetSite(m, 2, 0, 1, 1, 7)
	testutil.SetSite(m, 0, 1, 1, 1, 0)
	testutil.SetSite(m, 2, 1, 2, 1, 33)

	// owners row-major: 0 1 1 / 1 0 2
	assert.Equal(t, "1 0 3 1 1 0 1 2 5 200 7 0 5 33", EncodeFrame(m))
}

func TestDecodeFrame(t *testing.T) {
	base := core.NewGameMap(3, 2)
	base.Contents[0][2].Production = 9

	m, err := DecodeFrame("1 0 3 1 1 0 1 2 5 200 7 0 5 33", base)
	require.NoError(t, err)

	assert.Equal(t, core.Site{Owner: 1, Strength: 7, Production: 9}, m.Site(core.Location{X: 2, Y: 0}))
	assert.Equal(t, core.Site{Owner: 2, Strength: 33}, m.Site(core.Location{X: 2, Y: 1}))
	assert.Equal(t, 3, m.CountOwned(1))
	assert.Equal(t, core.Site{Production: 9}, base.Site(core.Location{X: 2, Y: 0}), "base must stay untouched")
}

func TestDecodeFrame_RoundTrip(t *testing.T) {
	m := testutil.NewDuelMap(7, 5)
	testutil.SetSite(m, 3, 3, 2, 4, 0)

	got, err := DecodeFrame(EncodeFrame(m), m)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestDecodeFrame_Malformed(t *testing.T) {
	base := core.NewGameMap(2, 2)

	tests := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"run past the map", "5 0 1 1 1 1"},
		{"zero run", "0 1 4 0 1 1 1 1"},
		{"short strengths", "4 0 1 1 1"},
		{"extra strengths", "4 0 1 1 1 1 1"},
		{"not a number", "4 x 1 1 1 1"},
		{"strength too high", "4 0 1 1 1 256"},
		{"negative owner", "4 -1 1 1 1 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFrame(tt.line, base)
			assert.ErrorIs(t, err, ErrMalformedFrame)
		})
	}
}

func TestProductions(t *testing.T) {
	m := core.NewGameMap(2, 2)
	m.Contents[0][1].Production = 3
	m.Contents[1][0].Production = 12

	line := EncodeProductions(m)
	assert.Equal(t, "0 3 12 0", line)

	got, err := DecodeProductions(line, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Site(core.Location{X: 0, Y: 1}).Production)

	_, err = DecodeProductions("1 2 3", 2, 2)
	assert.ErrorIs(t, err, ErrMalformedInit)
	_, err = DecodeProductions("1 2 -3 4", 2, 2)
	assert.ErrorIs(t, err, ErrMalformedInit)
}

func TestDecodeSize(t *testing.T) {
	w, h, err := DecodeSize("30 20")
	require.NoError(t, err)
	assert.Equal(t, 30, w)
	assert.Equal(t, 20, h)

	for _, bad := range []string{"", "30", "30 0", "30 20 1", "a b"} {
		_, _, err := DecodeSize(bad)
		assert.ErrorIs(t, err, ErrMalformedInit, bad)
	}
}

func TestMoves(t *testing.T) {
	moves := core.MoveSet{
		{Location: core.Location{X: 0, Y: 0}, Direction: core.NORTH},
		{Location: core.Location{X: 4, Y: 2}, Direction: core.STILL},
		{Location: core.Location{X: 1, Y: 3}, Direction: core.WEST},
	}

	line := EncodeMoves(moves)
	assert.Equal(t, "0 0 1 4 2 0 1 3 4", line)

	got, err := DecodeMoves(line, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, moves, got)

	empty, err := DecodeMoves("", 5, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.Equal(t, "", EncodeMoves(nil))
}

func TestDecodeMoves_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"partial triple", "0 0 1 4"},
		{"x out of range", "5 0 1"},
		{"negative y", "0 -1 1"},
		{"bad direction", "0 0 5"},
		{"not a number", "0 zero 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeMoves(tt.line, 5, 5)
			assert.ErrorIs(t, err, ErrMalformedMoves)
		})
	}
}
