package protocol

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/jerold/Halite/internal/game/core"
	"github.com/jerold/Halite/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConn_Session(t *testing.T) {
	m := testutil.NewDuelMap(4, 3)

	// Host writes init plus one more frame; the bot reads them back.
	var toBot bytes.Buffer
	host := NewHostConn(strings.NewReader("MyBot\n0 0 2 1 1 0\n"), &toBot)
	require.NoError(t, host.SendInit(2, m))

	next := m.Clone()
	testutil.SetSite(next, 0, 0, 2, 1, 50)
	require.NoError(t, host.SendFrame(next))

	var fromBot bytes.Buffer
	bot := NewConn(&toBot, &fromBot)

	tag, first, err := bot.GetInit()
	require.NoError(t, err)
	assert.Equal(t, 2, tag)
	assert.Equal(t, m, first)

	require.NoError(t, bot.SendInit("MyBot"))
	require.NoError(t, bot.SendFrame(core.MoveSet{{Location: core.Location{X: 2, Y: 1}, Direction: core.EAST}}))

	second, err := bot.GetFrame()
	require.NoError(t, err)
	assert.Equal(t, next, second)

	_, err = bot.GetFrame()
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "MyBot\n2 1 2\n", fromBot.String())

	// The host side reads the canned replies.
	name, err := host.ReadName()
	require.NoError(t, err)
	assert.Equal(t, "MyBot", name)
	moves, err := host.ReadMoves(4, 3)
	require.NoError(t, err)
	assert.Equal(t, core.MoveSet{
		{Location: core.Location{X: 0, Y: 0}, Direction: core.EAST},
		{Location: core.Location{X: 1, Y: 1}, Direction: core.STILL},
	}, moves)
	_, err = host.ReadMoves(4, 3)
	assert.ErrorIs(t, err, io.EOF)
}

func TestConn_GetInitErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty stream", ""},
		{"bad tag", "x\n2 2\n1 1 1 1\n4 0 1 1 1 1\n"},
		{"zero tag", "0\n2 2\n1 1 1 1\n4 0 1 1 1 1\n"},
		{"bad size", "1\n2\n"},
		{"short productions", "1\n2 2\n1 1 1\n"},
		{"missing frame", "1\n2 2\n1 1 1 1\n"},
		{"bad frame", "1\n2 2\n1 1 1 1\n3 0 1 1 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConn(strings.NewReader(tt.input), io.Discard)
			_, _, err := c.GetInit()
			assert.Error(t, err)
		})
	}
}

func TestConn_FrameBeforeInit(t *testing.T) {
	c := NewConn(strings.NewReader("4 0 1 1 1 1\n"), io.Discard)
	_, err := c.GetFrame()
	assert.ErrorIs(t, err, ErrMalformedFrame)
}

func TestConn_LastLineWithoutNewline(t *testing.T) {
	c := NewConn(strings.NewReader("1\r\n1 1\r\n3\r\n1 1 9"), io.Discard)
	tag, m, err := c.GetInit()
	require.NoError(t, err)
	assert.Equal(t, 1, tag)
	assert.Equal(t, core.Site{Owner: 1, Strength: 9, Production: 3}, m.Site(core.Location{}))
}
