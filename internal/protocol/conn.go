package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jerold/Halite/internal/game/core"
)

// lineReader reads newline terminated protocol lines. A final line without a newline is
// still returned; an empty read at EOF is io.EOF.
type lineReader struct {
	r *bufio.Reader
}

func (l lineReader) readLine() (string, error) {
	line, err := l.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func writeLine(w io.Writer, line string) error {
	_, err := io.WriteString(w, line+"\n")
	return err
}

// Conn is the bot side of a game: it reads from the host and writes moves back.
type Conn struct {
	in          lineReader
	out         io.Writer
	productions *core.GameMap
}

// NewConn wraps the host's input and output streams, normally os.Stdin and os.Stdout.
func NewConn(r io.Reader, w io.Writer) *Conn {
	return &Conn{in: lineReader{r: bufio.NewReader(r)}, out: w}
}

// GetInit reads the player tag, map size, productions and the first frame.
func (c *Conn) GetInit() (int, *core.GameMap, error) {
	line, err := c.in.readLine()
	if err != nil {
		return 0, nil, fmt.Errorf("reading player tag: %w", err)
	}
	tag, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || tag <= 0 {
		return 0, nil, fmt.Errorf("%w: player tag %q", ErrMalformedInit, line)
	}

	if line, err = c.in.readLine(); err != nil {
		return 0, nil, fmt.Errorf("reading map size: %w", err)
	}
	width, height, err := DecodeSize(line)
	if err != nil {
		return 0, nil, err
	}

	if line, err = c.in.readLine(); err != nil {
		return 0, nil, fmt.Errorf("reading productions: %w", err)
	}
	if c.productions, err = DecodeProductions(line, width, height); err != nil {
		return 0, nil, err
	}

	m, err := c.GetFrame()
	if err != nil {
		return 0, nil, err
	}
	return tag, m, nil
}

// SendInit answers the init with the bot's name.
func (c *Conn) SendInit(name string) error {
	return writeLine(c.out, name)
}

// GetFrame reads the next turn's map. It returns io.EOF when the host has closed the stream.
func (c *Conn) GetFrame() (*core.GameMap, error) {
	if c.productions == nil {
		return nil, fmt.Errorf("%w: frame before init", ErrMalformedFrame)
	}
	line, err := c.in.readLine()
	if err != nil {
		return nil, err
	}
	return DecodeFrame(line, c.productions)
}

// SendFrame writes this turn's moves.
func (c *Conn) SendFrame(moves core.MoveSet) error {
	return writeLine(c.out, EncodeMoves(moves))
}

// HostConn is the host side of the same exchange, used by the arena to drive a bot process.
type HostConn struct {
	in  lineReader
	out io.Writer
}

func NewHostConn(r io.Reader, w io.Writer) *HostConn {
	return &HostConn{in: lineReader{r: bufio.NewReader(r)}, out: w}
}

// SendInit sends the tag, size, productions and first frame in one write.
func (h *HostConn) SendInit(tag int, m *core.GameMap) error {
	var b strings.Builder
	for _, line := range []string{strconv.Itoa(tag), EncodeSize(m), EncodeProductions(m), EncodeFrame(m)} {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(h.out, b.String())
	return err
}

// ReadName reads the bot's reply to init.
func (h *HostConn) ReadName() (string, error) {
	line, err := h.in.readLine()
	if err != nil {
		return "", fmt.Errorf("reading bot name: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (h *HostConn) SendFrame(m *core.GameMap) error {
	return writeLine(h.out, EncodeFrame(m))
}

// ReadMoves reads one moves line from the bot.
func (h *HostConn) ReadMoves(width, height int) (core.MoveSet, error) {
	line, err := h.in.readLine()
	if err != nil {
		return nil, fmt.Errorf("reading moves: %w", err)
	}
	return DecodeMoves(line, width, height)
}
