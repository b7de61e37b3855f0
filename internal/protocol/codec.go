package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jerold/Halite/internal/game/core"
)

var (
	ErrMalformedFrame = errors.New("malformed frame")
	ErrMalformedMoves = errors.New("malformed moves")
	ErrMalformedInit  = errors.New("malformed init")
)

// tokens walks the space separated integers of one protocol line.
type tokens struct {
	fields []string
	pos    int
}

func newTokens(line string) *tokens {
	return &tokens{fields: strings.Fields(line)}
}

func (t *tokens) remaining() int { return len(t.fields) - t.pos }

func (t *tokens) next() (int, error) {
	if t.pos >= len(t.fields) {
		return 0, fmt.Errorf("token %d: unexpected end of line", t.pos)
	}
	v, err := strconv.Atoi(t.fields[t.pos])
	if err != nil {
		return 0, fmt.Errorf("token %d: %q is not an integer", t.pos, t.fields[t.pos])
	}
	t.pos++
	return v, nil
}

func joinInts(b *strings.Builder, vals ...int) {
	for _, v := range vals {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(v))
	}
}

// EncodeSize renders the "width height" line.
func EncodeSize(m *core.GameMap) string {
	return fmt.Sprintf("%d %d", m.Width, m.Height)
}

// DecodeSize parses a "width height" line.
func DecodeSize(line string) (width, height int, err error) {
	t := newTokens(line)
	if width, err = t.next(); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrMalformedInit, err)
	}
	if height, err = t.next(); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrMalformedInit, err)
	}
	if width <= 0 || height <= 0 || t.remaining() != 0 {
		return 0, 0, fmt.Errorf("%w: bad size line %q", ErrMalformedInit, line)
	}
	return width, height, nil
}

// EncodeProductions renders every production value in row-major order.
func EncodeProductions(m *core.GameMap) string {
	var b strings.Builder
	m.ForEach(func(_ core.Location, s core.Site) {
		joinInts(&b, s.Production)
	})
	return b.String()
}

// DecodeProductions builds an unowned map carrying only production values.
func DecodeProductions(line string, width, height int) (*core.GameMap, error) {
	t := newTokens(line)
	if t.remaining() != width*height {
		return nil, fmt.Errorf("%w: want %d productions, got %d", ErrMalformedInit, width*height, t.remaining())
	}
	m := core.NewGameMap(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p, err := t.next()
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedInit, err)
			}
			if p < 0 {
				return nil, fmt.Errorf("%w: negative production at (%d,%d)", ErrMalformedInit, x, y)
			}
			m.Contents[y][x].Production = p
		}
	}
	return m, nil
}

// EncodeFrame renders owners as run-length "counter owner" pairs followed by one strength
// per tile, both in row-major order.
func EncodeFrame(m *core.GameMap) string {
	var b strings.Builder
	counter, owner := 0, -1
	m.ForEach(func(_ core.Location, s core.Site) {
		if s.Owner == owner {
			counter++
			return
		}
		if counter > 0 {
			joinInts(&b, counter, owner)
		}
		counter, owner = 1, s.Owner
	})
	if counter > 0 {
		joinInts(&b, counter, owner)
	}
	m.ForEach(func(_ core.Location, s core.Site) {
		joinInts(&b, s.Strength)
	})
	return b.String()
}

// DecodeFrame returns a copy of base with owners and strengths taken from line. Productions
// come from base and are never sent again after init.
func DecodeFrame(line string, base *core.GameMap) (*core.GameMap, error) {
	m := base.Clone()
	area := m.Area()
	t := newTokens(line)

	for idx := 0; idx < area; {
		counter, err := t.next()
		if err != nil {
			return nil, fmt.Errorf("%w: owners: %v", ErrMalformedFrame, err)
		}
		owner, err := t.next()
		if err != nil {
			return nil, fmt.Errorf("%w: owners: %v", ErrMalformedFrame, err)
		}
		if counter <= 0 || idx+counter > area || owner < 0 {
			return nil, fmt.Errorf("%w: run %d x owner %d at tile %d", ErrMalformedFrame, counter, owner, idx)
		}
		for end := idx + counter; idx < end; idx++ {
			x, y := m.XY(idx)
			m.Contents[y][x].Owner = owner
		}
	}

	if t.remaining() != area {
		return nil, fmt.Errorf("%w: want %d strengths, got %d", ErrMalformedFrame, area, t.remaining())
	}
	for idx := 0; idx < area; idx++ {
		s, err := t.next()
		if err != nil {
			return nil, fmt.Errorf("%w: strengths: %v", ErrMalformedFrame, err)
		}
		if s < 0 || s > core.MaxStrength {
			return nil, fmt.Errorf("%w: strength %d at tile %d", ErrMalformedFrame, s, idx)
		}
		x, y := m.XY(idx)
		m.Contents[y][x].Strength = s
	}
	return m, nil
}

// EncodeMoves renders moves as "x y d" triples on one line.
func EncodeMoves(moves core.MoveSet) string {
	var b strings.Builder
	for _, mv := range moves {
		joinInts(&b, mv.Location.X, mv.Location.Y, int(mv.Direction))
	}
	return b.String()
}

// DecodeMoves parses a moves line. Coordinates must be inside the map and directions must
// be wire values; ownership is checked later by the host.
func DecodeMoves(line string, width, height int) (core.MoveSet, error) {
	t := newTokens(line)
	if t.remaining()%3 != 0 {
		return nil, fmt.Errorf("%w: %d tokens is not a list of triples", ErrMalformedMoves, t.remaining())
	}
	moves := make(core.MoveSet, 0, t.remaining()/3)
	for t.remaining() > 0 {
		var vals [3]int
		for i := range vals {
			v, err := t.next()
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedMoves, err)
			}
			vals[i] = v
		}
		mv := core.Move{Location: core.Location{X: vals[0], Y: vals[1]}, Direction: core.Direction(vals[2])}
		if vals[0] < 0 || vals[0] >= width || vals[1] < 0 || vals[1] >= height {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedMoves, mv.Location, core.ErrOutOfBounds)
		}
		if !mv.Direction.IsValid() {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedMoves, mv.Location, core.ErrInvalidDirection)
		}
		moves = append(moves, mv)
	}
	return moves, nil
}
