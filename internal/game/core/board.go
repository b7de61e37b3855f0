package core

// Site is the state of a single tile for one turn.
// Owner: 0 means unowned; 1..N are player tags.
// Strength: combat/move potential, 0..MaxStrength.
// Production: strength gained per turn while the tile's piece stays still.
type Site struct {
	Owner      int
	Strength   int
	Production int
}

const (
	NeutralID   = 0
	MaxStrength = 255
)

func (s Site) IsNeutral() bool          { return s.Owner == NeutralID }
func (s Site) IsOwnedBy(player int) bool { return s.Owner == player }

// IsEnemyOf reports whether the site belongs to a player other than the given one.
// Unowned tiles are never enemies.
func (s Site) IsEnemyOf(player int) bool {
	return s.Owner != NeutralID && s.Owner != player
}

// GameMap is a toroidal grid of sites. Contents is indexed [y][x].
type GameMap struct {
	Width, Height int
	Contents      [][]Site
}

// NewGameMap allocates an unowned map with every site at zero.
func NewGameMap(width, height int) *GameMap {
	m := &GameMap{Width: width, Height: height, Contents: make([][]Site, height)}
	for y := range m.Contents {
		m.Contents[y] = make([]Site, width)
	}
	return m
}

// XY splits a row-major index into coordinates.
func (m *GameMap) XY(idx int) (int, int) { return idx % m.Width, idx / m.Width }
func (m *GameMap) Area() int             { return m.Width * m.Height }

// InBounds checks if coordinates are within map boundaries, before wrapping.
func (m *GameMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Wrap folds any coordinate pair back onto the torus.
func (m *GameMap) Wrap(x, y int) Location {
	x %= m.Width
	if x < 0 {
		x += m.Width
	}
	y %= m.Height
	if y < 0 {
		y += m.Height
	}
	return Location{X: x, Y: y}
}

// GetLocation returns the location one step from loc in direction d, wrapping at the edges.
// STILL returns loc unchanged.
func (m *GameMap) GetLocation(loc Location, d Direction) Location {
	next := loc.Add(d.Offset())
	return m.Wrap(next.X, next.Y)
}

// GetSite returns the site one step from loc in direction d.
func (m *GameMap) GetSite(loc Location, d Direction) Site {
	l := m.GetLocation(loc, d)
	return m.Contents[l.Y][l.X]
}

// Site returns the site at loc itself.
func (m *GameMap) Site(loc Location) Site {
	return m.GetSite(loc, STILL)
}

// SetSite overwrites the site at loc. Only hosts call this; agents treat the map as read-only.
func (m *GameMap) SetSite(loc Location, s Site) {
	l := m.Wrap(loc.X, loc.Y)
	m.Contents[l.Y][l.X] = s
}

// Distance is the wrapped Manhattan distance between two locations.
func (m *GameMap) Distance(a, b Location) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > m.Width/2 {
		dx = m.Width - dx
	}
	if dy > m.Height/2 {
		dy = m.Height - dy
	}
	return dx + dy
}

// Clone returns a deep copy so a host can mutate state without touching a published snapshot.
func (m *GameMap) Clone() *GameMap {
	c := &GameMap{Width: m.Width, Height: m.Height, Contents: make([][]Site, m.Height)}
	for y := range m.Contents {
		c.Contents[y] = append([]Site(nil), m.Contents[y]...)
	}
	return c
}

// Validate reports malformed dimensions or contents.
func (m *GameMap) Validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return ErrInvalidDimensions
	}
	if len(m.Contents) != m.Height {
		return ErrInvalidDimensions
	}
	for _, row := range m.Contents {
		if len(row) != m.Width {
			return ErrInvalidDimensions
		}
		for _, s := range row {
			if s.Owner < 0 || s.Strength < 0 || s.Production < 0 {
				return ErrInvalidSite
			}
		}
	}
	return nil
}

// ForEach visits every location in row-major order.
func (m *GameMap) ForEach(fn func(loc Location, s Site)) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			fn(Location{X: x, Y: y}, m.Contents[y][x])
		}
	}
}

// CountOwned returns the number of tiles the player holds.
func (m *GameMap) CountOwned(player int) int {
	n := 0
	m.ForEach(func(_ Location, s Site) {
		if s.IsOwnedBy(player) {
			n++
		}
	})
	return n
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
