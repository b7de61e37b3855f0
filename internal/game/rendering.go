package game

import (
	"fmt"
	"strings"

	"github.com/jerold/Halite/internal/game/core"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

const (
	neutralSymbol = '.'
	playerSymbols = "ABCDEFGH"
	renderLegend  = ".=unowned A-H=players, number=strength\n"
)

var playerColors = []string{ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorPurple, ColorCyan, ColorWhite}

func getPlayerColor(owner int) string {
	if owner <= core.NeutralID {
		return ColorGray
	}
	return playerColors[(owner-1)%len(playerColors)]
}

func playerSymbol(owner int) byte {
	if owner <= core.NeutralID {
		return neutralSymbol
	}
	return playerSymbols[(owner-1)%len(playerSymbols)]
}

// Render draws m one row per line. Each cell is the owner's symbol followed by the
// strength padded to three digits; color wraps each cell in the owner's ANSI color.
func Render(m *core.GameMap, color bool) string {
	var sb strings.Builder
	sb.Grow(m.Area()*(5+len(ColorReset)+len(ColorGray)) + len(renderLegend))

	for y := range m.Contents {
		for x, s := range m.Contents[y] {
			if x > 0 {
				sb.WriteByte(' ')
			}
			if color {
				sb.WriteString(getPlayerColor(s.Owner))
			}
			sb.WriteByte(playerSymbol(s.Owner))
			fmt.Fprintf(&sb, "%3d", s.Strength)
			if color {
				sb.WriteString(ColorReset)
			}
		}
		sb.WriteByte('\n')
	}

	sb.WriteString(renderLegend)
	return sb.String()
}

// Board returns a colored rendering of the current map.
func (e *Engine) Board() string {
	return Render(e.gs.Map, true)
}
