package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// CellState is what a player is allowed to know about a cell.
type CellState int8

const (
	Unknown      CellState = -2
	Marked       CellState = -1
	RevealedMine CellState = 64 // post-game-over
	ExplodedMine CellState = 65
	WrongMark    CellState = 66
	// 0-8 for an open cell with given number of mined neighbours
)

func (s CellState) String() string {
	switch s {
	case Unknown:
		return " "
	case Marked:
		return "*"
	case 0:
		return "."
	case 1, 2, 3, 4, 5, 6, 7, 8:
		return strconv.Itoa(int(s))
	case RevealedMine:
		return "x"
	case ExplodedMine:
		return "X"
	case WrongMark:
		return "!"
	default:
		return "?"
	}
}

type Grid []CellState

// View renders the board as the player sees it. Once the game is lost, marks
// left on safe cells are shown as [WrongMark].
func (b *Board) View() Grid {
	grid := make(Grid, len(b.cells))
	for i, c := range b.cells {
		switch {
		case c.Status == Unrevealed && c.Marked && b.status == Lost:
			grid[i] = WrongMark
		case c.Status == Unrevealed && c.Marked:
			grid[i] = Marked
		case c.Status == Unrevealed:
			grid[i] = Unknown
		case c.Kind == Mine && i == b.exploded:
			grid[i] = ExplodedMine
		case c.Kind == Mine:
			grid[i] = RevealedMine
		default:
			grid[i] = CellState(c.Kind)
		}
	}
	return grid
}

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			fmt.Fprint(&b, g[y*width+x].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

func (b *Board) String() string {
	return b.View().ToString(b.width)
}
