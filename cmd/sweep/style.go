package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var (
	hiddenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	openStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	markStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	wrongStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	mineStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true)
	explodedStyle = lipgloss.NewStyle().Background(lipgloss.Color("160")).Foreground(lipgloss.Color("15")).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255"))
	boardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Bold(true).Padding(0, 1)
	valueStyle = lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("255")).Padding(0, 1)

	// pointer colours, indexed by count-1
	numStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("21")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("124")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("37")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}

	statusColors = map[mines.GameStatus]lipgloss.Color{
		mines.Playing: "62",
		mines.Won:     "34",
		mines.Lost:    "160",
	}
)

func cellStyle(s mines.CellState) lipgloss.Style {
	switch {
	case s == mines.Unknown:
		return hiddenStyle
	case s == mines.Marked:
		return markStyle
	case s == mines.WrongMark:
		return wrongStyle
	case s == mines.RevealedMine:
		return mineStyle
	case s == mines.ExplodedMine:
		return explodedStyle
	case s >= 1 && s <= 8:
		return numStyles[s-1]
	default:
		return openStyle
	}
}

func label(text string, status mines.GameStatus) string {
	return labelStyle.Background(statusColors[status]).Render(text)
}
