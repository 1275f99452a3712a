package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vancomm/minesweeper-engine/internal/command"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type coordinate struct {
	x, y int
}

type model struct {
	game   *mines.Game
	keys   keyMap
	cursor coordinate
	debug  bool
	err    error
}

func newModel(game *mines.Game, debug bool) model {
	return model{
		game:  game,
		keys:  keys,
		debug: debug,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	b := m.game.Board()
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Up):
		m.cursor.y = max(m.cursor.y-1, 0)
	case key.Matches(keyMsg, m.keys.Down):
		m.cursor.y = min(m.cursor.y+1, b.Height()-1)
	case key.Matches(keyMsg, m.keys.Left):
		m.cursor.x = max(m.cursor.x-1, 0)
	case key.Matches(keyMsg, m.keys.Right):
		m.cursor.x = min(m.cursor.x+1, b.Width()-1)
	case key.Matches(keyMsg, m.keys.Reveal):
		m.run(command.Command{Op: command.Reveal, X: m.cursor.x, Y: m.cursor.y})
	case key.Matches(keyMsg, m.keys.Mark):
		m.run(command.Command{Op: command.Mark, X: m.cursor.x, Y: m.cursor.y})
	case key.Matches(keyMsg, m.keys.Reset):
		m.run(command.Command{Op: command.Reset})
	case key.Matches(keyMsg, m.keys.RevealAll):
		m.run(command.Command{Op: command.RevealAll})
	}
	return m, nil
}

func (m *model) run(c command.Command) {
	_, m.err = command.Execute(m.game, []command.Command{c}, command.Options{
		AllowDebug: m.debug,
	})
}

func (m model) View() string {
	b := m.game.Board()
	grid := b.View()

	var board strings.Builder
	for y := range b.Height() {
		for x := range b.Width() {
			s := grid[x+y*b.Width()]
			content := " " + symbol(s) + " "
			if x == m.cursor.x && y == m.cursor.y {
				board.WriteString(cursorStyle.Render(content))
			} else {
				board.WriteString(cellStyle(s).Render(content))
			}
		}
		if y < b.Height()-1 {
			board.WriteString("\n")
		}
	}

	status := b.Status()
	bar := lipgloss.JoinHorizontal(lipgloss.Top,
		label("MINES", status), valueStyle.Render(fmt.Sprintf("%02d", b.MineCount()-b.Marks())),
		"  ",
		label("STATUS", status), valueStyle.Render(strings.ToUpper(status.String())),
	)

	var help []string
	for _, k := range m.keys.help(m.debug) {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	footer := helpStyle.Render(strings.Join(help, " • "))
	if m.err != nil {
		footer = wrongStyle.Render(m.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		boardStyle.Render(board.String()), bar, footer,
	) + "\n"
}

func symbol(s mines.CellState) string {
	switch s {
	case mines.Unknown:
		return "■"
	case mines.Marked:
		return "⚑"
	case 0:
		return "·"
	default:
		return s.String()
	}
}
