package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Left, Right key.Binding
	Reveal, Mark          key.Binding
	Reset, RevealAll      key.Binding
	Quit                  key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/j", "down")),
	Left:      key.NewBinding(key.WithKeys("left", "h", "a"), key.WithHelp("←/h", "left")),
	Right:     key.NewBinding(key.WithKeys("right", "l", "d"), key.WithHelp("→/l", "right")),
	Reveal:    key.NewBinding(key.WithKeys(" ", "enter", "o"), key.WithHelp("space", "reveal")),
	Mark:      key.NewBinding(key.WithKeys("f", "m"), key.WithHelp("f", "mark")),
	Reset:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new board")),
	RevealAll: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "reveal all")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

func (k keyMap) help(debug bool) []key.Binding {
	bindings := []key.Binding{k.Reveal, k.Mark, k.Reset}
	if debug {
		bindings = append(bindings, k.RevealAll)
	}
	return append(bindings, k.Quit)
}
