package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/torvik/delve/internal/geom"
)

// KeyMap holds the play key bindings. Movement is vi-keys plus arrows,
// with diagonals on y/u/b/n.
type KeyMap struct {
	North     key.Binding
	South     key.Binding
	West      key.Binding
	East      key.Binding
	NorthWest key.Binding
	NorthEast key.Binding
	SouthWest key.Binding
	SouthEast key.Binding

	Wait    key.Binding
	Open    key.Binding
	Close   key.Binding
	PickUp  key.Binding
	Drop    key.Binding
	Descend key.Binding
	Ascend  key.Binding
	Save    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		North:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "north")),
		South:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "south")),
		West:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "west")),
		East:      key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "east")),
		NorthWest: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "north-west")),
		NorthEast: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "north-east")),
		SouthWest: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "south-west")),
		SouthEast: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "south-east")),

		Wait:    key.NewBinding(key.WithKeys("."), key.WithHelp(".", "wait")),
		Open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open door")),
		Close:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "close door")),
		PickUp:  key.NewBinding(key.WithKeys("g", ","), key.WithHelp("g", "pick up")),
		Drop:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "drop")),
		Descend: key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "descend")),
		Ascend:  key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "ascend")),
		Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Direction maps a pressed movement key to its step, reporting whether
// the key was a movement key at all.
func (k KeyMap) Direction(msg tea.KeyMsg) (geom.Direction, bool) {
	switch {
	case key.Matches(msg, k.North):
		return geom.North, true
	case key.Matches(msg, k.South):
		return geom.South, true
	case key.Matches(msg, k.West):
		return geom.West, true
	case key.Matches(msg, k.East):
		return geom.East, true
	case key.Matches(msg, k.NorthWest):
		return geom.NorthWest, true
	case key.Matches(msg, k.NorthEast):
		return geom.NorthEast, true
	case key.Matches(msg, k.SouthWest):
		return geom.SouthWest, true
	case key.Matches(msg, k.SouthEast):
		return geom.SouthEast, true
	}
	return geom.Direction{}, false
}
