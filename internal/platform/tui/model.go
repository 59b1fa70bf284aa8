// Package tui provides the Bubble Tea front end. It is a thin client of
// the game boundary: it submits actions for the player, reads outcomes
// and the player's visibility set, and renders. No simulation rules live
// here.
package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/torvik/delve/internal/action"
	"github.com/torvik/delve/internal/game"
	"github.com/torvik/delve/internal/gamemap"
	"github.com/torvik/delve/internal/geom"
	"github.com/torvik/delve/internal/save"
)

// Model is the Bubble Tea model for one run.
type Model struct {
	world    *game.World
	store    *save.Store // nil disables saving
	slot     string
	keys     KeyMap
	explored map[geom.Point]bool
	messages []string
	quitting bool
	dead     bool
}

// NewModel creates a model over a running world. store may be nil.
func NewModel(world *game.World, store *save.Store, slot string) Model {
	m := Model{
		world:    world,
		store:    store,
		slot:     slot,
		keys:     DefaultKeyMap(),
		explored: make(map[geom.Point]bool),
	}
	world.Advance()
	m.remember()
	return m
}

// remember folds the current visibility set into the explored map.
func (m *Model) remember() {
	for _, p := range m.world.PlayerVisible().Points() {
		m.explored[p] = true
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and drives the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Save):
		m.save()
		return m, nil
	}

	if m.dead {
		return m, nil
	}

	a, ok := m.intent(keyMsg)
	if !ok {
		return m, nil
	}
	return m.submit(a)
}

// intent maps a key press to a player action.
func (m Model) intent(msg tea.KeyMsg) (action.Action, bool) {
	player := m.world.Player()

	if dir, ok := m.keys.Direction(msg); ok {
		return action.Move(player, dir), true
	}
	switch {
	case key.Matches(msg, m.keys.Wait):
		return action.Wait(player), true
	case key.Matches(msg, m.keys.Open):
		if dir, ok := m.adjacentDoor(gamemap.TerrainDoorClosed); ok {
			return action.OpenDoor(player, dir), true
		}
		return action.Action{}, false
	case key.Matches(msg, m.keys.Close):
		if dir, ok := m.adjacentDoor(gamemap.TerrainDoorOpen); ok {
			return action.CloseDoor(player, dir), true
		}
		return action.Action{}, false
	case key.Matches(msg, m.keys.PickUp):
		return action.PickUp(player), true
	case key.Matches(msg, m.keys.Drop):
		if inv, ok := m.world.Store().Inventory(player); ok && len(inv.Items) > 0 {
			return action.Drop(player, inv.Items[len(inv.Items)-1]), true
		}
		return action.Action{}, false
	case key.Matches(msg, m.keys.Descend):
		return action.Descend(player), true
	case key.Matches(msg, m.keys.Ascend):
		return action.Ascend(player), true
	}
	return action.Action{}, false
}

// adjacentDoor finds the sole neighbor cell holding a door in the wanted
// state, so the open and close keys need no direction prompt.
func (m Model) adjacentDoor(want gamemap.Terrain) (geom.Direction, bool) {
	pos, ok := m.world.Store().PositionOf(m.world.Player())
	if !ok {
		return geom.Direction{}, false
	}
	for _, d := range geom.Directions {
		if c, err := m.world.Map().CellAt(pos.Add(d)); err == nil && c.Terrain == want {
			return d, true
		}
	}
	return geom.Direction{}, false
}

// submit resolves the player action, then runs the world until the
// player is due again.
func (m Model) submit(a action.Action) (tea.Model, tea.Cmd) {
	out, err := m.world.SubmitPlayerAction(a)
	if err != nil {
		var rej *action.Rejection
		if errors.As(err, &rej) {
			m.push(rej.Reason.String())
			return m, nil
		}
		if errors.Is(err, game.ErrSurface) {
			m.push("the way out is blocked")
			return m, nil
		}
		m.push(err.Error())
		return m, nil
	}
	m.push(describe(out))

	for _, aiOut := range m.world.Advance() {
		if aiOut.Kind == action.KindAttack && aiOut.Target == m.world.Player() {
			m.push(fmt.Sprintf("you are hit for %d", aiOut.Damage))
		}
	}
	m.remember()

	if !m.world.PlayerAlive() {
		m.dead = true
		m.push("you die... press q to quit")
	}
	return m, nil
}

func (m *Model) push(msg string) {
	if msg == "" {
		return
	}
	m.messages = append(m.messages, msg)
	if len(m.messages) > 100 {
		m.messages = m.messages[len(m.messages)-100:]
	}
}

// describe turns a player outcome into a log line.
func describe(out *action.Outcome) string {
	switch out.Kind {
	case action.KindAttack:
		if out.Killed {
			return fmt.Sprintf("you strike for %d; it dies", out.Damage)
		}
		return fmt.Sprintf("you strike for %d", out.Damage)
	case action.KindOpenDoor:
		return "the door opens"
	case action.KindCloseDoor:
		return "the door closes"
	case action.KindPickUp:
		return "you pick it up"
	case action.KindDrop:
		return "you drop it"
	case action.KindDescend:
		return "you descend the stairs"
	case action.KindAscend:
		return "you climb the stairs"
	}
	return ""
}

func (m *Model) save() {
	if m.store == nil {
		m.push("saving is disabled")
		return
	}
	if err := m.store.Save(m.slot, m.world); err != nil {
		m.push("save failed: " + err.Error())
		return
	}
	m.push("saved to slot " + m.slot)
}

// View renders the map, status bar and message log.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return RenderMap(m.world, m.world.PlayerVisible(), m.explored) + "\n" +
		RenderStatus(m.world) + "\n" +
		RenderMessages(m.messages, 3)
}

// Run starts the Bubble Tea program over a world.
func Run(world *game.World, store *save.Store, slot string) error {
	p := tea.NewProgram(NewModel(world, store, slot), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
