package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/torvik/delve/internal/entity"
	"github.com/torvik/delve/internal/game"
	"github.com/torvik/delve/internal/geom"
	"github.com/torvik/delve/internal/vision"
)

var (
	styleVisible  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	styleExplored = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	stylePlayer   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	styleCreature = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleItem     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleStatus   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	styleMessage  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// RenderMap draws the level: visible cells bright with entities on top,
// explored-but-unseen cells dim terrain only, unexplored cells blank.
// Entity stacking follows layers; the creature on a cell wins over items.
func RenderMap(w *game.World, visible vision.Set, explored map[geom.Point]bool) string {
	var sb strings.Builder
	bounds := w.Map().Bounds()
	sb.Grow(bounds.W*bounds.H*2 + bounds.H)

	for y := 0; y < bounds.H; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < bounds.W; x++ {
			p := geom.P(x, y)
			switch {
			case visible.Contains(p):
				sb.WriteString(renderVisibleCell(w, p))
			case explored[p]:
				c, _ := w.Map().CellAt(p)
				sb.WriteString(styleExplored.Render(string(c.Rune())))
			default:
				sb.WriteRune(' ')
			}
		}
	}
	return sb.String()
}

func renderVisibleCell(w *game.World, p geom.Point) string {
	if g, ok := topGlyph(w, p); ok {
		style := styleVisible
		switch {
		case g.occupant == w.Player():
			style = stylePlayer
		case g.glyph.Layer == entity.LayerCreature:
			style = styleCreature
		case g.glyph.Layer == entity.LayerItem:
			style = styleItem
		}
		return style.Render(string(g.glyph.Rune))
	}
	c, _ := w.Map().CellAt(p)
	return styleVisible.Render(string(c.Rune()))
}

type cellGlyph struct {
	occupant entity.ID
	glyph    entity.Glyph
}

// topGlyph picks the highest-layer glyph on a cell.
func topGlyph(w *game.World, p geom.Point) (cellGlyph, bool) {
	var (
		best  cellGlyph
		found bool
	)
	for _, id := range w.Store().EntitiesAt(p) {
		g, ok := w.Store().Glyph(id)
		if !ok {
			continue
		}
		if !found || g.Layer >= best.glyph.Layer {
			best = cellGlyph{occupant: id, glyph: g}
			found = true
		}
	}
	return best, found
}

// RenderStatus draws the one-line status bar under the map.
func RenderStatus(w *game.World) string {
	hp, _ := w.Store().Health(w.Player())
	return styleStatus.Render(fmt.Sprintf("HP %d/%d  depth %d  time %d", hp.Cur, hp.Max, w.Depth(), w.Clock()))
}

// RenderMessages draws the trailing message log lines.
func RenderMessages(messages []string, max int) string {
	if len(messages) > max {
		messages = messages[len(messages)-max:]
	}
	return styleMessage.Render(strings.Join(messages, "\n"))
}
