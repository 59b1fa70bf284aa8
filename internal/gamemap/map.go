// Package gamemap implements the level grid: a fixed-size, mutable-content
// map of terrain cells. The grid shape never changes for the lifetime of a
// level; descending or ascending replaces the whole map.
package gamemap

import (
	"errors"
	"fmt"

	"github.com/torvik/delve/internal/geom"
)

// ErrOutOfBounds is returned by every coordinate-taking operation when the
// coordinate lies outside the grid. Coordinates are never clamped.
var ErrOutOfBounds = errors.New("gamemap: coordinate out of bounds")

// Map is a rectangular grid of cells stored in row-major order.
type Map struct {
	w, h  int
	cells []Cell
}

// New creates a map of the given dimensions with every cell set to wall.
// Generators carve passable space out of the solid block.
func New(w, h int) *Map {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("gamemap: invalid dimensions %dx%d", w, h))
	}
	m := &Map{
		w:     w,
		h:     h,
		cells: make([]Cell, w*h),
	}
	wall := Wall()
	for i := range m.cells {
		m.cells[i] = wall
	}
	return m
}

// Width returns the grid width in cells.
func (m *Map) Width() int {
	return m.w
}

// Height returns the grid height in cells.
func (m *Map) Height() int {
	return m.h
}

// Bounds returns the rectangle covering the whole grid.
func (m *Map) Bounds() geom.Rect {
	return geom.NewRect(0, 0, m.w, m.h)
}

// InBounds reports whether the coordinate lies inside the grid.
func (m *Map) InBounds(p geom.Point) bool {
	return p.X >= 0 && p.X < m.w && p.Y >= 0 && p.Y < m.h
}

func (m *Map) index(p geom.Point) int {
	return p.Y*m.w + p.X
}

func (m *Map) boundsErr(p geom.Point) error {
	return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, p.X, p.Y, m.w, m.h)
}

// CellAt returns the cell at the given coordinate.
func (m *Map) CellAt(p geom.Point) (Cell, error) {
	if !m.InBounds(p) {
		return Cell{}, m.boundsErr(p)
	}
	return m.cells[m.index(p)], nil
}

// SetCell replaces the cell at the given coordinate. This is the only way
// map state changes; nothing is recomputed implicitly.
func (m *Map) SetCell(p geom.Point, c Cell) error {
	if !m.InBounds(p) {
		return m.boundsErr(p)
	}
	m.cells[m.index(p)] = c
	return nil
}

// IsPassable reports whether the cell at p permits movement.
func (m *Map) IsPassable(p geom.Point) (bool, error) {
	if !m.InBounds(p) {
		return false, m.boundsErr(p)
	}
	return m.cells[m.index(p)].Passable, nil
}

// IsOpaque reports whether the cell at p blocks line of sight.
func (m *Map) IsOpaque(p geom.Point) (bool, error) {
	if !m.InBounds(p) {
		return false, m.boundsErr(p)
	}
	return m.cells[m.index(p)].Opaque, nil
}

// PassableAt is a convenience predicate for pathfinding and generation
// loops that probe neighbors freely: out-of-bounds counts as impassable.
func (m *Map) PassableAt(p geom.Point) bool {
	return m.InBounds(p) && m.cells[m.index(p)].Passable
}

// OpaqueAt is the sight-blocking counterpart of PassableAt: out-of-bounds
// counts as opaque.
func (m *Map) OpaqueAt(p geom.Point) bool {
	return !m.InBounds(p) || m.cells[m.index(p)].Opaque
}

// Find returns every coordinate whose cell matches the given terrain, in
// row-major order.
func (m *Map) Find(t Terrain) []geom.Point {
	var pts []geom.Point
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if m.cells[y*m.w+x].Terrain == t {
				pts = append(pts, geom.P(x, y))
			}
		}
	}
	return pts
}

// Cells returns the raw cell slice in row-major order. Intended for
// persistence snapshots; callers must not retain the slice across mutation.
func (m *Map) Cells() []Cell {
	return m.cells
}

// Restore builds a map from previously snapshotted cells.
func Restore(w, h int, cells []Cell) (*Map, error) {
	if w <= 0 || h <= 0 || len(cells) != w*h {
		return nil, fmt.Errorf("gamemap: cannot restore %dx%d grid from %d cells", w, h, len(cells))
	}
	m := &Map{w: w, h: h, cells: make([]Cell, len(cells))}
	copy(m.cells, cells)
	return m, nil
}

// Equal reports whether two maps have identical dimensions and contents.
func (m *Map) Equal(other *Map) bool {
	if m.w != other.w || m.h != other.h {
		return false
	}
	for i := range m.cells {
		if m.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}
