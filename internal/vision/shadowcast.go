// Package vision computes per-actor fields of view using recursive
// shadowcasting over eight octants. Radius semantics are Euclidean and
// closed: a cell is in range when dx*dx+dy*dy <= radius*radius, so cells
// at exactly the radius are included and anything beyond is not.
package vision

import (
	"sort"

	"github.com/torvik/delve/internal/geom"
)

// Set is a collection of visible cell coordinates.
type Set map[geom.Point]struct{}

// NewSet creates an empty visibility set.
func NewSet() Set {
	return make(Set)
}

// Add inserts a coordinate.
func (s Set) Add(p geom.Point) {
	s[p] = struct{}{}
}

// Contains reports whether the coordinate is visible.
func (s Set) Contains(p geom.Point) bool {
	_, ok := s[p]
	return ok
}

// Len returns the number of visible cells.
func (s Set) Len() int {
	return len(s)
}

// Points returns the visible coordinates in row-major order. Sorting makes
// iteration deterministic for rendering and tests.
func (s Set) Points() []geom.Point {
	pts := make([]geom.Point, 0, len(s))
	for p := range s {
		pts = append(pts, p)
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Y != pts[j].Y {
			return pts[i].Y < pts[j].Y
		}
		return pts[i].X < pts[j].X
	})
	return pts
}

// Octant transforms: row/col deltas are mapped into each of the eight
// octants by these multiplier columns.
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// Cast runs recursive shadowcasting from origin. For every cell with an
// unobstructed line from the origin within radius it calls mark; opaque
// decides which cells block sight beyond themselves (opaque cells are
// themselves marked when reached, so walls are visible). The origin is
// always marked.
func Cast(origin geom.Point, radius int, opaque func(geom.Point) bool, mark func(geom.Point)) {
	mark(origin)
	for _, oct := range octants {
		castOctant(origin, radius, 1, 1.0, 0.0, oct, opaque, mark)
	}
}

func castOctant(origin geom.Point, radius, row int, start, end float64, oct [4]int, opaque func(geom.Point) bool, mark func(geom.Point)) {
	if start < end {
		return
	}
	radiusSq := radius * radius
	newStart := 0.0
	blocked := false
	for dist := row; dist <= radius && !blocked; dist++ {
		dy := -dist
		for dx := -dist; dx <= 0; dx++ {
			cur := geom.Point{
				X: origin.X + dx*oct[0] + dy*oct[1],
				Y: origin.Y + dx*oct[2] + dy*oct[3],
			}
			leftSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rightSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rightSlope {
				continue
			}
			if end > leftSlope {
				break
			}

			if dx*dx+dy*dy <= radiusSq {
				mark(cur)
			}

			if blocked {
				if opaque(cur) {
					newStart = rightSlope
					continue
				}
				blocked = false
				start = newStart
			} else if opaque(cur) && dist < radius {
				blocked = true
				castOctant(origin, radius, dist+1, start, leftSlope, oct, opaque, mark)
				newStart = rightSlope
			}
		}
	}
}
