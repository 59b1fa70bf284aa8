// Package path provides A* pathfinding over map passability. AI policies
// use it to chase targets; it reads the world and never mutates it.
package path

import (
	"container/heap"

	"github.com/torvik/delve/internal/gamemap"
	"github.com/torvik/delve/internal/geom"
)

type node struct {
	p     geom.Point
	f     int
	g     int
	order int // insertion counter, tie-breaker for determinism
	index int
}

type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].order < h[j].order
}
func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *nodeHeap) Push(x any) {
	n := x.(*node)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// maxExpansions bounds the search so a sealed-off goal cannot make an AI
// turn arbitrarily expensive on large maps.
const maxExpansions = 4096

// Find returns the shortest path from start to goal, excluding start and
// including goal, or nil when no path exists. Movement is eight-way with
// uniform diagonal cost; diagonal steps are disallowed when both adjacent
// orthogonal cells are impassable (no squeezing through corners).
//
// The blocked callback marks cells that are map-passable but currently
// unusable, typically cells held by other blocking entities. The goal cell
// is exempt from it so that paths can end next to (or on) a target.
func Find(m *gamemap.Map, start, goal geom.Point, blocked func(geom.Point) bool) []geom.Point {
	if start == goal {
		return nil
	}
	walkable := func(p geom.Point) bool {
		if !m.PassableAt(p) {
			return false
		}
		if p != goal && blocked != nil && blocked(p) {
			return false
		}
		return true
	}
	if !walkable(goal) {
		return nil
	}

	open := &nodeHeap{}
	heap.Init(open)
	counter := 0
	startNode := &node{p: start, g: 0, f: start.Chebyshev(goal), order: counter}
	heap.Push(open, startNode)

	gScore := map[geom.Point]int{start: 0}
	cameFrom := make(map[geom.Point]geom.Point)
	closed := make(map[geom.Point]struct{})

	expansions := 0
	for open.Len() > 0 {
		current := heap.Pop(open).(*node)
		if current.p == goal {
			return reconstruct(cameFrom, goal)
		}
		if _, done := closed[current.p]; done {
			continue
		}
		closed[current.p] = struct{}{}

		expansions++
		if expansions > maxExpansions {
			return nil
		}

		for _, d := range geom.Directions {
			next := current.p.Add(d)
			if !walkable(next) {
				continue
			}
			if d.DX != 0 && d.DY != 0 {
				// A diagonal step needs at least one open orthogonal side.
				side1 := geom.P(current.p.X+d.DX, current.p.Y)
				side2 := geom.P(current.p.X, current.p.Y+d.DY)
				if !m.PassableAt(side1) && !m.PassableAt(side2) {
					continue
				}
			}
			tentative := current.g + 1
			if best, seen := gScore[next]; seen && tentative >= best {
				continue
			}
			gScore[next] = tentative
			cameFrom[next] = current.p
			counter++
			heap.Push(open, &node{
				p:     next,
				g:     tentative,
				f:     tentative + next.Chebyshev(goal),
				order: counter,
			})
		}
	}
	return nil
}

func reconstruct(cameFrom map[geom.Point]geom.Point, goal geom.Point) []geom.Point {
	var rev []geom.Point
	cur := goal
	for {
		rev = append(rev, cur)
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		cur = prev
	}
	// rev ends at start; drop it and reverse.
	path := make([]geom.Point, 0, len(rev)-1)
	for i := len(rev) - 2; i >= 0; i-- {
		path = append(path, rev[i])
	}
	return path
}
