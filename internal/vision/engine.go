package vision

import (
	"github.com/torvik/delve/internal/entity"
	"github.com/torvik/delve/internal/gamemap"
	"github.com/torvik/delve/internal/geom"
)

// Engine computes and caches per-actor visibility sets. Opacity comes from
// the map plus any entity carrying the Opaque tag. Cached sets are derived
// data only: they are dropped on any visibility-relevant mutation and
// rebuilt from current world state on the next request, never persisted.
type Engine struct {
	m     *gamemap.Map
	store *entity.Store
	cache map[entity.ID]Set
}

// NewEngine creates a visibility engine over the given map and store.
func NewEngine(m *gamemap.Map, store *entity.Store) *Engine {
	return &Engine{
		m:     m,
		store: store,
		cache: make(map[entity.ID]Set),
	}
}

func (e *Engine) opaque(p geom.Point) bool {
	return e.m.OpaqueAt(p) || e.store.OpaqueEntityAt(p)
}

// ComputeVisible returns the set of in-bounds cells visible from origin
// within radius, computed fresh from current map and entity state.
func (e *Engine) ComputeVisible(origin geom.Point, radius int) Set {
	set := NewSet()
	Cast(origin, radius, e.opaque, func(p geom.Point) {
		if e.m.InBounds(p) {
			set.Add(p)
		}
	})
	return set
}

// VisibleFor returns the visibility set for an actor, recomputing it only
// if the cached set was invalidated. Returns an empty set for actors
// without a position.
func (e *Engine) VisibleFor(id entity.ID, radius int) Set {
	if cached, ok := e.cache[id]; ok {
		return cached
	}
	origin, ok := e.store.PositionOf(id)
	if !ok {
		return NewSet()
	}
	set := e.ComputeVisible(origin, radius)
	e.cache[id] = set
	return set
}

// Invalidate drops the cached sets of the given actors.
func (e *Engine) Invalidate(ids ...entity.ID) {
	for _, id := range ids {
		delete(e.cache, id)
	}
}

// InvalidateAll drops every cached set, used after map mutations (a door
// opening, a wall breaking) that can affect any observer.
func (e *Engine) InvalidateAll() {
	e.cache = make(map[entity.ID]Set)
}
