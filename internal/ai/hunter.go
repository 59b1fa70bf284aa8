package ai

import (
	"github.com/torvik/delve/internal/action"
	"github.com/torvik/delve/internal/entity"
	"github.com/torvik/delve/internal/geom"
	"github.com/torvik/delve/internal/path"
)

func init() {
	Register(hunter{})
}

// hunter chases the nearest visible hostile actor, striking when adjacent
// and pathfinding toward it otherwise. With no target in sight it wanders.
type hunter struct{}

func (hunter) Name() string { return "hunter" }

func (h hunter) Decide(v View, actor entity.ID) action.Action {
	target, ok := h.nearestHostile(v, actor)
	if !ok {
		return wander{}.Decide(v, actor)
	}

	pos, _ := v.Store.PositionOf(actor)
	targetPos, _ := v.Store.PositionOf(target)

	if pos.Chebyshev(targetPos) == 1 {
		return action.Attack(actor, geom.Toward(pos, targetPos))
	}

	steps := path.Find(v.Map, pos, targetPos, func(p geom.Point) bool {
		_, occupied := v.Store.BlockingAt(p)
		return occupied
	})
	if len(steps) == 0 {
		return wander{}.Decide(v, actor)
	}
	return action.Move(actor, geom.Toward(pos, steps[0]))
}

// nearestHostile scans the actor's visible cells for hostile actors with
// health, preferring the closest and breaking ties by lowest identity.
func (hunter) nearestHostile(v View, actor entity.ID) (entity.ID, bool) {
	pos, ok := v.Store.PositionOf(actor)
	if !ok {
		return entity.None, false
	}
	myFaction, ok := v.Store.Faction(actor)
	if !ok {
		return entity.None, false
	}

	visible := v.Vision.VisibleFor(actor, v.Radius)

	best := entity.None
	bestDist := 0
	for _, p := range visible.Points() {
		other, occupied := v.Store.BlockingAt(p)
		if !occupied || other == actor {
			continue
		}
		f, hasFaction := v.Store.Faction(other)
		if !hasFaction || f == myFaction {
			continue
		}
		if _, hasHealth := v.Store.Health(other); !hasHealth {
			continue
		}
		d := pos.Chebyshev(p)
		if best == entity.None || d < bestDist || (d == bestDist && other < best) {
			best = other
			bestDist = d
		}
	}
	return best, best != entity.None
}
