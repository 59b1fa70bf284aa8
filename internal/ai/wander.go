package ai

import (
	"github.com/torvik/delve/internal/action"
	"github.com/torvik/delve/internal/entity"
	"github.com/torvik/delve/internal/geom"
)

func init() {
	Register(wander{})
}

// wander drifts to a random open neighbor cell each turn, waiting when
// boxed in.
type wander struct{}

func (wander) Name() string { return "wander" }

func (wander) Decide(v View, actor entity.ID) action.Action {
	dirs := openSteps(v, actor)
	if len(dirs) == 0 {
		return action.Wait(actor)
	}
	return action.Move(actor, dirs[v.Rand.Intn(len(dirs))])
}

// openSteps returns the directions the actor could legally step in, in the
// fixed direction order so random selection is reproducible.
func openSteps(v View, actor entity.ID) []geom.Direction {
	pos, ok := v.Store.PositionOf(actor)
	if !ok {
		return nil
	}
	var out []geom.Direction
	for _, d := range geom.Directions {
		dest := pos.Add(d)
		if !v.Map.PassableAt(dest) {
			continue
		}
		if _, occupied := v.Store.BlockingAt(dest); occupied {
			continue
		}
		if d.DX != 0 && d.DY != 0 {
			side1 := geom.P(pos.X+d.DX, pos.Y)
			side2 := geom.P(pos.X, pos.Y+d.DY)
			if !v.Map.PassableAt(side1) && !v.Map.PassableAt(side2) {
				continue
			}
		}
		out = append(out, d)
	}
	return out
}
