// Package game orchestrates one run: it owns the current level's map,
// store, scheduler, visibility engine and resolver, steps non-player
// actors until the player is due, and executes level transitions. It is
// the public boundary a front end talks to: submit actions, read
// outcomes and the player's visibility set.
package game

import (
	"errors"
	"math/rand"

	"github.com/torvik/delve/internal/action"
	"github.com/torvik/delve/internal/ai"
	"github.com/torvik/delve/internal/dungeon"
	"github.com/torvik/delve/internal/entity"
	"github.com/torvik/delve/internal/gamemap"
	"github.com/torvik/delve/internal/geom"
	"github.com/torvik/delve/internal/turn"
	"github.com/torvik/delve/internal/vision"
)

// ErrSurface is returned when the player tries to ascend from depth one.
var ErrSurface = errors.New("game: already on the first level")

// Options configures a new run. Dungeon is the per-level template; its
// Depth and Terminal fields are overwritten per level.
type Options struct {
	Dungeon      dungeon.Params
	VisionRadius int
	MaxDepth     int // levels at MaxDepth are terminal; 0 means unbounded
	PlayerHealth int
	PlayerPower  int
}

// DefaultOptions returns the standard run configuration.
func DefaultOptions() Options {
	return Options{
		Dungeon:      dungeon.DefaultParams(),
		VisionRadius: 8,
		MaxDepth:     10,
		PlayerHealth: 20,
		PlayerPower:  3,
	}
}

// World is one running game. All methods are single-threaded; exactly one
// action is in flight at any instant.
type World struct {
	opts  Options
	seed  int64
	depth int

	m      *gamemap.Map
	store  *entity.Store
	sched  *turn.Scheduler
	vis    *vision.Engine
	res    *action.Resolver
	rng    *rand.Rand
	player entity.ID
}

// NewWorld generates depth one and places a fresh player on its up stairs.
func NewWorld(seed int64, opts Options) (*World, error) {
	w := &World{opts: opts, seed: seed, depth: 1, rng: rand.New(rand.NewSource(seed))}

	res, err := dungeon.Generate(levelSeed(seed, 1), w.levelParams(1))
	if err != nil {
		return nil, err
	}
	w.adoptLevel(res)
	w.player = w.spawnPlayer(res.UpStairs)
	w.scheduleAll()
	return w, nil
}

// Restore rebuilds a world from saved state. The caller supplies the fully
// reconstructed level; the derived machinery (vision, resolver) is rebuilt
// here and never persisted.
func Restore(seed int64, opts Options, depth int, m *gamemap.Map, store *entity.Store, sched *turn.Scheduler, player entity.ID) *World {
	w := &World{
		opts: opts, seed: seed, depth: depth,
		m: m, store: store, sched: sched,
		rng:    rand.New(rand.NewSource(levelSeed(seed, depth) ^ int64(sched.Now()))),
		player: player,
	}
	w.vis = vision.NewEngine(m, store)
	w.res = action.NewResolver(m, store, sched)
	store.OnDestroy(sched.Remove)
	store.OnDestroy(func(id entity.ID) { w.vis.Invalidate(id) })
	return w
}

func (w *World) levelParams(depth int) dungeon.Params {
	p := w.opts.Dungeon
	p.Depth = depth
	p.Terminal = w.opts.MaxDepth > 0 && depth >= w.opts.MaxDepth
	return p
}

// adoptLevel swaps in a freshly generated level and rebuilds the derived
// machinery around it.
func (w *World) adoptLevel(res *dungeon.Result) {
	w.m = res.Map
	w.store = res.Store
	w.sched = turn.NewScheduler()
	w.vis = vision.NewEngine(w.m, w.store)
	w.res = action.NewResolver(w.m, w.store, w.sched)
	w.store.OnDestroy(w.sched.Remove)
	w.store.OnDestroy(func(id entity.ID) { w.vis.Invalidate(id) })
}

func (w *World) spawnPlayer(at geom.Point) entity.ID {
	id := w.store.Create()
	w.store.SetGlyph(id, entity.Glyph{Rune: '@', Layer: entity.LayerCreature})
	w.store.SetHealth(id, entity.Health{Max: w.opts.PlayerHealth, Cur: w.opts.PlayerHealth})
	w.store.SetCombat(id, entity.Combat{Strength: w.opts.PlayerPower})
	w.store.SetSpeed(id, entity.Speed{Delay: 10})
	w.store.SetFaction(id, entity.FactionPlayer)
	w.store.SetInventory(id, entity.Inventory{})
	w.store.MarkBlocking(id)
	w.store.MarkPersistent(id)
	w.store.Place(id, at)
	return id
}

// scheduleAll enters every actor into the schedule, player first so it
// leads the opening round of ties.
func (w *World) scheduleAll() {
	w.sched.Add(w.player)
	for _, id := range w.store.Actors() {
		if id != w.player {
			w.sched.Add(id)
		}
	}
}

// Advance steps non-player actors until the player's turn comes up,
// returning the outcomes of everything that happened in between. When it
// returns, either the player is acting and input is expected, or the
// player is dead, or no actors remain.
func (w *World) Advance() []action.Outcome {
	var outcomes []action.Outcome
	for {
		if acting, ok := w.sched.Acting(); ok && acting == w.player {
			return outcomes
		}
		actor, ok := w.sched.Next()
		if !ok {
			return outcomes
		}
		if actor == w.player {
			return outcomes
		}
		if out := w.aiTurn(actor); out != nil {
			outcomes = append(outcomes, *out)
		}
		if !w.store.Alive(w.player) {
			return outcomes
		}
	}
}

// aiTurn runs one non-player actor's policy and resolves its action,
// falling back to a wait when the policy's choice is rejected.
func (w *World) aiTurn(actor entity.ID) *action.Outcome {
	view := ai.View{
		Map:    w.m,
		Store:  w.store,
		Vision: w.vis,
		Rand:   w.rng,
		Radius: w.opts.VisionRadius,
	}

	chosen := action.Wait(actor)
	if brain, ok := w.store.Brain(actor); ok {
		if policy, err := ai.Lookup(brain.Policy); err == nil {
			chosen = policy.Decide(view, actor)
		}
	}

	out, err := w.res.Resolve(chosen)
	if err != nil {
		out, err = w.res.Resolve(action.Wait(actor))
		if err != nil {
			// Cannot even wait; drop the actor from the schedule rather
			// than spin forever.
			w.sched.Remove(actor)
			return nil
		}
	}
	w.applyOutcome(out)
	return out
}

// SubmitPlayerAction resolves a player intent. On rejection the turn is
// not consumed and the caller may resubmit. A stairs outcome executes the
// level transition before returning.
func (w *World) SubmitPlayerAction(a action.Action) (*action.Outcome, error) {
	a.Actor = w.player
	out, err := w.res.Resolve(a)
	if err != nil {
		return nil, err
	}
	w.applyOutcome(out)
	if out.Transition != 0 {
		if err := w.ChangeLevel(out.Transition); err != nil {
			return out, err
		}
	}
	return out, nil
}

func (w *World) applyOutcome(out *action.Outcome) {
	if out.InvalidateAll {
		w.vis.InvalidateAll()
		return
	}
	if len(out.Invalidate) > 0 {
		w.vis.Invalidate(out.Invalidate...)
	}
}

// ChangeLevel generates the destination level deterministically from the
// run seed and migrates the persistent entities (the player and its
// inventory) across. Descending lands on the new level's up stairs,
// ascending on its down stairs.
func (w *World) ChangeLevel(delta int) error {
	dest := w.depth + delta
	if dest < 1 {
		return ErrSurface
	}

	res, err := dungeon.Generate(levelSeed(w.seed, dest), w.levelParams(dest))
	if err != nil {
		return err
	}

	arrival := res.UpStairs
	if delta < 0 {
		if !res.HasDown {
			return dungeon.ErrGenerationFailed
		}
		arrival = res.DownStairs
	}

	old := w.store
	oldPlayer := w.player
	w.depth = dest
	w.adoptLevel(res)
	w.player = migrate(old, w.store, oldPlayer, arrival)
	w.scheduleAll()
	return nil
}

// --- Accessors for front ends and persistence ---

func (w *World) Map() *gamemap.Map          { return w.m }
func (w *World) Store() *entity.Store       { return w.store }
func (w *World) Scheduler() *turn.Scheduler { return w.sched }
func (w *World) Player() entity.ID          { return w.player }
func (w *World) Depth() int                 { return w.depth }
func (w *World) Seed() int64                { return w.seed }
func (w *World) Clock() uint64              { return w.sched.Now() }

// PlayerAlive reports whether the run is still going.
func (w *World) PlayerAlive() bool {
	return w.store.Alive(w.player)
}

// PlayerVisible returns the player's current visibility set.
func (w *World) PlayerVisible() vision.Set {
	return w.vis.VisibleFor(w.player, w.opts.VisionRadius)
}

// Options returns the run configuration.
func (w *World) Options() Options {
	return w.opts
}
