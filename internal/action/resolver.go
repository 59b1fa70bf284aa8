package action

import (
	"github.com/torvik/delve/internal/entity"
	"github.com/torvik/delve/internal/gamemap"
	"github.com/torvik/delve/internal/geom"
	"github.com/torvik/delve/internal/turn"
)

// BaseCost is the time a standard action takes for an actor with the
// standard Speed delay of 10. The actual cost scales with the actor's
// delay: cost = BaseCost * delay / 10.
const BaseCost = 10

// Resolver applies actions against the world. It is the only mutator of
// Map and Store during a turn; validation runs against a frozen snapshot
// and mutation is all-or-nothing.
type Resolver struct {
	m     *gamemap.Map
	store *entity.Store
	sched *turn.Scheduler
}

// NewResolver binds a resolver to one level's map, store and scheduler.
func NewResolver(m *gamemap.Map, store *entity.Store, sched *turn.Scheduler) *Resolver {
	return &Resolver{m: m, store: store, sched: sched}
}

// Resolve validates the action in order (actor alive and acting, target in
// range, kind-specific legality) and applies it. On success the actor is
// rescheduled by the action's cost and the Outcome describes the delta.
// On failure the returned error is a *Rejection, the world is unchanged
// and the turn is not consumed.
func (r *Resolver) Resolve(a Action) (*Outcome, error) {
	if !r.store.Alive(a.Actor) {
		return nil, reject(a.Kind, ReasonDead)
	}
	if acting, ok := r.sched.Acting(); !ok || acting != a.Actor {
		return nil, reject(a.Kind, ReasonNotActing)
	}

	var (
		out *Outcome
		err error
	)
	switch a.Kind {
	case KindWait:
		out = &Outcome{Kind: KindWait, Actor: a.Actor}
	case KindMove:
		out, err = r.move(a)
	case KindAttack:
		out, err = r.attack(a)
	case KindOpenDoor:
		out, err = r.openDoor(a)
	case KindCloseDoor:
		out, err = r.closeDoor(a)
	case KindPickUp:
		out, err = r.pickUp(a)
	case KindDrop:
		out, err = r.drop(a)
	case KindDescend:
		out, err = r.stairs(a, gamemap.TerrainStairsDown, 1)
	case KindAscend:
		out, err = r.stairs(a, gamemap.TerrainStairsUp, -1)
	default:
		err = reject(a.Kind, ReasonMalformed)
	}
	if err != nil {
		return nil, err
	}

	out.Cost = r.cost(a.Actor)
	if err := r.sched.Reschedule(a.Actor, out.Cost); err != nil {
		return nil, err
	}
	return out, nil
}

// cost scales the base action cost by the actor's speed delay. Actors
// without a Speed component move at the standard rate.
func (r *Resolver) cost(id entity.ID) uint64 {
	delay := 10
	if sp, ok := r.store.Speed(id); ok {
		delay = sp.Delay
	}
	c := BaseCost * delay / 10
	if c < 1 {
		c = 1
	}
	return uint64(c)
}

// adjacent resolves a directional action's target cell, rejecting
// directions that are not a single step.
func (r *Resolver) adjacent(a Action) (geom.Point, error) {
	d := a.Dir
	if d.DX < -1 || d.DX > 1 || d.DY < -1 || d.DY > 1 || (d.DX == 0 && d.DY == 0) {
		return geom.Point{}, reject(a.Kind, ReasonOutOfRange)
	}
	pos, ok := r.store.PositionOf(a.Actor)
	if !ok {
		return geom.Point{}, reject(a.Kind, ReasonMalformed)
	}
	return pos.Add(d), nil
}

func (r *Resolver) move(a Action) (*Outcome, error) {
	dest, err := r.adjacent(a)
	if err != nil {
		return nil, err
	}
	from, _ := r.store.PositionOf(a.Actor)

	// A hostile blocker on the destination turns the step into a melee
	// strike; the bump is the attack.
	if other, ok := r.store.BlockingAt(dest); ok {
		if r.hostile(a.Actor, other) {
			return r.strike(a, other)
		}
		return nil, reject(a.Kind, ReasonOccupied)
	}

	if !r.m.PassableAt(dest) {
		return nil, reject(a.Kind, ReasonBlocked)
	}
	if a.Dir.DX != 0 && a.Dir.DY != 0 {
		// Same corner rule as pathfinding: a diagonal step needs an open
		// orthogonal side.
		side1 := geom.P(from.X+a.Dir.DX, from.Y)
		side2 := geom.P(from.X, from.Y+a.Dir.DY)
		if !r.m.PassableAt(side1) && !r.m.PassableAt(side2) {
			return nil, reject(a.Kind, ReasonBlocked)
		}
	}

	if err := r.store.Place(a.Actor, dest); err != nil {
		return nil, reject(a.Kind, ReasonOccupied)
	}
	return &Outcome{
		Kind:       KindMove,
		Actor:      a.Actor,
		From:       from,
		To:         dest,
		Invalidate: []entity.ID{a.Actor},
	}, nil
}

func (r *Resolver) attack(a Action) (*Outcome, error) {
	dest, err := r.adjacent(a)
	if err != nil {
		return nil, err
	}
	target, ok := r.store.BlockingAt(dest)
	if !ok {
		return nil, reject(a.Kind, ReasonNoTarget)
	}
	return r.strike(a, target)
}

// strike applies melee damage and, on lethal damage, destroys the defender
// within this same call: inventory drops on the death cell, the store entry
// and the schedule entry both go, and the defender never acts again.
func (r *Resolver) strike(a Action, target entity.ID) (*Outcome, error) {
	hp, ok := r.store.Health(target)
	if !ok {
		return nil, reject(a.Kind, ReasonNoTarget)
	}

	strength := 0
	if c, ok := r.store.Combat(a.Actor); ok {
		strength = c.Strength
	}
	defense := 0
	if c, ok := r.store.Combat(target); ok {
		defense = c.Defense
	}
	damage := strength - defense
	if damage < 1 {
		damage = 1
	}

	hp.Cur -= damage
	r.store.SetHealth(target, hp)

	out := &Outcome{
		Kind:   KindAttack,
		Actor:  a.Actor,
		Target: target,
		Damage: damage,
	}
	if hp.Cur <= 0 {
		out.Killed = true
		out.InvalidateAll = r.store.IsOpaque(target)
		r.dropAll(target)
		r.store.Destroy(target)
		r.sched.Remove(target)
	}
	return out, nil
}

// dropAll spills the defender's inventory onto its death cell.
func (r *Resolver) dropAll(id entity.ID) {
	inv, ok := r.store.Inventory(id)
	if !ok || len(inv.Items) == 0 {
		return
	}
	pos, ok := r.store.PositionOf(id)
	if !ok {
		return
	}
	for _, item := range inv.Items {
		r.store.Place(item, pos)
	}
	r.store.SetInventory(id, entity.Inventory{})
}

// hostile reports whether the two entities belong to differing factions.
func (r *Resolver) hostile(a, b entity.ID) bool {
	fa, okA := r.store.Faction(a)
	fb, okB := r.store.Faction(b)
	return okA && okB && fa != fb
}

func (r *Resolver) openDoor(a Action) (*Outcome, error) {
	dest, err := r.adjacent(a)
	if err != nil {
		return nil, err
	}
	c, cerr := r.m.CellAt(dest)
	if cerr != nil || c.Terrain != gamemap.TerrainDoorClosed {
		return nil, reject(a.Kind, ReasonNoDoor)
	}
	r.m.SetCell(dest, gamemap.OpenDoor())
	return &Outcome{
		Kind:          KindOpenDoor,
		Actor:         a.Actor,
		Door:          dest,
		InvalidateAll: true,
	}, nil
}

func (r *Resolver) closeDoor(a Action) (*Outcome, error) {
	dest, err := r.adjacent(a)
	if err != nil {
		return nil, err
	}
	c, cerr := r.m.CellAt(dest)
	if cerr != nil || c.Terrain != gamemap.TerrainDoorOpen {
		return nil, reject(a.Kind, ReasonNoDoor)
	}
	if len(r.store.EntitiesAt(dest)) > 0 {
		return nil, reject(a.Kind, ReasonDoorBlocked)
	}
	r.m.SetCell(dest, gamemap.ClosedDoor())
	return &Outcome{
		Kind:          KindCloseDoor,
		Actor:         a.Actor,
		Door:          dest,
		InvalidateAll: true,
	}, nil
}

func (r *Resolver) pickUp(a Action) (*Outcome, error) {
	pos, ok := r.store.PositionOf(a.Actor)
	if !ok {
		return nil, reject(a.Kind, ReasonMalformed)
	}
	items := r.store.ItemsAt(pos)
	if len(items) == 0 {
		return nil, reject(a.Kind, ReasonNothingHere)
	}
	item := items[len(items)-1] // topmost

	r.store.RemovePosition(item)
	inv, _ := r.store.Inventory(a.Actor)
	inv.Items = append(inv.Items, item)
	r.store.SetInventory(a.Actor, inv)

	return &Outcome{Kind: KindPickUp, Actor: a.Actor, Item: item}, nil
}

func (r *Resolver) drop(a Action) (*Outcome, error) {
	pos, ok := r.store.PositionOf(a.Actor)
	if !ok {
		return nil, reject(a.Kind, ReasonMalformed)
	}
	inv, _ := r.store.Inventory(a.Actor)
	at := -1
	for i, item := range inv.Items {
		if item == a.Item {
			at = i
			break
		}
	}
	if at < 0 {
		return nil, reject(a.Kind, ReasonNotCarried)
	}

	inv.Items = append(inv.Items[:at], inv.Items[at+1:]...)
	r.store.SetInventory(a.Actor, inv)
	r.store.Place(a.Item, pos)

	return &Outcome{Kind: a.Kind, Actor: a.Actor, Item: a.Item}, nil
}

func (r *Resolver) stairs(a Action, want gamemap.Terrain, delta int) (*Outcome, error) {
	pos, ok := r.store.PositionOf(a.Actor)
	if !ok {
		return nil, reject(a.Kind, ReasonMalformed)
	}
	c, err := r.m.CellAt(pos)
	if err != nil || c.Terrain != want {
		return nil, reject(a.Kind, ReasonNoStairs)
	}
	return &Outcome{Kind: a.Kind, Actor: a.Actor, Transition: delta}, nil
}
