package action

import (
	"testing"

	"github.com/torvik/delve/internal/entity"
	"github.com/torvik/delve/internal/gamemap"
	"github.com/torvik/delve/internal/geom"
	"github.com/torvik/delve/internal/turn"
)

type fixture struct {
	m     *gamemap.Map
	store *entity.Store
	sched *turn.Scheduler
	r     *Resolver
}

func newFixture(w, h int) *fixture {
	m := gamemap.New(w, h)
	for _, p := range m.Bounds().Inset(1).Points() {
		m.SetCell(p, gamemap.Floor())
	}
	store := entity.NewStore()
	sched := turn.NewScheduler()
	return &fixture{m: m, store: store, sched: sched, r: NewResolver(m, store, sched)}
}

func (f *fixture) actor(t *testing.T, at geom.Point, faction entity.Faction) entity.ID {
	t.Helper()
	id := f.store.Create()
	f.store.SetSpeed(id, entity.Speed{Delay: 10})
	f.store.SetFaction(id, faction)
	f.store.MarkBlocking(id)
	if err := f.store.Place(id, at); err != nil {
		t.Fatal(err)
	}
	if err := f.sched.Add(id); err != nil {
		t.Fatal(err)
	}
	return id
}

// turnOf advances the scheduler until the given actor is acting.
func (f *fixture) turnOf(t *testing.T, id entity.ID) {
	t.Helper()
	for {
		next, ok := f.sched.Next()
		if !ok {
			t.Fatalf("actor %d never came up", id)
		}
		if next == id {
			return
		}
		if err := f.sched.Reschedule(next, BaseCost); err != nil {
			t.Fatal(err)
		}
	}
}

func wantRejected(t *testing.T, err error, reason Reason) {
	t.Helper()
	rej, ok := RejectedWith(err)
	if !ok {
		t.Fatalf("err = %v, want *Rejection", err)
	}
	if rej.Reason != reason {
		t.Errorf("reason = %v, want %v", rej.Reason, reason)
	}
}

func TestMove(t *testing.T) {
	f := newFixture(10, 10)
	id := f.actor(t, geom.P(4, 4), entity.FactionPlayer)
	f.turnOf(t, id)

	out, err := f.r.Resolve(Move(id, geom.East))
	if err != nil {
		t.Fatal(err)
	}
	if out.From != geom.P(4, 4) || out.To != geom.P(5, 4) {
		t.Errorf("outcome %v -> %v, want (4,4) -> (5,4)", out.From, out.To)
	}
	if pos, _ := f.store.PositionOf(id); pos != geom.P(5, 4) {
		t.Errorf("actor at %v, want (5,4)", pos)
	}
	if len(out.Invalidate) != 1 || out.Invalidate[0] != id {
		t.Errorf("mover's visibility should be invalidated, got %v", out.Invalidate)
	}
	if out.Cost != BaseCost {
		t.Errorf("cost = %d, want %d", out.Cost, BaseCost)
	}
	if _, acting := f.sched.Acting(); acting {
		t.Error("successful action should consume the turn")
	}
}

func TestMoveIntoWallRejected(t *testing.T) {
	f := newFixture(10, 10)
	id := f.actor(t, geom.P(1, 1), entity.FactionPlayer)
	f.turnOf(t, id)

	_, err := f.r.Resolve(Move(id, geom.West))
	wantRejected(t, err, ReasonBlocked)

	if pos, _ := f.store.PositionOf(id); pos != geom.P(1, 1) {
		t.Errorf("rejected move changed position to %v", pos)
	}
	if acting, ok := f.sched.Acting(); !ok || acting != id {
		t.Error("rejected action must not consume the turn")
	}
}

func TestMoveOutOfBoundsRejected(t *testing.T) {
	f := newFixture(6, 6)
	id := f.actor(t, geom.P(1, 1), entity.FactionPlayer)
	// Breach the edge wall so the step off the map hits bounds, not terrain.
	f.m.SetCell(geom.P(0, 1), gamemap.Floor())
	f.turnOf(t, id)

	f.r.Resolve(Move(id, geom.West))
	f.turnOf(t, id)
	_, err := f.r.Resolve(Move(id, geom.West))
	wantRejected(t, err, ReasonBlocked)
}

func TestMoveRejectsNonUnitDirection(t *testing.T) {
	f := newFixture(10, 10)
	id := f.actor(t, geom.P(4, 4), entity.FactionPlayer)
	f.turnOf(t, id)

	_, err := f.r.Resolve(Move(id, geom.Direction{DX: 2, DY: 0}))
	wantRejected(t, err, ReasonOutOfRange)
}

func TestNoDiagonalCornerSqueeze(t *testing.T) {
	f := newFixture(10, 10)
	f.m.SetCell(geom.P(5, 4), gamemap.Wall())
	f.m.SetCell(geom.P(4, 5), gamemap.Wall())
	id := f.actor(t, geom.P(4, 4), entity.FactionPlayer)
	f.turnOf(t, id)

	_, err := f.r.Resolve(Move(id, geom.SouthEast))
	wantRejected(t, err, ReasonBlocked)
}

func TestNotActingRejected(t *testing.T) {
	f := newFixture(10, 10)
	a := f.actor(t, geom.P(2, 2), entity.FactionPlayer)
	b := f.actor(t, geom.P(6, 6), entity.FactionMonster)
	f.turnOf(t, a)

	_, err := f.r.Resolve(Move(b, geom.East))
	wantRejected(t, err, ReasonNotActing)
}

func TestDeadActorRejected(t *testing.T) {
	f := newFixture(10, 10)
	id := f.actor(t, geom.P(2, 2), entity.FactionPlayer)
	f.store.Destroy(id)

	_, err := f.r.Resolve(Move(id, geom.East))
	wantRejected(t, err, ReasonDead)
}

func TestBumpAttack(t *testing.T) {
	f := newFixture(10, 10)
	player := f.actor(t, geom.P(4, 4), entity.FactionPlayer)
	monster := f.actor(t, geom.P(5, 4), entity.FactionMonster)
	f.store.SetCombat(player, entity.Combat{Strength: 3})
	f.store.SetCombat(monster, entity.Combat{Defense: 1})
	f.store.SetHealth(monster, entity.Health{Max: 10, Cur: 10})
	f.turnOf(t, player)

	out, err := f.r.Resolve(Move(player, geom.East))
	if err != nil {
		t.Fatal(err)
	}
	if out.Kind != KindAttack {
		t.Fatalf("bump into hostile should resolve as attack, got %v", out.Kind)
	}
	if out.Damage != 2 {
		t.Errorf("damage = %d, want strength 3 - defense 1 = 2", out.Damage)
	}
	if hp, _ := f.store.Health(monster); hp.Cur != 8 {
		t.Errorf("defender health = %d, want 8", hp.Cur)
	}
	if pos, _ := f.store.PositionOf(player); pos != geom.P(4, 4) {
		t.Errorf("attacker should not move, at %v", pos)
	}
}

func TestBumpIntoFriendlyRejected(t *testing.T) {
	f := newFixture(10, 10)
	a := f.actor(t, geom.P(4, 4), entity.FactionMonster)
	f.actor(t, geom.P(5, 4), entity.FactionMonster)
	f.turnOf(t, a)

	_, err := f.r.Resolve(Move(a, geom.East))
	wantRejected(t, err, ReasonOccupied)
}

func TestMinimumDamage(t *testing.T) {
	f := newFixture(10, 10)
	weak := f.actor(t, geom.P(4, 4), entity.FactionPlayer)
	tank := f.actor(t, geom.P(5, 4), entity.FactionMonster)
	f.store.SetCombat(weak, entity.Combat{Strength: 1})
	f.store.SetCombat(tank, entity.Combat{Defense: 5})
	f.store.SetHealth(tank, entity.Health{Max: 10, Cur: 10})
	f.turnOf(t, weak)

	out, err := f.r.Resolve(Attack(weak, geom.East))
	if err != nil {
		t.Fatal(err)
	}
	if out.Damage != 1 {
		t.Errorf("damage = %d, want minimum 1", out.Damage)
	}
}

func TestLethalAttackDestroysDefender(t *testing.T) {
	f := newFixture(10, 10)
	player := f.actor(t, geom.P(4, 4), entity.FactionPlayer)
	monster := f.actor(t, geom.P(5, 4), entity.FactionMonster)
	f.store.SetCombat(player, entity.Combat{Strength: 5})
	f.store.SetHealth(monster, entity.Health{Max: 3, Cur: 3})

	loot := f.store.Create()
	f.store.MarkItem(loot)
	f.store.SetInventory(monster, entity.Inventory{Items: []entity.ID{loot}})

	f.turnOf(t, player)
	out, err := f.r.Resolve(Attack(player, geom.East))
	if err != nil {
		t.Fatal(err)
	}
	if !out.Killed {
		t.Error("outcome should report the kill")
	}
	if f.store.Alive(monster) {
		t.Error("defender should be destroyed in the same call")
	}
	if f.sched.Contains(monster) {
		t.Error("defender should be unscheduled in the same call")
	}
	if f.sched.StateOf(monster) != turn.StateRemoved {
		t.Error("defender removal should be terminal")
	}

	// Carried items spill onto the death cell.
	items := f.store.ItemsAt(geom.P(5, 4))
	if len(items) != 1 || items[0] != loot {
		t.Errorf("loot should drop at (5,4), found %v", items)
	}

	// The dead actor never comes up again.
	for {
		next, ok := f.sched.Next()
		if !ok {
			break
		}
		if next == monster {
			t.Fatal("destroyed actor received a turn")
		}
		f.sched.Remove(next)
	}
}

func TestAttackEmptyCellRejected(t *testing.T) {
	f := newFixture(10, 10)
	id := f.actor(t, geom.P(4, 4), entity.FactionPlayer)
	f.turnOf(t, id)

	_, err := f.r.Resolve(Attack(id, geom.East))
	wantRejected(t, err, ReasonNoTarget)
}

func TestOpenAndCloseDoor(t *testing.T) {
	f := newFixture(10, 10)
	door := geom.P(5, 4)
	f.m.SetCell(door, gamemap.ClosedDoor())
	id := f.actor(t, geom.P(4, 4), entity.FactionPlayer)

	f.turnOf(t, id)
	out, err := f.r.Resolve(OpenDoor(id, geom.East))
	if err != nil {
		t.Fatal(err)
	}
	if !out.InvalidateAll {
		t.Error("opening a door changes opacity for everyone")
	}
	if c, _ := f.m.CellAt(door); c.Terrain != gamemap.TerrainDoorOpen {
		t.Fatalf("door terrain = %v, want open", c.Terrain)
	}
	if passable, _ := f.m.IsPassable(door); !passable {
		t.Error("open door should be passable")
	}

	f.turnOf(t, id)
	if _, err := f.r.Resolve(CloseDoor(id, geom.East)); err != nil {
		t.Fatal(err)
	}
	if c, _ := f.m.CellAt(door); c.Terrain != gamemap.TerrainDoorClosed {
		t.Errorf("door terrain = %v, want closed", c.Terrain)
	}
}

func TestOpenDoorRequiresClosedDoor(t *testing.T) {
	f := newFixture(10, 10)
	id := f.actor(t, geom.P(4, 4), entity.FactionPlayer)
	f.turnOf(t, id)

	_, err := f.r.Resolve(OpenDoor(id, geom.East))
	wantRejected(t, err, ReasonNoDoor)
}

func TestCloseDoorOnOccupantRejected(t *testing.T) {
	f := newFixture(10, 10)
	door := geom.P(5, 4)
	f.m.SetCell(door, gamemap.OpenDoor())
	id := f.actor(t, geom.P(4, 4), entity.FactionPlayer)
	f.actor(t, door, entity.FactionMonster)
	f.turnOf(t, id)

	_, err := f.r.Resolve(CloseDoor(id, geom.East))
	wantRejected(t, err, ReasonDoorBlocked)
}

func TestPickUpAndDrop(t *testing.T) {
	f := newFixture(10, 10)
	at := geom.P(4, 4)
	id := f.actor(t, at, entity.FactionPlayer)

	item := f.store.Create()
	f.store.MarkItem(item)
	f.store.Place(item, at)

	f.turnOf(t, id)
	out, err := f.r.Resolve(PickUp(id))
	if err != nil {
		t.Fatal(err)
	}
	if out.Item != item {
		t.Errorf("picked up %d, want %d", out.Item, item)
	}
	if _, onMap := f.store.PositionOf(item); onMap {
		t.Error("carried item should have no position")
	}
	inv, _ := f.store.Inventory(id)
	if len(inv.Items) != 1 || inv.Items[0] != item {
		t.Errorf("inventory = %v, want [%d]", inv.Items, item)
	}

	f.turnOf(t, id)
	f.r.Resolve(Move(id, geom.East))

	f.turnOf(t, id)
	if _, err := f.r.Resolve(Drop(id, item)); err != nil {
		t.Fatal(err)
	}
	inv, _ = f.store.Inventory(id)
	if len(inv.Items) != 0 {
		t.Errorf("inventory should be empty after drop, got %v", inv.Items)
	}
	if pos, _ := f.store.PositionOf(item); pos != geom.P(5, 4) {
		t.Errorf("dropped item at %v, want the actor's cell (5,4)", pos)
	}
}

func TestPickUpNothingRejected(t *testing.T) {
	f := newFixture(10, 10)
	id := f.actor(t, geom.P(4, 4), entity.FactionPlayer)
	f.turnOf(t, id)

	_, err := f.r.Resolve(PickUp(id))
	wantRejected(t, err, ReasonNothingHere)
}

func TestDropNotCarriedRejected(t *testing.T) {
	f := newFixture(10, 10)
	id := f.actor(t, geom.P(4, 4), entity.FactionPlayer)
	stray := f.store.Create()
	f.turnOf(t, id)

	_, err := f.r.Resolve(Drop(id, stray))
	wantRejected(t, err, ReasonNotCarried)
}

func TestStairs(t *testing.T) {
	f := newFixture(10, 10)
	f.m.SetCell(geom.P(4, 4), gamemap.StairsDown())
	id := f.actor(t, geom.P(4, 4), entity.FactionPlayer)

	f.turnOf(t, id)
	out, err := f.r.Resolve(Descend(id))
	if err != nil {
		t.Fatal(err)
	}
	if out.Transition != 1 {
		t.Errorf("transition = %d, want +1", out.Transition)
	}

	f.turnOf(t, id)
	_, err = f.r.Resolve(Ascend(id))
	wantRejected(t, err, ReasonNoStairs)
}

func TestWaitConsumesTurn(t *testing.T) {
	f := newFixture(10, 10)
	id := f.actor(t, geom.P(4, 4), entity.FactionPlayer)
	f.store.SetSpeed(id, entity.Speed{Delay: 20})
	f.turnOf(t, id)

	out, err := f.r.Resolve(Wait(id))
	if err != nil {
		t.Fatal(err)
	}
	if out.Cost != 20 {
		t.Errorf("cost = %d, want delay-scaled 20", out.Cost)
	}
	if _, acting := f.sched.Acting(); acting {
		t.Error("wait should consume the turn")
	}
}
